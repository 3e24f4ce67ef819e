package normalize

import "time"

// ISO8601 renders a millisecond epoch timestamp in the unified datetime
// form, e.g. "2024-01-02T03:04:05.678Z". Zero and negative inputs yield the
// empty string, the unified representation of an unknown time.
func ISO8601(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000Z")
}
