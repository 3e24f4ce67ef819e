package keyring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gsuz/ccxt/pkg/core"
)

func TestNew_SkipsIncompleteCredentials(t *testing.T) {
	r := New(
		core.Credentials{APIKey: "a", Secret: "1"},
		core.Credentials{APIKey: "no-secret"},
		core.Credentials{Secret: "no-key"},
		core.Credentials{APIKey: "b", Secret: "2"},
	)
	assert.Equal(t, 2, r.Len())
}

func TestRing_EmptyRing(t *testing.T) {
	r := New()
	assert.True(t, r.Empty())

	_, ok := r.Current()
	assert.False(t, ok)
	_, ok = r.Rotate()
	assert.False(t, ok)
}

func TestRing_RotateCycles(t *testing.T) {
	r := New(
		core.Credentials{APIKey: "a", Secret: "1"},
		core.Credentials{APIKey: "b", Secret: "2"},
		core.Credentials{APIKey: "c", Secret: "3"},
	)

	cur, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, "a", cur.APIKey)

	next, _ := r.Rotate()
	assert.Equal(t, "b", next.APIKey)
	next, _ = r.Rotate()
	assert.Equal(t, "c", next.APIKey)
	next, _ = r.Rotate()
	assert.Equal(t, "a", next.APIKey, "rotation wraps around")
}
