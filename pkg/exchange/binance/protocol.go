package binance

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Gsuz/ccxt/internal/signer"
	"github.com/Gsuz/ccxt/internal/transport"
	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/safe"
)

// sign authenticates a request the Binance way: timestamp and recvWindow
// join the query parameters, the HMAC-SHA256 hex signature of the encoded
// query string is appended as the signature parameter, and the API key
// travels in the X-MBX-APIKEY header. The signed query is folded into the
// path so the exact signed byte sequence is what goes on the wire.
func (b *Binance) sign(req *core.Request) error {
	creds, err := b.client.Credentials()
	if err != nil {
		return err
	}

	values := url.Values{}
	for k, v := range req.Query {
		values.Set(k, stringify(v))
	}
	values.Set("timestamp", strconv.FormatInt(b.client.Nonce().Next(), 10))
	values.Set("recvWindow", strconv.FormatInt(b.client.Config().RecvWindow.Milliseconds(), 10))

	encoded := values.Encode()
	signature := signer.HexHMAC(signer.SHA256, encoded, creds.Secret)

	req.Path = req.Path + "?" + encoded + "&signature=" + signature
	req.Query = nil
	req.SetHeader("X-MBX-APIKEY", creds.APIKey)
	return nil
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// checkError classifies a Binance error payload, which is the same
// {"code":-1121,"msg":"..."} shape on every endpoint family. Some /sapi
// routes report failures with HTTP 200 and a negative code, so the body is
// inspected even on success statuses.
func (b *Binance) checkError(resp *transport.Response) error {
	body, err := resp.Map()
	if err != nil {
		// Not an object; arrays and scalars cannot carry an error envelope.
		if resp.StatusCode < http.StatusBadRequest {
			return nil
		}
		return core.NewError(b.Name(), core.KindExchangeError, resp.StatusCode, string(resp.Body))
	}

	code := safe.String(body, "code", "")
	msg := safe.String(body, "msg", "")
	if resp.StatusCode >= http.StatusBadRequest || (len(code) > 0 && code[0] == '-') {
		return b.client.Errors().Classify(b.Name(), code, msg, resp.StatusCode, body)
	}
	return nil
}

// object decodes a response expected to be a JSON object.
func (b *Binance) object(resp *transport.Response) (core.Raw, error) {
	if err := b.checkError(resp); err != nil {
		return nil, err
	}
	return resp.Map()
}

// array decodes a response expected to be a JSON array.
func (b *Binance) array(resp *transport.Response) ([]any, error) {
	if err := b.checkError(resp); err != nil {
		return nil, err
	}
	return resp.List()
}
