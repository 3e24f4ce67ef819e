package bybit

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/Gsuz/ccxt/internal/signer"
	"github.com/Gsuz/ccxt/internal/transport"
	"github.com/Gsuz/ccxt/pkg/core"
	"github.com/Gsuz/ccxt/pkg/safe"
)

// sign authenticates a request the Bybit v5 way: the signature travels in
// headers, computed as HMAC-SHA256 over timestamp + apiKey + recvWindow +
// payload, where the payload is the encoded query string for GET and the
// raw JSON body for POST. The signed query is folded into the path and the
// signed body bytes are sent verbatim so the signed bytes are exactly the
// wire bytes.
func (b *Bybit) sign(req *core.Request) error {
	creds, err := b.client.Credentials()
	if err != nil {
		return err
	}

	timestamp := strconv.FormatInt(b.client.Nonce().Next(), 10)
	recvWindow := strconv.FormatInt(b.client.Config().RecvWindow.Milliseconds(), 10)

	var payload string
	if req.Method == http.MethodGet {
		values := url.Values{}
		for k, v := range req.Query {
			values.Set(k, stringify(v))
		}
		payload = values.Encode()
		if payload != "" {
			req.Path = req.Path + "?" + payload
		}
		req.Query = nil
	} else {
		encoded, err := sonic.Marshal(req.Body)
		if err != nil {
			return err
		}
		payload = string(encoded)
		req.Body = encoded
		req.SetHeader("Content-Type", "application/json")
	}

	signature := signer.HexHMAC(signer.SHA256, timestamp+creds.APIKey+recvWindow+payload, creds.Secret)
	req.SetHeader("X-BAPI-API-KEY", creds.APIKey)
	req.SetHeader("X-BAPI-TIMESTAMP", timestamp)
	req.SetHeader("X-BAPI-RECV-WINDOW", recvWindow)
	req.SetHeader("X-BAPI-SIGN", signature)
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
		return ""
	}
}

// result unwraps the v5 envelope {retCode, retMsg, result}. A non-zero
// retCode is an error regardless of the HTTP status, which is 200 for most
// venue-level failures.
func (b *Bybit) result(resp *transport.Response) (core.Raw, error) {
	body, err := resp.Map()
	if err != nil {
		return nil, core.NewError(b.Name(), core.KindExchangeError, resp.StatusCode, string(resp.Body))
	}

	code := safe.String(body, "retCode", "")
	if code != "" && code != "0" {
		msg := safe.String(body, "retMsg", "")
		return nil, b.client.Errors().Classify(b.Name(), code, msg, resp.StatusCode, body)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, b.client.Errors().Classify(b.Name(), code, safe.String(body, "retMsg", ""), resp.StatusCode, body)
	}
	return safe.Map(body, "result"), nil
}

// rows unwraps the common result shape {result: {list: [...]}}.
func (b *Bybit) rows(resp *transport.Response) ([]any, error) {
	result, err := b.result(resp)
	if err != nil {
		return nil, err
	}
	return safe.List(result, "list"), nil
}
