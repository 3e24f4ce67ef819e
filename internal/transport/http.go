// Package transport performs the HTTP exchange for fully-resolved, signed
// request descriptors. It owns nothing above the wire: no retries (retry
// policy belongs to the caller, never to the unification layer), no
// signing, no response interpretation beyond decoding bytes.
package transport

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	"github.com/Gsuz/ccxt/pkg/core"
)

// Client wraps a resty HTTP client bound to one venue's base URL.
type Client struct {
	client *resty.Client
	logger zerolog.Logger
}

// Response is the raw outcome of one HTTP exchange.
type Response struct {
	// StatusCode is the HTTP status code returned by the server.
	StatusCode int
	// Body contains the raw response body bytes.
	Body []byte
	// Headers contains the response headers, first value per key.
	Headers map[string]string
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	return sonic.Unmarshal(r.Body, v)
}

// Map decodes the body as a loosely-typed object.
func (r *Response) Map() (core.Raw, error) {
	var m core.Raw
	if err := sonic.Unmarshal(r.Body, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// List decodes the body as a loosely-typed array.
func (r *Response) List() ([]any, error) {
	var l []any
	if err := sonic.Unmarshal(r.Body, &l); err != nil {
		return nil, err
	}
	return l, nil
}

// NewClient creates a transport client for one base URL. Timeout bounds the
// whole exchange; there is deliberately no retry configuration.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)

	client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("http request")
		return nil
	})
	client.AddResponseMiddleware(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("elapsed", resp.Duration()).
			Msg("http response")
		return nil
	})

	return &Client{client: client, logger: logger}
}

// Close releases the underlying connections.
func (c *Client) Close() error {
	return c.client.Close()
}

func paramsToStringMap(params core.Params) map[string]string {
	result := make(map[string]string, len(params))
	for k, v := range params {
		switch val := v.(type) {
		case string:
			result[k] = val
		case int:
			result[k] = strconv.Itoa(val)
		case int64:
			result[k] = strconv.FormatInt(val, 10)
		case float64:
			result[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			result[k] = strconv.FormatBool(val)
		default:
			result[k] = fmt.Sprintf("%v", val)
		}
	}
	return result
}

// Do executes one request descriptor and returns the raw response. Callers
// receive the response for any status code; interpreting non-2xx bodies is
// the adapter's job, since error shapes are venue-specific.
func (c *Client) Do(ctx context.Context, req *core.Request) (*Response, error) {
	r := c.client.R().SetContext(ctx)

	for k, v := range req.Headers {
		r.SetHeader(k, v)
	}
	if len(req.Query) > 0 {
		r.SetQueryParams(paramsToStringMap(req.Query))
	}
	if req.Body != nil {
		switch body := req.Body.(type) {
		case string:
			r.SetBody([]byte(body))
		case []byte:
			r.SetBody(body)
		default:
			encoded, err := sonic.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("encode body: %w", err)
			}
			r.SetHeader("Content-Type", "application/json")
			r.SetBody(encoded)
		}
	}

	var resp *resty.Response
	var err error
	switch req.Method {
	case http.MethodGet:
		resp, err = r.Get(req.Path)
	case http.MethodPost:
		resp, err = r.Post(req.Path)
	case http.MethodPut:
		resp, err = r.Put(req.Path)
	case http.MethodDelete:
		resp, err = r.Delete(req.Path)
	default:
		return nil, fmt.Errorf("unsupported http method: %s", req.Method)
	}
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string)
	for k, v := range resp.Header() {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Bytes(),
		Headers:    headers,
	}, nil
}
