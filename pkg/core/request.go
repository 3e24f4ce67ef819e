package core

import "maps"

// Params is a loosely-typed parameter bag. Unified methods accept one and
// pass unrecognized keys through verbatim to the underlying venue request.
type Params map[string]any

// Clone returns a shallow copy of p. A nil receiver yields an empty bag.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// Omit returns a copy of p without the given keys. Adapters use it to move
// consumed parameters out of the bag before spilling the rest onto the wire.
func (p Params) Omit(keys ...string) Params {
	out := p.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Request is the fully-resolved wire request an adapter hands to the
// transport collaborator: url path, method, headers and body are final, the
// signature (when required) already attached, and Cost is the weighted
// rate-limit charge consumed before dispatch.
type Request struct {
	Method  string            `json:"method"`
	Path    string            `json:"path"`
	Query   Params            `json:"query,omitempty"`
	Body    any               `json:"body,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Cost    int               `json:"cost"`
}

// NewRequest creates a request with the given method and path and a default
// cost of one.
func NewRequest(method, path string) *Request {
	return &Request{
		Method:  method,
		Path:    path,
		Query:   make(Params),
		Headers: make(map[string]string),
		Cost:    1,
	}
}

// SetQuery sets one query parameter and returns the request for chaining.
func (r *Request) SetQuery(key string, value any) *Request {
	if r.Query == nil {
		r.Query = make(Params)
	}
	r.Query[key] = value
	return r
}

// SetQueryParams merges params into the query string parameters.
func (r *Request) SetQueryParams(params Params) *Request {
	if r.Query == nil {
		r.Query = make(Params)
	}
	maps.Copy(r.Query, params)
	return r
}

// SetBody sets the request body and returns the request for chaining.
func (r *Request) SetBody(body any) *Request {
	r.Body = body
	return r
}

// SetHeader sets one header and returns the request for chaining.
func (r *Request) SetHeader(key, value string) *Request {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[key] = value
	return r
}

// SetCost sets the weighted rate-limit cost and returns the request for chaining.
func (r *Request) SetCost(cost int) *Request {
	r.Cost = cost
	return r
}
