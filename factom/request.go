// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package factom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jrpc "github.com/AdamSLevy/jsonrpc2/v11"
)

// request describes a single v1 API call. At most one of form and body is
// set. factomd and factom-walletd each accept exactly one encoding per
// endpoint, so the choice is fixed by the method building the request.
type request struct {
	Op      string // Name used in errors.
	Service string // Factomd or Walletd.
	Method  string
	Command string // Path below /v1/, already escaped.
	Query   url.Values
	Form    url.Values
	Body    interface{} // Marshaled as JSON.
}

func (c *Client) endpoint(service string) (string, *jrpc.Client) {
	if service == Factomd {
		return c.FactomdServer, &c.Factomd
	}
	return c.WalletdServer, &c.Walletd
}

// do makes the v1 request r and unmarshals the response into result after
// ensuring that all required JSON fields are present.
func (c *Client) do(ctx context.Context, r request,
	result interface{}, required ...string) error {

	server, hc := c.endpoint(r.Service)
	u := server + "/v1/" + r.Command
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	var body io.Reader
	var contentType string
	switch {
	case r.Form != nil:
		body = strings.NewReader(r.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case r.Body != nil:
		// Payloads composed by factom-walletd are forwarded as is.
		data, ok := r.Body.(json.RawMessage)
		if !ok {
			var err error
			if data, err = json.Marshal(r.Body); err != nil {
				return fmt.Errorf("%v: json.Marshal(): %w",
					r.Op, err)
			}
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		return fmt.Errorf("%v: %w", r.Op, err)
	}
	if len(contentType) > 0 {
		req.Header.Set("Content-Type", contentType)
	}
	if hc.BasicAuth {
		req.SetBasicAuth(hc.User, hc.Password)
	}

	if hc.DebugRequest {
		log.Debugf("%v %v %v", r.Service, r.Method, u)
		if r.Form != nil {
			log.Debugf("form: %v", r.Form.Encode())
		}
	}
	res, err := hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%v: %w", r.Op, ctx.Err())
		}
		return &ServiceUnavailableError{Service: r.Service,
			Server: server, Port: port(server), Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return &UnexpectedResponseError{Op: r.Op,
			StatusCode: res.StatusCode, Body: data,
			Err: fmt.Errorf("io.ReadAll(http.Response.Body): %w", err)}
	}
	if hc.DebugRequest {
		log.Debugf("%v response: %s", r.Op, data)
	}
	return decode(r.Op, res.StatusCode, data, result, required...)
}

// decode unmarshals data into result. It returns an UnexpectedResponseError if
// data is not a JSON object, lacks any of the required fields, or does not fit
// result.
func decode(op string, status int, data []byte,
	result interface{}, required ...string) error {

	unexpected := func(err error) error {
		return &UnexpectedResponseError{Op: op, StatusCode: status,
			Body: data, Err: err}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return unexpected(err)
	}
	if fields == nil {
		return unexpected(fmt.Errorf("not a JSON object"))
	}
	for _, key := range required {
		if _, ok := fields[key]; !ok {
			return unexpected(fmt.Errorf("missing field %q", key))
		}
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return unexpected(err)
	}
	return nil
}

// port returns the port of server, or the scheme's default port if server does
// not specify one.
func port(server string) string {
	u, err := url.Parse(server)
	if err != nil || len(u.Host) == 0 {
		return server
	}
	if p := u.Port(); len(p) > 0 {
		return p
	}
	if u.Scheme == "https" {
		return "443"
	}
	return "80"
}

// Response is the envelope returned by every v1 wallet call and by the
// daemon's submission calls.
type Response struct {
	// Response is a human readable status or a payload such as an
	// address or a balance. Non-string JSON values are kept in their JSON
	// text form.
	Response string
	// Success is false when the service rejected the request.
	Success bool
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var res struct {
		Response json.RawMessage
		Success  *bool
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return err
	}
	r.Response = ""
	if len(res.Response) > 0 && string(res.Response) != "null" {
		if res.Response[0] == '"' {
			if err := json.Unmarshal(res.Response, &r.Response); err != nil {
				return err
			}
		} else {
			r.Response = string(res.Response)
		}
	}
	r.Success = res.Success != nil && *res.Success
	return nil
}

func (r Response) String() string {
	return r.Response
}
