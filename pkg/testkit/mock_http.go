// Package testkit holds shared test helpers: a mock HTTP transport for
// exercising the store client without a running server, and testify-based
// JSON assertions.
package testkit

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// MockResponse is a canned reply for one route pattern.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
}

// Responder computes a reply from the live request. Useful when the body
// depends on what was sent.
type Responder func(req *http.Request) MockResponse

type mockRoute struct {
	method    string // "" matches any method
	pattern   string // substring of the request URL
	responder Responder
	callCount int
}

// MockTransport implements http.RoundTripper, matching outgoing requests
// against registered routes and returning synthetic responses. Install it on
// the store client before the test:
//
//	mt := testkit.NewMockTransport()
//	mt.On("GET", "/api/product/list", testkit.JSON(200, `{"success":true,"products":[]}`))
//	client.SetTransport(mt)
type MockTransport struct {
	mu     sync.Mutex
	routes []*mockRoute
}

func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// On registers a canned response for requests whose URL contains pattern.
func (mt *MockTransport) On(method, pattern string, resp MockResponse) *MockTransport {
	return mt.OnFunc(method, pattern, func(*http.Request) MockResponse { return resp })
}

// OnFunc registers a dynamic responder for requests whose URL contains
// pattern. Routes are matched in registration order.
func (mt *MockTransport) OnFunc(method, pattern string, fn Responder) *MockTransport {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.routes = append(mt.routes, &mockRoute{
		method:    strings.ToUpper(method),
		pattern:   pattern,
		responder: fn,
	})
	return mt
}

// JSON builds a MockResponse with a JSON content type.
func JSON(status int, body string) MockResponse {
	return MockResponse{
		StatusCode: status,
		Body:       body,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// RoundTrip matches the request against the registered routes. Unmatched
// requests get a 404 with an explanatory body rather than an error, so a
// degrade-on-failure code path still sees a well-formed response.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mt.mu.Lock()
	var matched *mockRoute
	for _, rt := range mt.routes {
		if rt.method != "" && rt.method != req.Method {
			continue
		}
		if !strings.Contains(req.URL.String(), rt.pattern) {
			continue
		}
		matched = rt
		rt.callCount++
		break
	}
	mt.mu.Unlock()

	if matched == nil {
		return synthesize(req, MockResponse{
			StatusCode: http.StatusNotFound,
			Body:       fmt.Sprintf(`{"success":false,"message":"no mock for %s %s"}`, req.Method, req.URL.Path),
			Headers:    map[string]string{"Content-Type": "application/json"},
		}), nil
	}
	return synthesize(req, matched.responder(req)), nil
}

// Calls reports how many requests matched the route with the given pattern.
func (mt *MockTransport) Calls(pattern string) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	for _, rt := range mt.routes {
		if rt.pattern == pattern {
			return rt.callCount
		}
	}
	return 0
}

// UncalledRoutes returns the patterns of routes that never matched a request.
func (mt *MockTransport) UncalledRoutes() []string {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	var out []string
	for _, rt := range mt.routes {
		if rt.callCount == 0 {
			out = append(out, rt.pattern)
		}
	}
	return out
}

func synthesize(req *http.Request, mr MockResponse) *http.Response {
	code := mr.StatusCode
	if code == 0 {
		code = http.StatusOK
	}

	header := make(http.Header)
	for k, v := range mr.Headers {
		header.Set(k, v)
	}

	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader([]byte(mr.Body))),
		Request:    req,
	}
}

// Drain reads and closes a response body, for tests that only care about the
// status code.
func Drain(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		resp.Body.Close()
	}
}
