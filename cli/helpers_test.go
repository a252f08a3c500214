package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"
)

//
// stubTransport answers requests by request URI (path + query) and records what it was sent.
// Unknown URIs get a 404 with a Coinbase Pro style error body.
//
type stubTransport struct {
	mu       sync.Mutex
	routes   map[string]stubResponse
	requests []*http.Request
}

type stubResponse struct {
	status int
	body   string
}

func newStubTransport() *stubTransport {
	return &stubTransport{routes: map[string]stubResponse{}}
}

func (o *stubTransport) route(requestURI string, status int, body string) *stubTransport {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.routes[requestURI] = stubResponse{status: status, body: body}

	return o
}

func (o *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.requests = append(o.requests, req)
	resp, ok := o.routes[req.URL.RequestURI()]
	o.mu.Unlock()

	if !ok {
		resp = stubResponse{status: http.StatusNotFound, body: `{"message":"NotFound"}`}
	}

	return &http.Response{
		StatusCode: resp.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(resp.body)),
		Request:    req,
	}, nil
}

func (o *stubTransport) uris() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	uris := make([]string, len(o.requests))
	for i, req := range o.requests {
		uris[i] = req.URL.RequestURI()
	}

	return uris
}

func (o *stubTransport) last() *http.Request {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.requests) == 0 {
		return nil
	}

	return o.requests[len(o.requests)-1]
}

var configVariables = []string{
	"ENVIRONMENT",
	"API_KEY",
	"API_SECRET",
	"API_PASSPHRASE",
	"USER_AGENT",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"LOG_FILE",
}

//
// isolateEnv unsets every variable the configuration could be read from for the duration of the
// test, including ones a loaded .env file sets.
//
func isolateEnv(t *testing.T) {
	t.Helper()

	for _, name := range configVariables {
		for _, key := range []string{"COINBASE_" + name, name} {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}

const (
	testKey        = "test-key"
	testPassphrase = "test-passphrase"
	testSecret     = "Z29vc2UtY29pbmJhc2UtdGVzdC1zZWNyZXQta2V5ISE="
)

func setCredentials(t *testing.T) {
	t.Helper()

	t.Setenv("COINBASE_API_KEY", testKey)
	t.Setenv("COINBASE_API_SECRET", testSecret)
	t.Setenv("COINBASE_API_PASSPHRASE", testPassphrase)
}

//
// runApp runs the app against the stub transport and returns its exit code, stdout and stderr.
//
func runApp(t *testing.T, rt http.RoundTripper, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	app := &App{Stdout: &stdout, Stderr: &stderr, RoundTripper: rt}
	code := app.Run(context.Background(), args)

	return code, stdout.String(), stderr.String()
}
