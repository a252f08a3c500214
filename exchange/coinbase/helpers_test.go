package coinbase

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

//
// stubResponse is what the stub transport answers for a request URI.
//
type stubResponse struct {
	status int
	body   string
	err    error
}

//
// stubTransport is an in-memory http.RoundTripper. It answers by request URI (path + query), falls
// back to a default response, and records every request it sees.
//
type stubTransport struct {
	mu       sync.Mutex
	routes   map[string]stubResponse
	fallback stubResponse
	requests []*http.Request
}

func newStubTransport(status int, body string) *stubTransport {
	return &stubTransport{
		routes:   map[string]stubResponse{},
		fallback: stubResponse{status: status, body: body},
	}
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
	if !ok {
		resp = o.fallback
	}
	o.mu.Unlock()

	if resp.err != nil {
		return nil, resp.err
	}

	return &http.Response{
		StatusCode: resp.status,
		Status:     http.StatusText(resp.status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(resp.body)),
		Request:    req,
	}, nil
}

func (o *stubTransport) last(t *testing.T) *http.Request {
	t.Helper()

	o.mu.Lock()
	defer o.mu.Unlock()

	require.NotEmpty(t, o.requests, "expected at least one request to have been sent")

	return o.requests[len(o.requests)-1]
}

func (o *stubTransport) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.requests)
}

//
// testLogger returns a logger whose entries are captured rather than printed.
//
func testLogger() (*logrus.Entry, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	return logrus.NewEntry(logger), hook
}

func newTestMarketClient(t *testing.T, rt http.RoundTripper) *MarketDataClient {
	t.Helper()

	logger, _ := testLogger()

	client, err := NewMarketDataClient(Sandbox, WithRoundTripper(rt), WithLogger(logger))
	require.NoError(t, err)

	return client
}

const (
	testKey        = "test-key"
	testPassphrase = "test-passphrase"

	// base64("goose-coinbase-test-secret-key!!")
	testSecret = "Z29vc2UtY29pbmJhc2UtdGVzdC1zZWNyZXQta2V5ISE="
)

var testNow = time.Unix(1600000000, 0)

func newTestPrivateClient(t *testing.T, rt http.RoundTripper) *PrivateClient {
	t.Helper()

	logger, _ := testLogger()

	client, err := NewPrivateClient(
		Sandbox,
		Credentials{Key: testKey, Secret: testSecret, Passphrase: testPassphrase},
		WithRoundTripper(rt),
		WithLogger(logger),
		WithClock(func() time.Time { return testNow }),
	)
	require.NoError(t, err)

	return client
}
