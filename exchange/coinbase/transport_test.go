package coinbase

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/lukehollenback/coinbase-api/exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSOnlyRefusesPlainText(t *testing.T) {
	inner := newStubTransport(http.StatusOK, `[]`)
	rt := &httpsOnly{next: inner}

	req, err := http.NewRequest(http.MethodGet, "http://api.pro.coinbase.com/products", nil)
	require.NoError(t, err)

	resp, err := rt.RoundTrip(req)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInsecureScheme)
	assert.Zero(t, inner.count(), "the plain-text request must never reach the transport")
}

func TestHTTPSOnlyPassesTLSRequests(t *testing.T) {
	inner := newStubTransport(http.StatusOK, `[]`)
	rt := &httpsOnly{next: inner}

	req, err := http.NewRequest(http.MethodGet, "https://api.pro.coinbase.com/products", nil)
	require.NoError(t, err)

	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, inner.count())
}

//
// redirectTransport sends every request to a plain-text location.
//
type redirectTransport struct{}

func (redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusFound,
		Header:     http.Header{"Location": []string{"http://api.pro.coinbase.com/products"}},
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    req,
	}, nil
}

func TestRedirectToPlainTextIsRefused(t *testing.T) {
	client := newTestMarketClient(t, redirectTransport{})

	_, err := client.Products(context.Background())

	var transportErr *exchange.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.True(t, errors.Is(err, ErrInsecureScheme))
}

func TestDefaultTransportRequiresModernTLS(t *testing.T) {
	transport, err := newTLSTransport()
	require.NoError(t, err)

	require.NotNil(t, transport.TLSClientConfig)
	assert.Equal(t, uint16(tls.VersionTLS12), transport.TLSClientConfig.MinVersion)
	assert.False(t, transport.TLSClientConfig.InsecureSkipVerify)
	assert.NotNil(t, transport.TLSClientConfig.RootCAs)

	client, err := newHTTPClient(nil)
	require.NoError(t, err)

	_, ok := client.Transport.(*httpsOnly)
	assert.True(t, ok, "the default client must be wrapped so that only HTTPS is spoken")
	assert.Zero(t, client.Timeout, "timeouts are left to the caller's context")
}
