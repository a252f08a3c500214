package coinbase

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

//
// ErrInsecureScheme is returned for any request (or redirect) that is not made over HTTPS.
//
var ErrInsecureScheme = errors.New("refusing to send a request over an unencrypted connection")

//
// httpsOnly is a round tripper that never lets a plain-text request through to the transport it
// wraps. Redirects pass through it as well, so a redirect to http:// fails the same way.
//
type httpsOnly struct {
	next http.RoundTripper
}

func (o *httpsOnly) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL == nil || req.URL.Scheme != "https" {
		//
		// NOTE ~> A RoundTripper must close the request body even when it returns an error.
		//
		if req.Body != nil {
			_ = req.Body.Close()
		}

		return nil, ErrInsecureScheme
	}

	return o.next.RoundTrip(req)
}

//
// newTLSTransport builds the default connection-pooling transport. It only speaks TLS 1.2 or newer
// and verifies servers against the system's root certificates.
//
func newTLSTransport() (*http.Transport, error) {
	roots, err := x509.SystemCertPool()
	if err != nil {
		return nil, fmt.Errorf("failed to load the system root certificates: %w", err)
	}

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			RootCAs:    roots,
		},
	}, nil
}

//
// newHTTPClient builds the http.Client shared by every request a client makes. The provided round
// tripper (if any) replaces the default TLS transport but is still wrapped so that only HTTPS
// requests reach it. No client-level timeout is set: callers bound requests with their context.
//
func newHTTPClient(rt http.RoundTripper) (*http.Client, error) {
	if rt == nil {
		transport, err := newTLSTransport()
		if err != nil {
			return nil, err
		}

		rt = transport
	}

	return &http.Client{
		Transport: &httpsOnly{next: rt},
	}, nil
}
