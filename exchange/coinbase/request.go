package coinbase

import (
	"context"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/lukehollenback/coinbase-api/exchange"
	"github.com/sirupsen/logrus"
)

//
// authorizer decorates an outgoing request with authentication headers. It runs after the request
// URL is final, so it can sign exactly what will be sent.
//
type authorizer func(req *http.Request)

//
// requester holds what every request shares: the pooled HTTP client, the base URL, and the logger.
// It carries no per-request state and is safe for concurrent use.
//
type requester struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *logrus.Entry
}

func newRequester(env Environment, opts *options) (*requester, error) {
	baseURL, err := env.BaseURL()
	if err != nil {
		return nil, err
	}

	httpClient, err := newHTTPClient(opts.roundTripper)
	if err != nil {
		return nil, err
	}

	return &requester{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  opts.userAgent,
		logger:     opts.logger.WithField("environment", env.String()),
	}, nil
}

//
// do issues a GET for the provided path (which includes any query string) and returns the full
// response body and status code. Any failure to obtain a body is a TransportError.
//
func (o *requester) do(ctx context.Context, path string, authorize authorizer) ([]byte, int, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+path, nil)
	if err != nil {
		return nil, 0, &exchange.TransportError{Method: http.MethodGet, Path: path, Err: err}
	}

	req.Header.Set("User-Agent", o.userAgent)
	req.Header.Set("Accept", "application/json")

	if authorize != nil {
		authorize(req)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		o.logger.WithError(err).WithFields(logrus.Fields{
			"method": http.MethodGet,
			"path":   path,
		}).Warn("Request failed.")

		return nil, 0, &exchange.TransportError{Method: http.MethodGet, Path: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		o.logger.WithError(err).WithFields(logrus.Fields{
			"method": http.MethodGet,
			"path":   path,
			"status": resp.StatusCode,
		}).Warn("Failed to read response body.")

		return nil, resp.StatusCode, &exchange.TransportError{Method: http.MethodGet, Path: path, Err: err}
	}

	o.logger.WithFields(logrus.Fields{
		"method":  http.MethodGet,
		"path":    path,
		"status":  resp.StatusCode,
		"bytes":   len(body),
		"elapsed": time.Since(start),
	}).Debug("Request completed.")

	return body, resp.StatusCode, nil
}

//
// decode reads a response body into the caller's expected type. A non-2xx status is a decode
// failure whatever the body holds.
//
func decode[T any](body []byte, statusCode int) (T, error) {
	var result T

	if !exchange.IsSuccess(statusCode) {
		return result, exchange.NewDecodeError(exchange.NewHTTPError(statusCode), statusCode, body)
	}

	if err := json.Unmarshal(body, &result); err != nil {
		var zero T

		return zero, exchange.NewDecodeError(err, statusCode, body)
	}

	return result, nil
}

//
// fetch is the whole pipeline shared by every endpoint: request, read, decode.
//
func fetch[T any](ctx context.Context, r *requester, path string, authorize authorizer) (T, error) {
	body, statusCode, err := r.do(ctx, path, authorize)
	if err != nil {
		var zero T

		return zero, err
	}

	result, err := decode[T](body, statusCode)
	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"path":   path,
			"status": statusCode,
		}).Warn("Failed to decode response.")
	}

	return result, err
}

//
// fetchOne is fetch for endpoints that return a single record.
//
func fetchOne[T any](ctx context.Context, r *requester, path string, authorize authorizer) (*T, error) {
	result, err := fetch[T](ctx, r, path, authorize)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
