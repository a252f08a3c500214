package coinbase

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type options struct {
	roundTripper http.RoundTripper
	logger       *logrus.Entry
	userAgent    string
	now          func() time.Time
}

func defaultOptions() *options {
	return &options{
		logger:    logrus.StandardLogger().WithField("component", Name),
		userAgent: DefaultUserAgent,
		now:       time.Now,
	}
}

//
// Option configures a client at construction time.
//
type Option func(*options)

//
// WithRoundTripper replaces the default TLS transport. Requests are still refused unless they use
// HTTPS.
//
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(o *options) {
		o.roundTripper = rt
	}
}

//
// WithLogger sets the logger that per-request diagnostics are written to.
//
func WithLogger(logger *logrus.Entry) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger.WithField("component", Name)
		}
	}
}

//
// WithUserAgent overrides the User-Agent header sent with every request.
//
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

//
// WithClock sets the wall clock that private requests read their signing timestamp from.
//
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
