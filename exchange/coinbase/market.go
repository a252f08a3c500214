package coinbase

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

//
// candleTimeLayout is RFC 3339 with exactly millisecond precision, as the historic rates endpoint
// expects its start and end parameters.
//
const candleTimeLayout = "2006-01-02T15:04:05.000Z07:00"

//
// MarketDataClient is the HTTP client for the unauthenticated market data API. It holds no
// per-request state and is safe for concurrent use.
//
type MarketDataClient struct {
	r *requester
}

//
// NewMarketDataClient creates a new client for the provided environment. It fails if the
// environment is unknown or if the TLS transport cannot be built.
//
func NewMarketDataClient(env Environment, opts ...Option) (*MarketDataClient, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	r, err := newRequester(env, o)
	if err != nil {
		return nil, err
	}

	return &MarketDataClient{r: r}, nil
}

//
// Products retrieves the currency pairs available for trading.
//
func (o *MarketDataClient) Products(ctx context.Context) ([]Product, error) {
	return fetch[[]Product](ctx, o.r, "/products", nil)
}

//
// Ticker retrieves the last trade (tick), best bid/ask and 24 hour volume of a product.
//
func (o *MarketDataClient) Ticker(ctx context.Context, productID string) (*Ticker, error) {
	return fetchOne[Ticker](ctx, o.r, productPath(productID, "/ticker"), nil)
}

//
// Trades lists the latest trades of a product.
//
func (o *MarketDataClient) Trades(ctx context.Context, productID string) ([]Trade, error) {
	return fetch[[]Trade](ctx, o.r, productPath(productID, "/trades"), nil)
}

//
// Candles retrieves historic rates for a product between start and end. The exchange rejects
// requests that would produce more than 300 candles.
//
func (o *MarketDataClient) Candles(
	ctx context.Context,
	productID string,
	start time.Time,
	end time.Time,
	granularity Granularity,
) ([]Candle, error) {
	if !granularity.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidGranularity, granularity)
	}

	path := productPath(productID, "/candles") +
		"?start=" + start.UTC().Format(candleTimeLayout) +
		"&end=" + end.UTC().Format(candleTimeLayout) +
		"&granularity=" + granularity.wire()

	return fetch[[]Candle](ctx, o.r, path, nil)
}

//
// LatestCandles retrieves the latest 300 candles of a product.
//
func (o *MarketDataClient) LatestCandles(ctx context.Context, productID string, granularity Granularity) ([]Candle, error) {
	if !granularity.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidGranularity, granularity)
	}

	return fetch[[]Candle](ctx, o.r, productPath(productID, "/candles")+"?granularity="+granularity.wire(), nil)
}

//
// Stats retrieves the 24 hour stats of a product.
//
func (o *MarketDataClient) Stats(ctx context.Context, productID string) (*Stats, error) {
	return fetchOne[Stats](ctx, o.r, productPath(productID, "/stats"), nil)
}

//
// Currencies lists known currencies.
//
func (o *MarketDataClient) Currencies(ctx context.Context) ([]Currency, error) {
	return fetch[[]Currency](ctx, o.r, "/currencies", nil)
}

//
// Time retrieves the API server's time.
//
func (o *MarketDataClient) Time(ctx context.Context) (*ServerTime, error) {
	return fetchOne[ServerTime](ctx, o.r, "/time", nil)
}

func productPath(productID string, suffix string) string {
	return "/products/" + url.PathEscape(productID) + suffix
}
