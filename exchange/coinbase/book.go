package coinbase

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	json "github.com/goccy/go-json"
	"github.com/lukehollenback/coinbase-api/exchange"
)

//
// AggregatedEntry is one price level of an aggregated book: every order at Price merged into a
// single Size, with NumOrders counting how many there were.
//
type AggregatedEntry struct {
	Price     exchange.Number
	Size      exchange.Number
	NumOrders uint64
}

func (o *AggregatedEntry) UnmarshalJSON(data []byte) error {
	raw, err := bookTuple(data)
	if err != nil {
		return err
	}

	if err := o.Price.UnmarshalJSON(raw[0]); err != nil {
		return fmt.Errorf("failed to decode book entry price (%s): %w", raw[0], err)
	}

	if err := o.Size.UnmarshalJSON(raw[1]); err != nil {
		return fmt.Errorf("failed to decode book entry size (%s): %w", raw[1], err)
	}

	if err := json.Unmarshal(raw[2], &o.NumOrders); err != nil {
		return fmt.Errorf("failed to decode book entry order count (%s): %w", raw[2], err)
	}

	return nil
}

//
// FullEntry is a single resting order of a full book.
//
type FullEntry struct {
	Price   exchange.Number
	Size    exchange.Number
	OrderID string
}

func (o *FullEntry) UnmarshalJSON(data []byte) error {
	raw, err := bookTuple(data)
	if err != nil {
		return err
	}

	if err := o.Price.UnmarshalJSON(raw[0]); err != nil {
		return fmt.Errorf("failed to decode book entry price (%s): %w", raw[0], err)
	}

	if err := o.Size.UnmarshalJSON(raw[1]); err != nil {
		return fmt.Errorf("failed to decode book entry size (%s): %w", raw[1], err)
	}

	if err := json.Unmarshal(raw[2], &o.OrderID); err != nil {
		return fmt.Errorf("failed to decode book entry order id (%s): %w", raw[2], err)
	}

	return nil
}

//
// bookTuple splits a (price, size, extra) array into its three raw elements.
//
func bookTuple(data []byte) ([]json.RawMessage, error) {
	var raw []json.RawMessage

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if len(raw) != 3 {
		return nil, fmt.Errorf("book entry has %d elements but 3 were expected", len(raw))
	}

	return raw, nil
}

//
// AggregatedBook is the order book returned for the Best and Aggregated levels. Bids are sorted
// from the highest price down and asks from the lowest price up.
//
type AggregatedBook struct {
	Sequence uint64            `json:"sequence"`
	Bids     []AggregatedEntry `json:"bids"`
	Asks     []AggregatedEntry `json:"asks"`
}

//
// FullBook is the non aggregated order book returned for the Full level.
//
type FullBook struct {
	Sequence uint64      `json:"sequence"`
	Bids     []FullEntry `json:"bids"`
	Asks     []FullEntry `json:"asks"`
}

//
// ErrUnknownBookLevel is returned by Book for any level other than Best, Aggregated or Full.
//
var ErrUnknownBookLevel = errors.New("unknown order book level")

//
// BookLevel selects how much of the order book to retrieve and, through its type parameter, which
// book shape the response decodes into. Best, Aggregated and Full are the only levels.
//
type BookLevel[B AggregatedBook | FullBook] interface {
	decodesInto(*B)
}

type bestLevel struct{}

func (bestLevel) decodesInto(*AggregatedBook) {}

type aggregatedLevel struct{}

func (aggregatedLevel) decodesInto(*AggregatedBook) {}

type fullLevel struct{}

func (fullLevel) decodesInto(*FullBook) {}

var (
	// Best retrieves only the best bid and ask.
	Best BookLevel[AggregatedBook] = bestLevel{}

	// Aggregated retrieves the top 50 bids and asks, aggregated by price.
	Aggregated BookLevel[AggregatedBook] = aggregatedLevel{}

	// Full retrieves the entire book, one entry per resting order.
	Full BookLevel[FullBook] = fullLevel{}
)

//
// bookQuery maps a level to the query string that selects it on the wire. Only the three concrete
// level types are recognized, so a value that merely satisfies BookLevel by embedding cannot choose
// its own query.
//
func bookQuery(level any) (string, error) {
	switch level.(type) {
	case bestLevel:
		return "level=1", nil
	case aggregatedLevel:
		return "level=2", nil
	case fullLevel:
		return "level=3", nil
	}

	return "", fmt.Errorf("%w: %T", ErrUnknownBookLevel, level)
}

//
// Book retrieves the order book of a product at the provided level. The type of the result follows
// from the level: Best and Aggregated yield an *AggregatedBook, Full a *FullBook.
//
//  top, err := coinbase.Book(ctx, client, "BTC-USD", coinbase.Best)
//  full, err := coinbase.Book(ctx, client, "BTC-USD", coinbase.Full)
//
func Book[B AggregatedBook | FullBook](
	ctx context.Context,
	client *MarketDataClient,
	productID string,
	level BookLevel[B],
) (*B, error) {
	query, err := bookQuery(level)
	if err != nil {
		return nil, err
	}

	return fetchOne[B](ctx, client.r, "/products/"+url.PathEscape(productID)+"/book?"+query, nil)
}
