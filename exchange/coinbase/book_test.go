package coinbase

import (
	"context"
	"net/http"
	"testing"

	"github.com/lukehollenback/coinbase-api/exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aggregatedBookBody = `{"sequence":3,"bids":[["295.96","4.39088265",2],["295.95","1.1",1]],"asks":[["295.97","25.23542881",12]]}`
	fullBookBody       = `{"sequence":3,"bids":[["295.96","0.05088265","3b0f1225-7f84-490b-a29f-0faef9de823a"]],"asks":[["295.97","5.72036512","da863862-25f4-4868-ac41-005d11ab0a5f"]]}`
)

func TestBookLevelQueries(t *testing.T) {
	for level, want := range map[any]string{Best: "level=1", Aggregated: "level=2", Full: "level=3"} {
		query, err := bookQuery(level)
		require.NoError(t, err)
		assert.Equal(t, want, query)
	}
}

//
// shadowLevel satisfies BookLevel by embedding a real level and tries to pick its own query.
//
type shadowLevel struct {
	BookLevel[AggregatedBook]
}

func (shadowLevel) Query() string { return "level=7" }

func TestOnlyThreeBookLevelsCanBeRequested(t *testing.T) {
	rt := newStubTransport(http.StatusOK, aggregatedBookBody)
	client := newTestMarketClient(t, rt)

	for _, level := range []BookLevel[AggregatedBook]{shadowLevel{Best}, shadowLevel{Aggregated}, shadowLevel{}} {
		book, err := Book(context.Background(), client, "BTC-USD", level)

		assert.Nil(t, book)
		assert.ErrorIs(t, err, ErrUnknownBookLevel)
	}

	assert.Zero(t, rt.count(), "no request may be sent for an unknown level")

	_, err := bookQuery(nil)
	assert.ErrorIs(t, err, ErrUnknownBookLevel)
}

func TestBestDecodesIntoAggregatedBook(t *testing.T) {
	rt := newStubTransport(http.StatusOK, aggregatedBookBody)
	client := newTestMarketClient(t, rt)

	book, err := Book(context.Background(), client, "BTC-USD", Best)
	require.NoError(t, err)

	var _ *AggregatedBook = book

	assert.Equal(t, "/products/BTC-USD/book?level=1", rt.last(t).URL.RequestURI())
	assert.Equal(t, uint64(3), book.Sequence)
	require.Len(t, book.Bids, 2)
	assert.Equal(t, "295.96", book.Bids[0].Price.String())
	assert.Equal(t, "4.39088265", book.Bids[0].Size.String())
	assert.Equal(t, uint64(2), book.Bids[0].NumOrders)
	require.Len(t, book.Asks, 1)
	assert.Equal(t, uint64(12), book.Asks[0].NumOrders)
}

func TestAggregatedDecodesIntoAggregatedBook(t *testing.T) {
	rt := newStubTransport(http.StatusOK, aggregatedBookBody)
	client := newTestMarketClient(t, rt)

	book, err := Book(context.Background(), client, "ETH-USD", Aggregated)
	require.NoError(t, err)

	var _ *AggregatedBook = book

	assert.Equal(t, "/products/ETH-USD/book?level=2", rt.last(t).URL.RequestURI())
	assert.Len(t, book.Bids, 2)
}

func TestFullDecodesIntoFullBook(t *testing.T) {
	rt := newStubTransport(http.StatusOK, fullBookBody)
	client := newTestMarketClient(t, rt)

	book, err := Book(context.Background(), client, "BTC-USD", Full)
	require.NoError(t, err)

	var _ *FullBook = book

	assert.Equal(t, "/products/BTC-USD/book?level=3", rt.last(t).URL.RequestURI())
	require.Len(t, book.Bids, 1)
	assert.Equal(t, "3b0f1225-7f84-490b-a29f-0faef9de823a", book.Bids[0].OrderID)
	assert.Equal(t, "0.05088265", book.Bids[0].Size.String())
	assert.Equal(t, "da863862-25f4-4868-ac41-005d11ab0a5f", book.Asks[0].OrderID)
}

func TestFullBookPayloadDoesNotFitAggregatedBook(t *testing.T) {
	rt := newStubTransport(http.StatusOK, fullBookBody)
	client := newTestMarketClient(t, rt)

	_, err := Book(context.Background(), client, "BTC-USD", Aggregated)

	var decodeErr *exchange.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, fullBookBody, decodeErr.Text)
}

func TestMalformedBookEntry(t *testing.T) {
	rt := newStubTransport(http.StatusOK, `{"sequence":1,"bids":[["1","2"]],"asks":[]}`)
	client := newTestMarketClient(t, rt)

	_, err := Book(context.Background(), client, "BTC-USD", Best)

	var decodeErr *exchange.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}
