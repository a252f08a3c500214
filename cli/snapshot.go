package cli

import (
	"context"
	"fmt"

	"github.com/lukehollenback/coinbase-api/constants"
	"github.com/lukehollenback/coinbase-api/exchange"
	"github.com/lukehollenback/coinbase-api/exchange/coinbase"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

//
// snapshotConcurrency caps how many requests a snapshot has in flight at once.
//
const snapshotConcurrency = 4

//
// Summary is a point-in-time view of one product built from its ticker, its 24 hour stats and the
// top of its book.
//
type Summary struct {
	ProductID string
	Price     decimal.Decimal
	Bid       decimal.Decimal
	Ask       decimal.Decimal
	Spread    decimal.Decimal
	Mid       decimal.Decimal
	Open      decimal.Decimal
	Last      decimal.Decimal
	Change    decimal.Decimal // Percent change from Open to Last.
	Volume    decimal.Decimal
}

type snapshotParts struct {
	ticker *coinbase.Ticker
	stats  *coinbase.Stats
	book   *coinbase.AggregatedBook
}

func runSnapshot(ctx context.Context, s *session, args []string) error {
	fs := s.flags("snapshot")

	if err := s.parse(fs, args, true); err != nil {
		return err
	}

	productIDs := fs.Args()
	if len(productIDs) == 0 {
		productIDs = []string{defaultProduct}
	}

	summaries, err := snapshot(ctx, s.market, productIDs, s.log)
	if err != nil {
		return err
	}

	if err := s.out.Header("product_id", "price", "bid", "ask", "spread", "mid", "open", "last", "change_pct", "volume"); err != nil {
		return err
	}

	for _, sum := range summaries {
		err := s.out.Row(
			sum.ProductID,
			sum.Price.String(),
			sum.Bid.String(),
			sum.Ask.String(),
			sum.Spread.String(),
			sum.Mid.String(),
			sum.Open.String(),
			sum.Last.String(),
			s.out.Signed(sum.Change.StringFixed(2), sum.Change.Sign()),
			sum.Volume.String(),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

//
// snapshot fetches the ticker, stats and best bid/ask of every product concurrently and summarizes
// them in the order the products were provided. The first failure cancels the remaining requests.
//
func snapshot(
	ctx context.Context,
	client *coinbase.MarketDataClient,
	productIDs []string,
	logger *logrus.Entry,
) ([]Summary, error) {
	parts := make([]snapshotParts, len(productIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(snapshotConcurrency)

	for i, productID := range productIDs {
		productID := productID
		p := &parts[i]

		g.Go(func() (err error) {
			p.ticker, err = client.Ticker(gctx, productID)

			return err
		})

		g.Go(func() (err error) {
			p.stats, err = client.Stats(gctx, productID)

			return err
		})

		g.Go(func() (err error) {
			p.book, err = coinbase.Book(gctx, client, productID, coinbase.Best)

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summaries := make([]Summary, len(productIDs))

	for i, productID := range productIDs {
		summary, err := summarize(productID, parts[i].ticker, parts[i].stats, parts[i].book)
		if err != nil {
			return nil, err
		}

		logger.WithFields(logrus.Fields{
			"product_id": productID,
			"spread":     summary.Spread.String(),
		}).Debug("Summarized product.")

		summaries[i] = summary
	}

	return summaries, nil
}

//
// summarize combines the three responses of a product. The book's best bid and ask are preferred
// over the ticker's, and the ticker's price stands in for the stats' last price when it is missing.
//
func summarize(
	productID string,
	ticker *coinbase.Ticker,
	stats *coinbase.Stats,
	book *coinbase.AggregatedBook,
) (Summary, error) {
	var err error

	sum := Summary{ProductID: productID}

	decode := func(label string, n exchange.Number) decimal.Decimal {
		if err != nil {
			return decimal.Zero
		}

		d, decodeErr := n.Decimal()
		if decodeErr != nil {
			err = fmt.Errorf("%s has an invalid %s: %w", productID, label, decodeErr)
		}

		return d
	}

	bid, ask := ticker.Bid, ticker.Ask
	if len(book.Bids) > 0 {
		bid = book.Bids[0].Price
	}

	if len(book.Asks) > 0 {
		ask = book.Asks[0].Price
	}

	last := stats.Last
	if last.IsZero() {
		last = ticker.Price
	}

	sum.Price = decode("price", ticker.Price)
	sum.Bid = decode("bid", bid)
	sum.Ask = decode("ask", ask)
	sum.Open = decode("open", stats.Open)
	sum.Last = decode("last price", last)
	sum.Volume = decode("volume", stats.Volume)

	if err != nil {
		return Summary{}, err
	}

	sum.Spread = sum.Ask.Sub(sum.Bid)
	sum.Mid = sum.Ask.Add(sum.Bid).Div(constants.Two())

	if !sum.Open.IsZero() {
		sum.Change = sum.Last.Sub(sum.Open).Div(sum.Open).Mul(constants.Hundred())
	}

	return sum, nil
}
