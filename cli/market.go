package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lukehollenback/coinbase-api/exchange/coinbase"
	"github.com/lukehollenback/coinbase-api/output"
)

const defaultProduct = "BTC-USD"

func runProducts(ctx context.Context, s *session, args []string) error {
	if err := s.parse(s.flags("products"), args, false); err != nil {
		return err
	}

	products, err := s.market.Products(ctx)
	if err != nil {
		return err
	}

	if err := s.out.Header("id", "base_currency", "quote_currency", "base_min_size", "base_max_size", "quote_increment"); err != nil {
		return err
	}

	for _, p := range products {
		err := s.out.Row(
			p.ID,
			p.BaseCurrency,
			p.QuoteCurrency,
			p.BaseMinSize.String(),
			p.BaseMaxSize.String(),
			p.QuoteIncrement.String(),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func runBook(ctx context.Context, s *session, args []string) error {
	fs := s.flags("book")
	cfgProduct := fs.String("product", defaultProduct, "The product whose book to show.")
	cfgLevel := fs.String("level", "best", "How much of the book to show (best, aggregated or full).")

	if err := s.parse(fs, args, false); err != nil {
		return err
	}

	switch *cfgLevel {
	case "best":
		book, err := coinbase.Book(ctx, s.market, *cfgProduct, coinbase.Best)
		if err != nil {
			return err
		}

		return writeAggregatedBook(s.out, book)
	case "aggregated":
		book, err := coinbase.Book(ctx, s.market, *cfgProduct, coinbase.Aggregated)
		if err != nil {
			return err
		}

		return writeAggregatedBook(s.out, book)
	case "full":
		book, err := coinbase.Book(ctx, s.market, *cfgProduct, coinbase.Full)
		if err != nil {
			return err
		}

		return writeFullBook(s.out, book)
	}

	return fmt.Errorf("%w: unknown book level %q (expected best, aggregated or full)", errUsage, *cfgLevel)
}

func writeAggregatedBook(out *output.Writer, book *coinbase.AggregatedBook) error {
	if err := out.Header("sequence", "side", "price", "size", "num_orders"); err != nil {
		return err
	}

	sequence := formatUint(book.Sequence)

	for _, side := range []struct {
		name    string
		entries []coinbase.AggregatedEntry
	}{{"bid", book.Bids}, {"ask", book.Asks}} {
		for _, e := range side.entries {
			if err := out.Row(sequence, side.name, e.Price.String(), e.Size.String(), formatUint(e.NumOrders)); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeFullBook(out *output.Writer, book *coinbase.FullBook) error {
	if err := out.Header("sequence", "side", "price", "size", "order_id"); err != nil {
		return err
	}

	sequence := formatUint(book.Sequence)

	for _, side := range []struct {
		name    string
		entries []coinbase.FullEntry
	}{{"bid", book.Bids}, {"ask", book.Asks}} {
		for _, e := range side.entries {
			if err := out.Row(sequence, side.name, e.Price.String(), e.Size.String(), e.OrderID); err != nil {
				return err
			}
		}
	}

	return nil
}

func runTicker(ctx context.Context, s *session, args []string) error {
	fs := s.flags("ticker")
	cfgProduct := fs.String("product", defaultProduct, "The product whose ticker to show.")

	if err := s.parse(fs, args, false); err != nil {
		return err
	}

	ticker, err := s.market.Ticker(ctx, *cfgProduct)
	if err != nil {
		return err
	}

	return s.out.Record(
		output.Field{Label: "trade_id", Value: formatUint(ticker.TradeID)},
		output.Field{Label: "price", Value: ticker.Price.String()},
		output.Field{Label: "size", Value: ticker.Size.String()},
		output.Field{Label: "bid", Value: ticker.Bid.String()},
		output.Field{Label: "ask", Value: ticker.Ask.String()},
		output.Field{Label: "volume", Value: ticker.Volume.String()},
		output.Field{Label: "time", Value: formatTime(ticker.Time)},
	)
}

func runTrades(ctx context.Context, s *session, args []string) error {
	fs := s.flags("trades")
	cfgProduct := fs.String("product", defaultProduct, "The product whose trades to list.")

	if err := s.parse(fs, args, false); err != nil {
		return err
	}

	trades, err := s.market.Trades(ctx, *cfgProduct)
	if err != nil {
		return err
	}

	if err := s.out.Header("time", "trade_id", "side", "price", "size"); err != nil {
		return err
	}

	for _, t := range trades {
		if err := s.out.Row(formatTime(t.Time), formatUint(t.TradeID), s.side(t.Side), t.Price.String(), t.Size.String()); err != nil {
			return err
		}
	}

	return nil
}

func runCandles(ctx context.Context, s *session, args []string) error {
	fs := s.flags("candles")
	cfgProduct := fs.String("product", defaultProduct, "The product whose historic rates to list.")
	cfgGranularity := fs.String("granularity", "1h", "The width of each candle (1m, 5m, 15m, 1h, 6h or 1d).")
	cfgStart := fs.String("start", "", "The RFC 3339 start of the range. Omit both -start and -end for the latest candles.")
	cfgEnd := fs.String("end", "", "The RFC 3339 end of the range.")

	if err := s.parse(fs, args, false); err != nil {
		return err
	}

	granularity, err := coinbase.ParseGranularity(*cfgGranularity)
	if err != nil {
		return fmt.Errorf("%w: %s", errUsage, err)
	}

	var candles []coinbase.Candle

	switch {
	case *cfgStart == "" && *cfgEnd == "":
		candles, err = s.market.LatestCandles(ctx, *cfgProduct, granularity)
	case *cfgStart == "" || *cfgEnd == "":
		return fmt.Errorf("%w: -start and -end must be provided together", errUsage)
	default:
		start, err := time.Parse(time.RFC3339, *cfgStart)
		if err != nil {
			return fmt.Errorf("%w: invalid -start: %s", errUsage, err)
		}

		end, err := time.Parse(time.RFC3339, *cfgEnd)
		if err != nil {
			return fmt.Errorf("%w: invalid -end: %s", errUsage, err)
		}

		if !end.After(start) {
			return fmt.Errorf("%w: -end must be after -start", errUsage)
		}

		candles, err = s.market.Candles(ctx, *cfgProduct, start, end, granularity)
		if err != nil {
			return err
		}
	}

	if err != nil {
		return err
	}

	if err := s.out.Header("start", "low", "high", "open", "close", "volume"); err != nil {
		return err
	}

	for _, c := range candles {
		err := s.out.Row(
			c.Start.Format(time.RFC3339),
			c.Low.String(),
			c.High.String(),
			c.Open.String(),
			c.Close.String(),
			c.Volume.String(),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func runStats(ctx context.Context, s *session, args []string) error {
	fs := s.flags("stats")
	cfgProduct := fs.String("product", defaultProduct, "The product whose stats to show.")

	if err := s.parse(fs, args, false); err != nil {
		return err
	}

	stats, err := s.market.Stats(ctx, *cfgProduct)
	if err != nil {
		return err
	}

	return s.out.Record(
		output.Field{Label: "open", Value: stats.Open.String()},
		output.Field{Label: "high", Value: stats.High.String()},
		output.Field{Label: "low", Value: stats.Low.String()},
		output.Field{Label: "last", Value: stats.Last.String()},
		output.Field{Label: "volume", Value: stats.Volume.String()},
		output.Field{Label: "volume_30day", Value: stats.Volume30Day.String()},
	)
}

func runCurrencies(ctx context.Context, s *session, args []string) error {
	if err := s.parse(s.flags("currencies"), args, false); err != nil {
		return err
	}

	currencies, err := s.market.Currencies(ctx)
	if err != nil {
		return err
	}

	if err := s.out.Header("id", "name", "min_size"); err != nil {
		return err
	}

	for _, c := range currencies {
		if err := s.out.Row(c.ID, c.Name, c.MinSize.String()); err != nil {
			return err
		}
	}

	return nil
}

func runTime(ctx context.Context, s *session, args []string) error {
	if err := s.parse(s.flags("time"), args, false); err != nil {
		return err
	}

	serverTime, err := s.market.Time(ctx)
	if err != nil {
		return err
	}

	return s.out.Record(
		output.Field{Label: "iso", Value: formatTime(serverTime.ISO)},
		output.Field{Label: "epoch", Value: strconv.FormatFloat(serverTime.Epoch, 'f', -1, 64)},
	)
}

//
// side colours buys green and sells red in text output.
//
func (o *session) side(side coinbase.Side) string {
	switch side {
	case coinbase.Buy:
		return o.out.Signed(string(side), 1)
	case coinbase.Sell:
		return o.out.Signed(string(side), -1)
	}

	return string(side)
}
