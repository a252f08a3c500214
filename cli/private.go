package cli

import (
	"context"
	"fmt"

	"github.com/lukehollenback/coinbase-api/exchange/coinbase"
	"github.com/lukehollenback/coinbase-api/output"
)

func runAccounts(ctx context.Context, s *session, args []string) error {
	if err := s.parse(s.flags("accounts"), args, false); err != nil {
		return err
	}

	accounts, err := s.private.Accounts(ctx)
	if err != nil {
		return err
	}

	if err := s.out.Header("id", "currency", "balance", "available", "hold", "profile_id"); err != nil {
		return err
	}

	for _, a := range accounts {
		if err := s.out.Row(a.ID, a.Currency, a.Balance.String(), a.Available.String(), a.Hold.String(), a.ProfileID); err != nil {
			return err
		}
	}

	return nil
}

func runAccount(ctx context.Context, s *session, args []string) error {
	fs := s.flags("account")
	cfgID := fs.String("id", "", "The id of the account to show.")

	if err := s.parse(fs, args, false); err != nil {
		return err
	}

	if err := requireUUID("id", *cfgID); err != nil {
		return err
	}

	account, err := s.private.Account(ctx, *cfgID)
	if err != nil {
		return err
	}

	return s.out.Record(
		output.Field{Label: "id", Value: account.ID},
		output.Field{Label: "currency", Value: account.Currency},
		output.Field{Label: "balance", Value: account.Balance.String()},
		output.Field{Label: "available", Value: account.Available.String()},
		output.Field{Label: "hold", Value: account.Hold.String()},
		output.Field{Label: "profile_id", Value: account.ProfileID},
	)
}

func runLedger(ctx context.Context, s *session, args []string) error {
	fs := s.flags("ledger")
	cfgAccount := fs.String("account", "", "The id of the account whose ledger to list.")

	if err := s.parse(fs, args, false); err != nil {
		return err
	}

	if err := requireUUID("account", *cfgAccount); err != nil {
		return err
	}

	activities, err := s.private.Ledger(ctx, *cfgAccount)
	if err != nil {
		return err
	}

	if err := s.out.Header("id", "created_at", "type", "amount", "balance", "order_id", "trade_id", "transfer_id"); err != nil {
		return err
	}

	for _, a := range activities {
		err := s.out.Row(
			formatUint(a.ID),
			formatTime(a.CreatedAt),
			string(a.Type),
			a.Amount.String(),
			a.Balance.String(),
			a.Details.OrderID,
			a.Details.TradeID,
			a.Details.TransferID,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func runHolds(ctx context.Context, s *session, args []string) error {
	fs := s.flags("holds")
	cfgAccount := fs.String("account", "", "The id of the account whose holds to list.")

	if err := s.parse(fs, args, false); err != nil {
		return err
	}

	if err := requireUUID("account", *cfgAccount); err != nil {
		return err
	}

	holds, err := s.private.Holds(ctx, *cfgAccount)
	if err != nil {
		return err
	}

	if err := s.out.Header("id", "created_at", "updated_at", "type", "amount", "ref"); err != nil {
		return err
	}

	for _, h := range holds {
		err := s.out.Row(
			h.ID,
			formatTime(h.CreatedAt),
			formatOptionalTime(h.UpdatedAt),
			string(h.Type),
			h.Amount.String(),
			h.Ref,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func runOrders(ctx context.Context, s *session, args []string) error {
	fs := s.flags("orders")
	cfgProduct := fs.String("product", "", "Only list orders for this product.")

	if err := s.parse(fs, args, false); err != nil {
		return err
	}

	var (
		orders []coinbase.Order
		err    error
	)

	if *cfgProduct == "" {
		orders, err = s.private.Orders(ctx)
	} else {
		orders, err = s.private.OrdersForProduct(ctx, *cfgProduct)
	}

	if err != nil {
		return err
	}

	if err := s.out.Header("id", "product_id", "side", "type", "price", "size", "funds", "filled_size", "status", "created_at"); err != nil {
		return err
	}

	for _, o := range orders {
		err := s.out.Row(
			o.ID,
			o.ProductID,
			s.side(o.Side),
			string(o.Type),
			formatOptionalNumber(o.Price),
			formatOptionalNumber(o.Size),
			formatOptionalNumber(o.Funds),
			o.FilledSize.String(),
			o.Status,
			formatTime(o.CreatedAt),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func runOrder(ctx context.Context, s *session, args []string) error {
	fs := s.flags("order")
	cfgID := fs.String("id", "", "The id of the order to show.")

	if err := s.parse(fs, args, false); err != nil {
		return err
	}

	if err := requireUUID("id", *cfgID); err != nil {
		return err
	}

	order, err := s.private.Order(ctx, *cfgID)
	if err != nil {
		return err
	}

	return s.out.Record(
		output.Field{Label: "id", Value: order.ID},
		output.Field{Label: "product_id", Value: order.ProductID},
		output.Field{Label: "side", Value: s.side(order.Side)},
		output.Field{Label: "type", Value: string(order.Type)},
		output.Field{Label: "price", Value: formatOptionalNumber(order.Price)},
		output.Field{Label: "size", Value: formatOptionalNumber(order.Size)},
		output.Field{Label: "funds", Value: formatOptionalNumber(order.Funds)},
		output.Field{Label: "specified_funds", Value: formatOptionalNumber(order.SpecifiedFunds)},
		output.Field{Label: "time_in_force", Value: order.TimeInForce},
		output.Field{Label: "post_only", Value: formatBool(order.PostOnly)},
		output.Field{Label: "status", Value: order.Status},
		output.Field{Label: "settled", Value: formatBool(order.Settled)},
		output.Field{Label: "filled_size", Value: order.FilledSize.String()},
		output.Field{Label: "executed_value", Value: order.ExecutedValue.String()},
		output.Field{Label: "fill_fees", Value: order.FillFees.String()},
		output.Field{Label: "created_at", Value: formatTime(order.CreatedAt)},
		output.Field{Label: "done_at", Value: formatOptionalTime(order.DoneAt)},
		output.Field{Label: "done_reason", Value: order.DoneReason},
	)
}

func runFills(ctx context.Context, s *session, args []string) error {
	fs := s.flags("fills")
	cfgProduct := fs.String("product", "", "Only list fills for this product.")
	cfgOrder := fs.String("order", "", "Only list fills of this order.")

	if err := s.parse(fs, args, false); err != nil {
		return err
	}

	var (
		fills []coinbase.Fill
		err   error
	)

	switch {
	case *cfgProduct != "" && *cfgOrder != "":
		return fmt.Errorf("%w: -product and -order cannot be combined", errUsage)
	case *cfgOrder != "":
		if err := requireUUID("order", *cfgOrder); err != nil {
			return err
		}

		fills, err = s.private.FillsForOrder(ctx, *cfgOrder)
	case *cfgProduct != "":
		fills, err = s.private.FillsForProduct(ctx, *cfgProduct)
	default:
		fills, err = s.private.Fills(ctx)
	}

	if err != nil {
		return err
	}

	if err := s.out.Header("trade_id", "product_id", "order_id", "side", "price", "size", "fee", "liquidity", "settled", "created_at"); err != nil {
		return err
	}

	for _, f := range fills {
		err := s.out.Row(
			formatUint(f.TradeID),
			f.ProductID,
			f.OrderID,
			s.side(f.Side),
			f.Price.String(),
			f.Size.String(),
			f.Fee.String(),
			f.Liquidity,
			formatBool(f.Settled),
			formatTime(f.CreatedAt),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func runTrailingVolume(ctx context.Context, s *session, args []string) error {
	if err := s.parse(s.flags("trailing-volume"), args, false); err != nil {
		return err
	}

	volumes, err := s.private.TrailingVolume(ctx)
	if err != nil {
		return err
	}

	if err := s.out.Header("product_id", "exchange_volume", "volume", "recorded_at"); err != nil {
		return err
	}

	for _, v := range volumes {
		if err := s.out.Row(v.ProductID, v.ExchangeVolume.String(), v.Volume.String(), formatTime(v.RecordedAt)); err != nil {
			return err
		}
	}

	return nil
}
