package coinbase

import (
	"fmt"

	json "github.com/goccy/go-json"
)

//
// Side is the side of an order or trade. For trades it is the maker's side: buy indicates a
// down-tick and sell an up-tick.
//
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

func (o *Side) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, o, "side", Buy, Sell)
}

//
// OrderType is the type of an order.
//
type OrderType string

const (
	Limit  OrderType = "limit"
	Market OrderType = "market"
)

func (o *OrderType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, o, "order type", Limit, Market)
}

//
// HoldType is what placed a hold on an account's funds.
//
type HoldType string

const (
	OrderHold    HoldType = "order"
	TransferHold HoldType = "transfer"
)

func (o *HoldType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, o, "hold type", OrderHold, TransferHold)
}

//
// ActivityType is what caused a ledger entry.
//
type ActivityType string

const (
	TransferActivity ActivityType = "transfer"
	MatchActivity    ActivityType = "match"
	FeeActivity      ActivityType = "fee"
	RebateActivity   ActivityType = "rebate"
)

func (o *ActivityType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, o, "activity type", TransferActivity, MatchActivity, FeeActivity, RebateActivity)
}

//
// unmarshalEnum decodes a JSON string into one of a closed set of values. Anything outside the set
// is a decode failure rather than a silently accepted unknown value.
//
func unmarshalEnum[T ~string](data []byte, dst *T, kind string, allowed ...T) error {
	var raw string

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("cannot decode %s: %w", kind, err)
	}

	for _, v := range allowed {
		if T(raw) == v {
			*dst = v

			return nil
		}
	}

	return fmt.Errorf("unknown %s %q", kind, raw)
}
