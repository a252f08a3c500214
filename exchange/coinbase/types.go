package coinbase

import (
	"github.com/lukehollenback/coinbase-api/exchange"
)

//
// Product describes a currency pair that can be traded.
//
type Product struct {
	ID             string          `json:"id"`
	BaseCurrency   string          `json:"base_currency"`
	QuoteCurrency  string          `json:"quote_currency"`
	BaseMinSize    exchange.Number `json:"base_min_size"`
	BaseMaxSize    exchange.Number `json:"base_max_size"`
	QuoteIncrement exchange.Number `json:"quote_increment"`
}

//
// Ticker holds the last trade (tick), the best bid and ask, and the 24 hour volume of a product.
//
type Ticker struct {
	TradeID uint64          `json:"trade_id"`
	Price   exchange.Number `json:"price"`
	Size    exchange.Number `json:"size"`
	Bid     exchange.Number `json:"bid"`
	Ask     exchange.Number `json:"ask"`
	Volume  exchange.Number `json:"volume"`
	Time    Time            `json:"time"`
}

//
// Trade is a single match on a product.
//
type Trade struct {
	Time    Time            `json:"time"`
	TradeID uint64          `json:"trade_id"`
	Price   exchange.Number `json:"price"`
	Size    exchange.Number `json:"size"`
	Side    Side            `json:"side"`
}

//
// Stats are the 24 hour trading stats of a product. Volume is in base currency units; Open, High,
// Low and Last are in quote currency units. Last and Volume30Day are empty when not sent.
//
type Stats struct {
	Open        exchange.Number `json:"open"`
	High        exchange.Number `json:"high"`
	Low         exchange.Number `json:"low"`
	Volume      exchange.Number `json:"volume"`
	Last        exchange.Number `json:"last"`
	Volume30Day exchange.Number `json:"volume_30day"`
}

type Currency struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	MinSize exchange.Number `json:"min_size"`
}

//
// ServerTime is the API server's clock.
//
type ServerTime struct {
	ISO   Time    `json:"iso"`
	Epoch float64 `json:"epoch"`
}

//
// Account is one currency balance of a trading profile.
//
type Account struct {
	ID        string          `json:"id"`
	Currency  string          `json:"currency"`
	Balance   exchange.Number `json:"balance"`
	Available exchange.Number `json:"available"`
	Hold      exchange.Number `json:"hold"`
	ProfileID string          `json:"profile_id"`
}

//
// ActivityDetails identifies what a ledger entry refers to. Which fields are set depends on the
// entry's type.
//
type ActivityDetails struct {
	OrderID      string `json:"order_id,omitempty"`
	TradeID      string `json:"trade_id,omitempty"`
	ProductID    string `json:"product_id,omitempty"`
	TransferID   string `json:"transfer_id,omitempty"`
	TransferType string `json:"transfer_type,omitempty"`
}

//
// Activity is one entry of an account's ledger.
//
type Activity struct {
	ID        uint64          `json:"id"`
	CreatedAt Time            `json:"created_at"`
	Amount    exchange.Number `json:"amount"`
	Balance   exchange.Number `json:"balance"`
	Type      ActivityType    `json:"type"`
	Details   ActivityDetails `json:"details"`
}

//
// Hold is an amount of an account's funds reserved by an open order or a pending transfer. Ref is
// the id of that order or transfer.
//
type Hold struct {
	ID        string          `json:"id"`
	CreatedAt Time            `json:"created_at"`
	UpdatedAt *Time           `json:"updated_at,omitempty"`
	Amount    exchange.Number `json:"amount"`
	Type      HoldType        `json:"type"`
	Ref       string          `json:"ref"`
}

//
// Order is an order as reported by the exchange. Price and Size are nil for market orders placed
// by funds, and Funds/SpecifiedFunds are nil for orders placed by size.
//
type Order struct {
	ID             string           `json:"id"`
	Price          *exchange.Number `json:"price,omitempty"`
	Size           *exchange.Number `json:"size,omitempty"`
	ProductID      string           `json:"product_id"`
	Side           Side             `json:"side"`
	STP            string           `json:"stp,omitempty"`
	Funds          *exchange.Number `json:"funds,omitempty"`
	SpecifiedFunds *exchange.Number `json:"specified_funds,omitempty"`
	Type           OrderType        `json:"type"`
	TimeInForce    string           `json:"time_in_force,omitempty"`
	PostOnly       bool             `json:"post_only"`
	CreatedAt      Time             `json:"created_at"`
	DoneAt         *Time            `json:"done_at,omitempty"`
	DoneReason     string           `json:"done_reason,omitempty"`
	FillFees       exchange.Number  `json:"fill_fees"`
	FilledSize     exchange.Number  `json:"filled_size"`
	ExecutedValue  exchange.Number  `json:"executed_value"`
	Status         string           `json:"status"`
	Settled        bool             `json:"settled"`
}

//
// Fill is a partial or complete execution of one of the caller's orders.
//
type Fill struct {
	TradeID   uint64          `json:"trade_id"`
	ProductID string          `json:"product_id"`
	Price     exchange.Number `json:"price"`
	Size      exchange.Number `json:"size"`
	OrderID   string          `json:"order_id"`
	CreatedAt Time            `json:"created_at"`
	Liquidity string          `json:"liquidity"`
	Fee       exchange.Number `json:"fee"`
	Settled   bool            `json:"settled"`
	Side      Side            `json:"side"`
}

//
// TrailingVolume is the caller's 30 day trailing volume on one product.
//
type TrailingVolume struct {
	ProductID      string          `json:"product_id"`
	ExchangeVolume exchange.Number `json:"exchange_volume"`
	Volume         exchange.Number `json:"volume"`
	RecordedAt     Time            `json:"recorded_at"`
}
