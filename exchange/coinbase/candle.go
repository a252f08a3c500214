package coinbase

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/lukehollenback/coinbase-api/exchange"
)

// NOTE ~> The historic rates endpoint returns each bucket as a positional array rather than an
//  object:
//
//  [0] 1415398768, // Bucket start time (Unix seconds)
//  [1] 0.32,       // Low
//  [2] 4.2,        // High
//  [3] 0.35,       // Open
//  [4] 4.2,        // Close
//  [5] 12.3        // Volume

const (
	StartTimeIndex = 0
	LowIndex       = 1
	HighIndex      = 2
	OpenIndex      = 3
	CloseIndex     = 4
	VolumeIndex    = 5

	candleFields = 6
)

//
// Candle is one bucket of historic rates for a product. Low, High, Open and Close are in quote
// currency units and Volume in base currency units.
//
type Candle struct {
	Start  time.Time
	Low    exchange.Number
	High   exchange.Number
	Open   exchange.Number
	Close  exchange.Number
	Volume exchange.Number
}

//
// UnmarshalJSON implements the json.Unmarshaler interface so that the positional arrays sent by
// Coinbase Pro can be decoded into named fields.
//
func (o *Candle) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if len(raw) < candleFields {
		return fmt.Errorf("candle has %d fields but %d were expected", len(raw), candleFields)
	}

	//
	// Parse the bucket start time.
	//
	var start int64

	if err := json.Unmarshal(raw[StartTimeIndex], &start); err != nil {
		return fmt.Errorf("failed to decode candle start time (%s): %w", raw[StartTimeIndex], err)
	}

	o.Start = time.Unix(start, 0).UTC()

	//
	// Parse the low, high, open, close and volume values of the candle.
	//
	fields := []struct {
		name  string
		index int
		dst   *exchange.Number
	}{
		{"low", LowIndex, &o.Low},
		{"high", HighIndex, &o.High},
		{"open", OpenIndex, &o.Open},
		{"close", CloseIndex, &o.Close},
		{"volume", VolumeIndex, &o.Volume},
	}

	for _, field := range fields {
		if err := field.dst.UnmarshalJSON(raw[field.index]); err != nil {
			return fmt.Errorf("failed to decode candle %s (%s): %w", field.name, raw[field.index], err)
		}
	}

	return nil
}

//
// MarshalJSON writes the candle back out in the same positional form.
//
func (o Candle) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{o.Start.Unix(), o.Low, o.High, o.Open, o.Close, o.Volume})
}
