package coinbase

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

//
// ErrInvalidGranularity is returned for a candle width Coinbase Pro does not offer.
//
var ErrInvalidGranularity = errors.New("unsupported granularity")

//
// Granularity is an enum that represents the candle widths Coinbase Pro accepts on its historic
// rates endpoint. Its value is the width in seconds, which is also what goes on the wire.
//
type Granularity int

const (
	OneMinute      Granularity = 60
	FiveMinutes    Granularity = 300
	FifteenMinutes Granularity = 900
	OneHour        Granularity = 3600
	SixHours       Granularity = 21600
	OneDay         Granularity = 86400
)

//
// Granularities lists every supported granularity from narrowest to widest.
//
var Granularities = []Granularity{OneMinute, FiveMinutes, FifteenMinutes, OneHour, SixHours, OneDay}

//
// ParseGranularity accepts either a width in seconds ("300") or a shorthand ("5m").
//
func ParseGranularity(text string) (Granularity, error) {
	for _, g := range Granularities {
		if text == g.String() || text == g.wire() {
			return g, nil
		}
	}

	return 0, fmt.Errorf("%w %q (expected one of 1m, 5m, 15m, 1h, 6h, 1d)", ErrInvalidGranularity, text)
}

//
// Valid reports whether the value is one of the defined granularities.
//
func (o Granularity) Valid() bool {
	for _, g := range Granularities {
		if o == g {
			return true
		}
	}

	return false
}

//
// Duration returns the width of one candle.
//
func (o Granularity) Duration() time.Duration {
	return time.Duration(o) * time.Second
}

func (o Granularity) String() string {
	switch o {
	case OneMinute:
		return "1m"
	case FiveMinutes:
		return "5m"
	case FifteenMinutes:
		return "15m"
	case OneHour:
		return "1h"
	case SixHours:
		return "6h"
	case OneDay:
		return "1d"
	}

	return fmt.Sprintf("%ds", int(o))
}

func (o Granularity) wire() string {
	return strconv.Itoa(int(o))
}
