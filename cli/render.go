package cli

import (
	"strconv"
	"time"

	"github.com/lukehollenback/coinbase-api/exchange"
	"github.com/lukehollenback/coinbase-api/exchange/coinbase"
)

func formatTime(t coinbase.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.RFC3339Nano)
}

func formatOptionalTime(t *coinbase.Time) string {
	if t == nil {
		return ""
	}

	return formatTime(*t)
}

func formatOptionalNumber(n *exchange.Number) string {
	if n == nil {
		return ""
	}

	return n.String()
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func formatBool(v bool) string {
	return strconv.FormatBool(v)
}
