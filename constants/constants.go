package constants

import (
	"github.com/shopspring/decimal"
)

const (
	AppName        = "goose-cb"
	EnvPrefix      = "COINBASE"
	DefaultEnvFile = ".env"
	LabelFmt       = "%-17s "
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

func Two() decimal.Decimal {
	return two
}

func Hundred() decimal.Decimal {
	return hundred
}
