package server

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/myfinances/internal/report"
)

var emptyFilter = report.Filter{}

func decimalFromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
