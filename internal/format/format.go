// Package format holds the display formatting rules for backtest metrics.
// All numeric rounding is fixed-precision, half away from zero (decimal's
// StringFixed), so the same input always renders the same string. Values a
// server bug left non-finite render as zero instead of propagating an error;
// strictness around missing data lives in the ledger projection, not here.
package format

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Sharpe renders a sharpe ratio with two decimals, sign preserved.
// Sharpe(1.005) is "1.01".
func Sharpe(v float64) string {
	if !isFinite(v) {
		return "0.00"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Volatility renders an annualized volatility fraction as a percentage with
// one decimal: 0.183 becomes "18.3%".
func Volatility(v float64) string {
	if !isFinite(v) {
		return "0.0%"
	}
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// Currency renders a plain two-decimal amount, used for per-transaction
// price, value and fee cells.
func Currency(v float64) string {
	if !isFinite(v) {
		return "0.00"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// AccountValue renders the final account value with currency symbol and
// thousands grouping, for on-screen display only. CSV export sticks to the
// plain Currency rule.
func AccountValue(v float64) string {
	if !isFinite(v) {
		v = 0
	}
	cents := decimal.NewFromFloat(v).Round(2).Shift(2).IntPart()
	return money.New(cents, money.USD).Display()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
