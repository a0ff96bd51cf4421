package convert

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// UnknownSymbol is the sentinel returned when a description carries no
// recognizable ticker.
const UnknownSymbol = "UNKNOWN"

var (
	symbolRegex = regexp.MustCompile(`^([\w.\-]+) -`)
	sharesRegex = regexp.MustCompile(`([\d.]+) shares`)
)

// ExtractSymbol pulls the ticker out of a description like
// "KILO.B - Sold 5 shares". Share-class suffixes collapse to the base
// symbol (KILO.B -> KILO, ZAG.U -> ZAG). Descriptions without a leading
// "SYMBOL -" token yield UnknownSymbol.
func ExtractSymbol(desc string) string {
	m := symbolRegex.FindStringSubmatch(desc)
	if m == nil {
		return UnknownSymbol
	}
	symbol := m[1]
	if i := strings.IndexAny(symbol, ".-"); i >= 0 {
		symbol = symbol[:i]
	}
	if symbol == "" {
		return UnknownSymbol
	}
	return symbol
}

// ExtractShares parses the share count embedded in a trade description
// ("Bought 2.5 shares"). Descriptions without a parseable count yield zero.
func ExtractShares(desc string) decimal.Decimal {
	m := sharesRegex.FindStringSubmatch(desc)
	if m == nil {
		return decimal.Zero
	}
	shares, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.Zero
	}
	return shares
}

// SharePrice derives the per-share price from a transaction amount and a
// share count. The result is rounded to 4 decimal places with banker's
// rounding (round half to even). Zero shares yields a zero price.
func SharePrice(amount, shares decimal.Decimal) decimal.Decimal {
	if shares.IsZero() {
		return decimal.Zero
	}
	return amount.Abs().Div(shares.Abs()).RoundBank(4)
}
