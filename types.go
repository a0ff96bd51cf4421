package convert

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TypeTag identifies the kind of brokerage activity a raw export row
// describes. ParseTypeTag is the only constructor from raw input; every
// unknown value maps to Unrecognized so code switching over a TypeTag can
// treat the set as closed.
type TypeTag string

const (
	Dividend       TypeTag = "DIV"
	Fee            TypeTag = "FEE"
	NonResidentTax TypeTag = "NRT"
	Contribution   TypeTag = "CONT"
	Buy            TypeTag = "BUY"
	Sell           TypeTag = "SELL"
	Unrecognized   TypeTag = ""
)

// ParseTypeTag maps a raw type field to its tag. Matching is case-sensitive
// and exact.
func ParseTypeTag(raw string) TypeTag {
	switch TypeTag(raw) {
	case Dividend, Fee, NonResidentTax, Contribution, Buy, Sell:
		return TypeTag(raw)
	}
	return Unrecognized
}

// RawTransaction is one row of a brokerage activity export. Amount stays a
// string here; the classifier owns amount validation. Values are never
// mutated after the record source produces them.
type RawTransaction struct {
	Date        time.Time
	Type        TypeTag
	RawType     string
	Description string
	Amount      string
}

func (t RawTransaction) String() string {
	return fmt.Sprintf("%s,%s,%q,%s", t.Date.Format("2006-01-02"), t.RawType, t.Description, t.Amount)
}

// Posting is one line of a double-entry record affecting exactly one
// account. Shares and Price are only set on the stock leg of a trade and
// render as blank columns otherwise.
type Posting struct {
	Date        time.Time
	Description string
	Account     string
	Shares      *decimal.Decimal
	Price       *decimal.Decimal
	Amount      decimal.Decimal
	Type        TypeTag
	Kind        string
	TxnID       string
}

// Default account paths used when neither flags nor the config file supply
// one.
const (
	DefaultCashAccount         = "Assets:Investments:FHSA's:WS Managed"
	DefaultDividendAccount     = "Income:Dividend Income:FHSA"
	DefaultFeeAccount          = "Expenses:Fees and Charges:Financial Charges (Investing)"
	DefaultContributionAccount = "Imbalance-CAD"
)

// Accounts holds the account paths postings are written against. The zero
// value is usable: empty fields fall back to the package defaults when a
// Classifier is constructed.
type Accounts struct {
	Cash               string
	DividendIncome     string
	FeeExpense         string
	ContributionOffset string
}

func (a Accounts) withDefaults() Accounts {
	if a.Cash == "" {
		a.Cash = DefaultCashAccount
	}
	if a.DividendIncome == "" {
		a.DividendIncome = DefaultDividendAccount
	}
	if a.FeeExpense == "" {
		a.FeeExpense = DefaultFeeAccount
	}
	if a.ContributionOffset == "" {
		a.ContributionOffset = DefaultContributionAccount
	}
	return a
}
