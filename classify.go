package convert

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SkipReason says why a raw row produced no postings. Skips are not
// errors: a skipped row is tallied and reported, never aborts a batch.
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipMalformedRow
	SkipInvalidAmount
	SkipUnhandledType
	SkipClassificationError
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "none"
	case SkipMalformedRow:
		return "malformed row"
	case SkipInvalidAmount:
		return "invalid amount"
	case SkipUnhandledType:
		return "unhandled type"
	case SkipClassificationError:
		return "classification error"
	}
	return "unknown"
}

// Result is the outcome of classifying one raw row: a balanced transaction
// group, or a skip reason with a warning message explaining the drop.
type Result struct {
	Row    RawTransaction
	Group  *TransactionGroup
	Skip   SkipReason
	Reason string
}

func (r Result) Skipped() bool { return r.Skip != SkipNone }

func skipped(row RawTransaction, why SkipReason, msg string) Result {
	return Result{
		Row:    row,
		Skip:   why,
		Reason: fmt.Sprintf("%s: %s (row: %s)", why, msg, row),
	}
}

// Classifier turns raw brokerage rows into balanced posting groups.
type Classifier struct {
	accounts Accounts
}

// NewClassifier builds a classifier over the given account paths. Empty
// fields fall back to the package defaults.
func NewClassifier(accounts Accounts) *Classifier {
	return &Classifier{accounts: accounts.withDefaults()}
}

// Classify derives the double-entry postings for a single raw transaction.
// A zero or unparseable amount skips the row; an unrecognized type tag
// skips the row naming the offending value. Every group it produces
// satisfies Balanced().
func (c *Classifier) Classify(row RawTransaction) Result {
	amount, err := decimal.NewFromString(strings.TrimSpace(row.Amount))
	if err != nil {
		return skipped(row, SkipInvalidAmount, fmt.Sprintf("amount %q is not numeric", row.Amount))
	}
	if amount.IsZero() {
		return skipped(row, SkipInvalidAmount, "zero amount")
	}

	symbol := ExtractSymbol(row.Description)
	stockAccount := c.accounts.Cash + ":" + symbol

	group := &TransactionGroup{Date: row.Date}
	add := func(desc, account, kind string, amt decimal.Decimal) {
		group.Postings = append(group.Postings, Posting{
			Date:        row.Date,
			Description: desc,
			Account:     account,
			Amount:      amt,
			Type:        row.Type,
			Kind:        kind,
		})
	}

	switch row.Type {
	case Dividend:
		desc := "Dividend " + symbol
		add(desc, c.accounts.DividendIncome, "div", amount.Neg())
		add(desc, c.accounts.Cash, "cash", amount)
		// register touch, no balance effect
		add(desc, stockAccount, "stock", decimal.Zero)

	case Fee, NonResidentTax:
		feeLabel, rebateLabel := "Investment Fee", "Fee Rebate"
		if row.Type == NonResidentTax {
			feeLabel, rebateLabel = "Non-Resident Tax", "Non-Resident Tax Rebate"
		}
		if amount.Sign() < 0 {
			add(feeLabel, c.accounts.FeeExpense, "fee", amount.Abs())
			add(feeLabel, c.accounts.Cash, "cash", amount.Abs().Neg())
		} else {
			add(rebateLabel, c.accounts.Cash, "cash", amount.Abs())
			add(rebateLabel, c.accounts.FeeExpense, "fee", amount.Abs().Neg())
		}

	case Contribution:
		add("Contribution", c.accounts.Cash, "cash", amount.Abs())
		add("Contribution", c.accounts.ContributionOffset, "cont", amount.Abs().Neg())

	case Buy, Sell:
		shares := ExtractShares(row.Description)
		price := SharePrice(amount, shares)
		if row.Type == Sell {
			shares = shares.Neg()
		}
		cashAmount := amount.Abs().Neg()
		if row.Type == Sell {
			cashAmount = amount.Abs()
		}
		desc := string(row.Type) + " " + symbol
		group.Postings = append(group.Postings, Posting{
			Date:        row.Date,
			Description: desc,
			Account:     stockAccount,
			Shares:      &shares,
			Price:       &price,
			Amount:      amount.Abs(),
			Type:        row.Type,
			Kind:        "stock",
		})
		add(desc, c.accounts.Cash, "cash", cashAmount)

	default:
		return skipped(row, SkipUnhandledType, fmt.Sprintf("unhandled transaction type %q", row.RawType))
	}

	if err := group.Balanced(); err != nil {
		return skipped(row, SkipClassificationError, err.Error())
	}
	return Result{Row: row, Group: group}
}
