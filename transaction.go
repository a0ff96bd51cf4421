package convert

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNeedAtLeastTwoPostings = errors.New("need at least two postings")
	ErrUnbalancedGroup        = errors.New("postings do not sum to zero")
)

// TransactionGroup is the ordered set of postings derived from one raw row.
// Every posting in a group carries the group's transaction id once the
// batch assembler has assigned one.
type TransactionGroup struct {
	Date     time.Time
	ID       string
	Postings []Posting
}

// Balanced returns nil if the group's posting amounts sum to zero. A trade's
// stock leg carries an unsigned amount in the output; its direction follows
// the transaction type, so a sale's stock leg counts as an outflow here even
// when no share count could be parsed from the description.
func (g *TransactionGroup) Balanced() error {
	if len(g.Postings) < 2 {
		return ErrNeedAtLeastTwoPostings
	}

	sum := decimal.Zero
	for _, p := range g.Postings {
		value := p.Amount
		if p.Shares != nil && p.Type == Sell {
			value = value.Neg()
		}
		sum = sum.Add(value)
	}
	if !sum.IsZero() {
		return fmt.Errorf("%w: off by %s", ErrUnbalancedGroup, sum.String())
	}
	return nil
}
