package convert

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrNoTransactions is reported when no rows survive classification across
// all inputs. Callers should report it and write no output artifact.
var ErrNoTransactions = errors.New("no transactions")

const txnIDPrefix = "TXN"

// Summary tallies the outcome of assembling a batch.
type Summary struct {
	Converted int
	Skipped   map[SkipReason]int
	Warnings  []string
}

func (s *Summary) note(r Result) {
	if !r.Skipped() {
		s.Converted++
		return
	}
	if s.Skipped == nil {
		s.Skipped = make(map[SkipReason]int)
	}
	s.Skipped[r.Skip]++
	s.Warnings = append(s.Warnings, r.Reason)
}

// TotalSkipped is the number of rows dropped for any reason.
func (s Summary) TotalSkipped() int {
	var n int
	for _, c := range s.Skipped {
		n += c
	}
	return n
}

// Assembler merges classified rows from one or more sources into a single
// batch. It is not safe for concurrent use; rows are processed one at a
// time in input order.
type Assembler struct {
	classifier *Classifier
	groups     []*TransactionGroup
	summary    Summary
}

func NewAssembler(c *Classifier) *Assembler {
	return &Assembler{
		classifier: c,
		summary:    Summary{Skipped: make(map[SkipReason]int)},
	}
}

// Add classifies one raw row and folds the result into the batch. Any panic
// while deriving postings becomes a classification-error skip; a single bad
// row never aborts the batch.
func (a *Assembler) Add(row RawTransaction) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = skipped(row, SkipClassificationError, fmt.Sprintf("%v", p))
		}
		a.summary.note(res)
		if res.Group != nil {
			a.groups = append(a.groups, res.Group)
		}
	}()

	res = a.classifier.Classify(row)
	return res
}

// Skip records a row rejected before classification, such as a malformed
// CSV record reported by the record source.
func (a *Assembler) Skip(res Result) {
	a.summary.note(res)
}

// Summary reports the tallies accumulated so far.
func (a *Assembler) Summary() Summary {
	return a.summary
}

// Batch sorts the collected groups by date (stable: ties keep input order),
// assigns transaction ids, and returns the final batch. Ids are assigned
// after the batch-wide sort, so numbering is deterministic no matter how
// many input files contributed rows.
func (a *Assembler) Batch() (*Batch, error) {
	if len(a.groups) == 0 {
		return nil, ErrNoTransactions
	}

	groups := slices.Clone(a.groups)
	slices.SortStableFunc(groups, func(x, y *TransactionGroup) int {
		return x.Date.Compare(y.Date)
	})
	assignIDs(groups)

	return &Batch{Groups: groups}, nil
}

// Transaction ids look like TXN-20230105-001: the date with separators
// removed plus a zero-padded sequence restarting at 1 for each calendar
// date, scoped to the merged batch.
func assignIDs(groups []*TransactionGroup) {
	seq := make(map[string]int)
	for _, g := range groups {
		day := g.Date.Format("20060102")
		seq[day]++
		g.ID = fmt.Sprintf("%s-%s-%03d", txnIDPrefix, day, seq[day])
		for i := range g.Postings {
			g.Postings[i].TxnID = g.ID
		}
	}
}

// Batch is the final date-ordered set of transaction groups.
type Batch struct {
	Groups []*TransactionGroup
}

// Postings flattens the batch in output order.
func (b *Batch) Postings() []Posting {
	var out []Posting
	for _, g := range b.Groups {
		out = append(out, g.Postings...)
	}
	return out
}

// DateRange returns the earliest and latest transaction dates in the batch.
func (b *Batch) DateRange() (start, end time.Time) {
	if len(b.Groups) == 0 {
		return
	}
	return b.Groups[0].Date, b.Groups[len(b.Groups)-1].Date
}
