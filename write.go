package convert

import (
	"encoding/csv"
	"fmt"
	"io"
)

// OutputHeader is the column layout of the generated import file.
var OutputHeader = []string{"Date", "Description", "Account", "Num.Shares", "Price", "Amount", "Type", "Transaction ID"}

// WriteCSV writes the batch in GnuCash multi-split import layout. Share and
// price columns stay blank on legs where they do not apply. Amounts render
// with two fixed decimals, prices with four.
func WriteCSV(w io.Writer, b *Batch) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(OutputHeader); err != nil {
		return err
	}
	for _, p := range b.Postings() {
		record := []string{
			p.Date.Format(ISODateLayout),
			p.Description,
			p.Account,
			"",
			"",
			p.Amount.StringFixedBank(2),
			string(p.Type),
			p.TxnID,
		}
		if p.Shares != nil {
			record[3] = p.Shares.String()
		}
		if p.Price != nil {
			record[4] = p.Price.StringFixed(4)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// OutputFilename names the generated file after the date range the batch
// covers, e.g. gnucash_2023-01-05_to_2023-01-31.csv.
func OutputFilename(b *Batch) string {
	start, end := b.DateRange()
	return fmt.Sprintf("gnucash_%s_to_%s.csv", start.Format(ISODateLayout), end.Format(ISODateLayout))
}
