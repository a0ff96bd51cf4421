//go:build go1.18

package convert

import (
	"testing"
	"time"
)

func FuzzClassify(f *testing.F) {
	f.Add("DIV", "ABC - dividend", "10.00")
	f.Add("BUY", "ABC - Bought 2.5 shares", "50.00")
	f.Add("SELL", "KILO.B - Sold 5 shares", "25.00")
	f.Add("SELL", "ABC - Sold remaining position", "25.00")
	f.Add("FEE", "management fee", "-2.50")
	f.Add("FEE", "fee rebate", "1.25")
	f.Add("NRT", "ABC - non-resident tax withheld", "-3.00")
	f.Add("CONT", "Contribution", "100.00")
	f.Add("XYZ", "ABC - mystery", "5.00")

	c := NewClassifier(Accounts{})
	day := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)
	f.Fuzz(func(t *testing.T, rawType, desc, amount string) {
		res := c.Classify(RawTransaction{
			Date:        day,
			Type:        ParseTypeTag(rawType),
			RawType:     rawType,
			Description: desc,
			Amount:      amount,
		})
		if res.Skipped() {
			if res.Group != nil {
				t.Error("skipped row still produced postings")
			}
			if res.Reason == "" {
				t.Error("skipped row carries no warning message")
			}
			return
		}
		if res.Group == nil {
			t.Fatal("converted row carries no postings")
		}
		if err := res.Group.Balanced(); err != nil {
			t.Error(err)
		}
	})
}
