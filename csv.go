package convert

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	date "github.com/joyt/godate"
)

// ISODateLayout is the expected date format of input rows.
const ISODateLayout = "2006-01-02"

// dateCache remembers the last discovered date layout so a column of
// identically-formatted dates only pays the layout search once.
type dateCache struct {
	layout string

	strPrev string
	prev    time.Time
	prevErr error
}

func (dc *dateCache) parse(dateString string) (time.Time, error) {
	// seen before, skip parse
	if dc.strPrev == dateString {
		return dc.prev, dc.prevErr
	}

	// try current date layout
	day, err := time.Parse(dc.layout, dateString)
	if err != nil {
		// try to find new date layout
		day, dc.layout, err = date.ParseAndGetLayout(dateString)
		if err != nil {
			err = fmt.Errorf("unable to parse date(%s): %w", dateString, err)
		}
	}

	// maybe next date is same
	dc.strPrev = dateString
	dc.prev = day
	dc.prevErr = err

	return day, err
}

// A Reader yields raw transactions from one brokerage activity export. Rows
// are shaped date,type,description,amount; extra trailing fields are
// ignored. The first row is always treated as a header and skipped; rows
// with fewer than four fields are reported as malformed.
type Reader struct {
	name string
	csv  *csv.Reader
	dc   dateCache
}

// NewReader wraps r. name labels the source in warning messages.
// dateLayout is the expected row date format; an empty layout means ISO
// 8601. Rows in another format still parse through layout discovery.
func NewReader(name string, r io.Reader, dateLayout string) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if dateLayout == "" {
		dateLayout = ISODateLayout
	}
	return &Reader{name: name, csv: cr, dc: dateCache{layout: dateLayout}}
}

// ReadAll consumes the input and splits it into parsed raw transactions and
// skipped rows. Only an unreadable stream is an error; bad rows come back
// as malformed-row results so the caller can warn and continue.
func (r *Reader) ReadAll() ([]RawTransaction, []Result, error) {
	records, err := r.csv.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", r.name, err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	var rows []RawTransaction
	var skips []Result
	for _, record := range records[1:] {
		if len(record) < 4 {
			skips = append(skips, Result{
				Skip:   SkipMalformedRow,
				Reason: fmt.Sprintf("%s: %s: skipping malformed row: %q", r.name, SkipMalformedRow, record),
			})
			continue
		}

		day, derr := r.dc.parse(strings.TrimSpace(record[0]))
		if derr != nil {
			skips = append(skips, Result{
				Skip:   SkipMalformedRow,
				Reason: fmt.Sprintf("%s: %s: %s: %q", r.name, SkipMalformedRow, derr, record),
			})
			continue
		}

		rows = append(rows, RawTransaction{
			Date:        day,
			Type:        ParseTypeTag(record[1]),
			RawType:     record[1],
			Description: record[2],
			Amount:      record[3],
		})
	}
	return rows, skips, nil
}

// ReadFile reads one export file from disk.
func ReadFile(path, dateLayout string) ([]RawTransaction, []Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return NewReader(filepath.Base(path), f, dateLayout).ReadAll()
}
