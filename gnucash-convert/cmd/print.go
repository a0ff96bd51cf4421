package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	convert "github.com/plenert/gnucash-convert"
	"golang.org/x/term"
)

const newLine = "\n"

var spaceStr string

func outputColumns() int {
	if columnWidth == 80 && columnWide {
		columnWidth = 132
		fd := int(os.Stdout.Fd())
		if term.IsTerminal(fd) {
			if tw, _, err := term.GetSize(fd); err == nil {
				columnWidth = tw
			}
		}
	}
	return columnWidth
}

// fixed pads or truncates s to exactly width display runes.
func fixed(s string, width int, rightAlign bool) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		return string([]rune(s)[:width])
	}
	pad := strings.Repeat(" ", width-n)
	if rightAlign {
		return pad + s
	}
	return s + pad
}

// printTable renders the converted postings as a register-style table:
// fixed-width date, shares, price, amount, and id columns, with the
// remaining width split between description and account.
func printTable(b *convert.Batch, columns int) {
	if columns < 70 {
		columns = 70
		fmt.Fprintf(os.Stderr, "warning: `columns` too small, setting to %d\n", columns)
	}
	remaining := columns - 10 - 10 - 10 - 10 - 16 - 6
	descWidth := remaining / 3
	accWidth := remaining - descWidth

	colorNeg := color.New(color.FgRed)
	colorHeader := color.New(color.Bold)

	buf := bufio.NewWriter(os.Stdout)
	colorHeader.Fprint(buf,
		fixed("Date", 10, false)+" "+
			fixed("Description", descWidth, false)+" "+
			fixed("Account", accWidth, false)+" "+
			fixed("Shares", 10, true)+" "+
			fixed("Price", 10, true)+" "+
			fixed("Amount", 10, true)+" "+
			"Transaction ID")
	buf.WriteString(newLine)
	buf.WriteString(strings.Repeat("-", columns))
	buf.WriteString(newLine)

	for _, p := range b.Postings() {
		var shares, price string
		if p.Shares != nil {
			shares = p.Shares.String()
		}
		if p.Price != nil {
			price = p.Price.StringFixed(4)
		}

		buf.WriteString(fixed(p.Date.Format(convert.ISODateLayout), 10, false))
		buf.WriteString(" ")
		buf.WriteString(fixed(p.Description, descWidth, false))
		buf.WriteString(" ")
		buf.WriteString(fixed(p.Account, accWidth, false))
		buf.WriteString(" ")
		buf.WriteString(fixed(shares, 10, true))
		buf.WriteString(" ")
		buf.WriteString(fixed(price, 10, true))
		buf.WriteString(" ")
		outBalanceString := p.Amount.StringFixedBank(2)
		if p.Amount.Sign() < 0 {
			colorNeg.Fprint(buf, fixed(outBalanceString, 10, true))
		} else {
			buf.WriteString(fixed(outBalanceString, 10, true))
		}
		buf.WriteString(" ")
		buf.WriteString(p.TxnID)
		buf.WriteString(newLine)
	}
	buf.Flush()
}

// printLedger prints each transaction group in ledger file format, one
// payee line followed by indented postings fit to the column width.
func printLedger(b *convert.Batch, columns int) {
	if len(spaceStr) < columns {
		spaceStr = strings.Repeat(" ", columns)
	}

	buf := bufio.NewWriter(os.Stdout)
	for _, g := range b.Groups {
		buf.WriteString(g.Date.Format(convert.ISODateLayout))
		buf.WriteString(" ")
		buf.WriteString(g.Postings[0].Description)
		buf.WriteString("  ; ")
		buf.WriteString(g.ID)
		buf.WriteString(newLine)
		for _, p := range g.Postings {
			outBalanceString := p.Amount.StringFixedBank(2)
			spaceCount := columns - 4 - utf8.RuneCountInString(p.Account) - utf8.RuneCountInString(outBalanceString)
			if spaceCount < 1 {
				spaceCount = 1
			}
			buf.WriteString(spaceStr[:4])
			buf.WriteString(p.Account)
			buf.WriteString(spaceStr[:spaceCount])
			buf.WriteString(outBalanceString)
			if p.Shares != nil && p.Price != nil {
				buf.WriteString(" ; ")
				buf.WriteString(p.Shares.String())
				buf.WriteString(" @ ")
				buf.WriteString(p.Price.StringFixed(4))
			}
			buf.WriteString(newLine)
		}
		buf.WriteString(newLine)
	}
	buf.Flush()
}
