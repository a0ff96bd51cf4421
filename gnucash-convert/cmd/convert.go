package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/araddon/dateparse"
	convert "github.com/plenert/gnucash-convert"
	"github.com/spf13/cobra"
)

var (
	cashAccount         string
	dividendAccount     string
	feeAccount          string
	contributionAccount string
	outputDir           string
	csvDateFormat       string
	startString         string
	endString           string
	printLedgerFormat   bool
	noTable             bool
	columnWidth         int
	columnWide          bool
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <activity-csv>...",
	Args:  cobra.MinimumNArgs(1),
	Short: "Convert brokerage activity CSV files into one GnuCash import CSV",
	Long: `Reads one or more activity exports, classifies each row (dividends,
fees, contributions, buys, sells) into balanced double-entry postings, and
writes a single merged import file named after the covered date range.
Unusable rows are skipped with a warning; they never abort the batch.`,
	RunE: runConvert,
}

func init() {
	RootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&cashAccount, "cash-account", "", "Brokerage cash account (default \""+convert.DefaultCashAccount+"\").")
	convertCmd.Flags().StringVar(&dividendAccount, "dividend-account", "", "Dividend income account (default \""+convert.DefaultDividendAccount+"\").")
	convertCmd.Flags().StringVar(&feeAccount, "fee-account", "", "Fee expense account (default \""+convert.DefaultFeeAccount+"\").")
	convertCmd.Flags().StringVar(&contributionAccount, "contribution-account", "", "Contribution offset account (default \""+convert.DefaultContributionAccount+"\").")
	convertCmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for the generated file (default: directory of the first input).")
	convertCmd.Flags().StringVar(&csvDateFormat, "date-format", convert.ISODateLayout, "Date format of input rows.")
	convertCmd.Flags().StringVarP(&startString, "begin-date", "b", "", "Only convert rows on or after this date.")
	convertCmd.Flags().StringVarP(&endString, "end-date", "e", "", "Only convert rows on or before this date.")
	convertCmd.Flags().BoolVar(&printLedgerFormat, "ledger", false, "Also print transactions in ledger file format.")
	convertCmd.Flags().BoolVar(&noTable, "no-table", false, "Suppress the converted-transactions table.")
	convertCmd.Flags().IntVar(&columnWidth, "columns", 80, "Set a column width for output.")
	convertCmd.Flags().BoolVar(&columnWide, "wide", false, "Wide output (use terminal width).")
}

func runConvert(_ *cobra.Command, args []string) error {
	cfg := loadConfig(configPath)
	accounts := convert.Accounts{
		Cash:               pick(cashAccount, cfg.CashAccount),
		DividendIncome:     pick(dividendAccount, cfg.DividendAccount),
		FeeExpense:         pick(feeAccount, cfg.FeeAccount),
		ContributionOffset: pick(contributionAccount, cfg.ContributionAccount),
	}

	begin, end, err := cliDateRange()
	if err != nil {
		return err
	}

	asm := convert.NewAssembler(convert.NewClassifier(accounts))
	for _, path := range args {
		rows, skips, rerr := convert.ReadFile(path, csvDateFormat)
		if rerr != nil {
			logger.Warn().Err(rerr).Str("file", path).Msg("unable to read input, skipping file")
			continue
		}
		for _, res := range skips {
			asm.Skip(res)
			logger.Warn().Msg(res.Reason)
		}
		for _, row := range rows {
			if row.Date.Before(begin) || row.Date.After(end) {
				logger.Debug().Stringer("row", row).Msg("outside date range")
				continue
			}
			if res := asm.Add(row); res.Skipped() {
				logger.Warn().Msg(res.Reason)
			}
		}
	}

	batch, err := asm.Batch()
	if errors.Is(err, convert.ErrNoTransactions) {
		printSummary(asm.Summary())
		fmt.Println("No transactions found; nothing written.")
		return nil
	}
	if err != nil {
		return err
	}

	columns := outputColumns()
	if !noTable {
		printTable(batch, columns)
	}
	if printLedgerFormat {
		printLedger(batch, columns)
	}

	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(args[0])
	}
	outPath := filepath.Join(dir, convert.OutputFilename(batch))
	ofile, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer ofile.Close()
	if err := convert.WriteCSV(ofile, batch); err != nil {
		return err
	}

	printSummary(asm.Summary())
	fmt.Printf("Saved to %s\n", outPath)
	return nil
}

func cliDateRange() (begin, end time.Time, err error) {
	begin = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	if startString != "" {
		if begin, err = dateparse.ParseAny(startString); err != nil {
			return begin, end, fmt.Errorf("unable to parse begin date: %w", err)
		}
	}
	if endString != "" {
		if end, err = dateparse.ParseAny(endString); err != nil {
			return begin, end, fmt.Errorf("unable to parse end date: %w", err)
		}
	}
	return begin, end, nil
}

func printSummary(s convert.Summary) {
	fmt.Printf("Converted %d transaction(s)", s.Converted)
	if n := s.TotalSkipped(); n > 0 {
		fmt.Printf(", skipped %d", n)
		for _, reason := range []convert.SkipReason{
			convert.SkipMalformedRow,
			convert.SkipInvalidAmount,
			convert.SkipUnhandledType,
			convert.SkipClassificationError,
		} {
			if c := s.Skipped[reason]; c > 0 {
				fmt.Printf(" [%s: %d]", reason, c)
			}
		}
	}
	fmt.Println()
}
