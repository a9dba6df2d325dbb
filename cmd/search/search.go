// Package search handles the record search command
package search

import (
	"fmt"

	"fjacquet/receipt-csv/cmd/root"
	"fjacquet/receipt-csv/internal/analyzer"
	"fjacquet/receipt-csv/internal/dateutils"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/store"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

// Cmd represents the search command
var Cmd = &cobra.Command{
	Use:   "search",
	Short: "Search stored records",
	Long: `Search filters the record store by a text query, a regular expression,
an amount range and a date range. All given criteria must match. The text
query supports linear, binary, hash and fuzzy algorithms.`,
	RunE: searchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Query, "query", "q", "", "Text to search for")
	Cmd.Flags().StringVarP(&root.Pattern, "pattern", "e", "", "Regular expression to match")
	Cmd.Flags().StringVarP(&root.Field, "field", "f", "vendor", "Record field to search")
	Cmd.Flags().StringVarP(&root.Algorithm, "algorithm", "g", "linear", "Search algorithm: linear, binary, hash or fuzzy")
	Cmd.Flags().Float64Var(&root.MinAmount, "min-amount", -1, "Minimum amount (inclusive)")
	Cmd.Flags().Float64Var(&root.MaxAmount, "max-amount", -1, "Maximum amount (inclusive)")
	Cmd.Flags().StringVar(&root.FromDate, "from", "", "Earliest date (inclusive)")
	Cmd.Flags().StringVar(&root.ToDate, "to", "", "Latest date (inclusive)")
}

func searchFunc(cmd *cobra.Command, args []string) error {
	records, err := store.NewRecordStore(root.RecordsPath()).Load()
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	criteria := analyzer.SearchCriteria{
		Query:     root.Query,
		Pattern:   root.Pattern,
		Field:     root.Field,
		Algorithm: root.Algorithm,
	}
	if cmd.Flags().Changed("min-amount") {
		criteria.MinAmount = &root.MinAmount
	}
	if cmd.Flags().Changed("max-amount") {
		criteria.MaxAmount = &root.MaxAmount
	}
	if root.FromDate != "" {
		from, err := dateutils.ParseDate(root.FromDate)
		if err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}
		criteria.DateFrom = &from
	}
	if root.ToDate != "" {
		to, err := dateutils.ParseDate(root.ToDate)
		if err != nil {
			return fmt.Errorf("invalid --to date: %w", err)
		}
		criteria.DateTo = &to
	}

	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	engine := analyzer.New(logger, root.Cfg.GetFuzzyThreshold(), root.Cfg.GetWindowSize())
	results := engine.AdvancedSearch(records, criteria)

	root.Log.WithField(logging.FieldCount, len(results)).Info("Search finished")
	if len(results) == 0 {
		cmd.Println("No matching records")
		return nil
	}

	csvOut, err := gocsv.MarshalString(&results)
	if err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}
	cmd.Print(csvOut)
	return nil
}
