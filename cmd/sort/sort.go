// Package sort handles the record sorting command
package sort

import (
	"fmt"

	"fjacquet/receipt-csv/cmd/root"
	"fjacquet/receipt-csv/internal/analyzer"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/store"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

// Cmd represents the sort command
var Cmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort stored records by a field",
	Long: `Sort orders the record store on a named field using quicksort,
mergesort, heapsort or a stable sort. Records missing the field come first
in both directions.`,
	RunE: sortFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Field, "field", "f", "", "Record field to sort on")
	Cmd.Flags().BoolVarP(&root.Descending, "desc", "d", false, "Sort in descending order")
	Cmd.Flags().StringVarP(&root.Algorithm, "algorithm", "g", "stable", "Sort algorithm: quicksort, mergesort, heapsort or stable")
	_ = Cmd.MarkFlagRequired("field")
}

func sortFunc(cmd *cobra.Command, args []string) error {
	records, err := store.NewRecordStore(root.RecordsPath()).Load()
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	engine := analyzer.New(logger, root.Cfg.GetFuzzyThreshold(), root.Cfg.GetWindowSize())

	sorted, err := engine.Sort(records, root.Field, root.Descending, root.Algorithm)
	if err != nil {
		return fmt.Errorf("failed to sort records: %w", err)
	}

	root.Log.WithFields(map[string]interface{}{
		logging.FieldField: root.Field,
		logging.FieldCount: len(sorted),
	}).Info("Records sorted")

	if len(sorted) == 0 {
		cmd.Println("No records to sort")
		return nil
	}

	csvOut, err := gocsv.MarshalString(&sorted)
	if err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}
	cmd.Print(csvOut)
	return nil
}
