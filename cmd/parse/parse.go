// Package parse handles the receipt parsing command
package parse

import (
	"fmt"
	"path/filepath"

	"fjacquet/receipt-csv/cmd/root"
	"fjacquet/receipt-csv/internal/categorizer"
	"fjacquet/receipt-csv/internal/fileutils"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/receiptparser"
	"fjacquet/receipt-csv/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a receipt text file into a structured record",
	Long: `Parse extracts the vendor, date and total amount from a receipt text
file, assigns a spending category, and reports a confidence score. The
record can optionally be appended to the record store.`,
	RunE: parseFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.InputFile, "input", "i", "", "Receipt text file to parse")
	Cmd.Flags().StringVarP(&root.ManualCategory, "category", "c", "", "Manual category override (forces confidence to 1.0)")
	Cmd.Flags().BoolVarP(&root.SaveRecord, "save", "s", false, "Append the parsed record to the record store")
	_ = Cmd.MarkFlagRequired("input")
}

func parseFunc(cmd *cobra.Command, args []string) error {
	root.Log.WithField(logging.FieldInputFile, root.InputFile).Info("Parsing receipt")

	rawText, err := fileutils.ReadTextFile(root.InputFile)
	if err != nil {
		return fmt.Errorf("failed to read receipt file: %w", err)
	}

	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	categoryStore := store.NewCategoryStore("")
	cat, cleanup, err := buildCategorizer(cmd, categoryStore, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	parser := receiptparser.New(cat, logger)
	record := parser.Parse(cmd.Context(), rawText, root.ManualCategory)
	record.FileName = filepath.Base(root.InputFile)
	record.FileType = fileutils.DetectFileType(root.InputFile)

	out, err := yaml.Marshal(recordView(record))
	if err != nil {
		return fmt.Errorf("failed to render record: %w", err)
	}
	fmt.Print(string(out))

	if root.SaveRecord {
		recordStore := store.NewRecordStore(root.RecordsPath())
		saved, err := recordStore.Append(record)
		if err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}
		root.Log.WithFields(logrus.Fields{
			logging.FieldRecordID:   saved.ID,
			logging.FieldOutputFile: root.RecordsPath(),
		}).Info("Record saved")
	}

	return nil
}

// buildCategorizer wires the keyword chain, adding the AI fallback when it
// is enabled in configuration. The returned cleanup closes the AI client.
func buildCategorizer(cmd *cobra.Command, categoryStore *store.CategoryStore, logger logging.Logger) (*categorizer.Categorizer, func(), error) {
	if !root.Cfg.GetAIEnabled() {
		return categorizer.NewCategorizer(categoryStore, logger), func() {}, nil
	}

	client, err := categorizer.NewGeminiClient(
		cmd.Context(),
		root.Cfg.GetAIAPIKey(),
		root.Cfg.GetAIModel(),
		root.Cfg.GetAITimeout(),
		logger,
	)
	if err != nil {
		root.Log.WithError(err).Warn("AI categorization unavailable, using keyword rules only")
		return categorizer.NewCategorizer(categoryStore, logger), func() {}, nil
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			root.Log.WithError(err).Debug("Failed to close AI client")
		}
	}
	return categorizer.NewCategorizerWithAI(categoryStore, client, logger), cleanup, nil
}

// view is the YAML shape printed for a parsed record. Decimals render as
// strings to keep exact amounts on the wire.
type view struct {
	Vendor          string  `yaml:"vendor"`
	Date            string  `yaml:"date"`
	Amount          string  `yaml:"amount"`
	Category        string  `yaml:"category"`
	ConfidenceScore float64 `yaml:"confidence_score"`
	FileName        string  `yaml:"file_name"`
	FileType        string  `yaml:"file_type"`
}

func recordView(r models.Record) view {
	amount := ""
	if r.HasAmount() {
		amount = r.Amount.StringFixed(2)
	}
	return view{
		Vendor:          r.Vendor,
		Date:            r.Date,
		Amount:          amount,
		Category:        r.Category,
		ConfidenceScore: r.ConfidenceScore,
		FileName:        r.FileName,
		FileType:        r.FileType,
	}
}
