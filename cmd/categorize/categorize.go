// Package categorize handles the standalone categorization command
package categorize

import (
	"fjacquet/receipt-csv/cmd/root"
	"fjacquet/receipt-csv/internal/categorizer"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a purchase by vendor name",
	Long: `Categorize assigns a spending category to a vendor using the keyword
rules, optionally consulting the receipt text for item-level keywords.`,
	Run: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Vendor, "vendor", "p", "", "Vendor name to categorize")
	Cmd.Flags().StringVarP(&root.Amount, "amount", "a", "", "Purchase amount (optional)")
	Cmd.Flags().StringVarP(&root.Text, "text", "t", "", "Receipt text for item-level matching (optional)")
	_ = Cmd.MarkFlagRequired("vendor")
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	cat := categorizer.NewCategorizer(store.NewCategoryStore(""), logger)

	amount := models.ParseAmount(root.Amount)
	category := cat.Categorize(cmd.Context(), root.Vendor, amount, root.Text)

	root.Log.WithFields(map[string]interface{}{
		logging.FieldVendor:   root.Vendor,
		logging.FieldCategory: category,
	}).Info("Vendor categorized")
	cmd.Printf("Category: %s\n", category)
}
