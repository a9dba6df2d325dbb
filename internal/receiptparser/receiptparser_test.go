package receiptparser

import (
	"context"
	"testing"
	"time"

	"fjacquet/receipt-csv/internal/categorizer"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *Parser {
	logger := &logging.MockLogger{}
	keyword := categorizer.NewKeywordStrategyFromRules(store.DefaultCategoryRules(), logger)
	return New(categorizer.NewCategorizerFromStrategies(logger, keyword), logger)
}

func TestParse_CompleteReceipt(t *testing.T) {
	parser := newTestParser()

	text := "WHOLE FOODS MARKET\n123 Main St\nOrange Juice $4.99\nTOTAL $45.67\nVisited 8/24\nThank you"
	record := parser.Parse(context.Background(), text, "")

	assert.Equal(t, "Whole Foods Market", record.Vendor)
	assert.True(t, record.Amount.Equal(decimal.RequireFromString("45.67")))
	assert.Equal(t, "groceries", record.Category)

	date, ok := record.DateTime()
	require.True(t, ok)
	assert.Equal(t, time.Now().Year(), date.Year())
	assert.Equal(t, time.August, date.Month())
	assert.Equal(t, 24, date.Day())

	// 0.3 vendor + 0.3 date + 0.3 amount + 0.1 category
	assert.InDelta(t, 1.0, record.ConfidenceScore, 1e-9)
	assert.Equal(t, text, record.RawText)
}

func TestParse_PartialExtraction(t *testing.T) {
	parser := newTestParser()

	tests := []struct {
		name       string
		text       string
		confidence float64
	}{
		{"vendor and amount only", "SHELL GAS STATION\nTOTAL $30.00", 0.7},
		{"amount only", "total $20.00", 0.3},
		{"nothing extracted", "", 0.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			record := parser.Parse(context.Background(), tc.text, "")
			assert.InDelta(t, tc.confidence, record.ConfidenceScore, 1e-9)
		})
	}
}

func TestParse_BlankTextDefaults(t *testing.T) {
	parser := newTestParser()

	record := parser.Parse(context.Background(), "", "")

	assert.False(t, record.HasVendor())
	assert.False(t, record.HasDate())
	assert.False(t, record.HasAmount())
	assert.Equal(t, models.CategoryOther, record.Category)
	assert.Zero(t, record.ConfidenceScore)
}

func TestParse_ManualCategoryOverride(t *testing.T) {
	parser := newTestParser()

	// Extraction finds nothing useful, but the manual category still forces
	// full confidence.
	record := parser.Parse(context.Background(), "illegible scan", "transport")

	assert.Equal(t, "transport", record.Category)
	assert.Equal(t, 1.0, record.ConfidenceScore)
}

func TestParse_ManualOverrideBeatsKeywordMatch(t *testing.T) {
	parser := newTestParser()

	text := "WHOLE FOODS MARKET\nTOTAL $45.67"
	record := parser.Parse(context.Background(), text, "entertainment")

	assert.Equal(t, "Whole Foods Market", record.Vendor)
	assert.Equal(t, "entertainment", record.Category)
	assert.Equal(t, 1.0, record.ConfidenceScore)
}

func TestParse_NoVendorMeansNoCategoryBonus(t *testing.T) {
	parser := newTestParser()

	// Amount and date extract, but with no vendor the categorizer is never
	// consulted and the category stays "other".
	record := parser.Parse(context.Background(), "total $12.00\ndated 2024-01-02", "")

	assert.False(t, record.HasVendor())
	assert.Equal(t, models.CategoryOther, record.Category)
	assert.InDelta(t, 0.6, record.ConfidenceScore, 1e-9)
}
