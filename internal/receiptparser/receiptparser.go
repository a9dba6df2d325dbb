// Package receiptparser orchestrates field extraction and categorization,
// turning raw receipt text into a structured Record with a confidence
// estimate.
package receiptparser

import (
	"context"

	"fjacquet/receipt-csv/internal/categorizer"
	"fjacquet/receipt-csv/internal/dateutils"
	"fjacquet/receipt-csv/internal/extractor"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
)

// Parser assembles Records from raw text. It holds no mutable state; one
// instance may be shared across goroutines.
type Parser struct {
	categorizer *categorizer.Categorizer
	logger      logging.Logger
}

// New creates a Parser using the given categorizer.
func New(c *categorizer.Categorizer, logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Parser{categorizer: c, logger: logger}
}

// Parse extracts vendor, date and amount from the text, categorizes the
// receipt, and accumulates the confidence score: +0.3 per extracted field,
// +0.1 for the category (only awarded when a vendor was found).
//
// A non-empty manualCategory overrides the computed category and forces the
// confidence to 1.0; extraction still runs first so vendor, date and amount
// are always attempted. Extraction misses are not errors: the returned
// Record simply has those fields absent and a lower confidence.
func (p *Parser) Parse(ctx context.Context, rawText string, manualCategory string) models.Record {
	record := models.Record{
		RawText:  rawText,
		Category: models.CategoryOther,
	}

	if vendor, ok := extractor.ExtractVendor(rawText); ok {
		record.Vendor = vendor
		record.ConfidenceScore += models.ConfidenceVendor
	}

	if date, ok := extractor.ExtractDate(rawText); ok {
		record.Date = dateutils.ToISODate(date)
		record.ConfidenceScore += models.ConfidenceDate
	}

	if amount, ok := extractor.ExtractAmount(rawText); ok {
		record.Amount = amount
		record.ConfidenceScore += models.ConfidenceAmount
	}

	if record.HasVendor() {
		record.Category = p.categorizer.Categorize(ctx, record.Vendor, record.Amount, rawText)
		record.ConfidenceScore += models.ConfidenceCategory
	}

	if manualCategory != "" {
		record.Category = manualCategory
		record.ConfidenceScore = 1.0
	}

	p.logger.WithFields(
		logging.Field{Key: logging.FieldVendor, Value: record.Vendor},
		logging.Field{Key: logging.FieldCategory, Value: record.Category},
		logging.Field{Key: "confidence", Value: record.ConfidenceScore},
	).Debug("Receipt parsed")

	return record
}
