// Package categorizer assigns spending categories to parsed receipts using
// an ordered chain of strategies: keyword rules first, then an optional
// AI fallback. The keyword rules are static configuration evaluated in a
// fixed priority order, so classification is deterministic unless the AI
// fallback is explicitly enabled.
package categorizer

import (
	"context"

	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/store"

	"github.com/shopspring/decimal"
)

// Categorizer runs the strategy chain over a receipt.
type Categorizer struct {
	strategies []Strategy
	logger     logging.Logger
}

// NewCategorizer creates a keyword-only categorizer, the deterministic
// configuration used by the receipt parser.
func NewCategorizer(categoryStore *store.CategoryStore, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Categorizer{
		strategies: []Strategy{NewKeywordStrategy(categoryStore, logger)},
		logger:     logger,
	}
}

// NewCategorizerWithAI creates a categorizer that falls back to the given
// AI client when the keyword rules miss.
func NewCategorizerWithAI(categoryStore *store.CategoryStore, aiClient AIClient, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Categorizer{
		strategies: []Strategy{
			NewKeywordStrategy(categoryStore, logger),
			NewAIStrategy(aiClient, logger),
		},
		logger: logger,
	}
}

// NewCategorizerFromStrategies wires an explicit strategy chain, used by
// tests and callers with custom rules.
func NewCategorizerFromStrategies(logger logging.Logger, strategies ...Strategy) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Categorizer{strategies: strategies, logger: logger}
}

// Categorize classifies a receipt, returning "other" when no vendor is
// known or every strategy misses. Strategy errors are logged and treated
// as misses; categorization never fails a parse.
func (c *Categorizer) Categorize(ctx context.Context, vendor string, amount decimal.Decimal, text string) string {
	if vendor == "" {
		return models.CategoryOther
	}

	in := Input{Vendor: vendor, Amount: amount, Text: text}
	for _, strategy := range c.strategies {
		category, found, err := strategy.Categorize(ctx, in)
		if err != nil {
			c.logger.WithError(err).WithFields(
				logging.Field{Key: logging.FieldStrategy, Value: strategy.Name()},
				logging.Field{Key: logging.FieldVendor, Value: vendor},
			).Warn("Categorization strategy failed")
			continue
		}
		if found {
			return category
		}
	}

	return models.CategoryOther
}
