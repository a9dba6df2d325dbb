package categorizer

import (
	"context"
	"strings"

	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/store"
)

// KeywordStrategy classifies receipts by keyword matching against the
// category rules loaded from configuration. Rules are evaluated in their
// configured priority order and the first match wins, so the groceries
// rule always beats the shopping rule for a vendor matching both.
type KeywordStrategy struct {
	rules  []store.CategoryRule
	logger logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy with rules from the store.
// A load failure degrades to the built-in default rules.
func NewKeywordStrategy(categoryStore *store.CategoryStore, logger logging.Logger) *KeywordStrategy {
	rules, err := categoryStore.LoadCategories()
	if err != nil {
		logger.WithError(err).Warn("Failed to load category rules, using defaults")
		rules = store.DefaultCategoryRules()
	}
	return &KeywordStrategy{rules: rules, logger: logger}
}

// NewKeywordStrategyFromRules creates a KeywordStrategy with an explicit
// rule set, bypassing the store.
func NewKeywordStrategyFromRules(rules []store.CategoryRule, logger logging.Logger) *KeywordStrategy {
	return &KeywordStrategy{rules: rules, logger: logger}
}

// Name returns the name of this strategy for logging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize matches vendor keywords and, where a rule defines them,
// text keywords against the full receipt text.
func (s *KeywordStrategy) Categorize(_ context.Context, in Input) (string, bool, error) {
	if strings.TrimSpace(in.Vendor) == "" {
		return "", false, nil
	}

	vendorLower := strings.ToLower(in.Vendor)
	textLower := strings.ToLower(in.Text)

	for _, rule := range s.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(vendorLower, strings.ToLower(keyword)) {
				s.logger.WithFields(
					logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
					logging.Field{Key: logging.FieldVendor, Value: in.Vendor},
					logging.Field{Key: "keyword", Value: keyword},
					logging.Field{Key: logging.FieldCategory, Value: rule.Name},
				).Debug("Receipt categorized by vendor keyword")
				return rule.Name, true, nil
			}
		}

		for _, keyword := range rule.TextKeywords {
			if strings.Contains(textLower, strings.ToLower(keyword)) {
				s.logger.WithFields(
					logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
					logging.Field{Key: logging.FieldVendor, Value: in.Vendor},
					logging.Field{Key: "keyword", Value: keyword},
					logging.Field{Key: logging.FieldCategory, Value: rule.Name},
				).Debug("Receipt categorized by text keyword")
				return rule.Name, true, nil
			}
		}
	}

	return "", false, nil
}
