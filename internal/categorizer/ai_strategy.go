package categorizer

import (
	"context"
	"strings"

	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
)

// AIStrategy consults an external model when the keyword rules miss.
// It is strictly a fallback: the deterministic keyword strategy always runs
// first, and the AI answer is rejected unless it names one of the fixed
// categories.
type AIStrategy struct {
	client AIClient
	logger logging.Logger
}

// NewAIStrategy creates an AIStrategy. A nil client produces a strategy
// that always misses, which keeps the chain wiring simple.
func NewAIStrategy(client AIClient, logger logging.Logger) *AIStrategy {
	return &AIStrategy{client: client, logger: logger}
}

// Name returns the name of this strategy for logging.
func (s *AIStrategy) Name() string {
	return "AI"
}

// Categorize asks the AI client for a category suggestion. Client errors
// are downgraded to a miss so a flaky API never fails the parse.
func (s *AIStrategy) Categorize(ctx context.Context, in Input) (string, bool, error) {
	if s.client == nil {
		return "", false, nil
	}
	if strings.TrimSpace(in.Vendor) == "" {
		return "", false, nil
	}

	suggestion, err := s.client.SuggestCategory(ctx, in.Vendor, in.Text)
	if err != nil {
		s.logger.WithError(err).WithFields(
			logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
			logging.Field{Key: logging.FieldVendor, Value: in.Vendor},
		).Warn("AI categorization failed")
		return "", false, nil
	}

	suggestion = strings.ToLower(strings.TrimSpace(suggestion))
	if !models.IsValidCategory(suggestion) {
		s.logger.WithFields(
			logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
			logging.Field{Key: logging.FieldVendor, Value: in.Vendor},
			logging.Field{Key: logging.FieldCategory, Value: suggestion},
		).Debug("AI suggested a category outside the fixed set, ignoring")
		return "", false, nil
	}

	return suggestion, true, nil
}
