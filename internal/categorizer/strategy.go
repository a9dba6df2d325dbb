package categorizer

import (
	"context"

	"github.com/shopspring/decimal"
)

// Input carries everything a strategy may consult when classifying a
// receipt. Amount is accepted for interface symmetry with future rules;
// no current strategy uses it.
type Input struct {
	Vendor string
	Amount decimal.Decimal
	Text   string
}

// Strategy defines one method of assigning a spending category.
// Strategies are consulted in order; the first successful one wins.
type Strategy interface {
	// Categorize attempts to classify the receipt. The bool reports whether
	// a category was assigned; a false return with nil error is a normal
	// miss, not a failure.
	Categorize(ctx context.Context, in Input) (string, bool, error)

	// Name identifies this strategy in logs.
	Name() string
}
