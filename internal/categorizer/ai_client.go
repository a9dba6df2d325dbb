package categorizer

import "context"

// AIClient is the interface to an external model that can suggest a
// spending category. The abstraction keeps the categorization chain
// testable without network calls and leaves the provider swappable.
type AIClient interface {
	// SuggestCategory returns a category name for the given vendor and
	// receipt text. The returned name is not guaranteed to belong to the
	// fixed category set; callers must validate it.
	SuggestCategory(ctx context.Context, vendor, text string) (string, error)
}
