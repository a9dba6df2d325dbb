package models

// Spending categories assigned to parsed records.
const (
	CategoryGroceries     = "groceries"
	CategoryRestaurant    = "restaurant"
	CategoryTransport     = "transport"
	CategoryEntertainment = "entertainment"
	CategoryShopping      = "shopping"
	CategoryUtilities     = "utilities"
	CategoryHealthcare    = "healthcare"
	CategoryOther         = "other"
)

// Source format tags for the text handed to the parser.
const (
	FileTypeImage   = "image"
	FileTypePDF     = "pdf"
	FileTypeText    = "text"
	FileTypeUnknown = "unknown"
)

// Confidence weights awarded per successfully extracted field.
const (
	ConfidenceVendor   = 0.3
	ConfidenceDate     = 0.3
	ConfidenceAmount   = 0.3
	ConfidenceCategory = 0.1
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDataFile   = 0644
	PermissionDirectory  = 0750
)

// AllCategories lists the fixed category set in priority order.
// The categorizer evaluates rules in exactly this order; "other" is the default.
var AllCategories = []string{
	CategoryGroceries,
	CategoryRestaurant,
	CategoryTransport,
	CategoryEntertainment,
	CategoryShopping,
	CategoryUtilities,
	CategoryHealthcare,
	CategoryOther,
}

// IsValidCategory reports whether name belongs to the fixed category set.
func IsValidCategory(name string) bool {
	for _, c := range AllCategories {
		if c == name {
			return true
		}
	}
	return false
}
