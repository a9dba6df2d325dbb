package extractor

import (
	"regexp"
	"strings"

	"fjacquet/receipt-csv/internal/textutils"
)

// Lines containing any of these words are never vendor candidates.
var vendorSkipWords = []string{
	"receipt", "total", "amount", "date", "time",
	"description", "price", "tax", "thank you",
}

// Vendor candidate patterns, preferring named business suffixes over bare
// capitalized text. Matching is case-insensitive, mirroring how OCR output
// flattens capitalization.
var vendorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^([A-Z][A-Za-z\s&]+(?:STORE|MARKET|SHOP|SUPERMARKET|GROCERY|RESTAURANT|CAFE|MALL))`),
	regexp.MustCompile(`(?i)([A-Z][A-Za-z\s&]+(?:STORE|MARKET|SHOP|SUPERMARKET|GROCERY|RESTAURANT|CAFE|MALL))`),
	regexp.MustCompile(`(?i)^([A-Z][A-Za-z\s&]+)`),
	regexp.MustCompile(`(?i)([A-Z][A-Za-z\s&]+)`),
}

// ExtractVendor scans the text line by line and returns the first line that
// passes the vendor heuristics, whitespace-normalized and title-cased.
// There is no best-candidate scoring: the first acceptable line in document
// order wins.
func ExtractVendor(text string) (string, bool) {
	for _, line := range textutils.Lines(text) {
		if len(line) < 3 {
			continue
		}
		if textutils.ContainsAny(line, vendorSkipWords) {
			continue
		}

		for _, pattern := range vendorPatterns {
			match := pattern.FindStringSubmatch(line)
			if match == nil {
				continue
			}

			vendor := textutils.TitleCase(textutils.NormalizeWhitespace(strings.TrimSpace(match[1])))
			if len(vendor) < 3 {
				continue
			}

			// Accept multi-word names, or single words long enough to be real
			if len(strings.Fields(vendor)) >= 2 || len(vendor) >= 5 {
				return vendor, true
			}
		}
	}

	return "", false
}
