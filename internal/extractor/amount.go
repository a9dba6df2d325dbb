// Package extractor implements the heuristic field extraction over raw
// receipt text: monetary amount, transaction date and vendor name. Each
// function is pure; a miss returns ok=false and is never an error.
package extractor

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Labeled amount patterns, in priority order. The first parseable match of
// the first matching pattern wins outright: an explicit total beats any
// other number on the receipt.
var amountLabelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)TOTAL\s*\$?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)Total:\s*\$?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)Amount:\s*\$?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)Balance:\s*\$?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`),
}

// Fallback patterns for receipts without a labeled total. All candidates of
// the first matching pattern are collected and the largest value above 1.00
// is taken, which filters out unit prices and quantities.
var amountFallbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`),
	regexp.MustCompile(`(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)\s*USD`),
}

var amountFloor = decimal.NewFromFloat(1.00)

// ExtractAmount pulls the transaction amount out of receipt text.
// Malformed numeric candidates are skipped, never fatal.
func ExtractAmount(text string) (decimal.Decimal, bool) {
	for _, pattern := range amountLabelPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			amount, err := parseAmountToken(match[1])
			if err != nil {
				continue
			}
			return amount, true
		}
	}

	for _, pattern := range amountFallbackPatterns {
		matches := pattern.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}

		var best decimal.Decimal
		found := false
		for _, match := range matches {
			amount, err := parseAmountToken(match[1])
			if err != nil {
				continue
			}
			if amount.LessThanOrEqual(amountFloor) {
				continue
			}
			if !found || amount.GreaterThan(best) {
				best = amount
				found = true
			}
		}
		if found {
			return best, true
		}
	}

	return decimal.Zero, false
}

func parseAmountToken(token string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(token), ",", "")
	return decimal.NewFromString(clean)
}
