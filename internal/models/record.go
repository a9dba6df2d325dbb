// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical on-record date format (ISO calendar date).
const DateLayout = "2006-01-02"

// Record represents a single parsed receipt. A Record is assembled once by
// the receipt parser and is immutable afterwards; the store is responsible
// for identifiers and timestamps.
//
// Optional fields use their zero value as "absent": an empty Vendor or Date
// means nothing was extracted, and Amount is always strictly positive when
// present, so a zero Amount means no amount was found.
type Record struct {
	ID              string          `csv:"ID"`
	Vendor          string          `csv:"Vendor"`
	Date            string          `csv:"Date"`   // ISO format YYYY-MM-DD, empty if unparseable
	Amount          decimal.Decimal `csv:"Amount"` // major currency units, zero if absent
	Category        string          `csv:"Category"`
	ConfidenceScore float64         `csv:"ConfidenceScore"` // in [0.0, 1.0]
	RawText         string          `csv:"RawText"`
	FileName        string          `csv:"FileName"`
	FileType        string          `csv:"FileType"` // image, pdf, text or unknown
	CreatedAt       string          `csv:"CreatedAt"`
}

// HasVendor reports whether a vendor was extracted.
func (r *Record) HasVendor() bool {
	return strings.TrimSpace(r.Vendor) != ""
}

// HasDate reports whether a date was extracted.
func (r *Record) HasDate() bool {
	return r.Date != ""
}

// HasAmount reports whether an amount was extracted.
func (r *Record) HasAmount() bool {
	return r.Amount.IsPositive()
}

// DateTime parses the record date into a time.Time.
// The second return value is false when the date is absent or malformed.
func (r *Record) DateTime() (time.Time, bool) {
	if r.Date == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseAmount converts a raw amount string to a decimal, stripping currency
// symbols and thousands separators. Returns decimal.Zero when the string
// does not hold a parsable number.
func ParseAmount(amountStr string) decimal.Decimal {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, ",", "")
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "USD", "")
	amount = strings.ReplaceAll(amount, "$", "")

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}
