package models

import (
	"strconv"
	"strings"

	"fjacquet/receipt-csv/internal/parsererror"
)

// FieldKind tags the variants of a FieldValue.
type FieldKind int

const (
	// FieldMissing marks a field with no extracted value.
	FieldMissing FieldKind = iota
	// FieldNumber marks a numerically comparable value.
	FieldNumber
	// FieldText marks a value compared as normalized text.
	FieldText
)

// FieldValue is the tagged representation used to compare heterogeneous
// record fields uniformly. Sort and aggregation never touch raw field types
// directly; everything goes through this variant and CompareFieldValues.
type FieldValue struct {
	Kind   FieldKind
	Number float64
	Text   string
}

// MissingValue returns the FieldValue for an absent field.
func MissingValue() FieldValue {
	return FieldValue{Kind: FieldMissing}
}

// NumberValue wraps a float in a FieldValue.
func NumberValue(n float64) FieldValue {
	return FieldValue{Kind: FieldNumber, Number: n}
}

// TextValue wraps a string in a FieldValue, normalizing it for comparison
// (trimmed, lower-cased, inner whitespace collapsed).
func TextValue(s string) FieldValue {
	return FieldValue{Kind: FieldText, Text: strings.ToLower(strings.Join(strings.Fields(s), " "))}
}

// Sortable record field names accepted by FieldValueOf and FieldString.
const (
	FieldID         = "id"
	FieldVendor     = "vendor"
	FieldDate       = "date"
	FieldAmount     = "amount"
	FieldCategory   = "category"
	FieldConfidence = "confidence_score"
	FieldRawText    = "raw_text"
	FieldFileName   = "file_name"
	FieldFileType   = "file_type"
)

// FieldValueOf coerces the named field of r into a FieldValue.
// Amount and confidence score are numeric; everything else is text, with
// absent optional fields mapping to Missing. Unknown field names are a
// caller error, not a silent miss.
func (r *Record) FieldValueOf(field string) (FieldValue, error) {
	switch field {
	case FieldID:
		return TextValue(r.ID), nil
	case FieldVendor:
		if !r.HasVendor() {
			return MissingValue(), nil
		}
		return TextValue(r.Vendor), nil
	case FieldDate:
		if !r.HasDate() {
			return MissingValue(), nil
		}
		// ISO dates order correctly as text
		return TextValue(r.Date), nil
	case FieldAmount:
		if !r.HasAmount() {
			return MissingValue(), nil
		}
		f, _ := r.Amount.Float64()
		return NumberValue(f), nil
	case FieldCategory:
		return TextValue(r.Category), nil
	case FieldConfidence:
		return NumberValue(r.ConfidenceScore), nil
	case FieldRawText:
		return TextValue(r.RawText), nil
	case FieldFileName:
		return TextValue(r.FileName), nil
	case FieldFileType:
		return TextValue(r.FileType), nil
	default:
		return MissingValue(), &parsererror.UnknownFieldError{Field: field}
	}
}

// FieldString returns the raw stringified value of the named field, the form
// the search engine matches against. Absent fields stringify to "".
func (r *Record) FieldString(field string) (string, error) {
	switch field {
	case FieldID:
		return r.ID, nil
	case FieldVendor:
		return r.Vendor, nil
	case FieldDate:
		return r.Date, nil
	case FieldAmount:
		if !r.HasAmount() {
			return "", nil
		}
		return r.Amount.String(), nil
	case FieldCategory:
		return r.Category, nil
	case FieldConfidence:
		return strconv.FormatFloat(r.ConfidenceScore, 'g', -1, 64), nil
	case FieldRawText:
		return r.RawText, nil
	case FieldFileName:
		return r.FileName, nil
	case FieldFileType:
		return r.FileType, nil
	default:
		return "", &parsererror.UnknownFieldError{Field: field}
	}
}

// FieldNumberOf coerces the named field to a float64 for range filtering.
// The second return value is false for absent or non-numeric values.
func (r *Record) FieldNumberOf(field string) (float64, bool) {
	v, err := r.FieldValueOf(field)
	if err != nil || v.Kind == FieldMissing {
		return 0, false
	}
	if v.Kind == FieldNumber {
		return v.Number, true
	}
	f, err := strconv.ParseFloat(v.Text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// CompareFieldValues defines the single total order shared by all sort
// algorithms. It returns a negative value when a precedes b in the final
// output, zero on equal keys, positive otherwise.
//
// Missing maps to the low extreme ascending and the high extreme descending
// (the same key mapping for every algorithm), so records lacking the field
// surface at the front of the output in both directions. Numbers compare
// numerically, text compares lexically on its normalized form, and numbers
// order before text when a field mixes both.
func CompareFieldValues(a, b FieldValue, descending bool) int {
	if a.Kind == FieldMissing || b.Kind == FieldMissing {
		if a.Kind == b.Kind {
			return 0
		}
		if a.Kind == FieldMissing {
			return -1
		}
		return 1
	}

	c := compareKeys(a, b)
	if descending {
		return -c
	}
	return c
}

func compareKeys(a, b FieldValue) int {
	if a.Kind == FieldNumber && b.Kind == FieldNumber {
		switch {
		case a.Number < b.Number:
			return -1
		case a.Number > b.Number:
			return 1
		default:
			return 0
		}
	}
	if a.Kind == FieldNumber {
		return -1
	}
	if b.Kind == FieldNumber {
		return 1
	}
	return strings.Compare(a.Text, b.Text)
}
