// Package search implements the record search algorithms: linear substring
// scan, binary search over a pre-sorted slice, hash lookup, fuzzy matching,
// regular expression matching and numeric range filtering.
//
// All functions are pure: they never mutate their input slice and hold no
// state between calls. Matching is case-insensitive throughout, and an
// unknown field name simply matches nothing (the field stringifies to "").
package search

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"sort"
	"strings"

	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/parsererror"
)

// Algorithm names accepted by the query coordinator.
const (
	AlgorithmLinear = "linear"
	AlgorithmBinary = "binary"
	AlgorithmHash   = "hash"
	AlgorithmFuzzy  = "fuzzy"
)

// DefaultFuzzyThreshold is the similarity cutoff used when no threshold is
// configured.
const DefaultFuzzyThreshold = 0.8

// Normalize maps an algorithm name to its canonical form. The second return
// value is false for names outside the supported set, letting callers fall
// back to linear search.
func Normalize(algorithm string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case AlgorithmLinear, "":
		return AlgorithmLinear, true
	case AlgorithmBinary:
		return AlgorithmBinary, true
	case AlgorithmHash:
		return AlgorithmHash, true
	case AlgorithmFuzzy:
		return AlgorithmFuzzy, true
	default:
		return AlgorithmLinear, false
	}
}

// fieldKey returns the lower-cased string form of a record field. Unknown
// fields yield "", so they never match a non-empty query.
func fieldKey(r *models.Record, field string) string {
	s, err := r.FieldString(field)
	if err != nil {
		return ""
	}
	return strings.ToLower(s)
}

// Linear scans every record for a case-insensitive substring match on the
// given field. An empty query matches every record.
func Linear(records []models.Record, query, field string) []models.Record {
	query = strings.ToLower(query)
	var results []models.Record
	for i := range records {
		if strings.Contains(fieldKey(&records[i], field), query) {
			results = append(results, records[i])
		}
	}
	return results
}

// BinarySorted finds exact matches on the given field using binary search.
// The input must already be sorted ascending on the field's lower-cased
// string form; callers that cannot guarantee that should sort first or use
// Linear. Duplicate keys are collected by walking outward from the first hit.
// The probe compares raw string forms, so a pre-sort keyed on normalized or
// numeric values can order such fields differently than the probe expects;
// plain text fields like vendor and category are the reliable targets.
func BinarySorted(sorted []models.Record, query, field string) []models.Record {
	query = strings.ToLower(query)

	i := sort.Search(len(sorted), func(i int) bool {
		return fieldKey(&sorted[i], field) >= query
	})

	var results []models.Record
	for ; i < len(sorted) && fieldKey(&sorted[i], field) == query; i++ {
		results = append(results, sorted[i])
	}
	return results
}

// Hash matches records whose field value hashes to the same digest as the
// query. The digest is MD5 over the lower-cased value; it is an equality
// index, not a security boundary.
func Hash(records []models.Record, query, field string) []models.Record {
	index := make(map[string][]int, len(records))
	for i := range records {
		h := hashKey(fieldKey(&records[i], field))
		index[h] = append(index[h], i)
	}

	var results []models.Record
	for _, i := range index[hashKey(strings.ToLower(query))] {
		results = append(results, records[i])
	}
	return results
}

func hashKey(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Fuzzy matches records whose field value is within the given Levenshtein
// similarity of the query. Similarity is 1 - distance/max(len); a threshold
// of 1.0 therefore demands an exact (case-insensitive) match.
func Fuzzy(records []models.Record, query, field string, threshold float64) []models.Record {
	query = strings.ToLower(query)
	var results []models.Record
	for i := range records {
		if similarity(fieldKey(&records[i], field), query) >= threshold {
			results = append(results, records[i])
		}
	}
	return results
}

// similarity computes normalized Levenshtein similarity in [0, 1].
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein computes edit distance with a two-row dynamic program.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// Pattern matches the field against a regular expression. A pattern that
// does not compile is reported as an InvalidPatternError alongside an empty
// result set; it never aborts the caller.
func Pattern(records []models.Record, pattern, field string) ([]models.Record, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &parsererror.InvalidPatternError{Pattern: pattern, Err: err}
	}

	var results []models.Record
	for i := range records {
		s, ferr := records[i].FieldString(field)
		if ferr != nil {
			continue
		}
		if re.MatchString(s) {
			results = append(results, records[i])
		}
	}
	return results, nil
}

// Range returns records whose field value falls inside [min, max]. Records
// where the field is absent or not numeric are excluded.
func Range(records []models.Record, field string, min, max float64) []models.Record {
	var results []models.Record
	for i := range records {
		v, ok := records[i].FieldNumberOf(field)
		if !ok {
			continue
		}
		if v >= min && v <= max {
			results = append(results, records[i])
		}
	}
	return results
}
