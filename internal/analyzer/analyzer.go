// Package analyzer coordinates the search, sort and aggregation engines
// behind a single query surface. It owns algorithm selection and fallback:
// an unrecognized algorithm name degrades to the safe default (linear scan
// for search, stable sort for ordering) with a warning rather than an error.
package analyzer

import (
	"math"
	"time"

	"fjacquet/receipt-csv/internal/aggregate"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/parsererror"
	"fjacquet/receipt-csv/internal/search"
	"fjacquet/receipt-csv/internal/sortengine"
)

// Analyzer dispatches queries over an in-memory record collection. It holds
// only configuration, never data, so one instance serves any number of
// collections concurrently.
type Analyzer struct {
	logger         logging.Logger
	fuzzyThreshold float64
	windowSize     int
}

// New creates an Analyzer. A non-positive fuzzyThreshold or windowSize
// falls back to the defaults (0.8 similarity, 3-day window).
func New(logger logging.Logger, fuzzyThreshold float64, windowSize int) *Analyzer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if fuzzyThreshold <= 0 {
		fuzzyThreshold = search.DefaultFuzzyThreshold
	}
	if windowSize <= 0 {
		windowSize = 3
	}
	return &Analyzer{logger: logger, fuzzyThreshold: fuzzyThreshold, windowSize: windowSize}
}

// SearchCriteria describes one combined query. All set criteria must hold
// for a record to match (a conjunction); unset criteria are ignored.
type SearchCriteria struct {
	// Query is matched against Field using Algorithm.
	Query string
	// Pattern is a regular expression matched against Field.
	Pattern string
	// Field names the record field to match on; defaults to vendor.
	Field string
	// Algorithm selects the text-search algorithm: linear, binary, hash or
	// fuzzy. Unrecognized names fall back to linear.
	Algorithm string
	// MinAmount and MaxAmount bound the amount inclusively when set.
	MinAmount *float64
	MaxAmount *float64
	// DateFrom and DateTo bound the record date inclusively when set.
	// Records without a date never match a date bound.
	DateFrom *time.Time
	DateTo   *time.Time
}

// Search runs a text query with the named algorithm over the given field.
// Binary search sorts a copy of the input first, so callers never need to
// pre-sort.
func (a *Analyzer) Search(records []models.Record, query, field, algorithm string) []models.Record {
	if field == "" {
		field = models.FieldVendor
	}

	normalized, known := search.Normalize(algorithm)
	if !known {
		err := &parsererror.UnknownAlgorithmError{Kind: "search", Algorithm: algorithm}
		a.logger.WithError(err).WithFields(
			logging.Field{Key: logging.FieldAlgorithm, Value: algorithm},
		).Warn("Falling back to linear search")
	}

	switch normalized {
	case search.AlgorithmBinary:
		sorted, err := sortengine.Sort(records, field, false, sortengine.AlgorithmStable)
		if err != nil {
			// The field cannot be sorted on, so nothing can match it either.
			return nil
		}
		return search.BinarySorted(sorted, query, field)
	case search.AlgorithmHash:
		return search.Hash(records, query, field)
	case search.AlgorithmFuzzy:
		return search.Fuzzy(records, query, field, a.fuzzyThreshold)
	default:
		return search.Linear(records, query, field)
	}
}

// AdvancedSearch applies all set criteria in sequence: text query, pattern,
// amount range, then date range. An invalid regular expression yields an
// empty result with a warning instead of an error, matching the engine's
// degrade-not-fail posture.
func (a *Analyzer) AdvancedSearch(records []models.Record, criteria SearchCriteria) []models.Record {
	field := criteria.Field
	if field == "" {
		field = models.FieldVendor
	}

	results := records
	if criteria.Query != "" {
		results = a.Search(results, criteria.Query, field, criteria.Algorithm)
	}

	if criteria.Pattern != "" {
		matched, err := search.Pattern(results, criteria.Pattern, field)
		if err != nil {
			a.logger.WithError(err).WithFields(
				logging.Field{Key: "pattern", Value: criteria.Pattern},
			).Warn("Invalid search pattern, returning no matches")
			return nil
		}
		results = matched
	}

	if criteria.MinAmount != nil || criteria.MaxAmount != nil {
		lo, hi := 0.0, math.MaxFloat64
		if criteria.MinAmount != nil {
			lo = *criteria.MinAmount
		}
		if criteria.MaxAmount != nil {
			hi = *criteria.MaxAmount
		}
		results = search.Range(results, models.FieldAmount, lo, hi)
	}

	if criteria.DateFrom != nil || criteria.DateTo != nil {
		results = filterDateRange(results, criteria.DateFrom, criteria.DateTo)
	}

	return results
}

func filterDateRange(records []models.Record, from, to *time.Time) []models.Record {
	var results []models.Record
	for i := range records {
		t, ok := records[i].DateTime()
		if !ok {
			continue
		}
		if from != nil && t.Before(*from) {
			continue
		}
		if to != nil && t.After(*to) {
			continue
		}
		results = append(results, records[i])
	}
	return results
}

// Sort orders records on the named field. Unknown algorithm names degrade
// to the stable sort with a warning; an unknown field name is a caller
// error and is returned as one.
func (a *Analyzer) Sort(records []models.Record, field string, descending bool, algorithm string) ([]models.Record, error) {
	normalized, known := sortengine.Normalize(algorithm)
	if !known {
		err := &parsererror.UnknownAlgorithmError{Kind: "sort", Algorithm: algorithm}
		a.logger.WithError(err).WithFields(
			logging.Field{Key: logging.FieldAlgorithm, Value: algorithm},
		).Warn("Falling back to stable sort")
	}
	return sortengine.Sort(records, field, descending, normalized)
}

// Aggregations is the standard analytics bundle reported by the stats
// surface.
type Aggregations struct {
	Amounts          aggregate.Summary       `json:"amounts" yaml:"amounts"`
	VendorFrequency  map[string]int          `json:"vendor_frequency" yaml:"vendor_frequency"`
	CategoryTotals   map[string]int          `json:"category_frequency" yaml:"category_frequency"`
	MonthlyTrends    []aggregate.TimePoint   `json:"monthly_trends" yaml:"monthly_trends"`
	SpendingSmoothed []aggregate.WindowPoint `json:"sliding_window_average" yaml:"sliding_window_average"`
}

// Aggregate computes the full analytics bundle over the collection: the
// amount summary, vendor and category frequencies, monthly spending trends
// and the sliding-window daily average.
func (a *Analyzer) Aggregate(records []models.Record) Aggregations {
	return Aggregations{
		Amounts:          aggregate.StatisticalSummary(records, models.FieldAmount),
		VendorFrequency:  aggregate.FrequencyDistribution(records, models.FieldVendor),
		CategoryTotals:   aggregate.FrequencyDistribution(records, models.FieldCategory),
		MonthlyTrends:    aggregate.TimeSeries(records, models.FieldAmount, aggregate.IntervalMonth),
		SpendingSmoothed: aggregate.SlidingWindowAverage(records, models.FieldAmount, a.windowSize),
	}
}
