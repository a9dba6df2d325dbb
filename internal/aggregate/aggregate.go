// Package aggregate computes statistics over record collections: totals,
// central tendency, frequency distributions, time-bucketed series and
// sliding-window averages.
//
// Monetary math stays in decimal form end to end; float64 only appears for
// the dispersion measures (standard deviation, variance), which are
// estimates rather than ledger values.
package aggregate

import (
	"sort"

	"fjacquet/receipt-csv/internal/dateutils"
	"fjacquet/receipt-csv/internal/models"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Time-series bucket intervals.
const (
	IntervalMonth = "month"
	IntervalYear  = "year"
	IntervalWeek  = "week"
)

// values collects the numeric values of the named field, skipping records
// where the field is absent or not numeric. Amounts are taken as decimals
// directly so no precision is lost on the round trip.
func values(records []models.Record, field string) []decimal.Decimal {
	var out []decimal.Decimal
	for i := range records {
		if field == models.FieldAmount {
			if records[i].HasAmount() {
				out = append(out, records[i].Amount)
			}
			continue
		}
		if f, ok := records[i].FieldNumberOf(field); ok {
			out = append(out, decimal.NewFromFloat(f))
		}
	}
	return out
}

// Sum totals the named numeric field. Records without the field contribute
// nothing; an empty collection sums to zero.
func Sum(records []models.Record, field string) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values(records, field) {
		total = total.Add(v)
	}
	return total
}

// Mean computes the arithmetic mean of the named field. The second return
// value is false when no record carries the field.
func Mean(records []models.Record, field string) (decimal.Decimal, bool) {
	vals := values(records, field)
	if len(vals) == 0 {
		return decimal.Zero, false
	}
	total := decimal.Zero
	for _, v := range vals {
		total = total.Add(v)
	}
	return total.Div(decimal.NewFromInt(int64(len(vals)))), true
}

// Median computes the middle value of the named field, averaging the two
// central values for an even count. The second return value is false when no
// record carries the field.
func Median(records []models.Record, field string) (decimal.Decimal, bool) {
	vals := values(records, field)
	if len(vals) == 0 {
		return decimal.Zero, false
	}

	sort.Slice(vals, func(i, j int) bool { return vals[i].LessThan(vals[j]) })
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid], true
	}
	return vals[mid-1].Add(vals[mid]).Div(decimal.NewFromInt(2)), true
}

// Mode returns the most frequent value of the named field in its string
// form. There is no mode unless some value repeats: when every distinct
// value occurs equally often the second return value is false. Among ties
// for the maximum otherwise, the first-seen value wins.
func Mode(records []models.Record, field string) (string, bool) {
	counts := make(map[string]int)
	var order []string
	for i := range records {
		s, err := records[i].FieldString(field)
		if err != nil || s == "" {
			continue
		}
		if _, seen := counts[s]; !seen {
			order = append(order, s)
		}
		counts[s]++
	}
	if len(order) == 0 {
		return "", false
	}

	best, bestCount := "", 0
	uniform := true
	for _, v := range order {
		if counts[v] != counts[order[0]] {
			uniform = false
		}
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	if len(order) == 1 {
		if counts[order[0]] > 1 {
			return order[0], true
		}
		return "", false
	}
	if uniform {
		return "", false
	}
	return best, true
}

// FrequencyDistribution counts occurrences of each distinct value of the
// named field. Absent values are not counted.
func FrequencyDistribution(records []models.Record, field string) map[string]int {
	counts := make(map[string]int)
	for i := range records {
		s, err := records[i].FieldString(field)
		if err != nil || s == "" {
			continue
		}
		counts[s]++
	}
	return counts
}

// TimePoint is one bucket of a time series.
type TimePoint struct {
	Period string          `json:"period" yaml:"period"`
	Total  decimal.Decimal `json:"total" yaml:"total"`
	Count  int             `json:"count" yaml:"count"`
}

// TimeSeries buckets records by their date into the given interval (month,
// year or week) and totals the named value field per bucket. Records without
// a parseable date are skipped. Buckets come back sorted by period key;
// month, year and day keys sort chronologically as text, and ISO week keys
// sort chronologically within a week-year.
func TimeSeries(records []models.Record, valueField, interval string) []TimePoint {
	totals := make(map[string]*TimePoint)
	for i := range records {
		t, ok := records[i].DateTime()
		if !ok {
			continue
		}

		var key string
		switch interval {
		case IntervalYear:
			key = dateutils.YearKey(t)
		case IntervalWeek:
			key = dateutils.WeekKey(t)
		default:
			key = dateutils.MonthKey(t)
		}

		point, exists := totals[key]
		if !exists {
			point = &TimePoint{Period: key}
			totals[key] = point
		}
		point.Count++
		if valueField == models.FieldAmount {
			if records[i].HasAmount() {
				point.Total = point.Total.Add(records[i].Amount)
			}
		} else if f, ok := records[i].FieldNumberOf(valueField); ok {
			point.Total = point.Total.Add(decimal.NewFromFloat(f))
		}
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]TimePoint, 0, len(keys))
	for _, k := range keys {
		series = append(series, *totals[k])
	}
	return series
}

// WindowPoint is one step of a sliding-window average, keyed by the middle
// date of its window.
type WindowPoint struct {
	Date    string          `json:"date" yaml:"date"`
	Average decimal.Decimal `json:"average" yaml:"average"`
}

// SlidingWindowAverage smooths per-day totals of the named field with a
// moving window over the distinct dates observed in the data. Each output
// point averages `window` consecutive daily totals and is keyed by the
// middle date of the window. Fewer distinct dates than the window size
// yields no points.
func SlidingWindowAverage(records []models.Record, field string, window int) []WindowPoint {
	if window < 1 {
		return nil
	}

	daily := make(map[string]decimal.Decimal)
	for i := range records {
		if !records[i].HasDate() {
			continue
		}
		if field == models.FieldAmount {
			// A dated record without an amount is not an observed day.
			if records[i].HasAmount() {
				daily[records[i].Date] = daily[records[i].Date].Add(records[i].Amount)
			}
		} else if f, ok := records[i].FieldNumberOf(field); ok {
			daily[records[i].Date] = daily[records[i].Date].Add(decimal.NewFromFloat(f))
		}
	}

	dates := make([]string, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	if len(dates) < window {
		return nil
	}

	size := decimal.NewFromInt(int64(window))
	points := make([]WindowPoint, 0, len(dates)-window+1)
	for i := 0; i+window <= len(dates); i++ {
		total := decimal.Zero
		for _, d := range dates[i : i+window] {
			total = total.Add(daily[d])
		}
		points = append(points, WindowPoint{
			Date:    dates[i+window/2],
			Average: total.Div(size),
		})
	}
	return points
}

// Summary bundles the descriptive statistics of one numeric field. Pointer
// fields are nil when the statistic is undefined for the data: everything
// but Count and Sum for an empty collection, dispersion for fewer than two
// values, and Mode when no value stands out.
type Summary struct {
	Count    int              `json:"count" yaml:"count"`
	Sum      decimal.Decimal  `json:"sum" yaml:"sum"`
	Mean     *decimal.Decimal `json:"mean,omitempty" yaml:"mean,omitempty"`
	Median   *decimal.Decimal `json:"median,omitempty" yaml:"median,omitempty"`
	Min      *decimal.Decimal `json:"min,omitempty" yaml:"min,omitempty"`
	Max      *decimal.Decimal `json:"max,omitempty" yaml:"max,omitempty"`
	Mode     *string          `json:"mode,omitempty" yaml:"mode,omitempty"`
	StdDev   *float64         `json:"std_dev,omitempty" yaml:"std_dev,omitempty"`
	Variance *float64         `json:"variance,omitempty" yaml:"variance,omitempty"`
}

// StatisticalSummary computes the full descriptive bundle for the named
// field. Standard deviation and variance are sample statistics (n-1
// denominator) and require at least two values.
func StatisticalSummary(records []models.Record, field string) Summary {
	vals := values(records, field)
	summary := Summary{Count: len(vals)}
	if len(vals) == 0 {
		summary.Sum = decimal.Zero
		return summary
	}

	minVal, maxVal := vals[0], vals[0]
	total := decimal.Zero
	for _, v := range vals {
		total = total.Add(v)
		if v.LessThan(minVal) {
			minVal = v
		}
		if v.GreaterThan(maxVal) {
			maxVal = v
		}
	}
	summary.Sum = total

	mean := total.Div(decimal.NewFromInt(int64(len(vals))))
	summary.Mean = &mean
	summary.Min = &minVal
	summary.Max = &maxVal

	if median, ok := Median(records, field); ok {
		summary.Median = &median
	}
	if mode, ok := Mode(records, field); ok {
		summary.Mode = &mode
	}

	if len(vals) >= 2 {
		floats := make([]float64, len(vals))
		for i, v := range vals {
			floats[i], _ = v.Float64()
		}
		variance := stat.Variance(floats, nil)
		stdDev := stat.StdDev(floats, nil)
		summary.Variance = &variance
		summary.StdDev = &stdDev
	}

	return summary
}
