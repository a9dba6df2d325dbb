package aggregate

import (
	"testing"

	"fjacquet/receipt-csv/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testRecords() []models.Record {
	return []models.Record{
		{ID: "1", Vendor: "Whole Foods Market", Date: "2024-01-05", Amount: amount("40.00"), Category: "groceries"},
		{ID: "2", Vendor: "Shell Station", Date: "2024-01-07", Amount: amount("30.00"), Category: "transport"},
		{ID: "3", Vendor: "Whole Foods Market", Date: "2024-02-01", Amount: amount("20.00"), Category: "groceries"},
		{ID: "4", Vendor: "Netflix", Date: "2024-02-15", Amount: amount("10.00"), Category: "entertainment"},
		{ID: "5", Vendor: "Scribble", Date: "", Category: "other"}, // no amount, no date
	}
}

func TestSum(t *testing.T) {
	total := Sum(testRecords(), models.FieldAmount)
	assert.True(t, total.Equal(amount("100.00")), "got %s", total)

	assert.True(t, Sum(nil, models.FieldAmount).IsZero())
}

func TestMean(t *testing.T) {
	mean, ok := Mean(testRecords(), models.FieldAmount)
	require.True(t, ok)
	assert.True(t, mean.Equal(amount("25.00")), "got %s", mean)

	_, ok = Mean(nil, models.FieldAmount)
	assert.False(t, ok)
}

func TestSumEqualsMeanTimesCount(t *testing.T) {
	records := testRecords()
	mean, ok := Mean(records, models.FieldAmount)
	require.True(t, ok)

	// 4 records carry an amount.
	assert.True(t, Sum(records, models.FieldAmount).Equal(mean.Mul(decimal.NewFromInt(4))))
}

func TestMedian(t *testing.T) {
	t.Run("even count averages middle pair", func(t *testing.T) {
		median, ok := Median(testRecords(), models.FieldAmount)
		require.True(t, ok)
		assert.True(t, median.Equal(amount("25.00")), "got %s", median)
	})

	t.Run("odd count takes middle", func(t *testing.T) {
		records := testRecords()[:3]
		median, ok := Median(records, models.FieldAmount)
		require.True(t, ok)
		assert.True(t, median.Equal(amount("30.00")), "got %s", median)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := Median(nil, models.FieldAmount)
		assert.False(t, ok)
	})
}

func TestMode(t *testing.T) {
	t.Run("most frequent vendor", func(t *testing.T) {
		mode, ok := Mode(testRecords(), models.FieldVendor)
		require.True(t, ok)
		assert.Equal(t, "Whole Foods Market", mode)
	})

	t.Run("no mode when all values distinct", func(t *testing.T) {
		records := []models.Record{
			{Vendor: "A"}, {Vendor: "B"}, {Vendor: "C"},
		}
		_, ok := Mode(records, models.FieldVendor)
		assert.False(t, ok)
	})

	t.Run("no mode when counts are uniform", func(t *testing.T) {
		records := []models.Record{
			{Vendor: "A"}, {Vendor: "A"}, {Vendor: "B"}, {Vendor: "B"},
		}
		_, ok := Mode(records, models.FieldVendor)
		assert.False(t, ok)
	})

	t.Run("single repeated value is the mode", func(t *testing.T) {
		records := []models.Record{
			{Vendor: "A"}, {Vendor: "A"}, {Vendor: "A"},
		}
		mode, ok := Mode(records, models.FieldVendor)
		require.True(t, ok)
		assert.Equal(t, "A", mode)
	})

	t.Run("no mode when nothing repeats", func(t *testing.T) {
		records := []models.Record{{Vendor: "A"}}
		_, ok := Mode(records, models.FieldVendor)
		assert.False(t, ok)
	})

	t.Run("first seen wins among tied maxima", func(t *testing.T) {
		records := []models.Record{
			{Vendor: "B"}, {Vendor: "B"}, {Vendor: "A"}, {Vendor: "A"}, {Vendor: "C"},
		}
		mode, ok := Mode(records, models.FieldVendor)
		require.True(t, ok)
		assert.Equal(t, "B", mode)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := Mode(nil, models.FieldVendor)
		assert.False(t, ok)
	})
}

func TestFrequencyDistribution(t *testing.T) {
	freq := FrequencyDistribution(testRecords(), models.FieldCategory)
	assert.Equal(t, map[string]int{
		"groceries":     2,
		"transport":     1,
		"entertainment": 1,
		"other":         1,
	}, freq)

	// Absent vendors are not counted.
	vendors := FrequencyDistribution(testRecords(), models.FieldVendor)
	assert.Equal(t, 2, vendors["Whole Foods Market"])
	assert.NotContains(t, vendors, "")
}

func TestTimeSeries(t *testing.T) {
	t.Run("monthly buckets", func(t *testing.T) {
		series := TimeSeries(testRecords(), models.FieldAmount, IntervalMonth)
		require.Len(t, series, 2)

		assert.Equal(t, "2024-01", series[0].Period)
		assert.True(t, series[0].Total.Equal(amount("70.00")))
		assert.Equal(t, 2, series[0].Count)

		assert.Equal(t, "2024-02", series[1].Period)
		assert.True(t, series[1].Total.Equal(amount("30.00")))
		assert.Equal(t, 2, series[1].Count)
	})

	t.Run("yearly buckets", func(t *testing.T) {
		series := TimeSeries(testRecords(), models.FieldAmount, IntervalYear)
		require.Len(t, series, 1)
		assert.Equal(t, "2024", series[0].Period)
		assert.True(t, series[0].Total.Equal(amount("100.00")))
		assert.Equal(t, 4, series[0].Count)
	})

	t.Run("weekly buckets use ISO week keys", func(t *testing.T) {
		series := TimeSeries(testRecords(), models.FieldAmount, IntervalWeek)
		require.NotEmpty(t, series)
		// 2024-01-05 falls in ISO week 1 of 2024.
		assert.Equal(t, "2024-W01", series[0].Period)
	})

	t.Run("dateless records skipped", func(t *testing.T) {
		total := 0
		for _, p := range TimeSeries(testRecords(), models.FieldAmount, IntervalMonth) {
			total += p.Count
		}
		assert.Equal(t, 4, total)
	})
}

func TestSlidingWindowAverage(t *testing.T) {
	records := []models.Record{
		{Date: "2024-01-01", Amount: amount("10.00")},
		{Date: "2024-01-02", Amount: amount("20.00")},
		{Date: "2024-01-03", Amount: amount("30.00")},
		{Date: "2024-01-04", Amount: amount("40.00")},
		{Date: "2024-01-02", Amount: amount("5.00")}, // same day, summed
	}

	points := SlidingWindowAverage(records, models.FieldAmount, 3)
	require.Len(t, points, 2)

	// Daily totals: 10, 25, 30, 40.
	assert.Equal(t, "2024-01-02", points[0].Date)
	assert.True(t, points[0].Average.Round(4).Equal(amount("21.6667")), "got %s", points[0].Average)

	assert.Equal(t, "2024-01-03", points[1].Date)
	assert.True(t, points[1].Average.Round(4).Equal(amount("31.6667")), "got %s", points[1].Average)
}

func TestSlidingWindowAverage_AmountlessDateNotObserved(t *testing.T) {
	records := []models.Record{
		{Date: "2024-01-01", Amount: amount("10.00")},
		{Date: "2024-01-02"}, // dated but no amount
		{Date: "2024-01-03", Amount: amount("30.00")},
	}

	// Only two days carry amounts, so a window of three has nothing to slide
	// over. The amount-less day must not become a zero-total day.
	assert.Nil(t, SlidingWindowAverage(records, models.FieldAmount, 3))

	points := SlidingWindowAverage(records, models.FieldAmount, 2)
	require.Len(t, points, 1)
	assert.Equal(t, "2024-01-03", points[0].Date)
	assert.True(t, points[0].Average.Equal(amount("20.00")), "got %s", points[0].Average)
}

func TestSlidingWindowAverage_Edges(t *testing.T) {
	records := []models.Record{
		{Date: "2024-01-01", Amount: amount("10.00")},
		{Date: "2024-01-02", Amount: amount("20.00")},
	}

	assert.Nil(t, SlidingWindowAverage(records, models.FieldAmount, 3), "fewer dates than window")
	assert.Nil(t, SlidingWindowAverage(records, models.FieldAmount, 0), "non-positive window")

	points := SlidingWindowAverage(records, models.FieldAmount, 1)
	require.Len(t, points, 2)
	assert.True(t, points[0].Average.Equal(amount("10.00")))
}

func TestStatisticalSummary(t *testing.T) {
	summary := StatisticalSummary(testRecords(), models.FieldAmount)

	assert.Equal(t, 4, summary.Count)
	assert.True(t, summary.Sum.Equal(amount("100.00")))
	require.NotNil(t, summary.Mean)
	assert.True(t, summary.Mean.Equal(amount("25.00")))
	require.NotNil(t, summary.Median)
	assert.True(t, summary.Median.Equal(amount("25.00")))
	require.NotNil(t, summary.Min)
	assert.True(t, summary.Min.Equal(amount("10.00")))
	require.NotNil(t, summary.Max)
	assert.True(t, summary.Max.Equal(amount("40.00")))

	// Sample statistics over 10, 20, 30, 40.
	require.NotNil(t, summary.Variance)
	assert.InDelta(t, 166.6667, *summary.Variance, 1e-3)
	require.NotNil(t, summary.StdDev)
	assert.InDelta(t, 12.9099, *summary.StdDev, 1e-3)

	// Every amount is distinct, so there is no mode.
	assert.Nil(t, summary.Mode)
}

func TestStatisticalSummary_Empty(t *testing.T) {
	summary := StatisticalSummary(nil, models.FieldAmount)

	assert.Zero(t, summary.Count)
	assert.True(t, summary.Sum.IsZero())
	assert.Nil(t, summary.Mean)
	assert.Nil(t, summary.Median)
	assert.Nil(t, summary.Min)
	assert.Nil(t, summary.Max)
	assert.Nil(t, summary.Mode)
	assert.Nil(t, summary.StdDev)
	assert.Nil(t, summary.Variance)
}

func TestStatisticalSummary_SingleValue(t *testing.T) {
	records := []models.Record{{Amount: amount("42.00")}}
	summary := StatisticalSummary(records, models.FieldAmount)

	assert.Equal(t, 1, summary.Count)
	require.NotNil(t, summary.Mean)
	assert.True(t, summary.Mean.Equal(amount("42.00")))
	assert.Nil(t, summary.StdDev, "dispersion needs at least two values")
	assert.Nil(t, summary.Variance)
	assert.Nil(t, summary.Mode, "a mode needs a repeated value")
}
