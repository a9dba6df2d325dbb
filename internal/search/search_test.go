package search

import (
	"testing"

	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/parsererror"
	"fjacquet/receipt-csv/internal/sortengine"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []models.Record {
	return []models.Record{
		{ID: "1", Vendor: "Whole Foods Market", Date: "2024-01-05", Amount: decimal.RequireFromString("45.67"), Category: "groceries"},
		{ID: "2", Vendor: "Shell Station", Date: "2024-01-07", Amount: decimal.RequireFromString("30.00"), Category: "transport"},
		{ID: "3", Vendor: "Whole Foods Market", Date: "2024-02-01", Amount: decimal.RequireFromString("12.50"), Category: "groceries"},
		{ID: "4", Vendor: "Netflix", Date: "2024-02-15", Amount: decimal.RequireFromString("15.99"), Category: "entertainment"},
		{ID: "5", Vendor: "", Date: "", Category: "other"},
	}
}

func ids(records []models.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		known    bool
	}{
		{"linear", AlgorithmLinear, true},
		{"BINARY", AlgorithmBinary, true},
		{" fuzzy ", AlgorithmFuzzy, true},
		{"hash", AlgorithmHash, true},
		{"", AlgorithmLinear, true},
		{"quantum", AlgorithmLinear, false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			normalized, known := Normalize(tc.input)
			assert.Equal(t, tc.expected, normalized)
			assert.Equal(t, tc.known, known)
		})
	}
}

func TestLinear(t *testing.T) {
	records := testRecords()

	t.Run("substring match", func(t *testing.T) {
		results := Linear(records, "whole", models.FieldVendor)
		assert.Equal(t, []string{"1", "3"}, ids(results))
	})

	t.Run("case insensitive", func(t *testing.T) {
		results := Linear(records, "NETFLIX", models.FieldVendor)
		assert.Equal(t, []string{"4"}, ids(results))
	})

	t.Run("empty query matches everything", func(t *testing.T) {
		results := Linear(records, "", models.FieldVendor)
		assert.Len(t, results, len(records))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, Linear(records, "costco", models.FieldVendor))
	})

	t.Run("unknown field matches nothing", func(t *testing.T) {
		assert.Empty(t, Linear(records, "whole", "no_such_field"))
	})

	t.Run("category field", func(t *testing.T) {
		results := Linear(records, "groceries", models.FieldCategory)
		assert.Equal(t, []string{"1", "3"}, ids(results))
	})
}

func TestBinarySorted_AgreesWithLinearOnExactMatches(t *testing.T) {
	records := testRecords()
	sorted, err := sortengine.Sort(records, models.FieldVendor, false, sortengine.AlgorithmStable)
	require.NoError(t, err)

	results := BinarySorted(sorted, "whole foods market", models.FieldVendor)
	assert.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, "Whole Foods Market", r.Vendor)
	}
}

func TestBinarySorted_NoMatch(t *testing.T) {
	records := testRecords()
	sorted, err := sortengine.Sort(records, models.FieldVendor, false, sortengine.AlgorithmStable)
	require.NoError(t, err)

	assert.Empty(t, BinarySorted(sorted, "costco", models.FieldVendor))
}

func TestHash(t *testing.T) {
	records := testRecords()

	t.Run("exact match including duplicates", func(t *testing.T) {
		results := Hash(records, "Whole Foods Market", models.FieldVendor)
		assert.Equal(t, []string{"1", "3"}, ids(results))
	})

	t.Run("case insensitive", func(t *testing.T) {
		results := Hash(records, "SHELL STATION", models.FieldVendor)
		assert.Equal(t, []string{"2"}, ids(results))
	})

	t.Run("substring does not match", func(t *testing.T) {
		assert.Empty(t, Hash(records, "whole", models.FieldVendor))
	})
}

func TestFuzzy(t *testing.T) {
	records := testRecords()

	t.Run("close misspelling matches", func(t *testing.T) {
		results := Fuzzy(records, "Whole Foods Markt", models.FieldVendor, 0.8)
		assert.Equal(t, []string{"1", "3"}, ids(results))
	})

	t.Run("threshold one demands exact match", func(t *testing.T) {
		assert.Empty(t, Fuzzy(records, "Whole Foods Markt", models.FieldVendor, 1.0))

		results := Fuzzy(records, "whole foods market", models.FieldVendor, 1.0)
		assert.Equal(t, []string{"1", "3"}, ids(results))
	})

	t.Run("distant strings excluded", func(t *testing.T) {
		assert.Empty(t, Fuzzy(records, "Costco Wholesale", models.FieldVendor, 0.8))
	})
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("abc", "abc"))
	assert.Equal(t, 1.0, similarity("", ""))
	assert.InDelta(t, 0.75, similarity("abcd", "abcx"), 1e-9)
	assert.Equal(t, 0.0, similarity("abc", "xyz"))
}

func TestPattern(t *testing.T) {
	records := testRecords()

	t.Run("regex match", func(t *testing.T) {
		results, err := Pattern(records, `^Whole`, models.FieldVendor)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "3"}, ids(results))
	})

	t.Run("matches amounts", func(t *testing.T) {
		results, err := Pattern(records, `\.99$`, models.FieldAmount)
		require.NoError(t, err)
		assert.Equal(t, []string{"4"}, ids(results))
	})

	t.Run("invalid pattern reported", func(t *testing.T) {
		results, err := Pattern(records, `([`, models.FieldVendor)
		require.Error(t, err)
		assert.Empty(t, results)

		var patternErr *parsererror.InvalidPatternError
		assert.ErrorAs(t, err, &patternErr)
		assert.Equal(t, `([`, patternErr.Pattern)
	})
}

func TestRange(t *testing.T) {
	records := testRecords()

	t.Run("inclusive bounds", func(t *testing.T) {
		results := Range(records, models.FieldAmount, 12.50, 30.00)
		assert.Equal(t, []string{"2", "3", "4"}, ids(results))
	})

	t.Run("absent amounts excluded", func(t *testing.T) {
		results := Range(records, models.FieldAmount, 0, 1000)
		assert.NotContains(t, ids(results), "5")
	})

	t.Run("empty interval", func(t *testing.T) {
		assert.Empty(t, Range(records, models.FieldAmount, 100, 200))
	})
}
