package store

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategoryRules(t *testing.T) {
	rules := DefaultCategoryRules()
	require.Len(t, rules, 7)

	// Priority order matters: groceries must be evaluated first and is the
	// only rule with text keywords.
	assert.Equal(t, models.CategoryGroceries, rules[0].Name)
	assert.NotEmpty(t, rules[0].TextKeywords)
	for _, rule := range rules[1:] {
		assert.Empty(t, rule.TextKeywords, rule.Name)
	}

	for _, rule := range rules {
		assert.True(t, models.IsValidCategory(rule.Name), rule.Name)
		assert.NotEmpty(t, rule.Keywords, rule.Name)
	}
}

func TestCategoryStore_LoadMissingFileUsesDefaults(t *testing.T) {
	s := NewCategoryStore(filepath.Join(t.TempDir(), "nope.yaml"))
	rules, err := s.LoadCategories()
	require.NoError(t, err)
	assert.Equal(t, DefaultCategoryRules(), rules)
}

func TestCategoryStore_LoadTopLevelKey(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "categories.yaml")
	content := `categories:
  - name: groceries
    keywords: [grocery, market]
    text_keywords: [milk]
  - name: transport
    keywords: [uber]
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	rules, err := NewCategoryStore(file).LoadCategories()
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "groceries", rules[0].Name)
	assert.Equal(t, []string{"grocery", "market"}, rules[0].Keywords)
	assert.Equal(t, []string{"milk"}, rules[0].TextKeywords)
	assert.Equal(t, "transport", rules[1].Name)
}

func TestCategoryStore_LoadBareList(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "categories.yaml")
	content := `- name: restaurant
  keywords: [pizza]
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	rules, err := NewCategoryStore(file).LoadCategories()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "restaurant", rules[0].Name)
}

func TestCategoryStore_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "categories.yaml")
	s := NewCategoryStore(file)

	original := []CategoryRule{
		{Name: "groceries", Keywords: []string{"market"}, TextKeywords: []string{"bread"}},
		{Name: "transport", Keywords: []string{"uber", "taxi"}},
	}
	require.NoError(t, s.SaveCategories(original))

	loaded, err := s.LoadCategories()
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestRecordStore_LoadMissingFile(t *testing.T) {
	s := NewRecordStore(filepath.Join(t.TempDir(), "records.csv"))
	records, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordStore_SaveAndLoadRoundTrip(t *testing.T) {
	s := NewRecordStore(filepath.Join(t.TempDir(), "data", "records.csv"))

	records := []models.Record{
		{
			ID:              "id-1",
			Vendor:          "Whole Foods Market",
			Date:            "2024-01-05",
			Amount:          decimal.RequireFromString("45.67"),
			Category:        "groceries",
			ConfidenceScore: 1.0,
			RawText:         "WHOLE FOODS MARKET\nTOTAL $45.67",
			FileName:        "receipt.txt",
			FileType:        models.FileTypeText,
		},
	}
	require.NoError(t, s.Save(records))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "id-1", loaded[0].ID)
	assert.Equal(t, "Whole Foods Market", loaded[0].Vendor)
	assert.True(t, loaded[0].Amount.Equal(decimal.RequireFromString("45.67")))
	assert.Equal(t, "groceries", loaded[0].Category)
	assert.Contains(t, loaded[0].RawText, "TOTAL $45.67")
}

func TestRecordStore_AppendAssignsIdentity(t *testing.T) {
	s := NewRecordStore(filepath.Join(t.TempDir(), "records.csv"))

	first, err := s.Append(models.Record{Vendor: "Shell Station", Amount: decimal.NewFromInt(30)})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.CreatedAt)

	second, err := s.Append(models.Record{Vendor: "Netflix", Amount: decimal.NewFromInt(16)})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	records, err := s.Load()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Shell Station", records[0].Vendor)
	assert.Equal(t, "Netflix", records[1].Vendor)
}

func TestRecordStore_MalformedCSV(t *testing.T) {
	file := filepath.Join(t.TempDir(), "records.csv")
	require.NoError(t, os.WriteFile(file, []byte("ID,Vendor\n\"unterminated"), 0o600))

	_, err := NewRecordStore(file).Load()
	require.Error(t, err)

	var formatErr *parsererror.InvalidFormatError
	assert.ErrorAs(t, err, &formatErr)
}
