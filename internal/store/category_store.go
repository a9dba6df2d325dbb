// Package store provides functionality for storing and retrieving
// application data: the category keyword configuration and the record CSV
// database.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/receipt-csv/internal/config"
	"fjacquet/receipt-csv/internal/models"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// CategoryRule is one entry of the categorization configuration. Keywords
// match against the vendor name; TextKeywords match against the full receipt
// text. Rules are evaluated in file order, first match wins.
type CategoryRule struct {
	Name         string   `yaml:"name"`
	Keywords     []string `yaml:"keywords"`
	TextKeywords []string `yaml:"text_keywords,omitempty"`
}

// CategoriesConfig is the top-level structure of the categories YAML file.
type CategoriesConfig struct {
	Categories []CategoryRule `yaml:"categories"`
}

// CategoryStore loads category rules from YAML configuration.
type CategoryStore struct {
	CategoriesFile string
}

// NewCategoryStore creates a store reading the given categories file.
// An empty path falls back to the default search locations.
func NewCategoryStore(categoriesFile string) *CategoryStore {
	return &CategoryStore{CategoriesFile: categoriesFile}
}

// FindConfigFile looks for a configuration file in standard locations:
// the path itself, ./config/, and ~/.config/receipt-csv/.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "receipt-csv", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadCategories loads category rules from the YAML file. When no file is
// found the embedded defaults are returned, so categorization always has a
// rule set to work with.
func (s *CategoryStore) LoadCategories() ([]CategoryRule, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Categories file not found, using built-in defaults: %s", filename)
			return DefaultCategoryRules(), nil
		}
		return nil, fmt.Errorf("error resolving categories file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	var categoriesConfig CategoriesConfig
	if err := yaml.Unmarshal(data, &categoriesConfig); err == nil && len(categoriesConfig.Categories) > 0 {
		log.Debugf("Loaded %d category rules from %s", len(categoriesConfig.Categories), filePath)
		return categoriesConfig.Categories, nil
	}

	// Fallback: a bare list without the top-level key
	var rules []CategoryRule
	if err := yaml.Unmarshal(data, &rules); err == nil && len(rules) > 0 {
		log.Debugf("Loaded %d category rules from %s (bare list)", len(rules), filePath)
		return rules, nil
	}

	log.Warnf("Categories file %s has no usable rules, using built-in defaults", filePath)
	return DefaultCategoryRules(), nil
}

// SaveCategories writes category rules back to the YAML file.
func (s *CategoryStore) SaveCategories(rules []CategoryRule) error {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	data, err := yaml.Marshal(CategoriesConfig{Categories: rules})
	if err != nil {
		return fmt.Errorf("error marshalling categories: %w", err)
	}

	if err := os.WriteFile(filename, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing categories file: %w", err)
	}
	return nil
}

// DefaultCategoryRules returns the built-in rule set, ordered by priority.
// Groceries additionally matches food-item tokens anywhere in the receipt
// text; every other category matches vendor keywords only.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{
			Name:     models.CategoryGroceries,
			Keywords: []string{"grocery", "supermarket", "market", "food", "fresh", "organic", "whole foods", "trader joe", "safeway", "kroger"},
			TextKeywords: []string{
				"orange juice", "apples", "tomato", "fish", "beef", "onion",
				"cheese", "milk", "bread", "eggs", "vegetables", "fruits",
			},
		},
		{
			Name:     models.CategoryRestaurant,
			Keywords: []string{"restaurant", "cafe", "diner", "pizza", "burger", "mcdonalds", "kfc", "subway", "starbucks", "coffee"},
		},
		{
			Name:     models.CategoryTransport,
			Keywords: []string{"uber", "lyft", "taxi", "gas", "fuel", "shell", "exxon", "chevron", "bp", "transport", "parking"},
		},
		{
			Name:     models.CategoryEntertainment,
			Keywords: []string{"movie", "theater", "cinema", "netflix", "spotify", "amazon prime", "hulu", "disney", "game", "entertainment"},
		},
		{
			Name:     models.CategoryShopping,
			Keywords: []string{"walmart", "target", "amazon", "best buy", "home depot", "lowes", "macy", "nordstrom", "shopping", "store"},
		},
		{
			Name:     models.CategoryUtilities,
			Keywords: []string{"electric", "gas", "water", "internet", "phone", "cable", "utility", "at&t", "verizon", "comcast"},
		},
		{
			Name:     models.CategoryHealthcare,
			Keywords: []string{"pharmacy", "drug", "cvs", "walgreens", "rite aid", "medical", "doctor", "hospital", "clinic", "health"},
		},
	}
}
