// Package stats handles the statistics command
package stats

import (
	"fmt"

	"fjacquet/receipt-csv/cmd/root"
	"fjacquet/receipt-csv/internal/aggregate"
	"fjacquet/receipt-csv/internal/analyzer"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Cmd represents the stats command
var Cmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics over stored records",
	Long: `Stats computes the descriptive summary of spending (sum, mean, median,
mode, spread), vendor and category frequencies, spending trends per period
and a sliding-window daily average.`,
	RunE: statsFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Interval, "interval", "t", "month", "Trend bucket interval: month, year or week")
	Cmd.Flags().IntVarP(&root.WindowSize, "window", "w", 0, "Sliding window size in days (default from configuration)")
}

func statsFunc(cmd *cobra.Command, args []string) error {
	records, err := store.NewRecordStore(root.RecordsPath()).Load()
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	window := root.WindowSize
	if window <= 0 {
		window = root.Cfg.GetWindowSize()
	}

	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	engine := analyzer.New(logger, root.Cfg.GetFuzzyThreshold(), window)

	bundle := engine.Aggregate(records)
	if root.Interval != aggregate.IntervalMonth {
		bundle.MonthlyTrends = aggregate.TimeSeries(records, models.FieldAmount, root.Interval)
	}

	root.Log.WithField(logging.FieldCount, len(records)).Info("Statistics computed")

	out, err := yaml.Marshal(statsView(bundle))
	if err != nil {
		return fmt.Errorf("failed to render statistics: %w", err)
	}
	cmd.Print(string(out))
	return nil
}

// The view types mirror the aggregation bundle with decimals rendered as
// fixed-point strings, which keeps amounts exact in the YAML output.

type summaryView struct {
	Count    int      `yaml:"count"`
	Sum      string   `yaml:"sum"`
	Mean     *string  `yaml:"mean,omitempty"`
	Median   *string  `yaml:"median,omitempty"`
	Min      *string  `yaml:"min,omitempty"`
	Max      *string  `yaml:"max,omitempty"`
	Mode     *string  `yaml:"mode,omitempty"`
	StdDev   *float64 `yaml:"std_dev,omitempty"`
	Variance *float64 `yaml:"variance,omitempty"`
}

type trendView struct {
	Period string `yaml:"period"`
	Total  string `yaml:"total"`
	Count  int    `yaml:"count"`
}

type windowView struct {
	Date    string `yaml:"date"`
	Average string `yaml:"average"`
}

type bundleView struct {
	Amounts           summaryView    `yaml:"amounts"`
	VendorFrequency   map[string]int `yaml:"vendor_frequency"`
	CategoryFrequency map[string]int `yaml:"category_frequency"`
	Trends            []trendView    `yaml:"trends"`
	SlidingWindow     []windowView   `yaml:"sliding_window_average"`
}

func statsView(bundle analyzer.Aggregations) bundleView {
	view := bundleView{
		Amounts:           summaryViewOf(bundle.Amounts),
		VendorFrequency:   bundle.VendorFrequency,
		CategoryFrequency: bundle.CategoryTotals,
	}
	for _, p := range bundle.MonthlyTrends {
		view.Trends = append(view.Trends, trendView{
			Period: p.Period,
			Total:  p.Total.StringFixed(2),
			Count:  p.Count,
		})
	}
	for _, w := range bundle.SpendingSmoothed {
		view.SlidingWindow = append(view.SlidingWindow, windowView{
			Date:    w.Date,
			Average: w.Average.StringFixed(2),
		})
	}
	return view
}

func summaryViewOf(s aggregate.Summary) summaryView {
	view := summaryView{
		Count:    s.Count,
		Sum:      s.Sum.StringFixed(2),
		Mode:     s.Mode,
		StdDev:   s.StdDev,
		Variance: s.Variance,
	}
	if s.Mean != nil {
		mean := s.Mean.StringFixed(2)
		view.Mean = &mean
	}
	if s.Median != nil {
		median := s.Median.StringFixed(2)
		view.Median = &median
	}
	if s.Min != nil {
		minStr := s.Min.StringFixed(2)
		view.Min = &minStr
	}
	if s.Max != nil {
		maxStr := s.Max.StringFixed(2)
		view.Max = &maxStr
	}
	return view
}
