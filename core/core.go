// Package core has core logic for loading, cleaning, aggregation and model fitting.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/rmonroe/shotline/internal/chart"
	"github.com/rmonroe/shotline/internal/contract"
	"github.com/rmonroe/shotline/internal/dataset"
	"github.com/rmonroe/shotline/internal/outwriter"
	"github.com/rmonroe/shotline/schema"
)

// ExecuteFetch downloads, cleans and persists the dataset, then prints the
// clean report. It serves as the main entry point for the 'fetch' command.
func ExecuteFetch(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, mgr contract.StoreManager) error {
	start := time.Now()
	_, report, err := fetchDataset(ctx, cfg, fetcher, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintCleanReport(report, cfg, time.Since(start))
}

// ExecuteYearly prints the annual summary table (year, incidents, deaths).
func ExecuteYearly(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, mgr contract.StoreManager) error {
	start := time.Now()
	summaries, _, err := GetYearlySummaries(ctx, cfg, fetcher, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintYearlyResults(summaries, cfg, time.Since(start))
}

// ExecuteBoroughs prints incident counts grouped by borough.
func ExecuteBoroughs(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, mgr contract.StoreManager) error {
	start := time.Now()
	counts, err := GetGroupCounts(ctx, cfg, fetcher, mgr, schema.GroupBorough)
	if err != nil {
		return err
	}
	return outwriter.PrintGroupResults(counts, cfg, time.Since(start))
}

// ExecuteDemographics prints incident counts for the configured grouping key.
func ExecuteDemographics(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, mgr contract.StoreManager) error {
	start := time.Now()
	counts, err := GetGroupCounts(ctx, cfg, fetcher, mgr, cfg.Group)
	if err != nil {
		return err
	}
	return outwriter.PrintGroupResults(counts, cfg, time.Since(start))
}

// ExecuteRegress fits the OLS model of annual deaths on annual incidents,
// records the run, and prints the fit summary.
func ExecuteRegress(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := GetRegression(ctx, cfg, fetcher, mgr)
	if err != nil {
		return err
	}
	recordRun(cfg, mgr, "regress", &result)
	return outwriter.PrintRegressionResult(result, cfg, time.Since(start))
}

// ExecuteCharts renders the descriptive charts to the configured directory.
func ExecuteCharts(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, mgr contract.StoreManager) error {
	incidents, _, err := loadDataset(ctx, cfg, fetcher, mgr)
	if err != nil {
		return err
	}
	files, err := renderCharts(cfg, incidents)
	if err != nil {
		return err
	}
	outwriter.PrintChartFiles(files)
	return nil
}

// ExecuteReport runs the whole pipeline end to end: fetch/clean, yearly
// aggregation, borough counts, charts, and the regression summary.
func ExecuteReport(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, mgr contract.StoreManager) error {
	start := time.Now()
	incidents, report, err := loadDataset(ctx, cfg, fetcher, mgr)
	if err != nil {
		return err
	}
	if err := outwriter.PrintCleanReport(report, cfg, time.Since(start)); err != nil {
		return err
	}

	summaries := YearlySummaries(incidents)
	if err := outwriter.PrintYearlyResults(summaries, cfg, time.Since(start)); err != nil {
		return err
	}
	if err := outwriter.PrintGroupResults(GroupCounts(incidents, schema.GroupBorough), cfg, time.Since(start)); err != nil {
		return err
	}

	files, err := renderCharts(cfg, incidents)
	if err != nil {
		return err
	}
	outwriter.PrintChartFiles(files)

	result, err := FitYearly(summaries)
	if err != nil {
		return fmt.Errorf("regression failed: %w", err)
	}
	recordRun(cfg, mgr, "report", &result)
	return outwriter.PrintRegressionResult(result, cfg, time.Since(start))
}

// GetYearlySummaries loads the dataset and aggregates it by year. Exposed
// for the MCP handlers.
func GetYearlySummaries(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, mgr contract.StoreManager) ([]schema.YearSummary, schema.CleanReport, error) {
	incidents, report, err := loadDataset(ctx, cfg, fetcher, mgr)
	if err != nil {
		return nil, report, err
	}
	return YearlySummaries(incidents), report, nil
}

// GetGroupCounts loads the dataset and aggregates it by a categorical key.
// Exposed for the MCP handlers.
func GetGroupCounts(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, mgr contract.StoreManager, key schema.GroupKey) ([]schema.GroupCount, error) {
	incidents, _, err := loadDataset(ctx, cfg, fetcher, mgr)
	if err != nil {
		return nil, err
	}
	return GroupCounts(incidents, key), nil
}

// GetRegression loads the dataset, aggregates by year and fits the model.
// Exposed for the MCP handlers.
func GetRegression(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, mgr contract.StoreManager) (schema.RegressionResult, error) {
	summaries, _, err := GetYearlySummaries(ctx, cfg, fetcher, mgr)
	if err != nil {
		return schema.RegressionResult{}, err
	}
	result, err := FitYearly(summaries)
	if err != nil {
		return schema.RegressionResult{}, fmt.Errorf("regression failed: %w", err)
	}
	return result, nil
}

// loadDataset returns the cleaned dataset, preferring the store over a
// fresh download unless --refresh was given.
func loadDataset(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, mgr contract.StoreManager) ([]schema.Incident, schema.CleanReport, error) {
	if !cfg.Refresh {
		store := mgr.GetDatasetStore()
		incidents, report, ok, err := store.LoadIncidents()
		if err != nil {
			contract.LogWarn("Could not read dataset store, falling back to download", err)
		} else if ok {
			return incidents, report, nil
		}
	}
	return fetchDataset(ctx, cfg, fetcher, mgr)
}

// fetchDataset performs the download, cleaning and persistence steps.
func fetchDataset(ctx context.Context, cfg *contract.Config, fetcher contract.Fetcher, mgr contract.StoreManager) ([]schema.Incident, schema.CleanReport, error) {
	raw, err := fetcher.Fetch(ctx, cfg.DatasetURL)
	if err != nil {
		return nil, schema.CleanReport{}, err
	}

	incidents, report, err := dataset.Parse(raw)
	if err != nil {
		return nil, report, err
	}
	report.SourceURL = cfg.DatasetURL

	if err := mgr.GetDatasetStore().SaveIncidents(incidents, report); err != nil {
		contract.LogWarn("Could not persist dataset", err)
	}
	return incidents, report, nil
}

// renderCharts computes the chart aggregates and renders all chart kinds.
func renderCharts(cfg *contract.Config, incidents []schema.Incident) ([]string, error) {
	input := chart.Input{
		Yearly:    YearlySummaries(incidents),
		Boroughs:  GroupCounts(incidents, schema.GroupBorough),
		VictimSex: GroupCounts(incidents, schema.GroupVicSex),
	}
	return chart.RenderAll(cfg.ChartDir, input)
}

// recordRun stores the run outcome for later inspection. Failures are
// warnings, not fatal: the analysis already succeeded.
func recordRun(cfg *contract.Config, mgr contract.StoreManager, command string, result *schema.RegressionResult) {
	params := map[string]any{
		"command": command,
		"url":     cfg.DatasetURL,
		"output":  string(cfg.Output),
	}
	if _, err := mgr.GetRunStore().RecordRun(params, result); err != nil {
		contract.LogWarn("Run tracking failed", err)
	}
}
