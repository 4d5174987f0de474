package cmdchart

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	cmdcalculate "gppd-stats/command/calculate"
	"gppd-stats/connectors/chart"
	"gppd-stats/connectors/config"
	"gppd-stats/domain/kpi"
)

// Run renders the report charts into the charts directory:
//
//	fuel_mix.png                 stacked % of plants per fuel category, per country
//	share_pie_<country>.png      category shares for the N least renewable countries
//	share_comparison.png         N least renewable countries, all years vs the recent year
func Run(args []string) error {
	cfg, err := config.LoadOrDefault(config.Path())
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("chart", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	cmdcalculate.BindFlags(fs, cfg)
	fs.StringVar(&cfg.Output.ChartsDir, "out", cfg.Output.ChartsDir, "directory for PNG charts")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	res, err := cmdcalculate.Compute(cfg)
	if err != nil {
		return err
	}
	files, err := Render(cfg.Output.ChartsDir, res, cfg.Pipeline.TopN, cfg.Pipeline.RecentYear)
	if err != nil {
		return err
	}
	slog.Info("chart.done", "dir", cfg.Output.ChartsDir, "files", len(files))
	return nil
}

// Render writes every chart for res into dir and returns the written paths.
func Render(dir string, res *kpi.Result, n, year int) ([]string, error) {
	var files []string

	path := filepath.Join(dir, "fuel_mix.png")
	if err := chart.FuelMix(path, res.FuelMix); err != nil {
		return files, fmt.Errorf("fuel mix chart: %w", err)
	}
	files = append(files, path)

	for _, agg := range kpi.BottomByRenewableShare(res.ByCountry, n) {
		path := filepath.Join(dir, fmt.Sprintf("share_pie_%s.png", chart.FileName(agg.Country)))
		if err := chart.SharePie(path, agg); err != nil {
			slog.Warn("chart.pie.skip", "country", agg.Country, "error", err)
			continue
		}
		files = append(files, path)
	}

	path = filepath.Join(dir, "share_comparison.png")
	if err := chart.ShareComparison(path,
		kpi.BottomByRenewableShare(res.ByCountry, n),
		kpi.BottomByRenewableShare(res.RecentYear, n),
		year,
	); err != nil {
		return files, fmt.Errorf("share comparison chart: %w", err)
	}
	files = append(files, path)
	return files, nil
}
