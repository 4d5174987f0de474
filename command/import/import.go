package cmdimport

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gppd-stats/connectors/config"
	ccsv "gppd-stats/connectors/csv"
	"gppd-stats/connectors/resourcewatch"
)

// Run executes the import subcommand: it downloads the power plant table from the
// Resource Watch SQL API and writes it as the raw CSV read by calculate and explore.
// RW_API_TOKEN is optional; the public dataset needs no credentials.
func Run(args []string) error {
	cfg, err := config.LoadOrDefault(config.Path())
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	out := fs.String("out", cfg.Dataset.Path, "destination of the raw CSV")
	sourceURL := fs.String("url", cfg.Dataset.SourceURL, "SQL API endpoint")
	tableName := fs.String("table", cfg.Dataset.Table, "dataset table to download")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sourceURL == "" || *tableName == "" {
		slog.Error("import.validation.error", "reason", "missing url or table")
		return fmt.Errorf("import: -url and -table are required")
	}

	slog.Info("import.start", "url", *sourceURL, "table", *tableName, "out", *out)
	ctx := context.Background()
	c := resourcewatch.NewClient(ctx, *sourceURL, os.Getenv("RW_API_TOKEN"))

	header, rows, err := c.FetchTable(ctx, *tableName)
	if err != nil {
		slog.Error("phase.fetch.error", "table", *tableName, "error", err)
		return err
	}
	if len(rows) == 0 {
		slog.Warn("import.no_data", "table", *tableName)
		return fmt.Errorf("import: table %s returned no rows", *tableName)
	}
	if err := ccsv.WriteRaw(*out, header, rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", *out, err)
	}
	slog.Info("import.done", "rows", len(rows), "columns", len(header), "out", *out)
	return nil
}
