package calculate

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gppd-stats/connectors/config"
	ccsv "gppd-stats/connectors/csv"
	"gppd-stats/connectors/xlsx"
	dc "gppd-stats/domain/config"
	"gppd-stats/domain/kpi"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Run executes the calculate command: it runs the KPI pipeline over the raw CSV and writes
// every derived table to the data directory, plus a kpi.xlsx workbook.
func Run(args []string) error {
	cfg, err := config.LoadOrDefault(config.Path())
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("calculate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	BindFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("calculate: unexpected arguments %v", fs.Args())
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.Info("calculate.start", "input", cfg.Dataset.Path, "threshold", cfg.Pipeline.MissingThreshold, "recentYear", cfg.Pipeline.RecentYear)
	res, err := Compute(cfg)
	if err != nil {
		return err
	}

	tables := res.Tables()
	paths, err := ccsv.WriteTables(cfg.Output.DataDir, tables)
	if err != nil {
		return fmt.Errorf("write csv outputs: %w", err)
	}
	book := filepath.Join(cfg.Output.DataDir, "kpi.xlsx")
	if err := xlsx.WriteWorkbook(book, tables); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	for _, c := range res.Checks {
		if c.Suspect() {
			slog.Warn("calculate.check.suspect", "country", c.Country, "nonRenewableMissing", c.NonRenewableMissing, "verdict", c.Verdict())
		}
	}
	PrintSummary(os.Stdout, res, cfg.Pipeline.TopN)

	slog.Info("calculate.done", "files", len(paths)+1, "countries", len(res.Countries))
	return nil
}

// BindFlags registers the pipeline overrides shared by calculate and chart. Defaults come from cfg.
func BindFlags(fs *flag.FlagSet, cfg *dc.Config) {
	fs.StringVar(&cfg.Dataset.Path, "in", cfg.Dataset.Path, "raw power plant CSV")
	fs.StringVar(&cfg.Output.DataDir, "data", cfg.Output.DataDir, "directory for derived CSV files")
	fs.Float64Var(&cfg.Pipeline.MissingThreshold, "threshold", cfg.Pipeline.MissingThreshold, "max fraction of missing generation per country")
	fs.BoolVar(&cfg.Pipeline.IncludeUnknownInTotal, "include-unknown", cfg.Pipeline.IncludeUnknownInTotal, "count unknown fuel labels in total generation")
	fs.IntVar(&cfg.Pipeline.RecentYear, "year", cfg.Pipeline.RecentYear, "single year for the recent-year view")
	fs.IntVar(&cfg.Pipeline.TopN, "top", cfg.Pipeline.TopN, "number of countries in top/bottom views")
}

// Compute loads the raw dataset and runs the pipeline.
func Compute(cfg *dc.Config) (*kpi.Result, error) {
	plants, err := ccsv.ReadPlants(cfg.Dataset.Path, cfg.Dataset.Columns)
	if err != nil {
		return nil, fmt.Errorf("load plants: %w", err)
	}
	slog.Info("phase.load.done", "plants", len(plants))

	p, err := kpi.NewPipeline(cfg.Pipeline)
	if err != nil {
		return nil, err
	}
	return p.Run(plants)
}

// PrintSummary writes the top and bottom countries by renewable share and the fully renewable checks.
func PrintSummary(w io.Writer, res *kpi.Result, n int) {
	for _, view := range []struct {
		title string
		aggs  []kpi.CountryAggregate
	}{
		{fmt.Sprintf("Top %d countries by renewable share", n), kpi.TopByRenewableShare(res.ByCountry, n)},
		{fmt.Sprintf("Bottom %d countries by renewable share", n), kpi.BottomByRenewableShare(res.ByCountry, n)},
	} {
		t := newTable(w, view.title)
		t.AppendHeader(table.Row{"Country", "Total GWh", "Renewable", "Non-Renewable", "Nuclear", "Other"})
		for _, a := range view.aggs {
			t.AppendRow(table.Row{a.Country, fmt.Sprintf("%.1f", a.Total), pct(a.RenewableShare), pct(a.NonRenewableShare), pct(a.NuclearShare), pct(a.OtherShare)})
		}
		t.Render()
	}

	if len(res.Checks) == 0 {
		return
	}
	t := newTable(w, "Countries reported as 100% renewable")
	t.AppendHeader(table.Row{"Country", "Non-Renewable Rows", "Missing", "Verdict"})
	for _, c := range res.Checks {
		t.AppendRow(table.Row{c.Country, c.NonRenewableRows, c.NonRenewableMissing, c.Verdict()})
	}
	t.Render()
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	return t
}

func pct(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}
