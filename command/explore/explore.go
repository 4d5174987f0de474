package explore

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gppd-stats/connectors/config"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Run profiles the raw dataset and prints the report to stdout.
func Run(args []string) error {
	cfg, err := config.LoadOrDefault(config.Path())
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("explore", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	in := fs.String("in", cfg.Dataset.Path, "raw power plant CSV")
	fuel := fs.String("fuel", "Wind", "primary fuel for the capacity breakdown, empty to skip")
	since := fs.Int("since", 2018, "count plants whose capacity data was updated in or after this year")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := os.Open(*in)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	rep, err := Profile(f, Options{Columns: cfg.Dataset.Columns, Fuel: *fuel, UpdatedSince: *since})
	if err != nil {
		return fmt.Errorf("profile %s: %w", *in, err)
	}
	slog.Info("explore.done", "rows", rep.Rows, "cols", rep.Cols, "countries", rep.Countries)
	Print(os.Stdout, rep)
	return nil
}

// Print renders rep as a set of tables.
func Print(w io.Writer, rep *Report) {
	t := newTable(w, "Dataset")
	t.AppendRows([]table.Row{
		{"Rows", rep.Rows},
		{"Columns", rep.Cols},
		{"Countries", rep.Countries},
		{"Primary fuels", len(rep.Fuels)},
		{"Capacity year missing", fmt.Sprintf("%.2f%%", rep.CapacityYearMissing*100)},
		{fmt.Sprintf("Updated since %d", rep.UpdatedSince), rep.UpdatedPlants},
	})
	t.Render()

	if len(rep.Missing) > 0 {
		t = newTable(w, "Missing values per column")
		t.AppendHeader(table.Row{"Column", "Nulls"})
		for _, m := range rep.Missing {
			t.AppendRow(table.Row{m.Column, m.Count})
		}
		t.Render()
	}

	fmt.Fprintf(w, "Primary fuels: %v\n", rep.Fuels)

	if len(rep.CapacityYears) > 0 {
		t = newTable(w, "Year of capacity data")
		t.AppendHeader(table.Row{"Year", "Share"})
		for _, y := range rep.CapacityYears {
			t.AppendRow(table.Row{y.Year, fmt.Sprintf("%.2f%%", y.Share*100)})
		}
		t.Render()
	}

	if rep.Fuel != "" {
		t = newTable(w, fmt.Sprintf("%s capacity per country", rep.Fuel))
		t.AppendHeader(table.Row{"Country", "Total MW", "Mean MW", "Plants"})
		for _, c := range rep.Capacity {
			t.AppendRow(table.Row{c.Country, fmt.Sprintf("%.1f", c.TotalMW), fmt.Sprintf("%.1f", c.MeanMW), c.Plants})
		}
		t.Render()
	}
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	return t
}
