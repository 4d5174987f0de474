package main

import (
	"fmt"
	"log/slog"
	"os"

	cmdcalculate "gppd-stats/command/calculate"
	cmdchart "gppd-stats/command/chart"
	cmdexplore "gppd-stats/command/explore"
	cmdimport "gppd-stats/command/import"
	cmdweb "gppd-stats/command/web"
)

// Renewable generation KPIs from the Global Power Plant Database.
// Usage:
//   gppd-stats import [-out data/raw/global_power_plants.csv] [-url <sql api>] [-table <name>]
//   gppd-stats explore [-in <csv>] [-fuel Wind] [-since 2018]
//   gppd-stats calculate [-in <csv>] [-data ./data] [-threshold 0.4] [-year 2017] [-top 10] [-include-unknown]
//   gppd-stats chart [calculate flags] [-out ./data/charts]
//   gppd-stats web [-addr :8080] [-data ./data] [-charts ./data/charts]

const usage = `usage: gppd-stats <command> [flags]
  import     download the power plant table into the raw CSV
  explore    print a structure and missingness profile of the raw CSV
  calculate  run the KPI pipeline and write derived CSVs and kpi.xlsx
  chart      run the KPI pipeline and render PNG charts
  web        serve derived CSVs as JSON and the charts
ENV: set CONFIG_PATH to point to a YAML config file (default ./config.yml)`

var commands = map[string]func([]string) error{
	"import":    cmdimport.Run,
	"explore":   cmdexplore.Run,
	"calculate": cmdcalculate.Run,
	"chart":     cmdchart.Run,
	"web":       cmdweb.Run,
}

func main() {
	args := os.Args
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(h))

	if len(args) > 1 {
		if run, ok := commands[args[1]]; ok {
			rest := append([]string{}, args[2:]...)
			if err := run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
	}
	fmt.Fprintln(os.Stderr, usage)
	os.Exit(2)
}
