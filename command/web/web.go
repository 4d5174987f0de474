package web

import (
	"encoding/csv"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gppd-stats/connectors/config"

	"github.com/jellydator/ttlcache/v3"
	"github.com/labstack/echo/v4"
)

// Run starts a small Echo web server exposing the derived CSV tables as JSON and the rendered
// charts.
//
// Usage:
//
//	gppd-stats web [-addr :8080] [-data ./data] [-charts ./data/charts]
//
// Endpoints:
//
//	GET /api/generation          -> <data>/generation_long.csv
//	GET /api/completeness        -> <data>/country_completeness.csv
//	GET /api/countries           -> <data>/country_generation.csv
//	GET /api/countries/year      -> <data>/country_generation_year.csv
//	GET /api/countries/recent    -> <data>/country_generation_recent.csv
//	GET /api/fuel_mix            -> <data>/fuel_mix.csv
//	GET /api/renewable_check     -> <data>/renewable_check.csv
//	GET /api/share_comparison    -> <data>/share_comparison.csv
//	GET /charts/*                -> <charts>/*.png
//
// Missing files answer 404.
func Run(args []string) error {
	cfg, err := config.LoadOrDefault(config.Path())
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	addr := fs.String("addr", cfg.Web.Addr, "http listen address (host:port)")
	dataDir := fs.String("data", cfg.Output.DataDir, "directory containing CSV files")
	chartsDir := fs.String("charts", cfg.Output.ChartsDir, "directory containing PNG charts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e := newServer(*dataDir, *chartsDir, 30*time.Second)
	slog.Info("web.start", "addr", *addr, "data", *dataDir, "charts", *chartsDir)
	return e.Start(*addr)
}

type rows = []map[string]string

func newServer(dataDir, chartsDir string, ttl time.Duration) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	cache := ttlcache.New[string, rows](ttlcache.WithTTL[string, rows](ttl))

	serveCSV := func(route string, filename string) {
		e.GET(route, func(c echo.Context) error {
			path := filepath.Join(dataDir, filename)
			if item := cache.Get(path); item != nil {
				return c.JSON(http.StatusOK, item.Value())
			}
			res, err := readCSV(path)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return c.JSON(http.StatusNotFound, map[string]any{
						"error":   "file not found",
						"path":    path,
						"message": "CSV file is missing, run calculate first",
					})
				}
				slog.Error("web.csv.read.error", "path", path, "error", err)
				return c.JSON(http.StatusInternalServerError, map[string]any{
					"error":   err.Error(),
					"path":    path,
					"message": "failed to read CSV",
				})
			}
			cache.Set(path, res, ttlcache.DefaultTTL)
			return c.JSON(http.StatusOK, res)
		})
	}

	serveCSV("/api/generation", "generation_long.csv")
	serveCSV("/api/completeness", "country_completeness.csv")
	serveCSV("/api/countries", "country_generation.csv")
	serveCSV("/api/countries/year", "country_generation_year.csv")
	serveCSV("/api/countries/recent", "country_generation_recent.csv")
	serveCSV("/api/fuel_mix", "fuel_mix.csv")
	serveCSV("/api/renewable_check", "renewable_check.csv")
	serveCSV("/api/share_comparison", "share_comparison.csv")

	e.Static("/charts", chartsDir)

	return e
}

// readCSV loads a CSV file and returns a slice of objects keyed by headers.
// Values are kept as strings; empty cells are nulls in the derived tables.
func readCSV(path string) (rows, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return rows{}, nil
	}

	headers := records[0]
	res := make(rows, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) == 0 {
			continue
		}
		obj := make(map[string]string, len(headers))
		for j := 0; j < len(headers) && j < len(row); j++ {
			obj[headers[j]] = row[j]
		}
		res = append(res, obj)
	}
	return res, nil
}
