package config

import (
	"fmt"
	"math"
)

// Config represents the structure of config.yml used by the tool.
// Fields left out of the file keep the values from Default.
type Config struct {
	Dataset  Dataset  `yaml:"dataset"`
	Pipeline Pipeline `yaml:"pipeline"`
	Output   struct {
		DataDir   string `yaml:"data_dir"`
		ChartsDir string `yaml:"charts_dir"`
	} `yaml:"output"`
	Web struct {
		Addr string `yaml:"addr"`
	} `yaml:"web"`
}

type Dataset struct {
	Path      string  `yaml:"path"`
	SourceURL string  `yaml:"source_url"`
	Table     string  `yaml:"table"`
	Columns   Columns `yaml:"columns"`
}

// Columns names the identifying columns of the raw CSV.
type Columns struct {
	ID                 string `yaml:"id"`
	Country            string `yaml:"country"`
	Name               string `yaml:"name"`
	Capacity           string `yaml:"capacity"`
	PrimaryFuel        string `yaml:"primary_fuel"`
	YearOfCapacityData string `yaml:"year_of_capacity_data"`
}

type Pipeline struct {
	Actual    Series `yaml:"actual"`
	Estimated Series `yaml:"estimated"`

	// MissingThreshold is the highest tolerated fraction of null generation rows per country.
	MissingThreshold      float64 `yaml:"missing_threshold"`
	IncludeUnknownInTotal bool    `yaml:"include_unknown_in_total"`
	RecentYear            int     `yaml:"recent_year"`
	TopN                  int     `yaml:"top_n"`

	FuelCategories map[string][]string `yaml:"fuel_categories"`
	FuelAliases    map[string]string   `yaml:"fuel_aliases"`
}

// Series describes one family of year-suffixed generation columns, e.g. generation_gwh_2013..2019.
type Series struct {
	Prefix string `yaml:"prefix"`
	From   int    `yaml:"from"`
	To     int    `yaml:"to"`
}

// Columns lists the column names of the series in year order.
func (s Series) Columns() []string {
	if s.To < s.From {
		return nil
	}
	cols := make([]string, 0, s.To-s.From+1)
	for y := s.From; y <= s.To; y++ {
		cols = append(cols, fmt.Sprintf("%s%d", s.Prefix, y))
	}
	return cols
}

// Default returns the configuration matching the published GPPD extract.
func Default() Config {
	var c Config
	c.Dataset = Dataset{
		Path:      "data/raw/global_power_plants.csv",
		SourceURL: "https://wri-rw.carto.com/api/v2/sql",
		Table:     "powerwatch_data_20180102",
		Columns: Columns{
			ID:                 "gppd_idnr",
			Country:            "country_long",
			Name:               "name",
			Capacity:           "capacity_mw",
			PrimaryFuel:        "primary_fuel",
			YearOfCapacityData: "year_of_capacity_data",
		},
	}
	c.Pipeline = Pipeline{
		Actual:           Series{Prefix: "generation_gwh_", From: 2013, To: 2019},
		Estimated:        Series{Prefix: "estimated_generation_gwh_", From: 2013, To: 2017},
		MissingThreshold: 0.4,
		RecentYear:       2017,
		TopN:             10,
		FuelCategories: map[string][]string{
			"renewable":     {"Biomass", "Geothermal", "Hydro", "Solar", "Storage", "Waste", "Wave_Tidal", "Wind"},
			"non_renewable": {"Coal", "Cogeneration", "Gas", "Oil", "Petcoke"},
			"nuclear":       {"Nuclear"},
			"other":         {"Other"},
		},
		FuelAliases: map[string]string{
			"Wave and Tidal": "Wave_Tidal",
		},
	}
	c.Output.DataDir = "data"
	c.Output.ChartsDir = "data/charts"
	c.Web.Addr = ":8080"
	return c
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	p := c.Pipeline
	if math.IsNaN(p.MissingThreshold) || p.MissingThreshold < 0 || p.MissingThreshold > 1 {
		return fmt.Errorf("pipeline.missing_threshold must be within [0,1], got %v", p.MissingThreshold)
	}
	if p.Actual.To < p.Actual.From {
		return fmt.Errorf("pipeline.actual: year range %d-%d is empty", p.Actual.From, p.Actual.To)
	}
	if p.Estimated.To < p.Estimated.From {
		return fmt.Errorf("pipeline.estimated: year range %d-%d is empty", p.Estimated.From, p.Estimated.To)
	}
	if p.TopN < 0 {
		return fmt.Errorf("pipeline.top_n must not be negative")
	}
	if c.Dataset.Columns.ID == "" || c.Dataset.Columns.Country == "" || c.Dataset.Columns.PrimaryFuel == "" {
		return fmt.Errorf("dataset.columns: id, country and primary_fuel are required")
	}
	return nil
}
