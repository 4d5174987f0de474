package kpi

import (
	"fmt"
	"math"

	pp "gppd-stats/domain/powerplant"

	lo "github.com/samber/lo"
)

// CountryCompleteness summarises how much of a country's long table is missing.
type CountryCompleteness struct {
	Country           string
	Rows              int
	GenerationMissing float64 // fraction of rows with nil Generation
	FuelMissing       float64 // fraction of rows without a fuel label
}

// Complete reports whether the country passes the threshold. Countries without rows never do.
func (c CountryCompleteness) Complete(threshold float64) bool {
	return c.Rows > 0 && c.GenerationMissing <= threshold
}

// Completeness computes the missing fractions per country, ordered by country name.
func Completeness(records []pp.GenerationRecord) []CountryCompleteness {
	groups := lo.GroupBy(records, func(r pp.GenerationRecord) string { return r.Country })
	out := make([]CountryCompleteness, 0, len(groups))
	for _, country := range sortCountries(lo.Keys(groups)) {
		rows := groups[country]
		c := CountryCompleteness{Country: country, Rows: len(rows)}
		if n := float64(len(rows)); n > 0 {
			c.GenerationMissing = float64(lo.CountBy(rows, func(r pp.GenerationRecord) bool { return r.Generation == nil })) / n
			c.FuelMissing = float64(lo.CountBy(rows, func(r pp.GenerationRecord) bool { return r.PrimaryFuel == "" })) / n
		}
		out = append(out, c)
	}
	return out
}

// FilterComplete keeps the records of countries whose generation missing fraction is at most
// threshold. It returns the kept records, the per-country report and the kept country names.
func FilterComplete(records []pp.GenerationRecord, threshold float64) ([]pp.GenerationRecord, []CountryCompleteness, []string, error) {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return nil, nil, nil, fmt.Errorf("missing threshold must be within [0,1], got %v", threshold)
	}
	report := Completeness(records)
	kept := lo.FilterMap(report, func(c CountryCompleteness, _ int) (string, bool) {
		return c.Country, c.Complete(threshold)
	})
	keep := lo.SliceToMap(kept, func(c string) (string, struct{}) { return c, struct{}{} })
	out := lo.Filter(records, func(r pp.GenerationRecord, _ int) bool {
		_, ok := keep[r.Country]
		return ok
	})
	return out, report, kept, nil
}
