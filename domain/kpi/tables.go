package kpi

import (
	"strconv"

	pp "gppd-stats/domain/powerplant"
)

// Table is a derived table ready to be written as CSV or as a spreadsheet sheet.
type Table struct {
	Name   string // sheet name and CSV file stem
	Header []string
	Rows   [][]string
}

// Tables lists every derived table of the run, in output order.
func (r *Result) Tables() []Table {
	return []Table{
		GenerationTable(r.Records),
		CompletenessTable(r.Completeness),
		AggregateTable("country_generation", r.ByCountry),
		AggregateTable("country_generation_year", r.ByCountryYear),
		AggregateTable("country_generation_recent", r.RecentYear),
		FuelMixTable(r.FuelMix),
		CheckTable(r.Checks),
		ComparisonTable(r.Comparison),
	}
}

func GenerationTable(records []pp.GenerationRecord) Table {
	t := Table{
		Name:   "generation_long",
		Header: []string{"gppd_idnr", "country_long", "name", "primary_fuel", "fuel_type", "capacity_mw", "year", "act_generation", "est_generation", "generation"},
		Rows:   make([][]string, 0, len(records)),
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			r.PlantID,
			r.Country,
			r.Name,
			r.PrimaryFuel,
			string(r.Fuel),
			formatFloat(r.CapacityMW),
			strconv.Itoa(r.Year),
			formatNullable(r.Actual),
			formatNullable(r.Estimated),
			formatNullable(r.Generation),
		})
	}
	return t
}

func CompletenessTable(rows []CountryCompleteness) Table {
	t := Table{Name: "country_completeness", Header: []string{"country_long", "rows", "generation_missing", "primary_fuel_missing"}}
	for _, c := range rows {
		t.Rows = append(t.Rows, []string{c.Country, strconv.Itoa(c.Rows), formatFloat(c.GenerationMissing), formatFloat(c.FuelMissing)})
	}
	return t
}

func AggregateTable(name string, aggs []CountryAggregate) Table {
	t := Table{Name: name, Header: []string{"country_long", "year"}}
	for _, cat := range pp.AllCategories {
		t.Header = append(t.Header, string(cat))
	}
	t.Header = append(t.Header, "total_generation")
	for _, cat := range pp.AllCategories {
		t.Header = append(t.Header, string(cat)+"_share")
	}

	for _, a := range aggs {
		year := ""
		if a.Year != nil {
			year = strconv.Itoa(*a.Year)
		}
		row := []string{a.Country, year}
		for _, cat := range pp.AllCategories {
			row = append(row, formatFloat(a.Generation(cat)))
		}
		row = append(row, formatFloat(a.Total))
		for _, cat := range pp.AllCategories {
			row = append(row, formatNullable(a.Share(cat)))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func FuelMixTable(mix []FuelMix) Table {
	t := Table{Name: "fuel_mix", Header: []string{"country_long", "plants"}}
	for _, cat := range pp.AllCategories {
		t.Header = append(t.Header, string(cat)+"_plants", string(cat)+"_pct")
	}
	for _, m := range mix {
		row := []string{m.Country, strconv.Itoa(m.Plants)}
		for _, cat := range pp.AllCategories {
			row = append(row, strconv.Itoa(m.Counts[cat]), formatFloat(m.Percent(cat)))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// CheckTable has one row per (country, year) of the fully renewable cross-check.
func CheckTable(checks []RenewableCheck) Table {
	t := Table{
		Name:   "renewable_check",
		Header: []string{"country_long", "verdict", "non_renewable_rows", "non_renewable_missing", "year", "total_generation", "non_renewable_generation", "non_renewable_missing_year"},
	}
	for _, c := range checks {
		head := []string{c.Country, c.Verdict(), strconv.Itoa(c.NonRenewableRows), strconv.Itoa(c.NonRenewableMissing)}
		if len(c.Years) == 0 {
			t.Rows = append(t.Rows, append(head, "", "", "", ""))
			continue
		}
		for _, y := range c.Years {
			row := append(append([]string(nil), head...),
				strconv.Itoa(y.Year), formatFloat(y.TotalGeneration), formatFloat(y.NonRenewableGeneration), strconv.Itoa(y.NonRenewableMissing))
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}

func ComparisonTable(rows []ShareComparison) Table {
	t := Table{Name: "share_comparison", Header: []string{"country_long", "renewable_share_all_years", "year", "renewable_share_year"}}
	for _, c := range rows {
		t.Rows = append(t.Rows, []string{c.Country, formatNullable(c.AllYears), strconv.Itoa(c.Year), formatNullable(c.InYear)})
	}
	return t
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatNullable(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
