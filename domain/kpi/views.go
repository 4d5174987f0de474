package kpi

import (
	"sort"

	pp "gppd-stats/domain/powerplant"

	lo "github.com/samber/lo"
)

// TopByRenewableShare returns the n countries with the highest renewable share.
// Aggregates without a defined share are skipped.
func TopByRenewableShare(aggs []CountryAggregate, n int) []CountryAggregate {
	return rankByRenewableShare(aggs, n, true)
}

// BottomByRenewableShare returns the n countries with the lowest renewable share.
func BottomByRenewableShare(aggs []CountryAggregate, n int) []CountryAggregate {
	return rankByRenewableShare(aggs, n, false)
}

func rankByRenewableShare(aggs []CountryAggregate, n int, desc bool) []CountryAggregate {
	ranked := lo.Filter(aggs, func(a CountryAggregate, _ int) bool { return a.RenewableShare != nil })
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := *ranked[i].RenewableShare, *ranked[j].RenewableShare
		if a == b {
			return ranked[i].Country < ranked[j].Country
		}
		if desc {
			return a > b
		}
		return a < b
	})
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// AggregateYear aggregates the records of a single year per country. The Year of each result is set.
func AggregateYear(records []pp.GenerationRecord, year int, opts AggregateOptions) []CountryAggregate {
	inYear := lo.Filter(records, func(r pp.GenerationRecord, _ int) bool { return r.Year == year })
	opts.Granularity = ByCountry
	aggs := Aggregate(inYear, opts)
	for i := range aggs {
		aggs[i].Year = lo.ToPtr(year)
	}
	return aggs
}

// ShareComparison sets a country's renewable share over all years next to one year's share.
type ShareComparison struct {
	Country  string
	AllYears *float64
	Year     int
	InYear   *float64
}

// CompareShares pairs all-years and single-year aggregates by country. Countries missing
// from the single-year table get a nil InYear.
func CompareShares(allYears, inYear []CountryAggregate, year int) []ShareComparison {
	byCountry := lo.KeyBy(inYear, func(a CountryAggregate) string { return a.Country })
	return lo.Map(allYears, func(a CountryAggregate, _ int) ShareComparison {
		c := ShareComparison{Country: a.Country, AllYears: a.RenewableShare, Year: year}
		if y, ok := byCountry[a.Country]; ok {
			c.InYear = y.RenewableShare
		}
		return c
	})
}

// FuelMix counts the plants of a country per category.
type FuelMix struct {
	Country string
	Plants  int
	Counts  map[pp.FuelCategory]int
}

// Percent returns the share of the country's plants in the category, in percent.
func (m FuelMix) Percent(cat pp.FuelCategory) float64 {
	if m.Plants == 0 {
		return 0
	}
	return float64(m.Counts[cat]) * 100 / float64(m.Plants)
}

// PlantFuelMix counts distinct plants per country and category.
func PlantFuelMix(records []pp.GenerationRecord) []FuelMix {
	plants := lo.UniqBy(records, func(r pp.GenerationRecord) string { return r.PlantID })
	groups := lo.GroupBy(plants, func(r pp.GenerationRecord) string { return r.Country })
	out := make([]FuelMix, 0, len(groups))
	for _, country := range sortCountries(lo.Keys(groups)) {
		rows := groups[country]
		m := FuelMix{Country: country, Plants: len(rows), Counts: map[pp.FuelCategory]int{}}
		for _, r := range rows {
			m.Counts[r.Fuel]++
		}
		out = append(out, m)
	}
	return out
}

// YearCheck is one year of a RenewableCheck.
type YearCheck struct {
	Year                   int
	TotalGeneration        float64
	NonRenewableGeneration float64
	NonRenewableMissing    int
}

// RenewableCheck inspects a country reported as fully renewable for non-renewable plants
// whose generation is missing, which would make the 100% figure an artefact.
type RenewableCheck struct {
	Country              string
	NonRenewableRows     int
	NonRenewableMissing  int
	NonRenewableReported int
	Years                []YearCheck
}

// Verdict summarises the check in one sentence.
func (c RenewableCheck) Verdict() string {
	switch {
	case c.NonRenewableRows == 0:
		return "no non-renewable plants registered"
	case c.NonRenewableMissing > 0:
		return "non-renewable plants with missing generation data"
	default:
		return "non-renewable plants all have generation data"
	}
}

// Suspect reports whether the fully renewable figure may hide missing non-renewable data.
func (c RenewableCheck) Suspect() bool {
	return c.NonRenewableMissing > 0
}

// CheckFullyRenewable runs a RenewableCheck for every aggregate whose renewable share is exactly 1.
func CheckFullyRenewable(records []pp.GenerationRecord, aggs []CountryAggregate) []RenewableCheck {
	full := lo.FilterMap(aggs, func(a CountryAggregate, _ int) (string, bool) {
		return a.Country, a.RenewableShare != nil && *a.RenewableShare == 1
	})
	byCountry := lo.GroupBy(records, func(r pp.GenerationRecord) string { return r.Country })

	out := make([]RenewableCheck, 0, len(full))
	for _, country := range lo.Uniq(full) {
		rows := byCountry[country]
		c := RenewableCheck{Country: country}
		years := map[int]*YearCheck{}
		for _, r := range rows {
			y, ok := years[r.Year]
			if !ok {
				y = &YearCheck{Year: r.Year}
				years[r.Year] = y
			}
			if r.Generation != nil {
				y.TotalGeneration += *r.Generation
			}
			if r.Fuel != pp.NonRenewable {
				continue
			}
			c.NonRenewableRows++
			if r.Generation == nil {
				c.NonRenewableMissing++
				y.NonRenewableMissing++
			} else {
				c.NonRenewableReported++
				y.NonRenewableGeneration += *r.Generation
			}
		}
		for _, y := range years {
			c.Years = append(c.Years, *y)
		}
		sort.Slice(c.Years, func(i, j int) bool { return c.Years[i].Year < c.Years[j].Year })
		out = append(out, c)
	}
	return out
}
