package kpi

import (
	"math"

	pp "gppd-stats/domain/powerplant"

	lo "github.com/samber/lo"
)

// Granularity selects the grouping of Aggregate.
type Granularity int

const (
	ByCountry Granularity = iota
	ByCountryYear
)

type AggregateOptions struct {
	Granularity Granularity
	// IncludeUnknown adds the unknown category to Total and reports UnknownShare.
	IncludeUnknown bool
}

// CountryAggregate is the generation mix of one country, or of one country-year.
type CountryAggregate struct {
	Country string
	Year    *int

	Renewable    float64
	NonRenewable float64
	Nuclear      float64
	Other        float64
	Unknown      float64
	Total        float64

	RenewableShare    *float64
	NonRenewableShare *float64
	NuclearShare      *float64
	OtherShare        *float64
	UnknownShare      *float64 // only set when unknown is part of Total
}

// Generation returns the summed generation of one category.
func (a CountryAggregate) Generation(cat pp.FuelCategory) float64 {
	switch cat {
	case pp.Renewable:
		return a.Renewable
	case pp.NonRenewable:
		return a.NonRenewable
	case pp.Nuclear:
		return a.Nuclear
	case pp.Other:
		return a.Other
	case pp.Unknown:
		return a.Unknown
	}
	return 0
}

// Share returns the share of one category, nil when undefined.
func (a CountryAggregate) Share(cat pp.FuelCategory) *float64 {
	switch cat {
	case pp.Renewable:
		return a.RenewableShare
	case pp.NonRenewable:
		return a.NonRenewableShare
	case pp.Nuclear:
		return a.NuclearShare
	case pp.Other:
		return a.OtherShare
	case pp.Unknown:
		return a.UnknownShare
	}
	return nil
}

type groupKey struct {
	country string
	year    int
}

// Aggregate sums generation per group and category, ignoring nil values, and derives shares.
// Categories a group never saw stay at 0.
func Aggregate(records []pp.GenerationRecord, opts AggregateOptions) []CountryAggregate {
	groups := lo.GroupBy(records, func(r pp.GenerationRecord) groupKey {
		if opts.Granularity == ByCountryYear {
			return groupKey{country: r.Country, year: r.Year}
		}
		return groupKey{country: r.Country}
	})

	out := make([]CountryAggregate, 0, len(groups))
	for k, rows := range groups {
		a := CountryAggregate{Country: k.country}
		if opts.Granularity == ByCountryYear {
			a.Year = lo.ToPtr(k.year)
		}
		for _, r := range rows {
			if r.Generation == nil {
				continue
			}
			a.add(r.Fuel, *r.Generation)
		}
		a.derive(opts.IncludeUnknown)
		out = append(out, a)
	}
	sortByCountry(out, func(a CountryAggregate) string { return a.Country }, func(a, b CountryAggregate) bool {
		return a.Year != nil && b.Year != nil && *a.Year < *b.Year
	})
	return out
}

func (a *CountryAggregate) add(cat pp.FuelCategory, v float64) {
	switch cat {
	case pp.Renewable:
		a.Renewable += v
	case pp.NonRenewable:
		a.NonRenewable += v
	case pp.Nuclear:
		a.Nuclear += v
	case pp.Other:
		a.Other += v
	default:
		a.Unknown += v
	}
}

func (a *CountryAggregate) derive(includeUnknown bool) {
	a.Total = a.Renewable + a.NonRenewable + a.Nuclear + a.Other
	if includeUnknown {
		a.Total += a.Unknown
	}
	a.RenewableShare = ratio(a.Renewable, a.Total)
	a.NonRenewableShare = ratio(a.NonRenewable, a.Total)
	a.NuclearShare = ratio(a.Nuclear, a.Total)
	a.OtherShare = ratio(a.Other, a.Total)
	if includeUnknown {
		a.UnknownShare = ratio(a.Unknown, a.Total)
	}
}

func ratio(part, total float64) *float64 {
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil
	}
	return lo.ToPtr(part / total)
}
