package kpi

import (
	pp "gppd-stats/domain/powerplant"
)

type recordKey struct {
	pp.Key
	Year int
}

// MergeSeries full-outer-joins the actual and estimated points on (key, year) and resolves
// Generation to the first non-null of actual, estimated. A later point for the same
// (key, year) within one input replaces an earlier one.
func MergeSeries(actual, estimated []pp.SeriesPoint) []pp.GenerationRecord {
	idx := map[recordKey]int{}
	out := make([]pp.GenerationRecord, 0, len(actual))

	row := func(pt pp.SeriesPoint) *pp.GenerationRecord {
		k := recordKey{Key: pt.Key, Year: pt.Year}
		if i, ok := idx[k]; ok {
			return &out[i]
		}
		idx[k] = len(out)
		out = append(out, pp.GenerationRecord{Key: pt.Key, Year: pt.Year})
		return &out[len(out)-1]
	}
	for _, pt := range actual {
		row(pt).Actual = pt.Value
	}
	for _, pt := range estimated {
		row(pt).Estimated = pt.Value
	}

	for i := range out {
		out[i].Generation = firstNonNil(out[i].Actual, out[i].Estimated)
	}
	sortByCountry(out, func(r pp.GenerationRecord) string { return r.Country }, func(a, b pp.GenerationRecord) bool {
		if a.PlantID != b.PlantID {
			return a.PlantID < b.PlantID
		}
		return a.Year < b.Year
	})
	return out
}

func firstNonNil(vs ...*float64) *float64 {
	for _, v := range vs {
		if v != nil {
			return v
		}
	}
	return nil
}
