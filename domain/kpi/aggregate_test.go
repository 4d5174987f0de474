package kpi

import (
	"math"
	"testing"

	pp "gppd-stats/domain/powerplant"

	lo "github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gen(country string, fuel pp.FuelCategory, year int, v *float64) pp.GenerationRecord {
	return pp.GenerationRecord{
		Key:        pp.Key{PlantID: country + string(fuel), Country: country, Fuel: fuel},
		Year:       year,
		Generation: v,
	}
}

func TestAggregateByCountry(t *testing.T) {
	recs := []pp.GenerationRecord{
		gen("X", pp.Renewable, 2013, lo.ToPtr(6.0)),
		gen("X", pp.Renewable, 2014, lo.ToPtr(4.0)),
		gen("X", pp.NonRenewable, 2013, lo.ToPtr(5.0)),
		gen("X", pp.Nuclear, 2013, nil),
		gen("X", pp.Unknown, 2013, lo.ToPtr(100.0)),
		gen("Y", pp.Other, 2013, lo.ToPtr(2.0)),
	}

	got := Aggregate(recs, AggregateOptions{})

	require.Len(t, got, 2)
	x := got[0]
	assert.Equal(t, "X", x.Country)
	assert.Nil(t, x.Year)
	assert.InDelta(t, 10.0, x.Renewable, 1e-9)
	assert.InDelta(t, 5.0, x.NonRenewable, 1e-9)
	assert.InDelta(t, 0.0, x.Nuclear, 1e-9)
	assert.InDelta(t, 100.0, x.Unknown, 1e-9)
	assert.InDelta(t, 15.0, x.Total, 1e-9)
	assert.InDelta(t, 10.0/15.0, *x.RenewableShare, 1e-9)
	assert.Nil(t, x.UnknownShare)

	y := got[1]
	assert.InDelta(t, 1.0, *y.OtherShare, 1e-9)
	assert.InDelta(t, 0.0, *y.RenewableShare, 1e-9)
}

func TestAggregateIncludeUnknown(t *testing.T) {
	recs := []pp.GenerationRecord{
		gen("X", pp.Renewable, 2013, lo.ToPtr(1.0)),
		gen("X", pp.Unknown, 2013, lo.ToPtr(3.0)),
	}

	got := Aggregate(recs, AggregateOptions{IncludeUnknown: true})

	require.Len(t, got, 1)
	assert.InDelta(t, 4.0, got[0].Total, 1e-9)
	assert.InDelta(t, 0.25, *got[0].RenewableShare, 1e-9)
	assert.InDelta(t, 0.75, *got[0].UnknownShare, 1e-9)
}

func TestAggregateByCountryYear(t *testing.T) {
	recs := []pp.GenerationRecord{
		gen("X", pp.Renewable, 2014, lo.ToPtr(1.0)),
		gen("X", pp.Renewable, 2013, lo.ToPtr(2.0)),
		gen("X", pp.NonRenewable, 2013, lo.ToPtr(2.0)),
	}

	got := Aggregate(recs, AggregateOptions{Granularity: ByCountryYear})

	require.Len(t, got, 2)
	assert.Equal(t, 2013, *got[0].Year)
	assert.InDelta(t, 0.5, *got[0].RenewableShare, 1e-9)
	assert.Equal(t, 2014, *got[1].Year)
	assert.InDelta(t, 1.0, *got[1].RenewableShare, 1e-9)
}

func TestAggregateZeroTotalHasNoShares(t *testing.T) {
	recs := []pp.GenerationRecord{
		gen("X", pp.Renewable, 2013, nil),
		gen("X", pp.NonRenewable, 2013, nil),
	}

	got := Aggregate(recs, AggregateOptions{})

	require.Len(t, got, 1)
	assert.InDelta(t, 0.0, got[0].Total, 1e-9)
	for _, cat := range pp.AllCategories {
		assert.Nil(t, got[0].Share(cat), cat)
	}
}

func TestAggregateSharesSumToOne(t *testing.T) {
	values := []float64{0.3, 17.25, 1e4, 3.3333, 42}
	cats := pp.AllCategories
	var recs []pp.GenerationRecord
	for i, v := range values {
		for j := 0; j <= i; j++ {
			recs = append(recs, gen("X", cats[(i+j)%len(cats)], 2013+j, lo.ToPtr(v)))
		}
	}

	for _, includeUnknown := range []bool{false, true} {
		got := Aggregate(recs, AggregateOptions{IncludeUnknown: includeUnknown})
		require.Len(t, got, 1)
		sum := 0.0
		for _, cat := range pp.AllCategories {
			if s := got[0].Share(cat); s != nil {
				sum += *s
			}
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestAggregateNonFiniteTotalHasNoShares(t *testing.T) {
	got := Aggregate([]pp.GenerationRecord{
		gen("X", pp.Renewable, 2013, lo.ToPtr(math.NaN())),
		gen("X", pp.NonRenewable, 2013, lo.ToPtr(3.0)),
	}, AggregateOptions{})

	require.Len(t, got, 1)
	assert.True(t, math.IsNaN(got[0].Total))
	for _, cat := range pp.AllCategories {
		assert.Nil(t, got[0].Share(cat), cat)
	}
}
