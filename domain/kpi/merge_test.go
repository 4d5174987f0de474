package kpi

import (
	"fmt"
	"testing"

	pp "gppd-stats/domain/powerplant"

	lo "github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(p pp.Plant, year int, v *float64) pp.SeriesPoint {
	return pp.SeriesPoint{Key: p.Key(), Year: year, Value: v}
}

func TestMergeSeriesIsFullOuterJoin(t *testing.T) {
	a := plant("A", "X", "Hydro", nil)
	b := plant("B", "X", "Gas", nil)

	actual := []pp.SeriesPoint{
		point(a, 2013, lo.ToPtr(1.0)),
		point(a, 2018, lo.ToPtr(2.0)),
		point(b, 2013, nil),
	}
	estimated := []pp.SeriesPoint{
		point(a, 2013, lo.ToPtr(9.0)),
		point(b, 2013, lo.ToPtr(3.0)),
		point(b, 2016, lo.ToPtr(4.0)),
	}

	got := MergeSeries(actual, estimated)

	// union of (plant, year): A2013, A2018, B2013, B2016
	require.Len(t, got, 4)
	byKey := lo.KeyBy(got, func(r pp.GenerationRecord) string { return fmt.Sprintf("%s/%d", r.PlantID, r.Year) })

	a13 := byKey["A/2013"]
	assert.InDelta(t, 1.0, *a13.Generation, 1e-9)
	assert.InDelta(t, 9.0, *a13.Estimated, 1e-9)

	a18 := byKey["A/2018"]
	assert.Nil(t, a18.Estimated)
	assert.InDelta(t, 2.0, *a18.Generation, 1e-9)

	b13 := byKey["B/2013"]
	assert.Nil(t, b13.Actual)
	assert.InDelta(t, 3.0, *b13.Generation, 1e-9)

	b16 := byKey["B/2016"]
	assert.Nil(t, b16.Actual)
	assert.InDelta(t, 4.0, *b16.Generation, 1e-9)
}

func TestMergeSeriesFallback(t *testing.T) {
	p := plant("A", "X", "Hydro", nil)
	tests := []struct {
		name      string
		actual    *float64
		estimated *float64
		want      *float64
	}{
		{"actual only", lo.ToPtr(5.0), nil, lo.ToPtr(5.0)},
		{"estimated only", nil, lo.ToPtr(7.0), lo.ToPtr(7.0)},
		{"both", lo.ToPtr(5.0), lo.ToPtr(7.0), lo.ToPtr(5.0)},
		{"neither", nil, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeSeries([]pp.SeriesPoint{point(p, 2013, tt.actual)}, []pp.SeriesPoint{point(p, 2013, tt.estimated)})
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Generation)
		})
	}
}

func TestMergeSeriesOrder(t *testing.T) {
	z := plant("Z1", "Zambia", "Hydro", nil)
	c := plant("C1", "Côte d'Ivoire", "Gas", nil)
	a := plant("A1", "Albania", "Hydro", nil)

	got := MergeSeries(
		[]pp.SeriesPoint{point(z, 2014, nil), point(z, 2013, nil), point(c, 2013, nil)},
		[]pp.SeriesPoint{point(a, 2013, nil)},
	)

	countries := lo.Map(got, func(r pp.GenerationRecord, _ int) string { return r.Country })
	assert.Equal(t, []string{"Albania", "Côte d'Ivoire", "Zambia", "Zambia"}, countries)
	assert.Equal(t, 2013, got[2].Year)
}
