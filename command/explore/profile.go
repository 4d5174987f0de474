package explore

import (
	"fmt"
	"io"
	"math"
	"sort"

	dc "gppd-stats/domain/config"
	"gppd-stats/domain/kpi"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	lo "github.com/samber/lo"
)

// Report is the structure and missingness profile of the raw dataset.
type Report struct {
	Rows, Cols int
	// Missing holds the null count of every column that has at least one null, in header order.
	Missing   []ColumnCount
	Countries int
	Fuels     []string

	CapacityYearMissing float64 // fraction of plants without year_of_capacity_data
	CapacityYears       []YearShare
	UpdatedSince        int
	UpdatedPlants       int

	Fuel     string
	Capacity []CountryCapacity
}

type ColumnCount struct {
	Column string
	Count  int
}

// YearShare is the fraction of all plants whose capacity data was last updated in Year.
type YearShare struct {
	Year  int
	Share float64
}

type CountryCapacity struct {
	Country string
	TotalMW float64
	MeanMW  float64
	Plants  int
}

type Options struct {
	Columns      dc.Columns
	Fuel         string
	UpdatedSince int
}

// Profile loads the CSV as a dataframe and builds the report.
func Profile(r io.Reader, opts Options) (*Report, error) {
	cols := opts.Columns
	df := dataframe.ReadCSV(r,
		dataframe.NaNValues(kpi.NullMarkers),
		dataframe.WithTypes(map[string]series.Type{
			cols.ID:          series.String,
			cols.Country:     series.String,
			cols.Name:        series.String,
			cols.PrimaryFuel: series.String,
		}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("load dataframe: %w", df.Err)
	}
	for _, col := range []string{cols.Country, cols.PrimaryFuel, cols.Capacity} {
		if !lo.Contains(df.Names(), col) {
			return nil, fmt.Errorf("missing column %s", col)
		}
	}

	rep := &Report{Fuel: opts.Fuel, UpdatedSince: opts.UpdatedSince}
	rep.Rows, rep.Cols = df.Dims()
	for _, name := range df.Names() {
		n := lo.Count(df.Col(name).IsNaN(), true)
		if n > 0 {
			rep.Missing = append(rep.Missing, ColumnCount{Column: name, Count: n})
		}
	}

	countries := nonNull(df.Col(cols.Country))
	rep.Countries = len(lo.Uniq(countries))
	rep.Fuels = lo.Uniq(nonNull(df.Col(cols.PrimaryFuel)))
	sort.Strings(rep.Fuels)

	if lo.Contains(df.Names(), cols.YearOfCapacityData) && rep.Rows > 0 {
		rep.capacityYears(df.Col(cols.YearOfCapacityData))
	}

	if opts.Fuel != "" {
		fuel := df.Filter(dataframe.F{Colname: cols.PrimaryFuel, Comparator: series.Eq, Comparando: opts.Fuel})
		if fuel.Err != nil {
			return nil, fmt.Errorf("filter %s: %w", opts.Fuel, fuel.Err)
		}
		rep.Capacity = capacityByCountry(fuel.Col(cols.Country).Records(), fuel.Col(cols.Capacity).Float())
	}
	return rep, nil
}

func (rep *Report) capacityYears(col series.Series) {
	years := col.Float()
	nan := col.IsNaN()
	counts := map[int]int{}
	missing := 0
	for i, y := range years {
		if nan[i] || math.IsNaN(y) {
			missing++
			continue
		}
		counts[int(y)]++
		if int(y) >= rep.UpdatedSince {
			rep.UpdatedPlants++
		}
	}
	total := float64(len(years))
	rep.CapacityYearMissing = float64(missing) / total
	for y, n := range counts {
		rep.CapacityYears = append(rep.CapacityYears, YearShare{Year: y, Share: float64(n) / total})
	}
	sort.Slice(rep.CapacityYears, func(i, j int) bool { return rep.CapacityYears[i].Year < rep.CapacityYears[j].Year })
}

func capacityByCountry(countries []string, capacity []float64) []CountryCapacity {
	byCountry := map[string]*CountryCapacity{}
	for i, c := range countries {
		if i >= len(capacity) || math.IsNaN(capacity[i]) {
			continue
		}
		cc, ok := byCountry[c]
		if !ok {
			cc = &CountryCapacity{Country: c}
			byCountry[c] = cc
		}
		cc.TotalMW += capacity[i]
		cc.Plants++
	}
	out := make([]CountryCapacity, 0, len(byCountry))
	for _, cc := range byCountry {
		cc.MeanMW = cc.TotalMW / float64(cc.Plants)
		out = append(out, *cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Country < out[j].Country })
	return out
}

func nonNull(s series.Series) []string {
	nan := s.IsNaN()
	return lo.Filter(s.Records(), func(_ string, i int) bool { return !nan[i] })
}
