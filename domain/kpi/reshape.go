package kpi

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	pp "gppd-stats/domain/powerplant"

	lo "github.com/samber/lo"
	"github.com/spf13/cast"
)

var yearSuffix = regexp.MustCompile(`(\d+)$`)

// NullMarkers are the cell values read as missing.
var NullMarkers = []string{"", "NA", "NaN", "nan"}

// ColumnYear extracts the year from the trailing digits of a column name.
func ColumnYear(column string) (int, error) {
	m := yearSuffix.FindStringSubmatch(column)
	if m == nil {
		return 0, fmt.Errorf("column %q has no year suffix", column)
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", column, err)
	}
	return y, nil
}

// ParseValue converts a raw cell into a nullable number. Blank cells and NullMarkers are nil.
func ParseValue(cell string) (*float64, error) {
	s := strings.TrimSpace(cell)
	if lo.Contains(NullMarkers, s) {
		return nil, nil
	}
	v, err := cast.ToFloat64E(s)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) {
		return nil, nil
	}
	if math.IsInf(v, 0) {
		return nil, fmt.Errorf("value %q is not finite", cell)
	}
	return &v, nil
}

// Unpivot melts the given year-suffixed columns into one point per (plant, column).
// Columns missing from a plant's source row produce nothing; empty cells produce a nil value.
func Unpivot(plants []pp.Plant, columns []string) ([]pp.SeriesPoint, error) {
	years := make([]int, len(columns))
	for i, col := range columns {
		y, err := ColumnYear(col)
		if err != nil {
			return nil, err
		}
		years[i] = y
	}

	out := make([]pp.SeriesPoint, 0, len(plants)*len(columns))
	for _, p := range plants {
		key := p.Key()
		for i, col := range columns {
			cell, ok := p.Cells[col]
			if !ok {
				continue
			}
			v, err := ParseValue(cell)
			if err != nil {
				return nil, fmt.Errorf("plant %s column %s: %w", p.ID, col, err)
			}
			out = append(out, pp.SeriesPoint{Key: key, Year: years[i], Value: v})
		}
	}
	return out, nil
}
