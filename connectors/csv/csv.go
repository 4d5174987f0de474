package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	dc "gppd-stats/domain/config"
	pp "gppd-stats/domain/powerplant"

	lo "github.com/samber/lo"
	"github.com/spf13/cast"
)

// ReadPlants loads the raw power plant CSV.
func ReadPlants(path string, cols dc.Columns) ([]pp.Plant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	plants, err := DecodePlants(f, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return plants, nil
}

// DecodePlants reads plants from CSV with a header row. Identifying columns are mapped to
// Plant fields; every other column is kept verbatim in Plant.Cells.
func DecodePlants(r io.Reader, cols dc.Columns) ([]pp.Plant, error) {
	cr := csv.NewReader(r)
	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := indexMap(head)
	required := []string{cols.ID, cols.Country, cols.Name, cols.Capacity, cols.PrimaryFuel}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %s", col)
		}
	}
	yearIdx, hasYear := idx[cols.YearOfCapacityData]
	identifying := map[string]bool{}
	for _, col := range append(required, cols.YearOfCapacityData) {
		identifying[col] = true
	}

	var plants []pp.Plant
	seen := map[string]int{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		p := pp.Plant{
			ID:          rec[idx[cols.ID]],
			Country:     rec[idx[cols.Country]],
			Name:        rec[idx[cols.Name]],
			PrimaryFuel: rec[idx[cols.PrimaryFuel]],
			Cells:       make(map[string]string, len(head)),
		}
		if prev, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("line %d: plant %s already defined on line %d", line, p.ID, prev)
		}
		seen[p.ID] = line

		if s := strings.TrimSpace(rec[idx[cols.Capacity]]); s != "" {
			if p.CapacityMW, err = cast.ToFloat64E(s); err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, cols.Capacity, err)
			}
		}
		if hasYear {
			if s := strings.TrimSpace(rec[yearIdx]); s != "" {
				// the column is float-typed in the published extract ("2017.0")
				y, err := cast.ToFloat64E(s)
				if err != nil {
					return nil, fmt.Errorf("line %d: %s: %w", line, cols.YearOfCapacityData, err)
				}
				p.YearOfCapacityData = lo.ToPtr(int(y))
			}
		}
		for i, h := range head {
			name := strings.TrimSpace(h)
			if identifying[name] {
				continue
			}
			p.Cells[name] = rec[i]
		}
		plants = append(plants, p)
	}
	return plants, nil
}

// WriteRaw writes a header and rows, creating the parent directory if needed.
func WriteRaw(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

func indexMap(headers []string) map[string]int {
	m := map[string]int{}
	for i, h := range headers {
		m[strings.TrimSpace(h)] = i
	}
	return m
}
