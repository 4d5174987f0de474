package csv

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	dc "gppd-stats/domain/config"
	"gppd-stats/domain/kpi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `country,country_long,name,gppd_idnr,capacity_mw,primary_fuel,year_of_capacity_data,generation_gwh_2013,estimated_generation_gwh_2013,estimated_generation_note_2013
AFG,Afghanistan,Kajaki,GEODB0040538,33.0,Hydro,2017.0,,123.7,HYDRO-V1
ALB,Albania,Fierza,WRI1023776,500.0,Wave and Tidal,,1500.5,,
`

func TestDecodePlants(t *testing.T) {
	plants, err := DecodePlants(strings.NewReader(sample), dc.Default().Dataset.Columns)
	require.NoError(t, err)
	require.Len(t, plants, 2)

	p := plants[0]
	assert.Equal(t, "GEODB0040538", p.ID)
	assert.Equal(t, "Afghanistan", p.Country)
	assert.Equal(t, "Kajaki", p.Name)
	assert.Equal(t, "Hydro", p.PrimaryFuel)
	assert.InDelta(t, 33.0, p.CapacityMW, 1e-9)
	require.NotNil(t, p.YearOfCapacityData)
	assert.Equal(t, 2017, *p.YearOfCapacityData)
	assert.Equal(t, "", p.Cells["generation_gwh_2013"])
	assert.Equal(t, "123.7", p.Cells["estimated_generation_gwh_2013"])
	assert.Equal(t, "HYDRO-V1", p.Cells["estimated_generation_note_2013"])
	assert.Equal(t, "AFG", p.Cells["country"])
	assert.NotContains(t, p.Cells, "gppd_idnr")

	assert.Nil(t, plants[1].YearOfCapacityData)
	assert.Equal(t, "Wave and Tidal", plants[1].PrimaryFuel)
}

func TestDecodePlantsErrors(t *testing.T) {
	cols := dc.Default().Dataset.Columns
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"missing column", "gppd_idnr,country_long,name,capacity_mw\nA,X,n,1\n", "missing column primary_fuel"},
		{"duplicate id", "gppd_idnr,country_long,name,capacity_mw,primary_fuel\nA,X,n,1,Coal\nA,X,n,1,Coal\n", "already defined on line 2"},
		{"bad capacity", "gppd_idnr,country_long,name,capacity_mw,primary_fuel\nA,X,n,big,Coal\n", "capacity_mw"},
		{"empty", "", "read header"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePlants(strings.NewReader(tt.in), cols)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadPlantsMissingFile(t *testing.T) {
	_, err := ReadPlants(filepath.Join(t.TempDir(), "nope.csv"), dc.Default().Dataset.Columns)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteTables(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	tables := []kpi.Table{
		{Name: "a", Header: []string{"x", "y"}, Rows: [][]string{{"1", ""}, {"2", "b,c"}}},
		{Name: "b", Header: []string{"z"}},
	}

	paths, err := WriteTables(dir, tables)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")}, paths)

	f, err := os.Open(paths[0])
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"x", "y"}, {"1", ""}, {"2", "b,c"}}, recs)
}
