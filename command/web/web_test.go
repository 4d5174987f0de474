package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServeCSV(t *testing.T) {
	data := t.TempDir()
	csvPath := filepath.Join(data, "country_generation.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("country,renewable_share\nNorway,0.95\nPoland,\n"), 0o644))

	e := newServer(data, t.TempDir(), time.Minute)

	rec := get(t, e, "/api/countries")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []map[string]string{
		{"country": "Norway", "renewable_share": "0.95"},
		{"country": "Poland", "renewable_share": ""},
	}, got)

	// served from the cache while the entry is alive
	require.NoError(t, os.Remove(csvPath))
	rec = get(t, e, "/api/countries")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServeCSVMissing(t *testing.T) {
	e := newServer(t.TempDir(), t.TempDir(), time.Minute)

	rec := get(t, e, "/api/fuel_mix")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "file not found")
}

func TestServeCharts(t *testing.T) {
	charts := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(charts, "fuel_mix.png"), []byte("\x89PNG\r\n\x1a\n"), 0o644))

	e := newServer(t.TempDir(), charts, time.Minute)

	rec := get(t, e, "/charts/fuel_mix.png")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "\x89PNG\r\n\x1a\n", rec.Body.String())
	assert.Equal(t, http.StatusNotFound, get(t, e, "/charts/none.png").Code)
}
