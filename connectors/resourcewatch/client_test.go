package resourcewatch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchTable(t *testing.T) {
	var gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"rows": [
				{"gppd_idnr": "WRI1", "capacity_mw": 33.5, "generation_gwh_2013": null, "the_geom": {"type": "Point"}},
				{"gppd_idnr": "WRI2", "capacity_mw": 1200, "primary_fuel": "Wind"}
			],
			"total_rows": 2
		}`))
	}))
	defer srv.Close()

	c := NewClient(context.Background(), srv.URL, "secret")
	header, rows, err := c.FetchTable(context.Background(), "powerwatch_data_20180102")
	require.NoError(t, err)

	assert.Equal(t, "SELECT * FROM powerwatch_data_20180102", gotQuery)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, []string{"capacity_mw", "generation_gwh_2013", "gppd_idnr", "primary_fuel", "the_geom"}, header)
	assert.Equal(t, [][]string{
		{"33.5", "", "WRI1", "", `{"type":"Point"}`},
		{"1200", "", "WRI2", "Wind", ""},
	}, rows)
}

func TestFetchTableWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"rows": []}`))
	}))
	defer srv.Close()

	header, rows, err := NewClient(context.Background(), srv.URL, "").FetchTable(context.Background(), "t")
	require.NoError(t, err)
	assert.Empty(t, header)
	assert.Empty(t, rows)
}

func TestFetchTableErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"status", http.StatusBadRequest, `{"error":["relation does not exist"]}`, "400"},
		{"api error", http.StatusOK, `{"error":["syntax error"]}`, "syntax error"},
		{"bad json", http.StatusOK, `{"rows": [`, "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, _, err := NewClient(context.Background(), srv.URL, "").FetchTable(context.Background(), "t")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
