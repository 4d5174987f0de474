package csv

import (
	"os"
	"path/filepath"

	"gppd-stats/domain/kpi"
)

// WriteTables writes each table to <dir>/<name>.csv and returns the written paths.
func WriteTables(dir string, tables []kpi.Table) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		path := filepath.Join(dir, t.Name+".csv")
		if err := WriteRaw(path, t.Header, t.Rows); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
