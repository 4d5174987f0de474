package resourcewatch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	lo "github.com/samber/lo"
	"github.com/spf13/cast"
	"golang.org/x/oauth2"
)

// Client queries the Carto SQL API behind Resource Watch datasets.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the SQL endpoint at baseURL. When token is set, requests
// carry it as a bearer token.
func NewClient(ctx context.Context, baseURL, token string) *Client {
	var hc *http.Client
	if token != "" {
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		hc.Timeout = 60 * time.Second
	} else {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{httpClient: hc, baseURL: baseURL}
}

// sqlResponse is the subset of the Carto SQL API response we use.
type sqlResponse struct {
	Rows      []map[string]any `json:"rows"`
	TotalRows int              `json:"total_rows"`
	Error     []string         `json:"error"`
}

// FetchTable runs SELECT * on table and returns the rows as a CSV-ready header and records.
// The header is the sorted union of the row keys; JSON nulls become empty cells.
func (c *Client) FetchTable(ctx context.Context, table string) ([]string, [][]string, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("SELECT * FROM %s", table))
	rawURL := c.baseURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	slog.Info("resourcewatch.fetch.start", "table", table)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, nil, fmt.Errorf("sql api request failed: %d %s", resp.StatusCode, string(body))
	}

	var out sqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Error) > 0 {
		return nil, nil, fmt.Errorf("sql api error: %v", out.Error)
	}
	slog.Info("resourcewatch.fetch.done", "table", table, "rows", len(out.Rows), "total_rows", out.TotalRows)

	header := lo.Uniq(lo.FlatMap(out.Rows, func(r map[string]any, _ int) []string { return lo.Keys(r) }))
	sort.Strings(header)

	records := make([][]string, 0, len(out.Rows))
	for _, r := range out.Rows {
		rec := make([]string, len(header))
		for i, h := range header {
			v, err := cell(r[h])
			if err != nil {
				return nil, nil, fmt.Errorf("column %s: %w", h, err)
			}
			rec[i] = v
		}
		records = append(records, rec)
	}
	return header, records, nil
}

func cell(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case map[string]any, []any:
		b, err := json.Marshal(t)
		return string(b), err
	}
	return cast.ToStringE(v)
}
