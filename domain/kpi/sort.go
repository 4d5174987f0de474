package kpi

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// compareCountries orders names the way a reader expects ("Côte d'Ivoire" next to "Croatia"),
// falling back to byte order for names the collation considers equal.
func compareCountries(c *collate.Collator, a, b string) int {
	if r := c.CompareString(a, b); r != 0 {
		return r
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func sortCountries(names []string) []string {
	out := append([]string(nil), names...)
	c := collate.New(language.English, collate.Loose)
	sort.SliceStable(out, func(i, j int) bool { return compareCountries(c, out[i], out[j]) < 0 })
	return out
}

// sortByCountry sorts items by country, then by tiebreak when given.
func sortByCountry[T any](items []T, country func(T) string, tiebreak func(a, b T) bool) {
	c := collate.New(language.English, collate.Loose)
	sort.SliceStable(items, func(i, j int) bool {
		if r := compareCountries(c, country(items[i]), country(items[j])); r != 0 {
			return r < 0
		}
		return tiebreak != nil && tiebreak(items[i], items[j])
	})
}
