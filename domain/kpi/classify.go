package kpi

import (
	"fmt"
	"sort"

	pp "gppd-stats/domain/powerplant"

	lo "github.com/samber/lo"
)

// Classifier maps raw fuel labels to a FuelCategory through fixed membership tables.
// Lookups are case-sensitive and exact. The zero value classifies everything as unknown.
type Classifier struct {
	members map[string]pp.FuelCategory
	aliases map[string]string
}

// NewClassifier builds a classifier from category -> labels and raw label -> label rewrites.
// A label listed under more than one category is rejected.
func NewClassifier(categories map[string][]string, aliases map[string]string) (Classifier, error) {
	members := map[string]pp.FuelCategory{}
	names := lo.Keys(categories)
	sort.Strings(names)
	for _, name := range names {
		cat := pp.FuelCategory(name)
		if !lo.Contains(pp.Categories, cat) {
			return Classifier{}, fmt.Errorf("fuel category %q is not one of %v", name, pp.Categories)
		}
		for _, label := range categories[name] {
			if prev, ok := members[label]; ok && prev != cat {
				return Classifier{}, fmt.Errorf("fuel label %q listed under both %s and %s", label, prev, cat)
			}
			members[label] = cat
		}
	}
	return Classifier{members: members, aliases: lo.Assign(aliases)}, nil
}

// Normalize rewrites labels whose delimiter does not match the membership tables ("Wave and Tidal").
func (c Classifier) Normalize(label string) string {
	if to, ok := c.aliases[label]; ok {
		return to
	}
	return label
}

// Classify returns the category of the raw label, Unknown when no table lists it.
func (c Classifier) Classify(label string) pp.FuelCategory {
	if cat, ok := c.members[c.Normalize(label)]; ok {
		return cat
	}
	return pp.Unknown
}

// ClassifyPlants returns copies of plants with PrimaryFuel normalized and Fuel set.
func (c Classifier) ClassifyPlants(plants []pp.Plant) []pp.Plant {
	return lo.Map(plants, func(p pp.Plant, _ int) pp.Plant {
		p.PrimaryFuel = c.Normalize(p.PrimaryFuel)
		p.Fuel = c.Classify(p.PrimaryFuel)
		return p
	})
}
