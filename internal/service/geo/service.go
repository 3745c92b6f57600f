// internal/service/geo/service.go

package geo

import (
	"sort"
	"strings"
	"sync"

	"sentimentdash/internal/domain/dashboard"
	"sentimentdash/internal/domain/geo"
)

// defaultAliases maps common spellings onto the country names of the world map
var defaultAliases = map[string]string{
	"usa":                              "United States",
	"us":                               "United States",
	"u.s.":                             "United States",
	"u.s.a.":                           "United States",
	"united states of america":         "United States",
	"america":                          "United States",
	"uk":                               "United Kingdom",
	"u.k.":                             "United Kingdom",
	"great britain":                    "United Kingdom",
	"england":                          "United Kingdom",
	"scotland":                         "United Kingdom",
	"wales":                            "United Kingdom",
	"uae":                              "United Arab Emirates",
	"russian federation":               "Russia",
	"south korea":                      "Korea",
	"republic of korea":                "Korea",
	"north korea":                      "Dem. Rep. Korea",
	"czech republic":                   "Czech Rep.",
	"czechia":                          "Czech Rep.",
	"democratic republic of the congo": "Dem. Rep. Congo",
	"drc":                              "Dem. Rep. Congo",
	"ivory coast":                      "Côte d'Ivoire",
	"laos":                             "Lao PDR",
	"bosnia":                           "Bosnia and Herz.",
	"dominican republic":               "Dominican Rep.",
	"south sudan":                      "S. Sudan",
	"central african republic":         "Central African Rep.",
}

// CountryResolver resolves location labels to world map country names
type CountryResolver struct {
	aliases map[string]string
	mu      sync.RWMutex
}

// NewCountryResolver creates a resolver with the built-in aliases
func NewCountryResolver() *CountryResolver {
	r := &CountryResolver{
		aliases: make(map[string]string, len(defaultAliases)),
	}
	for alias, region := range defaultAliases {
		r.aliases[alias] = region
	}
	return r
}

// Resolve returns the region for location, or the trimmed location itself
// when no alias matches
func (r *CountryResolver) Resolve(location string) string {
	name := strings.TrimSpace(location)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if region, ok := r.aliases[strings.ToLower(name)]; ok {
		return region
	}
	return name
}

// AddAlias registers alias as another name of region
func (r *CountryResolver) AddAlias(alias, region string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.aliases[strings.ToLower(strings.TrimSpace(alias))] = region
}

// MergeRegions folds location stats into map regions. Locations resolving to
// the same region are summed and their negative share recomputed. Regions
// are returned sorted by name; empty regions are dropped.
func MergeRegions(stats []dashboard.LocationStat, resolver geo.Resolver) []geo.Region {
	byName := make(map[string]*geo.Region)
	for _, s := range stats {
		name := resolver.Resolve(s.Location)
		if name == "" {
			continue
		}

		region, ok := byName[name]
		if !ok {
			region = &geo.Region{Name: name}
			byName[name] = region
		}
		region.Sources = append(region.Sources, s.Location)
		region.Negative += s.Negative
		region.Total += s.Total
	}

	regions := make([]geo.Region, 0, len(byName))
	for _, region := range byName {
		if region.Total <= 0 {
			continue
		}
		region.NegativePct = float64(region.Negative) / float64(region.Total)
		regions = append(regions, *region)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].Name < regions[j].Name })

	return regions
}
