// internal/domain/geo/service.go

package geo

// Region is one map area with its merged sentiment counts
type Region struct {
	Name        string   `json:"name"`
	Sources     []string `json:"sources"`
	Negative    int      `json:"negative"`
	Total       int      `json:"total"`
	NegativePct float64  `json:"negative_pct"`
}

// Resolver maps free-text location labels onto map region names
type Resolver interface {
	// Resolve returns the map region name for a location label
	Resolve(location string) string

	// AddAlias registers an extra label for a region
	AddAlias(alias, region string)
}
