package stats

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrUnknownCountry    = goerr.New("country not found in population table")
	ErrInvalidPopulation = goerr.New("population must be positive")
)

// Record is one day of cumulative counts for a country.
type Record struct {
	Date      time.Time
	Country   string
	Confirmed float64
	Deaths    float64
}

// Population is a reference table mapping a region name (country, age band)
// to its number of residents.
type Population struct {
	Source  string
	Regions Regions
}

// Region is one entry of a population table.
type Region struct {
	Name  string
	Value float64
}

type Regions []*Region

// Find returns the region with the exact given name or nil.
func (rs Regions) Find(name string) *Region {
	for _, r := range rs {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// Residents looks up name and fails for unknown or non-positive entries.
func (p *Population) Residents(name string) (float64, error) {
	r := p.Regions.Find(name)
	if r == nil {
		return 0, goerr.Wrap(ErrUnknownCountry, "lookup residents",
			goerr.V("name", name), goerr.V("source", p.Source))
	}
	if r.Value <= 0 {
		return 0, goerr.Wrap(ErrInvalidPopulation, "lookup residents",
			goerr.V("name", name), goerr.V("value", r.Value))
	}
	return r.Value, nil
}

// Names returns the region names in table order.
func (p *Population) Names() []string {
	names := make([]string, 0, len(p.Regions))
	for _, r := range p.Regions {
		names = append(names, r.Name)
	}
	return names
}

// Series is one aggregated (date, value) line.
type Series struct {
	Name   string
	Dates  []time.Time
	Values []float64
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.Values)
}
