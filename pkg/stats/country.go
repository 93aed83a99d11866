package stats

import (
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

const per100k = 100000

// CountryParams are the model constants of the per-country statistics.
type CountryParams struct {
	// RecoveryDays after which a confirmed case is presumed recovered.
	RecoveryDays int
	// Lethality is the assumed infection fatality rate.
	Lethality float64
	// DeathWindow is the width in days of the windowed death rate.
	DeathWindow int
}

func DefaultCountryParams() CountryParams {
	return CountryParams{
		RecoveryDays: 15,
		Lethality:    0.0157,
		DeathWindow:  14,
	}
}

// CountryStats holds the derived series of one country. All slices are
// aligned with Dates.
type CountryStats struct {
	Country    string
	Population float64

	Dates                 []time.Time
	Confirmed             []float64
	Deaths                []float64
	CurrentlyInfected     []float64
	Confirmed100k         []float64
	Deaths100k            []float64
	CurrentlyInfected100k []float64
	EstInfected100k       []float64
	Deaths100k14d         []float64
}

// Values returns the series for m.
func (cs *CountryStats) Values(m Metric) []float64 {
	switch m {
	case Confirmed:
		return cs.Confirmed
	case Deaths:
		return cs.Deaths
	case CurrentlyInfected:
		return cs.CurrentlyInfected
	case Confirmed100k:
		return cs.Confirmed100k
	case Deaths100k:
		return cs.Deaths100k
	case CurrentlyInfected100k:
		return cs.CurrentlyInfected100k
	case EstInfected100k:
		return cs.EstInfected100k
	case Deaths100k14d:
		return cs.Deaths100k14d
	}
	return nil
}

// Len returns the number of days.
func (cs *CountryStats) Len() int {
	return len(cs.Dates)
}

// CalculateCountry derives the per-country series from the cumulative
// records of one country. The population is looked up in pop; an unknown
// country yields ErrUnknownCountry.
func CalculateCountry(country string, records []Record, pop *Population, params CountryParams) (*CountryStats, error) {
	residents, err := pop.Residents(country)
	if err != nil {
		return nil, goerr.Wrap(err, "calculate country statistics", goerr.V("country", country))
	}
	if params.Lethality <= 0 {
		return nil, goerr.New("lethality must be positive", goerr.V("lethality", params.Lethality))
	}
	if params.RecoveryDays <= 0 || params.DeathWindow <= 0 {
		return nil, goerr.New("window must be positive",
			goerr.V("recovery_days", params.RecoveryDays), goerr.V("death_window", params.DeathWindow))
	}

	rs := make([]Record, len(records))
	copy(rs, records)
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Date.Before(rs[j].Date)
	})

	n := len(rs)
	cs := &CountryStats{
		Country:    country,
		Population: residents,
		Dates:      make([]time.Time, n),
		Confirmed:  make([]float64, n),
		Deaths:     make([]float64, n),
	}
	for i, r := range rs {
		cs.Dates[i] = r.Date
		cs.Confirmed[i] = r.Confirmed
		cs.Deaths[i] = r.Deaths
	}

	cs.CurrentlyInfected = lagDelta(cs.Confirmed, params.RecoveryDays)
	cs.Confirmed100k = scale(cs.Confirmed, per100k/residents)
	cs.Deaths100k = scale(cs.Deaths, per100k/residents)
	cs.CurrentlyInfected100k = scale(cs.CurrentlyInfected, per100k/residents)

	cs.EstInfected100k = make([]float64, n)
	for i := range cs.EstInfected100k {
		recovered := cs.Confirmed[i] - cs.CurrentlyInfected[i]
		if recovered == 0 {
			continue
		}
		est := cs.Deaths[i] / params.Lethality * cs.Confirmed[i] / recovered
		cs.EstInfected100k[i] = est / residents * per100k
	}

	cs.Deaths100k14d = lagDelta(cs.Deaths100k, params.DeathWindow)

	return cs, nil
}

// lagDelta returns max(0, v[i]-v[i-lag]) for i >= lag and max(0, v[i])
// before that.
func lagDelta(v []float64, lag int) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		d := v[i]
		if i >= lag {
			d -= v[i-lag]
		}
		if d < 0 {
			d = 0
		}
		out[i] = d
	}
	return out
}

func scale(v []float64, f float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] * f
	}
	return out
}
