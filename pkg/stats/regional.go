package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// AnyRegion disables the state or district filter of a Query.
const AnyRegion = -1

// Row is one record of the regional feed: the counts reported on one day
// for one district and age band.
type Row struct {
	ReportDate time.Time
	StateID    int
	State      string
	DistrictID int
	District   string
	AgeGroup   string
	Cases      int
	Deaths     int
}

// Measure selects the counted value of a Row.
type Measure int

const (
	Cases Measure = iota
	Fatalities
)

func (m Measure) String() string {
	if m == Fatalities {
		return "deaths"
	}
	return "infected"
}

func (m Measure) value(r Row) int {
	if m == Fatalities {
		return r.Deaths
	}
	return r.Cases
}

// WindowMode selects how daily sums are turned into a series.
type WindowMode int

const (
	// Rolling reports the sum over the last Window days.
	Rolling WindowMode = iota
	// AllTime reports the running total.
	AllTime
)

func (w WindowMode) prefix(days int) string {
	if w == AllTime {
		return "Gesamt"
	}
	return fmt.Sprintf("%dd", days)
}

// Query selects the rows and the breakdown of one aggregation.
type Query struct {
	ByAge      bool
	ByState    bool
	StateID    int
	DistrictID int
	Measure    Measure
	Window     WindowMode
	Normalize  bool
}

// RegionalParams are the reference data of the regional aggregation.
type RegionalParams struct {
	Window    int
	AgeGroups *Population
	States    []int
}

func DefaultRegionalParams() RegionalParams {
	states := make([]int, 0, 16)
	for id := 1; id <= 16; id++ {
		states = append(states, id)
	}
	return RegionalParams{
		Window:    14,
		AgeGroups: AgeGroupPopulation(),
		States:    states,
	}
}

// Aggregate sums the rows matching q per day and returns one series per
// group. Days without reports inside the observed date range count as zero.
// The first Window days are dropped from every series so that all-time and
// rolling series are aligned.
func Aggregate(rows []Row, q Query, params RegionalParams) ([]Series, error) {
	if params.Window <= 0 {
		return nil, goerr.New("window must be positive", goerr.V("window", params.Window))
	}
	if q.ByAge && params.AgeGroups == nil {
		return nil, goerr.New("age group table required for age breakdown")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	dates := dateRange(rows)
	reported := dates[min(params.Window, len(dates)):]
	prefix := q.Window.prefix(params.Window)

	base := func(r Row) bool {
		if q.StateID != AnyRegion && r.StateID != q.StateID {
			return false
		}
		if q.DistrictID != AnyRegion && r.DistrictID != q.DistrictID {
			return false
		}
		return true
	}

	var out []Series
	add := func(name string, factor float64, match func(Row) bool) {
		sums, found := dailySums(rows, dates[0], len(dates), q.Measure, func(r Row) bool {
			return base(r) && match(r)
		})
		if !found {
			return
		}
		out = append(out, Series{
			Name:   strings.TrimSpace(prefix + " " + name),
			Dates:  append([]time.Time(nil), reported...),
			Values: window(sums, factor, params.Window, q.Window),
		})
	}

	if q.ByAge {
		for _, ag := range params.AgeGroups.Regions {
			factor := 1.0
			if q.Normalize {
				if ag.Value <= 0 {
					return nil, goerr.Wrap(ErrInvalidPopulation, "normalize age group",
						goerr.V("age_group", ag.Name), goerr.V("value", ag.Value))
				}
				factor = per100k / ag.Value
			}
			add(ag.Name, factor, func(r Row) bool { return r.AgeGroup == ag.Name })
		}
		return out, nil
	}

	add("", 1, func(Row) bool { return true })
	if q.ByState {
		for _, id := range params.States {
			add(stateName(rows, id), 1, func(r Row) bool { return r.StateID == id })
		}
	}
	return out, nil
}

// day truncates t to midnight UTC.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dateRange returns every day from the first to the last report date.
func dateRange(rows []Row) []time.Time {
	first, last := day(rows[0].ReportDate), day(rows[0].ReportDate)
	for _, r := range rows[1:] {
		d := day(r.ReportDate)
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}

	var dates []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// dailySums adds up the measure of matching rows per day. Negative counts
// are corrections of the feed and are skipped. found reports whether any
// row matched.
func dailySums(rows []Row, start time.Time, days int, m Measure, match func(Row) bool) (sums []float64, found bool) {
	sums = make([]float64, days)
	for _, r := range rows {
		if !match(r) {
			continue
		}
		found = true
		v := m.value(r)
		if v < 0 {
			continue
		}
		i := int(day(r.ReportDate).Sub(start).Hours() / 24)
		sums[i] += float64(v)
	}
	return sums, found
}

func window(sums []float64, factor float64, w int, mode WindowMode) []float64 {
	if len(sums) <= w {
		return []float64{}
	}

	cum := make([]float64, len(sums))
	var total float64
	for i, v := range sums {
		total += v * factor
		cum[i] = total
	}

	out := make([]float64, 0, len(sums)-w)
	for i := w; i < len(cum); i++ {
		if mode == AllTime {
			out = append(out, cum[i])
		} else {
			out = append(out, cum[i]-cum[i-w])
		}
	}
	return out
}

func stateName(rows []Row, id int) string {
	for _, r := range rows {
		if r.StateID == id && r.State != "" {
			return r.State
		}
	}
	return fmt.Sprintf("state %d", id)
}
