package stats

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Metric selects one derived country series.
type Metric int

const (
	Confirmed Metric = iota + 1
	Deaths
	CurrentlyInfected
	Confirmed100k
	Deaths100k
	CurrentlyInfected100k
	EstInfected100k
	Deaths100k14d
)

var metricLabels = map[Metric]string{
	Confirmed:             "confirmed",
	Deaths:                "deaths",
	CurrentlyInfected:     "currently_infected",
	Confirmed100k:         "confirmed_100k",
	Deaths100k:            "deaths_100k",
	CurrentlyInfected100k: "currently_infected_100k",
	EstInfected100k:       "est_infected_100k",
	Deaths100k14d:         "deaths_100k_14d",
}

// Metrics lists all metrics in column order.
func Metrics() []Metric {
	return []Metric{
		Confirmed, Deaths, CurrentlyInfected, Confirmed100k,
		Deaths100k, CurrentlyInfected100k, EstInfected100k, Deaths100k14d,
	}
}

func (m Metric) String() string {
	if l, ok := metricLabels[m]; ok {
		return l
	}
	return "unknown"
}

// ParseMetric is the inverse of Metric.String.
func ParseMetric(label string) (Metric, error) {
	for m, l := range metricLabels {
		if l == label {
			return m, nil
		}
	}
	return 0, goerr.New("unknown metric", goerr.V("label", label))
}

// Plot describes which metrics a chart shows. It is either a SingleAxis or
// a DualAxis.
type Plot interface {
	Label() string
	Primary() Metric
	Secondary() (Metric, bool)

	plot()
}

// SingleAxis plots one metric on the primary y axis.
type SingleAxis struct {
	Metric Metric
}

func (p SingleAxis) Label() string { return p.Metric.String() }
func (p SingleAxis) Primary() Metric { return p.Metric }
func (p SingleAxis) Secondary() (Metric, bool) { return 0, false }
func (SingleAxis) plot() {}

// DualAxis plots one metric per y axis.
type DualAxis struct {
	PrimaryMetric   Metric
	SecondaryMetric Metric
}

func (p DualAxis) Label() string { return p.PrimaryMetric.String() + "_" + p.SecondaryMetric.String() }
func (p DualAxis) Primary() Metric { return p.PrimaryMetric }
func (p DualAxis) Secondary() (Metric, bool) { return p.SecondaryMetric, true }
func (DualAxis) plot() {}

// DefaultPlots is the chart selection of the global pipeline.
func DefaultPlots() []Plot {
	return []Plot{
		SingleAxis{Deaths100k14d},
		SingleAxis{CurrentlyInfected100k},
		SingleAxis{Confirmed100k},
		SingleAxis{EstInfected100k},
		DualAxis{CurrentlyInfected100k, Deaths100k14d},
	}
}

// ParsePlot reads "metric" or "primary+secondary".
func ParsePlot(s string) (Plot, error) {
	if first, second, ok := strings.Cut(s, "+"); ok {
		p, err := ParseMetric(first)
		if err != nil {
			return nil, err
		}
		sec, err := ParseMetric(second)
		if err != nil {
			return nil, err
		}
		return DualAxis{p, sec}, nil
	}
	m, err := ParseMetric(s)
	if err != nil {
		return nil, err
	}
	return SingleAxis{m}, nil
}
