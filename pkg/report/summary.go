package report

import (
	"io"
	"sort"

	"github.com/anrid/covid-plots/pkg/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WriteSummary prints the latest values of every country, ranked by sortBy
// in descending order.
func WriteSummary(w io.Writer, all []*stats.CountryStats, sortBy stats.Metric) {
	latest := func(cs *stats.CountryStats, m stats.Metric) float64 {
		v := cs.Values(m)
		if len(v) == 0 {
			return 0
		}
		return v[len(v)-1]
	}

	sorted := make([]*stats.CountryStats, 0, len(all))
	for _, cs := range all {
		if cs.Len() > 0 {
			sorted = append(sorted, cs)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return latest(sorted[i], sortBy) > latest(sorted[j], sortBy)
	})

	// New locale number printer.
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "\nLatest values by country, sorted by %s:\n\n", sortBy)
	p.Fprintf(w, "%-3s %-22s %-10s %13s %10s %12s %12s %12s %10s\n",
		"#", "Country", "Date", "Confirmed", "Deaths", "Conf/100k", "Curr/100k", "Est/100k", "D14d/100k")

	for i, cs := range sorted {
		p.Fprintf(w, "%02d. %-22s %-10s %13.f %10.f %12.1f %12.1f %12.1f %10.2f\n",
			i+1, cs.Country, cs.Dates[cs.Len()-1].Format("2006-01-02"),
			latest(cs, stats.Confirmed),
			latest(cs, stats.Deaths),
			latest(cs, stats.Confirmed100k),
			latest(cs, stats.CurrentlyInfected100k),
			latest(cs, stats.EstInfected100k),
			latest(cs, stats.Deaths100k14d),
		)
	}
}
