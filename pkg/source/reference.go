package source

import (
	"strconv"
	"strings"

	"github.com/anrid/covid-plots/pkg/stats"
	"github.com/m-mizutani/goerr/v2"
)

// LoadPopulation reads a population reference table from a spreadsheet.
// Rows whose name cell is empty or whose value cell is not a number (headers,
// footnotes) are skipped.
func LoadPopulation(f *File, nameCol, valueCol int) (*stats.Population, error) {
	if nameCol < 0 || valueCol < 0 {
		return nil, goerr.New("column index must not be negative",
			goerr.V("name_col", nameCol), goerr.V("value_col", valueCol))
	}

	pop := &stats.Population{Source: f.Title}

	err := ExtractDataFromFile(f, func(row []string) {
		if len(row) <= nameCol || len(row) <= valueCol {
			return
		}
		name := mustTrim(row[nameCol])
		if name == "" {
			return
		}
		v, ok := parseCount(row[valueCol])
		if !ok {
			return
		}
		pop.Regions = append(pop.Regions, &stats.Region{Name: name, Value: v})
	})
	if err != nil {
		return nil, err
	}

	if len(pop.Regions) == 0 {
		return nil, goerr.New("no population rows found", goerr.V("title", f.Title))
	}
	return pop, nil
}

func mustTrim(v string) string {
	return strings.Trim(v, " \n\t\r\"")
}

// parseCount parses numbers like "83 122 889" or "83,122,889".
func parseCount(v string) (float64, bool) {
	v = strings.NewReplacer(",", "", " ", "", "\u00a0", "").Replace(mustTrim(v))
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
