package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/anrid/covid-plots/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countryStats(t *testing.T, country string, population float64, confirmed []float64) *stats.CountryStats {
	t.Helper()
	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	var rs []stats.Record
	for i, c := range confirmed {
		rs = append(rs, stats.Record{Date: start.AddDate(0, 0, i), Country: country, Confirmed: c, Deaths: c / 100})
	}
	pop := &stats.Population{Regions: stats.Regions{{Name: country, Value: population}}}
	cs, err := stats.CalculateCountry(country, rs, pop, stats.DefaultCountryParams())
	require.NoError(t, err)
	return cs
}

func TestWriteSummary(t *testing.T) {
	all := []*stats.CountryStats{
		countryStats(t, "Denmark", 5825337, []float64{1000, 2000, 3000}),
		countryStats(t, "Germany", 83122889, []float64{100000, 1234567, 2345678}),
		{Country: "Empty"},
	}

	var buf bytes.Buffer
	WriteSummary(&buf, all, stats.Confirmed)
	out := buf.String()

	assert.Contains(t, out, "sorted by confirmed")
	assert.Contains(t, out, "2,345,678")
	assert.NotContains(t, out, "Empty")

	germany := strings.Index(out, "Germany")
	denmark := strings.Index(out, "Denmark")
	require.True(t, germany > 0 && denmark > 0)
	assert.Less(t, germany, denmark)

	buf.Reset()
	WriteSummary(&buf, all, stats.Confirmed100k)
	out = buf.String()
	assert.Contains(t, out, "sorted by confirmed_100k")
	assert.Less(t, strings.Index(out, "Germany"), strings.Index(out, "Denmark"))
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.xlsx")
	all := []*stats.CountryStats{
		countryStats(t, "Korea, South", 51600000, []float64{10, 20}),
		countryStats(t, "Taiwan*", 23568378, []float64{5, 6}),
	}
	require.NoError(t, WriteWorkbook(path, all))

	wb, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Korea, South", "Taiwan_"}, wb.GetSheetList())

	rows, err := wb.GetRows("Korea, South")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "date", rows[0][0])
	assert.Equal(t, "deaths_100k_14d", rows[0][8])
	assert.Equal(t, "2021-06-01", rows[1][0])
	assert.Equal(t, "20", rows[2][1])
}

func TestWriteWorkbookErrors(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, WriteWorkbook(filepath.Join(dir, "empty.xlsx"), nil))

	dup := []*stats.CountryStats{
		countryStats(t, "A?", 100, []float64{1}),
		countryStats(t, "A*", 100, []float64{1}),
	}
	assert.Error(t, WriteWorkbook(filepath.Join(dir, "dup.xlsx"), dup))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Congo (Kinshasa)", sheetName("Congo (Kinshasa)"))
	assert.Equal(t, "a_b_c", sheetName("a/b:c"))
	assert.Len(t, []rune(sheetName(strings.Repeat("x", 40))), 31)
}
