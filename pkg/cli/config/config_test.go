package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/anrid/covid-plots/pkg/plot"
	"github.com/anrid/covid-plots/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGlobal() Global {
	return Global{
		Countries:    []string{"Germany"},
		SortBy:       "confirmed",
		RecoveryDays: 15,
		Lethality:    0.0157,
		DeathWindow:  14,
		ValueColumn:  1,
	}
}

func TestValidate(t *testing.T) {
	testCases := map[string]struct {
		cfg   any
		valid bool
	}{
		"logger ok":         {&Logger{Level: "debug", Format: "console"}, true},
		"logger no format":  {&Logger{Level: "info"}, true},
		"logger bad level":  {&Logger{Level: "trace"}, false},
		"logger bad format": {&Logger{Level: "info", Format: "xml"}, false},
		"source ok": {&Source{
			URL: "https://example.com/data.csv", CachePath: "raw_data.db", Timeout: time.Second,
		}, true},
		"source bad url": {&Source{
			URL: "not a url", CachePath: "raw_data.db", Timeout: time.Second,
		}, false},
		"source negative interval": {&Source{
			URL: "https://example.com", CachePath: "x", Interval: -time.Second, Timeout: time.Second,
		}, false},
		"output ok":         {&Output{Dir: "out", Format: "png"}, true},
		"output bad format": {&Output{Dir: "out", Format: "gif"}, false},
		"output no dir":     {&Output{Format: "svg"}, false},
		"regional ok": {&Regional{
			Window: 14, District: 9774, DistrictName: "Guenzburg", DistrictTag: "gz",
		}, true},
		"regional bad tag": {&Regional{
			Window: 14, District: 9774, DistrictName: "Guenzburg", DistrictTag: "g z",
		}, false},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := Validate(tc.cfg)
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestValidateGlobal(t *testing.T) {
	g := validGlobal()
	assert.NoError(t, Validate(&g))

	g = validGlobal()
	g.Countries = nil
	assert.Error(t, Validate(&g))

	g = validGlobal()
	g.Countries = []string{"Germany", ""}
	assert.Error(t, Validate(&g))

	g = validGlobal()
	g.Lethality = 1.5
	assert.Error(t, Validate(&g))

	g = validGlobal()
	g.DeathWindow = 0
	assert.Error(t, Validate(&g))
}

func TestGlobalParsePlots(t *testing.T) {
	g := validGlobal()
	plots, err := g.ParsePlots()
	require.NoError(t, err)
	assert.Equal(t, stats.DefaultPlots(), plots)

	g.Plots = []string{"deaths", "confirmed_100k+deaths_100k"}
	plots, err = g.ParsePlots()
	require.NoError(t, err)
	require.Len(t, plots, 2)
	assert.Equal(t, "confirmed_100k_deaths_100k", plots[1].Label())

	g.Plots = []string{"recovered"}
	_, err = g.ParsePlots()
	assert.Error(t, err)

	for _, p := range stats.DefaultPlots() {
		back, err := stats.ParsePlot(plotSpec(p))
		require.NoError(t, err)
		assert.Equal(t, p, back)
	}
}

func TestGlobalPopulation(t *testing.T) {
	g := validGlobal()
	pop, err := g.Population()
	require.NoError(t, err)
	assert.NotNil(t, pop.Regions.Find("Germany"))

	wb := xlsx.NewFile()
	rows := [][]interface{}{
		{"Population by country", ""},
		{"Country", "Residents"},
		{"Germany", "83,122,889"},
		{"Atlantis", "1 000"},
	}
	for i, row := range rows {
		cell, err := xlsx.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow("Sheet1", cell, &row))
	}
	g.PopulationFile = filepath.Join(t.TempDir(), "population.xlsx")
	require.NoError(t, wb.SaveAs(g.PopulationFile))

	pop, err = g.Population()
	require.NoError(t, err)
	residents, err := pop.Residents("Atlantis")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, residents)
	assert.Nil(t, pop.Regions.Find("France"))

	g.PopulationFile = filepath.Join(t.TempDir(), "missing.xlsx")
	_, err = g.Population()
	assert.Error(t, err)
}

func TestGlobalParams(t *testing.T) {
	g := validGlobal()
	assert.Equal(t, stats.DefaultCountryParams(), g.Params())
}

func TestRegionalParams(t *testing.T) {
	r := Regional{Window: 7}
	params := r.Params()
	assert.Equal(t, 7, params.Window)
	assert.Len(t, params.States, 16)
	assert.NotNil(t, params.AgeGroups.Regions.Find("A80+"))
}

func TestOutputEmitter(t *testing.T) {
	o := Output{Dir: "docs/plots", Format: "png", Width: 640, Height: 480}
	e := o.Emitter("rki")
	assert.Equal(t, &plot.Emitter{Dir: "docs/plots", Prefix: "rki", Format: plot.PNG, Width: 640, Height: 480}, e)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.LevelWarn, &buf, "auto")
	logger.Info("hidden")
	logger.Warn("shown", "country", "Germany")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "Germany", entry["country"])

	buf.Reset()
	NewLogger(slog.LevelInfo, &buf, "console").Info("colored")
	assert.Contains(t, buf.String(), "colored")
}

func TestLoggerLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Logger{Level: "debug"}).level())
	assert.Equal(t, slog.LevelError, (&Logger{Level: "error"}).level())
	assert.Equal(t, slog.LevelInfo, (&Logger{Level: "info"}).level())
}
