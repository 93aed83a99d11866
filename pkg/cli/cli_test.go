package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func globalCSV(days int) string {
	var b strings.Builder
	b.WriteString("Date,Country/Region,Province/State,Confirmed,Deaths\n")
	start := time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		fmt.Fprintf(&b, "%s,Italy,,%d,%d\n", date, 500*(i+1), 7*i)
		fmt.Fprintf(&b, "%s,Sweden,,%d,%d\n", date, 50*(i+1), i)
	}
	return b.String()
}

func TestGlobalCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, globalCSV(20))
	}))
	defer srv.Close()

	dir := t.TempDir()
	var out bytes.Buffer
	cmd := cmdGlobal()
	cmd.Writer = &out

	err := run(context.Background(), cmd, []string{
		"covid-global",
		"--log-format", "json",
		"--url", srv.URL,
		"--cache", filepath.Join(dir, "raw_data.db"),
		"--out-dir", filepath.Join(dir, "plots"),
		"--format", "png",
		"--country", "Italy",
		"--country", "Sweden",
		"--plot", "confirmed_100k",
		"--plot", "deaths+deaths_100k",
		"--sort-by", "confirmed",
	})
	require.NoError(t, err)

	for _, name := range []string{"jh_confirmed_100k.png", "jh_deaths_deaths_100k.png"} {
		_, err := os.Stat(filepath.Join(dir, "plots", name))
		assert.NoError(t, err, name)
	}
	assert.Contains(t, out.String(), "sorted by confirmed")
	assert.Less(t, strings.Index(out.String(), "Italy"), strings.Index(out.String(), "Sweden"))
}

func TestGlobalCommandInvalidFlags(t *testing.T) {
	testCases := map[string][]string{
		"bad format":    {"--format", "gif"},
		"bad lethality": {"--lethality", "0"},
		"bad plot":      {"--plot", "confirmed+nothing"},
		"bad sort":      {"--sort-by", "nothing"},
		"no countries":  {"--country", ""},
		"bad log level": {"--log-level", "loud"},
	}

	for name, args := range testCases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			cmd := cmdGlobal()
			cmd.Writer = &bytes.Buffer{}
			base := []string{
				"covid-global",
				"--log-format", "json",
				"--url", "http://127.0.0.1:1/none.csv",
				"--cache", filepath.Join(dir, "raw_data.db"),
				"--out-dir", dir,
			}
			err := run(context.Background(), cmd, append(base, args...))
			assert.Error(t, err)
		})
	}
}

func TestRegionalCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var feats []string
		start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 20; i++ {
			feats = append(feats, fmt.Sprintf(
				`{"attributes":{"Meldedatum":%d,"IdBundesland":9,"Bundesland":"Bayern","IdLandkreis":9774,"Landkreis":"LK Günzburg","Altersgruppe":"A15-A34","AnzahlFall":4,"AnzahlTodesfall":1}}`,
				start.AddDate(0, 0, i).UnixMilli()))
		}
		fmt.Fprintf(w, `{"fields":[],"features":[%s]}`, strings.Join(feats, ","))
	}))
	defer srv.Close()

	dir := t.TempDir()
	err := run(context.Background(), cmdRegional(), []string{
		"covid-regional",
		"--log-format", "json",
		"--url", srv.URL + "/query?f=json",
		"--cache", filepath.Join(dir, "raw_rki_data.db"),
		"--out-dir", filepath.Join(dir, "plots"),
		"--rows-csv", filepath.Join(dir, "rki_data.csv"),
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "plots"))
	require.NoError(t, err)
	assert.Len(t, entries, 10)

	_, err = os.Stat(filepath.Join(dir, "plots", "rki_infected_age_gz.svg"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "rki_data.csv"))
	assert.NoError(t, err)
}
