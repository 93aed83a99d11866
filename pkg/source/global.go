package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/anrid/covid-plots/pkg/stats"
	"github.com/m-mizutani/goerr/v2"
)

// GlobalURL is the combined JHU time series of the datasets/covid-19 repo.
const GlobalURL = "https://raw.githubusercontent.com/datasets/covid-19/master/data/time-series-19-covid-combined.csv"

const globalTitle = "global time series"

var ErrMissingColumn = goerr.New("missing column")

const (
	colDate      = "Date"
	colCountry   = "Country/Region"
	colConfirmed = "Confirmed"
	colDeaths    = "Deaths"
)

// FetchGlobal returns the global CSV, from db when fromCache is set and the
// file is cached, otherwise from url. A fresh download is stored in db.
func FetchGlobal(ctx context.Context, fetcher *Fetcher, db *Database, url string, fromCache bool) (*File, error) {
	if fromCache {
		if f, found := db.Get(globalTitle); found {
			return f, nil
		}
	}

	f := &File{URL: url, Title: globalTitle}
	if err := f.DownloadContent(ctx, fetcher); err != nil {
		return nil, err
	}
	db.Put(f)
	return f, nil
}

// ParseGlobal reads the global CSV. Countries split into provinces are
// summed per day. Records are returned grouped by country and sorted by
// date.
func ParseGlobal(f *File) (map[string][]stats.Record, error) {
	r := csv.NewReader(bytes.NewReader(f.Content))
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, goerr.Wrap(err, "read CSV header", goerr.V("title", f.Title))
	}
	idx := make(map[string]int)
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range []string{colDate, colCountry, colConfirmed, colDeaths} {
		if _, ok := idx[c]; !ok {
			return nil, goerr.Wrap(ErrMissingColumn, "parse global CSV", goerr.V("column", c))
		}
	}

	type key struct {
		country string
		date    time.Time
	}
	sums := make(map[key]*stats.Record)

	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "read CSV row", goerr.V("line", line))
		}

		date, err := time.Parse("2006-01-02", row[idx[colDate]])
		if err != nil {
			return nil, goerr.Wrap(err, "parse date", goerr.V("line", line))
		}
		confirmed, err := parseCell(row[idx[colConfirmed]])
		if err != nil {
			return nil, goerr.Wrap(err, "parse confirmed", goerr.V("line", line))
		}
		deaths, err := parseCell(row[idx[colDeaths]])
		if err != nil {
			return nil, goerr.Wrap(err, "parse deaths", goerr.V("line", line))
		}

		k := key{country: row[idx[colCountry]], date: date}
		rec, ok := sums[k]
		if !ok {
			rec = &stats.Record{Date: date, Country: k.country}
			sums[k] = rec
		}
		rec.Confirmed += confirmed
		rec.Deaths += deaths
	}

	out := make(map[string][]stats.Record)
	for _, rec := range sums {
		out[rec.Country] = append(out[rec.Country], *rec)
	}
	for _, rs := range out {
		sort.Slice(rs, func(i, j int) bool {
			return rs[i].Date.Before(rs[j].Date)
		})
	}
	return out, nil
}

// parseCell reads a count; empty cells are zero.
func parseCell(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}
