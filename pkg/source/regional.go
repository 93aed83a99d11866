package source

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/anrid/covid-plots/pkg/stats"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// RegionalURL is the RKI case feed on ArcGIS. Pages are selected with the
// resultOffset parameter.
const RegionalURL = "https://services7.arcgis.com/mOBPykOjAyBO2ZKk/arcgis/rest/services/RKI_COVID19/FeatureServer/0/query?where=1%3D1&outFields=*&outSR=4326&f=json"

const regionalTitlePrefix = "regional page "

var ErrFeedError = goerr.New("feed reported an error")

type page struct {
	Fields []struct {
		Name string `json:"name"`
	} `json:"fields"`
	Features []struct {
		Attributes attributes `json:"attributes"`
	} `json:"features"`
	ExceededTransferLimit *bool `json:"exceededTransferLimit"`
	// Error is set instead of features when the query failed. The status
	// is still 200.
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// decodePage reads one page. Error bodies and pages without a features
// list are rejected.
func decodePage(f *File) (*page, error) {
	var p page
	if err := json.Unmarshal(f.Content, &p); err != nil {
		return nil, goerr.Wrap(err, "decode regional page", goerr.V("title", f.Title), goerr.V("url", f.URL))
	}
	if p.Error != nil {
		return nil, goerr.Wrap(ErrFeedError, "regional page",
			goerr.V("title", f.Title),
			goerr.V("url", f.URL),
			goerr.V("code", p.Error.Code),
			goerr.V("message", p.Error.Message),
		)
	}
	if p.Features == nil {
		return nil, goerr.New("regional page has no features", goerr.V("title", f.Title), goerr.V("url", f.URL))
	}
	return &p, nil
}

func (p *page) more() bool {
	return p.ExceededTransferLimit != nil && *p.ExceededTransferLimit && len(p.Features) > 0
}

type attributes struct {
	ReportDate int64   `json:"Meldedatum"`
	StateID    flexInt `json:"IdBundesland"`
	State      string  `json:"Bundesland"`
	DistrictID flexInt `json:"IdLandkreis"`
	District   string  `json:"Landkreis"`
	AgeGroup   string  `json:"Altersgruppe"`
	Cases      int     `json:"AnzahlFall"`
	Deaths     int     `json:"AnzahlTodesfall"`
}

// flexInt accepts both 9774 and "09774".
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return goerr.Wrap(err, "parse id", goerr.V("value", s))
	}
	*n = flexInt(v)
	return nil
}

// FetchRegional downloads all pages of the regional feed. It keeps
// requesting until a page no longer reports an exceeded transfer limit. With
// fromCache set, cached pages are returned without any request. A page that
// fails leaves the cached pages untouched.
func FetchRegional(ctx context.Context, fetcher *Fetcher, db *Database, baseURL string, fromCache bool) ([]*File, error) {
	if fromCache {
		if files := db.WithPrefix(regionalTitlePrefix); len(files) > 0 {
			return files, nil
		}
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "parse regional URL", goerr.V("url", baseURL))
	}

	logger := ctxlog.From(ctx)
	var files []*File
	offset := 0
	for {
		q := base.Query()
		q.Set("resultOffset", strconv.Itoa(offset))
		u := *base
		u.RawQuery = q.Encode()

		f := &File{URL: u.String(), Title: fmt.Sprintf("%s%05d", regionalTitlePrefix, len(files))}
		if err := f.DownloadContent(ctx, fetcher); err != nil {
			return nil, err
		}

		p, err := decodePage(f)
		if err != nil {
			return nil, goerr.Wrap(err, "fetch regional feed", goerr.V("offset", offset))
		}
		files = append(files, f)
		offset += len(p.Features)
		logger.Debug("fetched regional page", "page", len(files), "rows", offset)

		if !p.more() {
			break
		}
	}

	db.DropPrefix(regionalTitlePrefix)
	for _, f := range files {
		db.Put(f)
	}

	return files, nil
}

// ParseRegional flattens the features of all pages into rows.
func ParseRegional(files []*File) ([]stats.Row, error) {
	var rows []stats.Row
	for _, f := range files {
		p, err := decodePage(f)
		if err != nil {
			return nil, err
		}
		for _, feat := range p.Features {
			a := feat.Attributes
			rows = append(rows, stats.Row{
				ReportDate: time.UnixMilli(a.ReportDate).UTC(),
				StateID:    int(a.StateID),
				State:      a.State,
				DistrictID: int(a.DistrictID),
				District:   a.District,
				AgeGroup:   a.AgeGroup,
				Cases:      a.Cases,
				Deaths:     a.Deaths,
			})
		}
	}
	return rows, nil
}

var rowsHeader = []string{
	"Meldedatum", "IdBundesland", "Bundesland", "IdLandkreis", "Landkreis",
	"Altersgruppe", "AnzahlFall", "AnzahlTodesfall",
}

// WriteRowsCSV writes rows as a semicolon separated table.
func WriteRowsCSV(w io.Writer, rows []stats.Row) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(rowsHeader); err != nil {
		return goerr.Wrap(err, "write CSV header")
	}
	for _, r := range rows {
		rec := []string{
			r.ReportDate.Format("2006-01-02"),
			strconv.Itoa(r.StateID),
			r.State,
			fmt.Sprintf("%05d", r.DistrictID),
			r.District,
			r.AgeGroup,
			strconv.Itoa(r.Cases),
			strconv.Itoa(r.Deaths),
		}
		if err := cw.Write(rec); err != nil {
			return goerr.Wrap(err, "write CSV row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "flush CSV")
	}
	return nil
}
