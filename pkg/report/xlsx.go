package report

import (
	"strings"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/anrid/covid-plots/pkg/stats"
	"github.com/m-mizutani/goerr/v2"
)

const defaultSheet = "Sheet1"

// WriteWorkbook saves the derived series as an xlsx workbook with one sheet
// per country.
func WriteWorkbook(path string, all []*stats.CountryStats) error {
	if len(all) == 0 {
		return goerr.New("no country statistics to export")
	}

	wb := xlsx.NewFile()

	header := []interface{}{"date"}
	for _, m := range stats.Metrics() {
		header = append(header, m.String())
	}

	used := make(map[string]bool)
	first := ""
	for _, cs := range all {
		name := sheetName(cs.Country)
		if used[name] {
			return goerr.New("duplicate sheet name", goerr.V("country", cs.Country), goerr.V("sheet", name))
		}
		used[name] = true
		if first == "" {
			first = name
		}

		wb.NewSheet(name)
		if err := wb.SetSheetRow(name, "A1", &header); err != nil {
			return goerr.Wrap(err, "write header", goerr.V("sheet", name))
		}

		for i := 0; i < cs.Len(); i++ {
			row := []interface{}{cs.Dates[i].Format("2006-01-02")}
			for _, m := range stats.Metrics() {
				row = append(row, cs.Values(m)[i])
			}
			cell, err := xlsx.CoordinatesToCellName(1, i+2)
			if err != nil {
				return goerr.Wrap(err, "cell name", goerr.V("row", i+2))
			}
			if err := wb.SetSheetRow(name, cell, &row); err != nil {
				return goerr.Wrap(err, "write row", goerr.V("sheet", name), goerr.V("row", i+2))
			}
		}
	}

	if !used[defaultSheet] {
		wb.DeleteSheet(defaultSheet)
	}
	wb.SetActiveSheet(wb.GetSheetIndex(first))

	if err := wb.SaveAs(path); err != nil {
		return goerr.Wrap(err, "save workbook", goerr.V("path", path))
	}
	return nil
}

// sheetName strips the characters Excel rejects and cuts the name to 31
// characters.
func sheetName(country string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, country)
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}
