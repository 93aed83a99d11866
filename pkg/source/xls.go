package source

import (
	"bytes"
	"strings"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/anrid/xls"
	"github.com/m-mizutani/goerr/v2"
)

// ExtractDataFromFile calls handler for every row of the first sheet of a
// spreadsheet. Files ending in .xlsx are read as Office Open XML, everything
// else as legacy XLS.
func ExtractDataFromFile(f *File, handler func(r []string)) error {
	if strings.HasSuffix(strings.ToLower(f.URL), ".xlsx") {
		return ExtractDataFromXLSX(f, handler)
	}
	return ExtractDataFromXLS(f, handler)
}

func ExtractDataFromXLS(f *File, handler func(r []string)) error {
	wb, err := xls.OpenReader(bytes.NewReader(f.Content), "utf-8")
	if err != nil {
		return goerr.Wrap(err, "open XLS file", goerr.V("title", f.Title), goerr.V("url", f.URL))
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return goerr.New("XLS file has no sheet", goerr.V("title", f.Title))
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		var cols []string
		for j := 0; j <= row.LastCol(); j++ {
			cols = append(cols, row.Col(j))
		}
		handler(cols)
	}
	return nil
}

func ExtractDataFromXLSX(f *File, handler func(r []string)) error {
	wb, err := xlsx.OpenReader(bytes.NewReader(f.Content))
	if err != nil {
		return goerr.Wrap(err, "open XLSX file", goerr.V("title", f.Title), goerr.V("url", f.URL))
	}

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return goerr.New("XLSX file has no sheet", goerr.V("title", f.Title))
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return goerr.Wrap(err, "get rows", goerr.V("sheet", sheets[0]))
	}

	for _, r := range rows {
		handler(r)
	}
	return nil
}
