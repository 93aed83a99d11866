package source

import (
	"context"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// File represents a file containing raw statistical data: a CSV export, a
// page of a JSON feed or a spreadsheet with a reference table.
type File struct {
	URL        string
	Title      string
	Content    []byte
	Downloaded time.Time
}

func (f *File) DownloadContent(ctx context.Context, fetcher *Fetcher) error {
	data, err := fetcher.download(ctx, f.URL)
	if err != nil {
		return goerr.Wrap(err, "download file content", goerr.V("title", f.Title))
	}
	f.Content = data
	f.Downloaded = time.Now()
	return nil
}

// OpenFile reads a local file. The path doubles as the URL so the format
// can be told from its extension.
func OpenFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "read file", goerr.V("path", path))
	}
	return &File{URL: path, Title: path, Content: data}, nil
}
