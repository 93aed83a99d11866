package source

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/golang/snappy"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Database is the on-disk cache of raw downloads. It is stored as
// snappy-compressed JSON.
type Database struct {
	Files []*File
	Saved time.Time
}

func NewDatabase() *Database {
	return &Database{}
}

// LoadIfExists reads the cache at dbFile. found is false when there is no
// such file.
func LoadIfExists(dbFile string) (db *Database, found bool, err error) {
	data, err := os.ReadFile(dbFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, goerr.Wrap(err, "read cache", goerr.V("path", dbFile))
	}

	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, false, goerr.Wrap(err, "decompress cache", goerr.V("path", dbFile))
	}

	db = new(Database)
	if err := json.Unmarshal(raw, db); err != nil {
		return nil, false, goerr.Wrap(err, "decode cache", goerr.V("path", dbFile))
	}

	return db, true, nil
}

func (db *Database) Save(dbFile string) error {
	db.Saved = time.Now()

	js, err := json.Marshal(db)
	if err != nil {
		return goerr.Wrap(err, "encode cache")
	}
	if err := os.WriteFile(dbFile, snappy.Encode(nil, js), 0o644); err != nil {
		return goerr.Wrap(err, "write cache", goerr.V("path", dbFile))
	}
	return nil
}

// Put adds f, replacing a file with the same title.
func (db *Database) Put(f *File) {
	for i, e := range db.Files {
		if e.Title == f.Title {
			db.Files[i] = f
			return
		}
	}
	db.Files = append(db.Files, f)
}

// Get returns the file with the exact title.
func (db *Database) Get(title string) (f *File, found bool) {
	for _, e := range db.Files {
		if e.Title == title {
			return e, true
		}
	}
	return nil, false
}

// WithPrefix returns all files whose title starts with prefix, in insertion
// order.
func (db *Database) WithPrefix(prefix string) []*File {
	var files []*File
	for _, f := range db.Files {
		if strings.HasPrefix(f.Title, prefix) {
			files = append(files, f)
		}
	}
	return files
}

// DropPrefix removes all files whose title starts with prefix.
func (db *Database) DropPrefix(prefix string) {
	kept := db.Files[:0]
	for _, f := range db.Files {
		if !strings.HasPrefix(f.Title, prefix) {
			kept = append(kept, f)
		}
	}
	db.Files = kept
}

func (db *Database) Info(ctx context.Context) {
	contentSize := 0
	var first, last time.Time
	for _, f := range db.Files {
		contentSize += len(f.Content)
		if first.IsZero() || f.Downloaded.Before(first) {
			first = f.Downloaded
		}
		if f.Downloaded.After(last) {
			last = f.Downloaded
		}
	}

	ctxlog.From(ctx).Info("raw data cache",
		"files", len(db.Files),
		"content_size", contentSize,
		"first_download", first,
		"last_download", last,
	)
}
