package pipeline

import (
	"context"

	"github.com/anrid/covid-plots/pkg/source"
	"github.com/m-mizutani/ctxlog"
)

// openCache loads the raw data cache at path. An empty path disables the
// cache and a missing file starts an empty one.
func openCache(ctx context.Context, path string) (*source.Database, error) {
	if path == "" {
		return source.NewDatabase(), nil
	}
	db, found, err := source.LoadIfExists(path)
	if err != nil {
		return nil, err
	}
	if !found {
		ctxlog.From(ctx).Info("no raw data cache yet", "path", path)
		return source.NewDatabase(), nil
	}
	db.Info(ctx)
	return db, nil
}

func saveCache(ctx context.Context, db *source.Database, path string) error {
	if path == "" {
		return nil
	}
	if err := db.Save(path); err != nil {
		return err
	}
	ctxlog.From(ctx).Debug("raw data cache saved", "path", path, "files", len(db.Files))
	return nil
}
