package dataset

import (
	"context"
	"fmt"

	"whiskey-reviewer/internal/common/config"
	"whiskey-reviewer/internal/common/database"
	"whiskey-reviewer/internal/common/errors"
)

// Open loads the dataset from the source named in configuration.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Dataset.Source {
	case config.DatasetSourceFile, "":
		return LoadFile(cfg.Dataset.Path)

	case config.DatasetSourcePostgres:
		pg, err := database.NewPostgres(ctx, cfg.Database.Postgres)
		if err != nil {
			return nil, errors.NewDatasetLoadFailedError("postgres:"+cfg.Dataset.Table, err)
		}
		defer pg.Close()
		return LoadPostgres(ctx, pg.DB, cfg.Dataset.Table)
	}

	return nil, errors.NewDatasetLoadFailedError(cfg.Dataset.Source,
		fmt.Errorf("unsupported dataset source %q", cfg.Dataset.Source))
}
