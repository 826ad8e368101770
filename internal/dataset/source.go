package dataset

import (
	"context"

	"ngr-insights-go/internal/config"
	"ngr-insights-go/internal/logger"
	"ngr-insights-go/internal/types"
)

// LoadSources loads the bonus and freespin datasets from files, or from MySQL
// tables when a DSN is configured.
func LoadSources(ctx context.Context, cfg config.Config, log *logger.Logger) ([]*types.Dataset, error) {
	bonus, freespin := types.BonusFeatureSet(), types.FreespinFeatureSet()

	if cfg.DatasetDSN == "" {
		b, err := Load(cfg.BonusDatasetPath, bonus, log)
		if err != nil {
			return nil, err
		}
		f, err := Load(cfg.FreespinDatasetPath, freespin, log)
		if err != nil {
			return nil, err
		}
		return []*types.Dataset{b, f}, nil
	}

	db, err := OpenDB(ctx, cfg.DatasetDSN, cfg.DBConnectTimeout, log)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	b, err := LoadTable(ctx, db, cfg.BonusTable, bonus, log)
	if err != nil {
		return nil, err
	}
	f, err := LoadTable(ctx, db, cfg.FreespinTable, freespin, log)
	if err != nil {
		return nil, err
	}
	return []*types.Dataset{b, f}, nil
}
