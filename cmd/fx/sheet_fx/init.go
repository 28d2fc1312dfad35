package sheet_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"superagent/internal/config"
	"superagent/internal/infra"
	"superagent/internal/repositories"
)

var Module = fx.Options(
	fx.Provide(provideSheetRepository),
	fx.Invoke(ensureHeaderOnStart),
)

// provideSheetRepository picks the lead sink named by SHEET_BACKEND.
func provideSheetRepository(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (repositories.SheetRepository, error) {
	logger = logger.Named("sheet")

	switch cfg.Sheet.Backend {
	case config.SheetBackendGoogle:
		return repositories.NewGoogleSheetRepository(context.Background(), repositories.GoogleSheetConfig{
			SpreadsheetID:   cfg.Sheet.SpreadsheetID,
			Worksheet:       cfg.Sheet.Worksheet,
			CredentialsFile: cfg.Sheet.CredentialsFile,
		}, logger)

	case config.SheetBackendPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.SinkTimeout)
		defer cancel()
		db, err := infra.InitPostgresql(ctx, cfg.Sheet.PostgresURL)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				infra.ClosePostgresql(db, logger)
				return nil
			},
		})
		return repositories.NewPostgresSheetRepository(db), nil

	case config.SheetBackendNone:
		logger.Warn("sheet backend disabled, leads will not be stored")
		return repositories.NewDisabledSheetRepository(), nil
	}
	return nil, fmt.Errorf("unknown sheet backend %q", cfg.Sheet.Backend)
}

// ensureHeaderOnStart checks the header once at boot. A failure is logged;
// every append checks again.
func ensureHeaderOnStart(lc fx.Lifecycle, repo repositories.SheetRepository, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := repo.EnsureHeader(ctx); err != nil {
				logger.Warn("sheet header check at startup failed", zap.Error(err))
			}
			return nil
		},
	})
}
