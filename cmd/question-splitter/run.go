package main

import (
	"context"
	"fmt"

	"github.com/spherical/question-splitter/internal/cache"
	"github.com/spherical/question-splitter/internal/config"
	"github.com/spherical/question-splitter/internal/domain"
	"github.com/spherical/question-splitter/internal/observability"
	"github.com/spherical/question-splitter/internal/pipeline"
	"github.com/spherical/question-splitter/internal/question"
	"github.com/spherical/question-splitter/internal/sink"
	"github.com/spherical/question-splitter/internal/source"
	"github.com/spherical/question-splitter/internal/storage"
	"github.com/spherical/question-splitter/internal/ui"
)

// run executes one split with the given configuration and prints the summary.
func run(ctx context.Context, cfg *config.Config, logger *observability.Logger, out *ui.UI) error {
	pageMode, err := question.ParsePageMode(cfg.Classify.PageMode)
	if err != nil {
		return domain.ConfigError("invalid page mode", err)
	}

	cacheClient := openCache(ctx, cfg.Cache, logger)
	if cacheClient != nil {
		defer cacheClient.Close()
	}

	src := buildSource(cfg, cacheClient, logger, out)

	var (
		sinks    []domain.Sink
		textSink *sink.TextFileSink
		dbSink   *sink.DatabaseSink
	)

	if cfg.Output.Text.Enabled {
		imagePath := cfg.Output.Text.ImagePath
		if !cfg.Classify.ImageAware {
			imagePath = ""
		}
		textSink = sink.NewTextFileSink(cfg.Output.Text.MCQPath, cfg.Output.Text.YesNoPath, imagePath, logger)
		sinks = append(sinks, textSink)
	}

	if cfg.Output.Database.Enabled {
		db, err := openDatabase(ctx, cfg.Output.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		dbSink = sink.NewDatabaseSink(db, sink.CommitMode(cfg.Output.Database.CommitMode), logger)
		sinks = append(sinks, dbSink)
	}

	svc := pipeline.NewService(src, sinks,
		question.Options{ImageAware: cfg.Classify.ImageAware, PageMode: pageMode},
		pipeline.WithLogger(logger),
		pipeline.WithEventHandler(out.HandleEvent),
	)

	set, _, err := svc.Process(ctx)
	if err != nil {
		return err
	}

	if textSink != nil {
		for _, c := range domain.Categories {
			if path := textSink.Path(c); path != "" {
				out.Written(len(set.ByCategory(c)), c, path)
			}
		}
	}
	if dbSink != nil {
		out.Saved(dbSink.Saved(), cfg.Output.Database.Driver)
	}

	return nil
}

func buildSource(cfg *config.Config, c cache.Client, logger *observability.Logger, out *ui.UI) domain.TextSource {
	var src source.PathSource
	switch cfg.Source.Kind {
	case "text":
		src = source.NewTextFileSource(cfg.Source.Path)
	default:
		src = source.NewPDFSource(cfg.Source.Path,
			source.WithImageDetection(cfg.Source.DetectImages && cfg.Classify.ImageAware),
			source.WithProgress(out.PageProgress),
			source.WithLogger(logger),
		)
	}

	if c == nil {
		return src
	}
	return source.NewCachedSource(src, c, cfg.Cache.TTL, logger)
}

// openCache returns nil when caching is off or the backend is unreachable.
func openCache(ctx context.Context, cfg config.CacheConfig, logger *observability.Logger) cache.Client {
	switch cfg.Driver {
	case "redis":
		client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
			TLS:      cfg.Redis.TLS,
		})
		if err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, running without extraction cache")
			return nil
		}
		return client
	default:
		return nil
	}
}

// openDatabase acquires the run-scoped handle. The caller closes it.
func openDatabase(ctx context.Context, cfg config.DatabaseOutputConfig, logger *observability.Logger) (*storage.DB, error) {
	dsn := cfg.DSN
	if cfg.Driver == storage.DriverSQLite {
		dsn = cfg.SQLitePath
	}

	db, err := storage.Open(ctx, storage.Options{
		Driver:          cfg.Driver,
		DSN:             dsn,
		MaxOpenConns:    cfg.MaxOpenConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, domain.SinkFailure("database unavailable", err)
	}

	if cfg.AutoMigrate {
		applied, err := storage.NewMigrationManager(db).Migrate(ctx)
		if err != nil {
			db.Close()
			return nil, domain.SinkFailure("database migration failed", err)
		}
		if len(applied) > 0 {
			logger.Info().Int("count", len(applied)).Msg("Applied database migrations")
		}
	}

	return db, nil
}

// describeDatabase names the configured database in messages.
func describeDatabase(cfg config.DatabaseOutputConfig) string {
	if cfg.Driver == storage.DriverSQLite {
		return fmt.Sprintf("sqlite (%s)", cfg.SQLitePath)
	}
	return cfg.Driver
}
