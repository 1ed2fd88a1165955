package main

import (
	"context"

	"github.com/corrigo/corrigo/internal/engine/config"
	"github.com/corrigo/corrigo/internal/engine/job"
	"github.com/corrigo/corrigo/internal/engine/router"
	"github.com/corrigo/corrigo/pkg/cache"
	"github.com/corrigo/corrigo/pkg/corrector"
	"github.com/corrigo/corrigo/pkg/ctx"
	"github.com/corrigo/corrigo/pkg/database"
	"github.com/corrigo/corrigo/pkg/http"
	"github.com/corrigo/corrigo/pkg/log"
	"github.com/corrigo/corrigo/pkg/metrics"
	"github.com/corrigo/corrigo/pkg/storage"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// engine bundles everything main starts and stops.
type engine struct {
	router     *router.Router
	metricsSrv *metrics.Server
	collector  *metrics.EditorCollector
	blacklist  *job.BlacklistJob
}

func newEngine(route *router.Router, metricsSrv *metrics.Server,
	collector *metrics.EditorCollector, blacklist *job.BlacklistJob) *engine {
	return &engine{
		router:     route,
		metricsSrv: metricsSrv,
		collector:  collector,
		blacklist:  blacklist,
	}
}

// confProviderSet splits the loaded AppConfig into the per-package
// config values the constructors take.
var confProviderSet = wire.NewSet(
	provideConf,
	provideLogConf,
	provideHTTPConf,
	provideRedisConf,
	provideDatabaseConf,
	provideCorrectorConf,
	provideStorageConf,
	provideMetricsConf,
)

func provideConf(confDir string) config.AppConfig {
	return config.NewConf(confDir)
}

func provideLogConf(appConf config.AppConfig) *log.Conf {
	return &appConf.Log
}

func provideHTTPConf(appConf config.AppConfig) *http.Http {
	return &appConf.Http
}

func provideRedisConf(appConf config.AppConfig) cache.Redis {
	return appConf.Redis
}

func provideDatabaseConf(appConf config.AppConfig) database.Database {
	return appConf.Database
}

func provideCorrectorConf(appConf config.AppConfig) *corrector.Config {
	return &appConf.Corrector
}

func provideStorageConf(appConf config.AppConfig) *storage.Storage {
	return &appConf.Storage
}

func provideMetricsConf(appConf config.AppConfig) metrics.MetricsConfig {
	return appConf.Metrics
}

var dbProviderSet = wire.NewSet(database.NewDatabase, database.NewGormDB)

var metricsProviderSet = wire.NewSet(metrics.NewEditorCollector, metrics.NewServer)

func provideContext(logger *log.Logger, db *gorm.DB, rdb *redis.Client) *ctx.Context {
	return ctx.NewContext(context.Background(), db, rdb, logger.Log)
}
