//go:build wireinject
// +build wireinject

package main

import (
	"github.com/corrigo/corrigo/internal/engine/job"
	"github.com/corrigo/corrigo/internal/engine/repo"
	"github.com/corrigo/corrigo/internal/engine/router"
	"github.com/corrigo/corrigo/pkg/cache"
	"github.com/corrigo/corrigo/pkg/corrector"
	"github.com/corrigo/corrigo/pkg/log"
	"github.com/corrigo/corrigo/pkg/storage"
	"github.com/google/wire"
)

func initEngine(confDir string) (*engine, error) {
	panic(wire.Build(
		confProviderSet,
		log.ProviderSet,
		cache.ProviderSet,
		dbProviderSet,
		repo.ProviderSet,
		corrector.ProviderSet,
		storage.ProviderSet,
		metricsProviderSet,
		router.ProviderSet,
		provideContext,
		job.NewBlacklistJob,
		newEngine,
	))
}
