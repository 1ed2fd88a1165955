package config

import (
	"fmt"
	"sync"

	"github.com/corrigo/corrigo/pkg/cache"
	"github.com/corrigo/corrigo/pkg/corrector"
	"github.com/corrigo/corrigo/pkg/database"
	"github.com/corrigo/corrigo/pkg/http"
	"github.com/corrigo/corrigo/pkg/log"
	"github.com/corrigo/corrigo/pkg/metrics"
	"github.com/corrigo/corrigo/pkg/storage"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Log       log.Conf
	Http      http.Http
	Database  database.Database
	Redis     cache.Redis
	Corrector corrector.Config
	Storage   storage.Storage
	Metrics   metrics.MetricsConfig
}

var (
	cfg  AppConfig
	once sync.Once
)

func NewConf(confDir string) AppConfig {
	once.Do(func() {
		var err error
		cfg, err = LoadConfigFile(confDir)
		if err != nil {
			panic(fmt.Sprintf("load config file error: %s", err))
		}
	})
	return cfg
}

// LoadConfigFile load config file
func LoadConfigFile(confDir string) (AppConfig, error) {

	config := viper.New()
	config.SetConfigFile(confDir)
	if err := config.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("failed to read configuration file: %v", err)
	}

	config.WatchConfig()
	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("The configuration changes, re-analyze the configuration file: %s", e.Name)
		if err := config.Unmarshal(&cfg); err != nil {
			log.Errorf("failed to unmarshal configuration file: %v", err)
		}
	})
	if err := config.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal configuration file: %v", err)
	}
	cfg.Corrector.SetDefaults()
	log.Infow("config file loaded",
		"path", confDir,
	)

	return cfg, nil
}
