// Copyright 2025 Corrigo Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

// ProviderSet is the Wire provider set for the cache package.
var ProviderSet = wire.NewSet(ProvideRedis, ProvideICache)

// ProvideRedis builds a Redis client from config.
func ProvideRedis(conf Redis) (*redis.Client, error) {
	return NewRedis(conf)
}

// ProvideICache wraps a Redis client in the ICache interface.
func ProvideICache(client *redis.Client) ICache {
	return NewRedisCache(client)
}

type Redis struct {
	Mode         string
	Address      string
	Password     string
	DB           int
	PoolSize     int
	UseTLS       bool
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func NewRedis(cfg Redis) (*redis.Client, error) {
	var redisClient *redis.Client

	switch cfg.Mode {
	case "", "single":
		redisOptions := &redis.Options{
			Addr:         cfg.Address,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     cfg.PoolSize,
			DialTimeout:  cfg.DialTimeout * time.Second,
			ReadTimeout:  cfg.ReadTimeout * time.Second,
			WriteTimeout: cfg.WriteTimeout * time.Second,
		}
		if cfg.UseTLS {
			redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewClient(redisOptions)
	default:
		return nil, fmt.Errorf("unsupported redis mode: %s", cfg.Mode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return redisClient, nil
}
