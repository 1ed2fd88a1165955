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
	"time"

	"github.com/redis/go-redis/v9"
)

// ICache is the cache abstraction used by repositories and middleware.
type ICache interface {
	// Get fetches a cached value
	Get(ctx context.Context, key string) *redis.StringCmd
	// Set stores a value with an expiration
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	// SetNX stores a value only if the key does not exist
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	// Del removes keys
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	// Exists reports how many of the given keys exist
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	// TTL returns the remaining lifetime of a key
	TTL(ctx context.Context, key string) *redis.DurationCmd
	// Expire sets the expiration on a key
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}
