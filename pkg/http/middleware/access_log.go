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

package middleware

import (
	"strings"
	"time"

	"github.com/corrigo/corrigo/pkg/http"
	"github.com/corrigo/corrigo/pkg/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

type writerFunc func(p []byte) (int, error)

func (w writerFunc) Write(p []byte) (int, error) {
	return w(p)
}

func AccessLogMiddleware(httpConfig *http.Http) fiber.Handler {
	// paths that never hit the access log
	excludedPaths := []string{
		"/health",
		"/metrics",
		"/debug/pprof/*",
	}

	if httpConfig != nil && !httpConfig.AccessLog {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return logger.New(logger.Config{
		TimeFormat: time.RFC3339Nano,
		TimeZone:   "Local",
		Format:     "ip:[${ip}] method:[${method}] path:[${path}] latency:[${latency}] status:[${status}] queryParams:[${queryParams}] error:[${error}] ua:[${ua}] ",
		Next: func(c *fiber.Ctx) bool {
			path := c.Path()
			for _, rule := range excludedPaths {
				if before, ok := strings.CutSuffix(rule, "/*"); ok {
					if strings.HasPrefix(path, before) {
						return true
					}
				} else if path == rule {
					return true
				}
			}
			return false
		},
		Output: writerFunc(func(p []byte) (int, error) {
			log.Debug(strings.TrimSpace(string(p)))
			return len(p), nil
		}),
	})
}
