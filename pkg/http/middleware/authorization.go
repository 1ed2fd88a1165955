package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/corrigo/corrigo/internal/engine/consts"
	"github.com/corrigo/corrigo/pkg/http"
	"github.com/corrigo/corrigo/pkg/http/jwt"
	"github.com/corrigo/corrigo/pkg/log"
	"github.com/gofiber/fiber/v2"
	goJwt "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// AuthorizationMiddleware validates the bearer token and checks the
// session key in Redis. A login that has been revoked (forced logout
// after a free-tier rejection, suspension) drops the session key, so
// a still-valid JWT is not enough on its own.
func AuthorizationMiddleware(secretKey string, client redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aToken := c.Get("Authorization")
		if aToken == "" {
			return http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Path())
		}

		parts := strings.SplitN(aToken, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Path())
		}

		claims, err := jwt.ParseToken(parts[1], secretKey)
		if err != nil {
			if errors.Is(err, goJwt.ErrTokenExpired) {
				return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
			}
			log.Errorf("parse token failed: %v", err)
			return http.WithRepErrMsg(c, http.InvalidToken.Code, http.InvalidToken.Msg, c.Path())
		}

		sessionKey := consts.SessionKey + claims.UserId
		exists, err := client.Exists(context.Background(), sessionKey).Result()
		if err != nil {
			log.Errorf("redis check session exists failed: %v", err)
			return http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
		}
		if exists == 0 {
			return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
		}

		ttl, err := client.TTL(context.Background(), sessionKey).Result()
		if err != nil {
			log.Errorf("redis check session TTL failed: %v", err)
			return http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
		}
		if ttl <= 0 {
			log.Warnf("session has expired in Redis for user: %s", claims.UserId)
			return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
