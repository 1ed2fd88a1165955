package middleware

import (
	"runtime/debug"

	"github.com/corrigo/corrigo/pkg/http"
	"github.com/corrigo/corrigo/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// ExceptionMiddleware recovers from handler panics and answers with a
// generic 500 body instead of tearing down the connection.
func ExceptionMiddleware(c *fiber.Ctx) error {
	defer func() {
		if err := recover(); err != nil {
			_ = http.WithRepErr(c, http.InternalError.Code, errorToString(err), c.Path())
			log.Errorf("panic: %v", err)
		}
	}()

	return c.Next()
}

func errorToString(err any) string {
	switch v := err.(type) {
	case http.ResponseErr:
		if errMsg, ok := v.ErrMsg.(string); ok {
			return errMsg
		}
		return http.InternalError.Msg
	case error:
		// never leak a stack trace to the client
		log.Errorf("panic: %v\n%s", v, debug.Stack())
		return http.InternalError.Msg
	default:
		if errMsg, ok := v.(string); ok {
			return errMsg
		}
		return http.InternalError.Msg
	}
}
