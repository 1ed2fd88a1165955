package http

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corrigo/corrigo/pkg/safe"
	"github.com/gofiber/fiber/v2"
)

type Http struct {
	Host                string
	Port                int
	InternalContextPath string
	AccessLog           bool
	ReadTimeout         int
	WriteTimeout        int
	IdleTimeout         int
	ShutdownTimeout     int
	Auth                Auth
}

type Auth struct {
	SecretKey      string
	AccessExpire   time.Duration
	RefreshExpire  time.Duration
	RedisKeyPrefix string
}

// NewHttp starts the fiber app and returns a blocking shutdown hook.
func NewHttp(cfg Http, app *fiber.App) func() {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	safe.Go(func() {
		fmt.Printf("[Init] http server start at: %s\n", addr)
		if err := app.Listen(addr); err != nil {
			panic(err)
		}
	})

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	return createShutdownHook(app, cfg.ShutdownTimeout, sc)
}

func createShutdownHook(app *fiber.App, shutdownTimeout int, signalChan chan os.Signal) func() {
	return func() {
		<-signalChan
		fmt.Println("[Shutdown] HTTP server shutting down...")

		if err := app.ShutdownWithTimeout(time.Duration(shutdownTimeout) * time.Second); err != nil {
			fmt.Printf("[Error] Server shutdown error: %v\n", err)
		} else {
			fmt.Println("[Shutdown] HTTP server shut down gracefully.")
		}
	}
}
