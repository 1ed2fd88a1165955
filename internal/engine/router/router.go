package router

import (
	"time"

	"github.com/corrigo/corrigo/pkg/cache"
	"github.com/corrigo/corrigo/pkg/corrector"
	"github.com/corrigo/corrigo/pkg/ctx"
	"github.com/corrigo/corrigo/pkg/database"
	httpx "github.com/corrigo/corrigo/pkg/http"
	"github.com/corrigo/corrigo/pkg/http/middleware"
	"github.com/corrigo/corrigo/pkg/metrics"
	"github.com/corrigo/corrigo/pkg/storage"
	"github.com/corrigo/corrigo/pkg/version"
	"github.com/gofiber/fiber/v2"
)

type Router struct {
	Http      *httpx.Http
	Ctx       *ctx.Context
	Db        database.IDatabase
	Cache     cache.ICache
	Corrector corrector.ICorrector
	Store     storage.TextStore
	Collector *metrics.EditorCollector
}

func NewRouter(httpConf *httpx.Http, appCtx *ctx.Context, db database.IDatabase, c cache.ICache,
	cr corrector.ICorrector, store storage.TextStore, collector *metrics.EditorCollector) *Router {
	return &Router{
		Http:      httpConf,
		Ctx:       appCtx,
		Db:        db,
		Cache:     c,
		Corrector: cr,
		Store:     store,
		Collector: collector,
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(rt.Http.IdleTimeout) * time.Second,
	})

	app.Use(middleware.RequestMiddleware())
	app.Use(middleware.CorsMiddleware())
	app.Use(middleware.ExceptionMiddleware)
	app.Use(middleware.AccessLogMiddleware(rt.Http))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	engine := app.Group(rt.Http.InternalContextPath)
	rt.routerGroup(engine)

	return app
}

func (rt *Router) routerGroup(r fiber.Router) {
	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, *rt.Ctx.GetRedis())

	rt.accountRouter(r, auth)
	rt.textRouter(r, auth)
	rt.complaintRouter(r, auth)
	rt.collaborationRouter(r, auth)
	rt.adminRouter(r, auth)
}
