package router

import (
	"github.com/corrigo/corrigo/internal/engine/logic"
	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/internal/engine/repo"
	httpx "github.com/corrigo/corrigo/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) accountRouter(r fiber.Router, auth fiber.Handler) {
	accountGroup := r.Group("/account")
	{
		accountGroup.Post("/register", rt.register)
		accountGroup.Post("/login", rt.login)

		accountGroup.Post("/logout", auth, rt.logout)
		accountGroup.Get("/refresh", auth, rt.refresh)
		accountGroup.Get("/info", auth, rt.getAccountInfo)
		accountGroup.Post("/purchase", auth, rt.purchase)
	}
}

func (rt *Router) accountLogic() *logic.AccountLogic {
	accountRepo := repo.NewAccountRepo(rt.Db, rt.Cache)
	return logic.NewAccountLogic(rt.Ctx, accountRepo)
}

func (rt *Router) register(c *fiber.Ctx) error {
	var register *model.Register
	if err := c.BodyParser(&register); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	info, err := rt.accountLogic().Register(register)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, info)
}

func (rt *Router) login(c *fiber.Ctx) error {
	var login *model.Login
	if err := c.BodyParser(&login); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	resp, err := rt.accountLogic().Login(login, rt.Http.Auth)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, resp)
}

func (rt *Router) logout(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	if err := rt.accountLogic().Logout(id); err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) refresh(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	token, err := rt.accountLogic().Refresh(id, c.Query("refreshToken"), &rt.Http.Auth)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, token)
}

func (rt *Router) getAccountInfo(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	info, err := rt.accountLogic().GetInfo(id)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, info)
}

func (rt *Router) purchase(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.PurchaseReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	balance, err := rt.accountLogic().Purchase(id, req.Amount)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"balance": balance})
}
