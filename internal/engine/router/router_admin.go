package router

import (
	"github.com/corrigo/corrigo/internal/engine/model"
	httpx "github.com/corrigo/corrigo/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// adminRouter exposes the super-user console. Role checks live in the
// logic layer so a non-super token gets a permission error, not a 404.
func (rt *Router) adminRouter(r fiber.Router, auth fiber.Handler) {
	adminGroup := r.Group("/admin")
	{
		adminGroup.Post("/provision", auth, rt.provisionAccount)
		adminGroup.Post("/suspend", auth, rt.suspendAccount)
		adminGroup.Post("/terminate", auth, rt.terminateAccount)
		adminGroup.Post("/adjustTokens", auth, rt.adjustTokens)
		adminGroup.Get("/accounts", auth, rt.listAccounts)
	}
}

func (rt *Router) provisionAccount(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var register *model.Register
	if err := c.BodyParser(&register); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	info, err := rt.accountLogic().Provision(id, register)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, info)
}

func (rt *Router) suspendAccount(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.SetRoleReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	if err := rt.accountLogic().Suspend(id, req.Username); err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) terminateAccount(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.SetRoleReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	if err := rt.accountLogic().Terminate(id, req.Username); err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) adjustTokens(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.AdjustTokensReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	balance, err := rt.accountLogic().AdjustTokens(id, req.Username, req.Delta)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"balance": balance})
}

func (rt *Router) listAccounts(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	offset, pageSize := pageParams(c)
	accounts, count, err := rt.accountLogic().List(id, offset, pageSize)
	if err != nil {
		return failWith(c, err)
	}

	infos := make([]model.AccountInfo, 0, len(accounts))
	for i := range accounts {
		infos = append(infos, accounts[i].Info())
	}
	return httpx.WithRepJSON(c, fiber.Map{"accounts": infos, "count": count})
}
