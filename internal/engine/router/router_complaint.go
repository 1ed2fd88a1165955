package router

import (
	"github.com/corrigo/corrigo/internal/engine/logic"
	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/internal/engine/repo"
	httpx "github.com/corrigo/corrigo/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) complaintRouter(r fiber.Router, auth fiber.Handler) {
	complaintGroup := r.Group("/complaint")
	{
		complaintGroup.Post("/submit", auth, rt.submitComplaint)
		complaintGroup.Post("/respond", auth, rt.respondComplaint)
		complaintGroup.Post("/resolve", auth, rt.resolveComplaint)
		complaintGroup.Get("/mine", auth, rt.listMyComplaints)
		complaintGroup.Get("/pending", auth, rt.listPendingComplaints)
	}
}

func (rt *Router) complaintLogic() *logic.ComplaintLogic {
	accountRepo := repo.NewAccountRepo(rt.Db, rt.Cache)
	complaintRepo := repo.NewComplaintRepo(rt.Db)
	return logic.NewComplaintLogic(rt.Ctx, accountRepo, complaintRepo)
}

func (rt *Router) submitComplaint(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.SubmitComplaintReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	complaint, err := rt.complaintLogic().Submit(id, req.ComplainedUsername, req.Reason)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, complaint)
}

func (rt *Router) respondComplaint(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.RespondComplaintReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	if err := rt.complaintLogic().Respond(id, req.ComplaintId, req.Response); err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) resolveComplaint(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.ResolveComplaintReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	if err := rt.complaintLogic().Resolve(id, req.ComplaintId, req.Action, req.PenaltyAmount, req.PenaltyTargetId); err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) listMyComplaints(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	complaints, err := rt.complaintLogic().ListPendingForMe(id)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"complaints": complaints})
}

func (rt *Router) listPendingComplaints(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	complaints, err := rt.complaintLogic().ListAllPending(id)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"complaints": complaints})
}
