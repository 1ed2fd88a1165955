package router

import (
	"github.com/corrigo/corrigo/internal/engine/logic"
	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/internal/engine/repo"
	httpx "github.com/corrigo/corrigo/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) collaborationRouter(r fiber.Router, auth fiber.Handler) {
	collabGroup := r.Group("/collaboration")
	{
		collabGroup.Post("/invite", auth, rt.invite)
		collabGroup.Post("/accept", auth, rt.acceptInvitation)
		collabGroup.Post("/reject", auth, rt.rejectInvitation)
		collabGroup.Post("/edit", auth, rt.editCollaboration)
		collabGroup.Get("/invitations", auth, rt.listInvitations)
		collabGroup.Get("/list", auth, rt.listCollaborations)
	}
}

func (rt *Router) collaborationLogic() *logic.CollaborationLogic {
	accountRepo := repo.NewAccountRepo(rt.Db, rt.Cache)
	collabRepo := repo.NewCollaborationRepo(rt.Db)
	return logic.NewCollaborationLogic(rt.Ctx, accountRepo, collabRepo)
}

func (rt *Router) invite(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.InviteReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	invitation, err := rt.collaborationLogic().Invite(id, req.InviteeUsername, req.Text)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, invitation)
}

func (rt *Router) acceptInvitation(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.InvitationActionReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	collaboration, err := rt.collaborationLogic().Accept(id, req.InvitationId)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, collaboration)
}

func (rt *Router) rejectInvitation(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.InvitationActionReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	if err := rt.collaborationLogic().Reject(id, req.InvitationId); err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) editCollaboration(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.EditCollaborationReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	if err := rt.collaborationLogic().Edit(id, req.CollaborationId, req.Text); err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) listInvitations(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	invitations, err := rt.collaborationLogic().ListInvitations(id)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"invitations": invitations})
}

func (rt *Router) listCollaborations(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	collaborations, err := rt.collaborationLogic().ListCollaborations(id)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"collaborations": collaborations})
}
