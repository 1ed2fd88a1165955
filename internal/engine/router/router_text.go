package router

import (
	"errors"

	"github.com/corrigo/corrigo/internal/engine/logic"
	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/internal/engine/repo"
	"github.com/corrigo/corrigo/pkg/corrector"
	httpx "github.com/corrigo/corrigo/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) textRouter(r fiber.Router, auth fiber.Handler) {
	textGroup := r.Group("/text")
	{
		textGroup.Post("/submit", auth, rt.submitText)
		textGroup.Post("/selfCorrect", auth, rt.selfCorrect)
		textGroup.Post("/engineCorrect", auth, rt.engineCorrect)
		textGroup.Post("/accept", auth, rt.acceptCorrection)
		textGroup.Post("/save", auth, rt.saveText)
		textGroup.Get("/history", auth, rt.correctionHistory)
		textGroup.Get("/stats", auth, rt.correctionStats)
	}

	blacklistGroup := r.Group("/blacklist")
	{
		blacklistGroup.Post("/add", auth, rt.addBlacklistWord)
		blacklistGroup.Post("/suggest", auth, rt.suggestBlacklistWord)
		blacklistGroup.Post("/approve", auth, rt.approveBlacklistWord)
		blacklistGroup.Get("/suggestions", auth, rt.listSuggestedWords)
		blacklistGroup.Post("/whitelist", auth, rt.whitelistWord)
		blacklistGroup.Get("/list", auth, rt.listBlacklist)
	}
}

func (rt *Router) submissionLogic() *logic.SubmissionLogic {
	accountRepo := repo.NewAccountRepo(rt.Db, rt.Cache)
	blacklistRepo := repo.NewBlacklistRepo(rt.Db, rt.Cache)
	savedWordRepo := repo.NewSavedWordRepo(rt.Db)
	return logic.NewSubmissionLogic(rt.Ctx, accountRepo, blacklistRepo, savedWordRepo, rt.Collector)
}

func (rt *Router) correctionLogic() *logic.CorrectionLogic {
	accountRepo := repo.NewAccountRepo(rt.Db, rt.Cache)
	correctionRepo := repo.NewCorrectionRepo(rt.Db)
	blacklistRepo := repo.NewBlacklistRepo(rt.Db, rt.Cache)
	savedWordRepo := repo.NewSavedWordRepo(rt.Db)
	return logic.NewCorrectionLogic(rt.Ctx, accountRepo, correctionRepo, blacklistRepo, savedWordRepo,
		rt.Corrector, rt.Store, rt.Collector)
}

func (rt *Router) blacklistLogic() *logic.BlacklistLogic {
	accountRepo := repo.NewAccountRepo(rt.Db, rt.Cache)
	blacklistRepo := repo.NewBlacklistRepo(rt.Db, rt.Cache)
	return logic.NewBlacklistLogic(rt.Ctx, accountRepo, blacklistRepo)
}

func (rt *Router) submitText(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.SubmitTextReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	result, err := rt.submissionLogic().Submit(id, req.Text)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, result)
}

func (rt *Router) selfCorrect(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.SelfCorrectReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	resp, err := rt.correctionLogic().SelfCorrect(id, req.OriginalText, req.EditedText)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, resp)
}

func (rt *Router) engineCorrect(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.EngineCorrectReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	resp, err := rt.correctionLogic().EngineCorrect(id, req.Text)
	if err != nil {
		// hand the original text back when the engine is down
		if errors.Is(err, corrector.ErrUnavailable) {
			return httpx.WithRepDetail(c, httpx.CorrectorUnavailable.Code, httpx.CorrectorUnavailable.Msg,
				fiber.Map{"text": req.Text})
		}
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, resp)
}

func (rt *Router) acceptCorrection(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.AcceptCorrectionReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	balance, err := rt.correctionLogic().AcceptCorrection(id, req.CorrectionId)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"balance": balance})
}

func (rt *Router) saveText(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.SaveTextReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	resp, err := rt.correctionLogic().SaveText(id, req.CorrectionId)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, resp)
}

func (rt *Router) correctionHistory(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	offset, pageSize := pageParams(c)
	corrections, count, err := rt.correctionLogic().History(id, offset, pageSize)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"corrections": corrections, "count": count})
}

func (rt *Router) correctionStats(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	stats, err := rt.correctionLogic().Stats(id)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, stats)
}

func (rt *Router) addBlacklistWord(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.AddBlacklistWordReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	added, err := rt.blacklistLogic().Add(req.Word, id)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"added": added})
}

func (rt *Router) suggestBlacklistWord(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.SuggestBlacklistWordReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	suggested, err := rt.blacklistLogic().Suggest(req.Word, id)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"suggested": suggested})
}

func (rt *Router) approveBlacklistWord(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req *model.ApproveBlacklistWordReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	if err := rt.blacklistLogic().Approve(id, req.Word); err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) listSuggestedWords(c *fiber.Ctx) error {
	id, err := accountId(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	entries, err := rt.blacklistLogic().ListSuggested(id)
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"suggestions": entries})
}

func (rt *Router) whitelistWord(c *fiber.Ctx) error {
	var req *model.WhitelistWordReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	if err := rt.correctionLogic().WhitelistWord(req.Word); err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepNotDetail(c)
}

func (rt *Router) listBlacklist(c *fiber.Ctx) error {
	words, err := rt.blacklistLogic().List()
	if err != nil {
		return failWith(c, err)
	}
	return httpx.WithRepJSON(c, fiber.Map{"words": words})
}

func pageParams(c *fiber.Ctx) (offset, pageSize int) {
	pageNum := c.QueryInt("pageNum", 1)
	pageSize = c.QueryInt("pageSize", 10)
	if pageNum < 1 {
		pageNum = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return (pageNum - 1) * pageSize, pageSize
}
