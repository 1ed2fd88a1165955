package router

import (
	"errors"

	"github.com/corrigo/corrigo/internal/engine/logic"
	"github.com/corrigo/corrigo/pkg/corrector"
	httpx "github.com/corrigo/corrigo/pkg/http"
	"github.com/corrigo/corrigo/pkg/http/jwt"
	"github.com/gofiber/fiber/v2"
)

// accountId pulls the authenticated account from the claims set by the
// authorization middleware.
func accountId(c *fiber.Ctx) (string, error) {
	claims, ok := c.Locals("claims").(*jwt.AuthClaims)
	if !ok || claims == nil {
		return "", errors.New(httpx.Unauthorized.Msg)
	}
	return claims.UserId, nil
}

// failWith maps a workflow error onto its response code.
func failWith(c *fiber.Ctx, err error) error {
	var limit *logic.WordLimitError
	if errors.As(err, &limit) {
		return httpx.WithRepDetail(c, httpx.WordLimitExceeded.Code, httpx.WordLimitExceeded.Msg, fiber.Map{
			"wordCount": limit.WordCount,
			"limit":     limit.Limit,
			"penalty":   limit.Penalty,
		})
	}

	var insufficient *logic.InsufficientTokensError
	if errors.As(err, &insufficient) {
		return httpx.WithRepDetail(c, httpx.InsufficientTokens.Code, httpx.InsufficientTokens.Msg, fiber.Map{
			"required": insufficient.Required,
			"penalty":  insufficient.Penalty,
			"balance":  insufficient.Balance,
		})
	}

	code := errCode(err)
	return httpx.WithRepErrMsg(c, code.Code, err.Error(), c.Path())
}

func errCode(err error) *httpx.Response {
	switch {
	case errors.Is(err, logic.ErrDuplicateUsername):
		return httpx.UserAlreadyExist
	case errors.Is(err, logic.ErrAccountNotFound):
		return httpx.UserNotExist
	case errors.Is(err, logic.ErrWrongPassword):
		return httpx.UserIncorrectPassword
	case errors.Is(err, logic.ErrSuspended):
		return httpx.UserSuspended
	case errors.Is(err, logic.ErrTerminated):
		return httpx.UserTerminated
	case errors.Is(err, logic.ErrCooldownActive):
		return httpx.UserLoginCooldown
	case errors.Is(err, logic.ErrSubmitCooldown):
		return httpx.SubmissionCooldown
	case errors.Is(err, logic.ErrEmptyInput):
		return httpx.EmptyInput
	case errors.Is(err, logic.ErrBlacklistUnaffordable):
		return httpx.InsufficientTokensForBlacklist
	case errors.Is(err, logic.ErrUnknownComplainedUser):
		return httpx.UnknownComplainedUser
	case errors.Is(err, logic.ErrComplaintNotPending):
		return httpx.ComplaintNotPending
	case errors.Is(err, logic.ErrAlreadyResponded):
		return httpx.AlreadyResponded
	case errors.Is(err, logic.ErrInvalidPenaltyTarget), errors.Is(err, logic.ErrNotComplaintParty):
		return httpx.InvalidPenaltyTarget
	case errors.Is(err, logic.ErrInvalidInvitee):
		return httpx.InvalidInvitee
	case errors.Is(err, logic.ErrInvitationNotFound):
		return httpx.InvitationNotFound
	case errors.Is(err, logic.ErrInvitationNotPending):
		return httpx.InvitationNotPending
	case errors.Is(err, logic.ErrNotCollaborator):
		return httpx.NotCollaborator
	case errors.Is(err, logic.ErrNotSuper), errors.Is(err, logic.ErrNotPaid), errors.Is(err, logic.ErrRoleTransition):
		return httpx.PermissionDenied
	case errors.Is(err, corrector.ErrUnavailable):
		return httpx.CorrectorUnavailable
	default:
		return httpx.Failed
	}
}
