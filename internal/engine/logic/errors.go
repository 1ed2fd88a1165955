package logic

import (
	"errors"
	"fmt"
)

// Workflow errors surfaced to the routers. Each maps onto a response
// code in pkg/http.
var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrAccountNotFound   = errors.New("account not found")
	ErrWrongPassword     = errors.New("incorrect password")
	ErrSuspended         = errors.New("account is suspended")
	ErrTerminated        = errors.New("account is terminated")
	ErrCooldownActive    = errors.New("login cooldown active")
	ErrSubmitCooldown    = errors.New("submission cooldown active")

	ErrEmptyInput            = errors.New("text has no words")
	ErrBlacklistUnaffordable = errors.New("cannot afford blacklist surcharge")
	ErrWordNotSuggested      = errors.New("word is not awaiting approval")

	ErrUnknownComplainedUser = errors.New("complained user does not exist")
	ErrComplaintNotPending   = errors.New("complaint is not pending")
	ErrAlreadyResponded      = errors.New("complaint already has a response")
	ErrInvalidPenaltyTarget  = errors.New("penalty target must be a party to the complaint")
	ErrNotComplaintParty     = errors.New("account is not a party to the complaint")

	ErrInvalidInvitee       = errors.New("invitee must hold the paid role")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationNotPending = errors.New("invitation is not pending")
	ErrNotCollaborator      = errors.New("account is not a collaborator")

	ErrInvalidRole       = errors.New("invalid role")
	ErrNotSuper          = errors.New("operation requires the super role")
	ErrNotPaid           = errors.New("operation requires the paid role")
	ErrPurchaseTooSmall  = errors.New("purchase is below the minimum")
	ErrRoleTransition    = errors.New("role transition not permitted")
	ErrCorrectionMode    = errors.New("correction is not engine-produced")
	ErrAlreadyAccepted   = errors.New("correction already accepted")
	ErrNothingToSave     = errors.New("correction has no result text")
	ErrCorrectionMissing = errors.New("correction not found")
)

// WordLimitError reports a free-tier submission over the word cap.
// The half-balance penalty has already been taken when it is returned.
type WordLimitError struct {
	WordCount int
	Limit     int
	Penalty   int64
}

func (e *WordLimitError) Error() string {
	return fmt.Sprintf("word limit exceeded: %d words against a limit of %d (penalty %d)", e.WordCount, e.Limit, e.Penalty)
}

// InsufficientTokensError reports a balance short of a charge. When a
// half-balance penalty was applied it is carried here so the caller
// learns the exact amount taken.
type InsufficientTokensError struct {
	Required int64
	Penalty  int64
	Balance  int64
}

func (e *InsufficientTokensError) Error() string {
	if e.Penalty > 0 {
		return fmt.Sprintf("insufficient tokens: need %d, have %d after penalty of %d", e.Required, e.Balance, e.Penalty)
	}
	return fmt.Sprintf("insufficient tokens: need %d, have %d", e.Required, e.Balance)
}
