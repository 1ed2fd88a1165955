package logic

import (
	"errors"
	"time"

	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/internal/engine/repo"
	"github.com/corrigo/corrigo/pkg/ctx"
	"github.com/corrigo/corrigo/pkg/id"
)

type ComplaintLogic struct {
	ctx           *ctx.Context
	accountRepo   repo.IAccountRepository
	complaintRepo repo.IComplaintRepository
}

func NewComplaintLogic(ctx *ctx.Context, accountRepo repo.IAccountRepository, complaintRepo repo.IComplaintRepository) *ComplaintLogic {
	return &ComplaintLogic{
		ctx:           ctx,
		accountRepo:   accountRepo,
		complaintRepo: complaintRepo,
	}
}

// Submit files a complaint against an existing account. The complained
// username must resolve to a live record; complaining about oneself is
// rejected.
func (cl *ComplaintLogic) Submit(complainerId, complainedUsername, reason string) (*model.Complaint, error) {
	complained, err := cl.accountRepo.GetByUsername(complainedUsername)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return nil, ErrUnknownComplainedUser
		}
		return nil, err
	}
	if complained.AccountId == complainerId {
		return nil, ErrInvalidPenaltyTarget
	}

	complaint := &model.Complaint{
		ComplaintId:  id.GetUlid(),
		ComplainerId: complainerId,
		ComplainedId: complained.AccountId,
		Reason:       reason,
		Status:       model.ComplaintPending,
		Action:       model.ActionNone,
	}
	if err := cl.complaintRepo.Insert(complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

// Respond attaches the complained account's single response. The
// complaint stays pending; only the presence of a response changes.
func (cl *ComplaintLogic) Respond(accountId, complaintId, response string) error {
	complaint, err := cl.complaintRepo.Get(complaintId)
	if err != nil {
		if errors.Is(err, repo.ErrComplaintNotFound) {
			return ErrComplaintNotPending
		}
		return err
	}
	if complaint.ComplainedId != accountId {
		return ErrNotComplaintParty
	}
	if complaint.Status != model.ComplaintPending {
		return ErrComplaintNotPending
	}

	err = cl.complaintRepo.UpdateResponse(complaintId, response, time.Now())
	if errors.Is(err, repo.ErrAlreadyResponded) {
		return ErrAlreadyResponded
	}
	return err
}

// Resolve closes a pending complaint. A token-penalty action must name
// one of the two parties and a positive amount; the deduction happens
// in the same atomic step as the resolution. Resolution is terminal.
func (cl *ComplaintLogic) Resolve(actorId, complaintId string, action model.ResolutionAction, penalty int64, targetId string) error {
	actor, err := cl.accountRepo.GetByAccountId(actorId)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if actor.Role != model.RoleSuper {
		return ErrNotSuper
	}

	complaint, err := cl.complaintRepo.Get(complaintId)
	if err != nil {
		if errors.Is(err, repo.ErrComplaintNotFound) {
			return ErrComplaintNotPending
		}
		return err
	}

	switch action {
	case model.ActionWarning:
		penalty = 0
		targetId = ""
	case model.ActionTokenPenalty:
		if penalty <= 0 {
			return ErrInvalidPenaltyTarget
		}
		if targetId != complaint.ComplainerId && targetId != complaint.ComplainedId {
			return ErrInvalidPenaltyTarget
		}
		target, err := cl.accountRepo.GetByAccountId(targetId)
		if err != nil {
			if errors.Is(err, repo.ErrAccountNotFound) {
				return ErrAccountNotFound
			}
			return err
		}
		// termination is absorbing: a terminated party's balance
		// never mutates, penalties included
		if target.Role == model.RoleTerminated {
			return ErrTerminated
		}
	default:
		return ErrInvalidPenaltyTarget
	}

	err = cl.complaintRepo.Resolve(complaintId, action, penalty, targetId, time.Now())
	if errors.Is(err, repo.ErrComplaintNotPending) {
		return ErrComplaintNotPending
	}
	return err
}

func (cl *ComplaintLogic) ListPendingForMe(accountId string) ([]model.Complaint, error) {
	return cl.complaintRepo.ListPendingForComplained(accountId)
}

// ListAllPending is the moderation queue. Super-only.
func (cl *ComplaintLogic) ListAllPending(actorId string) ([]model.Complaint, error) {
	actor, err := cl.accountRepo.GetByAccountId(actorId)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleSuper {
		return nil, ErrNotSuper
	}
	return cl.complaintRepo.ListAllPending()
}
