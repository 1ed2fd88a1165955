package logic

import (
	"errors"
	"time"

	"github.com/corrigo/corrigo/internal/engine/consts"
	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/internal/engine/repo"
	"github.com/corrigo/corrigo/pkg/ctx"
	"github.com/corrigo/corrigo/pkg/id"
)

type CollaborationLogic struct {
	ctx         *ctx.Context
	accountRepo repo.IAccountRepository
	collabRepo  repo.ICollaborationRepository
}

func NewCollaborationLogic(ctx *ctx.Context, accountRepo repo.IAccountRepository, collabRepo repo.ICollaborationRepository) *CollaborationLogic {
	return &CollaborationLogic{
		ctx:         ctx,
		accountRepo: accountRepo,
		collabRepo:  collabRepo,
	}
}

// Invite creates a pending invitation. The invitee must hold the paid
// role at invitation time.
func (cl *CollaborationLogic) Invite(inviterId, inviteeUsername, text string) (*model.Invitation, error) {
	invitee, err := cl.accountRepo.GetByUsername(inviteeUsername)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return nil, ErrInvalidInvitee
		}
		return nil, err
	}
	if invitee.Role != model.RolePaid {
		return nil, ErrInvalidInvitee
	}
	if invitee.AccountId == inviterId {
		return nil, ErrInvalidInvitee
	}

	inv := &model.Invitation{
		InvitationId: id.ShortId(),
		InviterId:    inviterId,
		InviteeId:    invitee.AccountId,
		Text:         text,
		Status:       model.InvitationPending,
	}
	if err := cl.collabRepo.InsertInvitation(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Accept transitions a pending invitation to accepted and atomically
// creates its collaboration, seeded with the invitation text and the
// invitee as last editor. Single-use.
func (cl *CollaborationLogic) Accept(accountId, invitationId string) (*model.Collaboration, error) {
	inv, err := cl.getOwnInvitation(accountId, invitationId)
	if err != nil {
		return nil, err
	}
	if inv.Status != model.InvitationPending {
		return nil, ErrInvitationNotPending
	}

	collab, err := cl.collabRepo.Accept(invitationId, id.GetUlid(), time.Now())
	if errors.Is(err, repo.ErrInvitationNotPending) {
		return nil, ErrInvitationNotPending
	}
	return collab, err
}

// Reject transitions a pending invitation to rejected and deducts the
// flat penalty from the inviter, even when that drives the balance
// negative. Single-use.
func (cl *CollaborationLogic) Reject(accountId, invitationId string) error {
	inv, err := cl.getOwnInvitation(accountId, invitationId)
	if err != nil {
		return err
	}
	if inv.Status != model.InvitationPending {
		return ErrInvitationNotPending
	}
	inviter, err := cl.accountRepo.GetByAccountId(inv.InviterId)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	// a terminated inviter takes no further token changes
	if inviter.Role == model.RoleTerminated {
		return ErrTerminated
	}

	err = cl.collabRepo.Reject(invitationId, consts.RejectInvitationPenalty)
	if errors.Is(err, repo.ErrInvitationNotPending) {
		return ErrInvitationNotPending
	}
	return err
}

// Edit replaces the shared text. Only the two parties to the backing
// invitation may edit.
func (cl *CollaborationLogic) Edit(accountId, collaborationId, text string) error {
	collab, err := cl.collabRepo.GetCollaboration(collaborationId)
	if err != nil {
		if errors.Is(err, repo.ErrCollaborationNotFound) {
			return ErrNotCollaborator
		}
		return err
	}
	inv, err := cl.collabRepo.GetInvitation(collab.InvitationId)
	if err != nil {
		return err
	}
	if accountId != inv.InviterId && accountId != inv.InviteeId {
		return ErrNotCollaborator
	}
	return cl.collabRepo.UpdateText(collaborationId, text, accountId, time.Now())
}

func (cl *CollaborationLogic) ListInvitations(accountId string) ([]model.Invitation, error) {
	return cl.collabRepo.ListPendingForInvitee(accountId)
}

func (cl *CollaborationLogic) ListCollaborations(accountId string) ([]model.Collaboration, error) {
	return cl.collabRepo.ListForAccount(accountId)
}

func (cl *CollaborationLogic) getOwnInvitation(accountId, invitationId string) (*model.Invitation, error) {
	inv, err := cl.collabRepo.GetInvitation(invitationId)
	if err != nil {
		if errors.Is(err, repo.ErrInvitationNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	if inv.InviteeId != accountId {
		return nil, ErrInvitationNotFound
	}
	return inv, nil
}
