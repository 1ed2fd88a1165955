package repo

import (
	"errors"
	"time"

	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrInvitationNotFound is returned when no row matches the id.
	ErrInvitationNotFound = errors.New("invitation not found")

	// ErrInvitationNotPending guards the single-use transitions.
	ErrInvitationNotPending = errors.New("invitation is not pending")

	// ErrCollaborationNotFound is returned when no row matches the id.
	ErrCollaborationNotFound = errors.New("collaboration not found")
)

type ICollaborationRepository interface {
	InsertInvitation(inv *model.Invitation) error
	GetInvitation(invitationId string) (*model.Invitation, error)
	ListPendingForInvitee(accountId string) ([]model.Invitation, error)

	// Accept flips a pending invitation to accepted and creates its
	// collaboration in one transaction.
	Accept(invitationId, collaborationId string, ts time.Time) (*model.Collaboration, error)

	// Reject flips a pending invitation to rejected and deducts the
	// penalty from the inviter in one transaction. The penalty may
	// drive the inviter's balance negative.
	Reject(invitationId string, penalty int64) error

	GetCollaboration(collaborationId string) (*model.Collaboration, error)
	ListForAccount(accountId string) ([]model.Collaboration, error)
	UpdateText(collaborationId, text, editorId string, ts time.Time) error
}

type CollaborationRepo struct {
	db              database.IDatabase
	invitationModel *model.Invitation
	collabModel     *model.Collaboration
}

func NewCollaborationRepo(db database.IDatabase) ICollaborationRepository {
	return &CollaborationRepo{
		db:              db,
		invitationModel: &model.Invitation{},
		collabModel:     &model.Collaboration{},
	}
}

func (cr *CollaborationRepo) InsertInvitation(inv *model.Invitation) error {
	return cr.db.Database().Create(inv).Error
}

func (cr *CollaborationRepo) GetInvitation(invitationId string) (*model.Invitation, error) {
	var inv model.Invitation
	err := cr.db.Database().Table(cr.invitationModel.TableName()).
		Where("invitation_id = ?", invitationId).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvitationNotFound
	}
	return &inv, err
}

func (cr *CollaborationRepo) ListPendingForInvitee(accountId string) ([]model.Invitation, error) {
	var invs []model.Invitation
	err := cr.db.Database().Table(cr.invitationModel.TableName()).
		Where("invitee_id = ? AND status = ?", accountId, model.InvitationPending).
		Order("id").
		Find(&invs).Error
	return invs, err
}

func (cr *CollaborationRepo) Accept(invitationId, collaborationId string, ts time.Time) (*model.Collaboration, error) {
	var collab *model.Collaboration
	err := cr.db.Database().Transaction(func(tx *gorm.DB) error {
		inv, err := cr.lockInvitation(tx, invitationId)
		if err != nil {
			return err
		}
		if inv.Status != model.InvitationPending {
			return ErrInvitationNotPending
		}

		if err := tx.Table(cr.invitationModel.TableName()).
			Where("invitation_id = ?", invitationId).
			Update("status", model.InvitationAccepted).Error; err != nil {
			return err
		}

		collab = &model.Collaboration{
			CollaborationId: collaborationId,
			InvitationId:    invitationId,
			Text:            inv.Text,
			LastEditorId:    inv.InviteeId,
			LastEditedAt:    &ts,
		}
		return tx.Create(collab).Error
	})
	if err != nil {
		return nil, err
	}
	return collab, nil
}

func (cr *CollaborationRepo) Reject(invitationId string, penalty int64) error {
	return cr.db.Database().Transaction(func(tx *gorm.DB) error {
		inv, err := cr.lockInvitation(tx, invitationId)
		if err != nil {
			return err
		}
		if inv.Status != model.InvitationPending {
			return ErrInvitationNotPending
		}

		if err := tx.Table(cr.invitationModel.TableName()).
			Where("invitation_id = ?", invitationId).
			Update("status", model.InvitationRejected).Error; err != nil {
			return err
		}

		res := tx.Table((&model.Account{}).TableName()).
			Where("account_id = ?", inv.InviterId).
			Update("tokens", gorm.Expr("tokens - ?", penalty))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAccountNotFound
		}
		return nil
	})
}

func (cr *CollaborationRepo) GetCollaboration(collaborationId string) (*model.Collaboration, error) {
	var collab model.Collaboration
	err := cr.db.Database().Table(cr.collabModel.TableName()).
		Where("collaboration_id = ?", collaborationId).First(&collab).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCollaborationNotFound
	}
	return &collab, err
}

func (cr *CollaborationRepo) ListForAccount(accountId string) ([]model.Collaboration, error) {
	var collabs []model.Collaboration
	err := cr.db.Database().Table(cr.collabModel.TableName()).
		Joins("JOIN t_invitation ON t_invitation.invitation_id = t_collaboration.invitation_id").
		Where("t_invitation.inviter_id = ? OR t_invitation.invitee_id = ?", accountId, accountId).
		Order("t_collaboration.id").
		Find(&collabs).Error
	return collabs, err
}

func (cr *CollaborationRepo) UpdateText(collaborationId, text, editorId string, ts time.Time) error {
	res := cr.db.Database().Table(cr.collabModel.TableName()).
		Where("collaboration_id = ?", collaborationId).
		Updates(map[string]any{
			"text":           text,
			"last_editor_id": editorId,
			"last_edited_at": ts,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCollaborationNotFound
	}
	return nil
}

func (cr *CollaborationRepo) lockInvitation(tx *gorm.DB, invitationId string) (*model.Invitation, error) {
	var inv model.Invitation
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Table(cr.invitationModel.TableName()).
		Where("invitation_id = ?", invitationId).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvitationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
