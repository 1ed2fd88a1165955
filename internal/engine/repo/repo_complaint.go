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
	// ErrComplaintNotFound is returned when no row matches the id.
	ErrComplaintNotFound = errors.New("complaint not found")

	// ErrComplaintNotPending guards the resolve transition.
	ErrComplaintNotPending = errors.New("complaint is not pending")

	// ErrAlreadyResponded guards the set-once response.
	ErrAlreadyResponded = errors.New("complaint already has a response")
)

type IComplaintRepository interface {
	Insert(complaint *model.Complaint) error
	Get(complaintId string) (*model.Complaint, error)
	ListPendingForComplained(accountId string) ([]model.Complaint, error)
	ListAllPending() ([]model.Complaint, error)

	// UpdateResponse attaches the single allowed response.
	UpdateResponse(complaintId, response string, ts time.Time) error

	// Resolve flips a pending complaint to resolved and, for a
	// token-penalty action, deducts the penalty from the target in
	// the same transaction.
	Resolve(complaintId string, action model.ResolutionAction, penalty int64, targetId string, ts time.Time) error
}

type ComplaintRepo struct {
	db             database.IDatabase
	complaintModel *model.Complaint
}

func NewComplaintRepo(db database.IDatabase) IComplaintRepository {
	return &ComplaintRepo{
		db:             db,
		complaintModel: &model.Complaint{},
	}
}

func (cr *ComplaintRepo) Insert(complaint *model.Complaint) error {
	return cr.db.Database().Create(complaint).Error
}

func (cr *ComplaintRepo) Get(complaintId string) (*model.Complaint, error) {
	var c model.Complaint
	err := cr.db.Database().Table(cr.complaintModel.TableName()).
		Where("complaint_id = ?", complaintId).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrComplaintNotFound
	}
	return &c, err
}

func (cr *ComplaintRepo) ListPendingForComplained(accountId string) ([]model.Complaint, error) {
	var complaints []model.Complaint
	err := cr.db.Database().Table(cr.complaintModel.TableName()).
		Where("complained_id = ? AND status = ?", accountId, model.ComplaintPending).
		Order("id").
		Find(&complaints).Error
	return complaints, err
}

func (cr *ComplaintRepo) ListAllPending() ([]model.Complaint, error) {
	var complaints []model.Complaint
	err := cr.db.Database().Table(cr.complaintModel.TableName()).
		Where("status = ?", model.ComplaintPending).
		Order("id").
		Find(&complaints).Error
	return complaints, err
}

func (cr *ComplaintRepo) UpdateResponse(complaintId, response string, ts time.Time) error {
	res := cr.db.Database().Table(cr.complaintModel.TableName()).
		Where("complaint_id = ? AND status = ? AND responded_at IS NULL", complaintId, model.ComplaintPending).
		Updates(map[string]any{
			"response":     response,
			"responded_at": ts,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyResponded
	}
	return nil
}

func (cr *ComplaintRepo) Resolve(complaintId string, action model.ResolutionAction, penalty int64, targetId string, ts time.Time) error {
	return cr.db.Database().Transaction(func(tx *gorm.DB) error {
		var c model.Complaint
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Table(cr.complaintModel.TableName()).
			Where("complaint_id = ?", complaintId).First(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrComplaintNotFound
		}
		if err != nil {
			return err
		}
		if c.Status != model.ComplaintPending {
			return ErrComplaintNotPending
		}

		if action == model.ActionTokenPenalty {
			res := tx.Table((&model.Account{}).TableName()).
				Where("account_id = ?", targetId).
				Update("tokens", gorm.Expr("tokens - ?", penalty))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrAccountNotFound
			}
		}

		return tx.Table(cr.complaintModel.TableName()).
			Where("complaint_id = ?", complaintId).
			Updates(map[string]any{
				"status":            model.ComplaintResolved,
				"action":            action,
				"penalty_amount":    penalty,
				"penalty_target_id": targetId,
				"resolved_at":       ts,
			}).Error
	})
}
