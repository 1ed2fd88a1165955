package repo

import (
	"errors"

	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/pkg/database"
	"gorm.io/gorm"
)

// ErrCorrectionNotFound is returned when no row matches the id.
var ErrCorrectionNotFound = errors.New("correction not found")

type ICorrectionRepository interface {
	Insert(correction *model.Correction) error
	Get(correctionId string) (*model.Correction, error)
	ListForAccount(accountId string, offset, pageSize int) ([]model.Correction, int64, error)
	MarkAccepted(correctionId string) error
	SetObjectPath(correctionId, objectPath string) error
	StatsForAccount(accountId string) (count int64, tokens int64, err error)
}

type CorrectionRepo struct {
	db              database.IDatabase
	correctionModel *model.Correction
}

func NewCorrectionRepo(db database.IDatabase) ICorrectionRepository {
	return &CorrectionRepo{
		db:              db,
		correctionModel: &model.Correction{},
	}
}

func (cr *CorrectionRepo) Insert(correction *model.Correction) error {
	return cr.db.Database().Create(correction).Error
}

func (cr *CorrectionRepo) Get(correctionId string) (*model.Correction, error) {
	var c model.Correction
	err := cr.db.Database().Table(cr.correctionModel.TableName()).
		Where("correction_id = ?", correctionId).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCorrectionNotFound
	}
	return &c, err
}

func (cr *CorrectionRepo) ListForAccount(accountId string, offset, pageSize int) ([]model.Correction, int64, error) {
	var corrections []model.Correction
	var total int64
	db := cr.db.Database().Table(cr.correctionModel.TableName()).
		Where("account_id = ?", accountId)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("id DESC").Offset(offset).Limit(pageSize).Find(&corrections).Error
	return corrections, total, err
}

func (cr *CorrectionRepo) MarkAccepted(correctionId string) error {
	res := cr.db.Database().Table(cr.correctionModel.TableName()).
		Where("correction_id = ?", correctionId).
		Update("accepted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCorrectionNotFound
	}
	return nil
}

func (cr *CorrectionRepo) StatsForAccount(accountId string) (int64, int64, error) {
	var row struct {
		Count  int64
		Tokens int64
	}
	err := cr.db.Database().Table(cr.correctionModel.TableName()).
		Select("COUNT(*) AS count, COALESCE(SUM(tokens_charged), 0) AS tokens").
		Where("account_id = ?", accountId).
		Scan(&row).Error
	return row.Count, row.Tokens, err
}

func (cr *CorrectionRepo) SetObjectPath(correctionId, objectPath string) error {
	res := cr.db.Database().Table(cr.correctionModel.TableName()).
		Where("correction_id = ?", correctionId).
		Update("object_path", objectPath)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCorrectionNotFound
	}
	return nil
}
