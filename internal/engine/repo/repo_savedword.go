package repo

import (
	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/pkg/database"
	"gorm.io/gorm/clause"
)

type ISavedWordRepository interface {
	// Save records words as correct for the account. Words already
	// saved are skipped silently.
	Save(accountId string, words []string) error

	List(accountId string) ([]string, error)
}

type SavedWordRepo struct {
	db             database.IDatabase
	savedWordModel *model.SavedWord
}

func NewSavedWordRepo(db database.IDatabase) ISavedWordRepository {
	return &SavedWordRepo{
		db:             db,
		savedWordModel: &model.SavedWord{},
	}
}

func (sr *SavedWordRepo) Save(accountId string, words []string) error {
	if len(words) == 0 {
		return nil
	}
	entries := make([]model.SavedWord, 0, len(words))
	for _, w := range words {
		entries = append(entries, model.SavedWord{AccountId: accountId, Word: w})
	}
	return sr.db.Database().
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entries).Error
}

func (sr *SavedWordRepo) List(accountId string) ([]string, error) {
	var words []string
	err := sr.db.Database().Table(sr.savedWordModel.TableName()).
		Select("word").
		Where("account_id = ?", accountId).
		Order("id").
		Scan(&words).Error
	return words, err
}
