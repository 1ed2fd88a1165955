package repo

import (
	"context"
	"errors"

	"github.com/bytedance/sonic"
	"github.com/corrigo/corrigo/internal/engine/consts"
	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/pkg/cache"
	"github.com/corrigo/corrigo/pkg/database"
	"github.com/corrigo/corrigo/pkg/log"
	"gorm.io/gorm"
)

var ErrWordNotSuggested = errors.New("word is not awaiting approval")

type IBlacklistRepository interface {
	// ListActive returns active words in insertion order. Served from
	// the Redis cache when warm.
	ListActive() ([]string, error)

	// Insert adds a word as active; returns false without error when
	// the word is already present.
	Insert(word, proposerId string) (bool, error)

	// Suggest records a word awaiting approval; returns false without
	// error when the word is already present in any status.
	Suggest(word, proposerId string) (bool, error)

	// Approve activates a suggested word.
	Approve(word string) error

	ListSuggested() ([]model.BlacklistEntry, error)

	// Retire whitelists a word so it no longer masks.
	Retire(word string) error

	// RefreshCache rebuilds the Redis word-set cache from the table.
	RefreshCache() error
}

type BlacklistRepo struct {
	db             database.IDatabase
	cache          cache.ICache
	blacklistModel *model.BlacklistEntry
}

func NewBlacklistRepo(db database.IDatabase, cache cache.ICache) IBlacklistRepository {
	return &BlacklistRepo{
		db:             db,
		cache:          cache,
		blacklistModel: &model.BlacklistEntry{},
	}
}

func (br *BlacklistRepo) ListActive() ([]string, error) {
	if br.cache != nil {
		cached, err := br.cache.Get(context.Background(), consts.BlacklistCacheKey).Result()
		if err == nil && cached != "" {
			var words []string
			if err := sonic.UnmarshalString(cached, &words); err == nil {
				return words, nil
			}
			log.Errorw("failed to unmarshal blacklist cache", "error", err)
		}
	}

	words, err := br.listActiveFromDB()
	if err != nil {
		return nil, err
	}

	br.cacheWords(words)
	return words, nil
}

func (br *BlacklistRepo) Insert(word, proposerId string) (bool, error) {
	var existing model.BlacklistEntry
	err := br.db.Database().Table(br.blacklistModel.TableName()).
		Where("word = ?", word).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	entry := &model.BlacklistEntry{
		Word:       word,
		ProposerId: proposerId,
		Status:     model.BlacklistActive,
	}
	if err := br.db.Database().Create(entry).Error; err != nil {
		return false, err
	}

	br.invalidateCache()
	return true, nil
}

func (br *BlacklistRepo) Suggest(word, proposerId string) (bool, error) {
	var existing model.BlacklistEntry
	err := br.db.Database().Table(br.blacklistModel.TableName()).
		Where("word = ?", word).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	entry := &model.BlacklistEntry{
		Word:       word,
		ProposerId: proposerId,
		Status:     model.BlacklistSuggested,
	}
	if err := br.db.Database().Create(entry).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (br *BlacklistRepo) Approve(word string) error {
	result := br.db.Database().Table(br.blacklistModel.TableName()).
		Where("word = ? AND status = ?", word, model.BlacklistSuggested).
		Update("status", model.BlacklistActive)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWordNotSuggested
	}
	br.invalidateCache()
	return nil
}

func (br *BlacklistRepo) ListSuggested() ([]model.BlacklistEntry, error) {
	var entries []model.BlacklistEntry
	err := br.db.Database().Table(br.blacklistModel.TableName()).
		Where("status = ?", model.BlacklistSuggested).
		Order("id").
		Find(&entries).Error
	return entries, err
}

func (br *BlacklistRepo) Retire(word string) error {
	err := br.db.Database().Table(br.blacklistModel.TableName()).
		Where("word = ?", word).
		Update("status", model.BlacklistRetired).Error
	if err != nil {
		return err
	}
	br.invalidateCache()
	return nil
}

func (br *BlacklistRepo) RefreshCache() error {
	words, err := br.listActiveFromDB()
	if err != nil {
		return err
	}
	br.cacheWords(words)
	return nil
}

func (br *BlacklistRepo) listActiveFromDB() ([]string, error) {
	var words []string
	err := br.db.Database().Table(br.blacklistModel.TableName()).
		Select("word").
		Where("status = ?", model.BlacklistActive).
		Order("id").
		Scan(&words).Error
	return words, err
}

func (br *BlacklistRepo) cacheWords(words []string) {
	if br.cache == nil {
		return
	}
	payload, err := sonic.MarshalString(words)
	if err != nil {
		log.Errorw("failed to marshal blacklist cache", "error", err)
		return
	}
	if err := br.cache.Set(context.Background(), consts.BlacklistCacheKey, payload, consts.BlacklistCacheTTL).Err(); err != nil {
		log.Errorw("failed to cache blacklist", "error", err)
	}
}

func (br *BlacklistRepo) invalidateCache() {
	if br.cache == nil {
		return
	}
	if err := br.cache.Del(context.Background(), consts.BlacklistCacheKey).Err(); err != nil {
		log.Errorw("failed to invalidate blacklist cache", "error", err)
	}
}
