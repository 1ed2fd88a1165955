package repo

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/corrigo/corrigo/internal/engine/consts"
	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/pkg/cache"
	"github.com/corrigo/corrigo/pkg/database"
	"github.com/corrigo/corrigo/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrAccountNotFound is returned when no row matches the lookup.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientBalance is returned by conditional charges.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrDuplicateUsername is returned on unique-key conflict at signup.
	ErrDuplicateUsername = errors.New("username already taken")
)

// SubmissionCharge reports the outcome of an atomic submission charge.
type SubmissionCharge struct {
	Charged bool
	Penalty int64
	Balance int64
}

type IAccountRepository interface {
	Create(account *model.Account) error
	GetByUsername(username string) (*model.Account, error)
	GetByAccountId(accountId string) (*model.Account, error)
	List(offset, pageSize int) ([]model.Account, int64, error)

	// AdjustTokens applies delta unconditionally and returns the new
	// balance. Serialized per account by the database.
	AdjustTokens(accountId string, delta int64) (int64, error)

	// ChargeIfAffordable deducts amount only when the balance covers
	// it, as one atomic step.
	ChargeIfAffordable(accountId string, amount int64) (int64, error)

	// ChargeSubmission settles the word-count charge and blacklist
	// surcharge in one transaction. If the balance is short of
	// wordCost, half the balance is forfeit instead and Charged is
	// false; if the surcharge is unaffordable nothing is deducted.
	ChargeSubmission(accountId string, wordCost, surcharge int64) (*SubmissionCharge, error)

	// HalveBalance forfeits half the current balance (clamped at
	// zero for non-positive balances) and returns the penalty taken.
	HalveBalance(accountId string) (int64, error)

	UpdateRole(accountId string, role model.Role) error

	// RecordCorrection bumps the settled-corrections counter.
	RecordCorrection(accountId string) error
	UpdateLastLogin(accountId string, ts time.Time) error

	// Session and cooldown state, Redis-backed.
	SetSession(accountId string, info *model.TokenInfo, expire time.Duration) error
	DelSession(accountId string) error
	SetCooldown(keyPrefix, accountId string, d time.Duration) error
	InCooldown(keyPrefix, accountId string) (bool, error)
}

type AccountRepo struct {
	db           database.IDatabase
	cache        cache.ICache
	accountModel *model.Account
}

func NewAccountRepo(db database.IDatabase, cache cache.ICache) IAccountRepository {
	return &AccountRepo{
		db:           db,
		cache:        cache,
		accountModel: &model.Account{},
	}
}

func (ar *AccountRepo) Create(account *model.Account) error {
	var existing model.Account
	err := ar.db.Database().Table(ar.accountModel.TableName()).Select("username").
		Where("username = ?", account.Username).
		First(&existing).Error
	if err == nil {
		return ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return ar.db.Database().Create(account).Error
}

func (ar *AccountRepo) GetByUsername(username string) (*model.Account, error) {
	var a model.Account
	err := ar.db.Database().Table(ar.accountModel.TableName()).
		Where("username = ?", username).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	return &a, err
}

func (ar *AccountRepo) GetByAccountId(accountId string) (*model.Account, error) {
	var a model.Account
	err := ar.db.Database().Table(ar.accountModel.TableName()).
		Where("account_id = ?", accountId).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	return &a, err
}

func (ar *AccountRepo) List(offset, pageSize int) ([]model.Account, int64, error) {
	var accounts []model.Account
	var total int64
	db := ar.db.Database().Table(ar.accountModel.TableName())
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("id").Offset(offset).Limit(pageSize).Find(&accounts).Error
	return accounts, total, err
}

func (ar *AccountRepo) AdjustTokens(accountId string, delta int64) (int64, error) {
	var balance int64
	err := ar.db.Database().Transaction(func(tx *gorm.DB) error {
		res := tx.Table(ar.accountModel.TableName()).
			Where("account_id = ?", accountId).
			Update("tokens", gorm.Expr("tokens + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAccountNotFound
		}
		return tx.Table(ar.accountModel.TableName()).Select("tokens").
			Where("account_id = ?", accountId).Scan(&balance).Error
	})
	return balance, err
}

func (ar *AccountRepo) ChargeIfAffordable(accountId string, amount int64) (int64, error) {
	var balance int64
	err := ar.db.Database().Transaction(func(tx *gorm.DB) error {
		a, err := lockAccount(tx, accountId)
		if err != nil {
			return err
		}
		if a.Tokens < amount {
			balance = a.Tokens
			return ErrInsufficientBalance
		}
		balance = a.Tokens - amount
		return tx.Table(ar.accountModel.TableName()).
			Where("account_id = ?", accountId).
			Updates(map[string]any{
				"tokens":            balance,
				"total_tokens_used": gorm.Expr("total_tokens_used + ?", amount),
			}).Error
	})
	return balance, err
}

func (ar *AccountRepo) ChargeSubmission(accountId string, wordCost, surcharge int64) (*SubmissionCharge, error) {
	charge := &SubmissionCharge{}
	err := ar.db.Database().Transaction(func(tx *gorm.DB) error {
		a, err := lockAccount(tx, accountId)
		if err != nil {
			return err
		}

		if a.Tokens < wordCost {
			charge.Penalty = halfOf(a.Tokens)
			charge.Balance = a.Tokens - charge.Penalty
			return tx.Table(ar.accountModel.TableName()).
				Where("account_id = ?", accountId).
				Update("tokens", charge.Balance).Error
		}

		if a.Tokens-wordCost < surcharge {
			charge.Balance = a.Tokens
			return ErrInsufficientBalance
		}

		total := wordCost + surcharge
		charge.Charged = true
		charge.Balance = a.Tokens - total
		return tx.Table(ar.accountModel.TableName()).
			Where("account_id = ?", accountId).
			Updates(map[string]any{
				"tokens":            charge.Balance,
				"total_tokens_used": gorm.Expr("total_tokens_used + ?", total),
				"total_corrections": gorm.Expr("total_corrections + 1"),
			}).Error
	})
	if err != nil && !errors.Is(err, ErrInsufficientBalance) {
		return nil, err
	}
	return charge, err
}

func (ar *AccountRepo) HalveBalance(accountId string) (int64, error) {
	var penalty int64
	err := ar.db.Database().Transaction(func(tx *gorm.DB) error {
		a, err := lockAccount(tx, accountId)
		if err != nil {
			return err
		}
		penalty = halfOf(a.Tokens)
		if penalty == 0 {
			return nil
		}
		return tx.Table(ar.accountModel.TableName()).
			Where("account_id = ?", accountId).
			Update("tokens", a.Tokens-penalty).Error
	})
	return penalty, err
}

func (ar *AccountRepo) UpdateRole(accountId string, role model.Role) error {
	res := ar.db.Database().Table(ar.accountModel.TableName()).
		Where("account_id = ?", accountId).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (ar *AccountRepo) RecordCorrection(accountId string) error {
	return ar.db.Database().Table(ar.accountModel.TableName()).
		Where("account_id = ?", accountId).
		Update("total_corrections", gorm.Expr("total_corrections + 1")).Error
}

func (ar *AccountRepo) UpdateLastLogin(accountId string, ts time.Time) error {
	return ar.db.Database().Table(ar.accountModel.TableName()).
		Where("account_id = ?", accountId).
		Update("last_login_at", ts).Error
}

func (ar *AccountRepo) SetSession(accountId string, info *model.TokenInfo, expire time.Duration) error {
	if ar.cache == nil {
		return nil
	}
	payload, err := sonic.MarshalString(info)
	if err != nil {
		return err
	}
	return ar.cache.Set(context.Background(), consts.SessionKey+accountId, payload, expire).Err()
}

func (ar *AccountRepo) DelSession(accountId string) error {
	if ar.cache == nil {
		return nil
	}
	return ar.cache.Del(context.Background(), consts.SessionKey+accountId).Err()
}

func (ar *AccountRepo) SetCooldown(keyPrefix, accountId string, d time.Duration) error {
	if ar.cache == nil {
		return nil
	}
	return ar.cache.Set(context.Background(), keyPrefix+accountId, time.Now().Unix(), d).Err()
}

func (ar *AccountRepo) InCooldown(keyPrefix, accountId string) (bool, error) {
	if ar.cache == nil {
		return false, nil
	}
	n, err := ar.cache.Exists(context.Background(), keyPrefix+accountId).Result()
	if err != nil {
		log.Errorw("cooldown lookup failed", "accountId", accountId, "error", err)
		return false, err
	}
	return n > 0, nil
}

// lockAccount reads an account row under SELECT ... FOR UPDATE so the
// check-then-write sequences above serialize per account.
func lockAccount(tx *gorm.DB, accountId string) (*model.Account, error) {
	var a model.Account
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Table(a.TableName()).
		Where("account_id = ?", accountId).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// halfOf clamps at zero so a non-positive balance never yields a
// negative penalty.
func halfOf(balance int64) int64 {
	if balance <= 0 {
		return 0
	}
	return balance / 2
}
