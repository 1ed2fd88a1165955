package logic

import (
	"errors"
	"time"

	"github.com/corrigo/corrigo/internal/engine/consts"
	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/internal/engine/repo"
	"github.com/corrigo/corrigo/pkg/ctx"
	"github.com/corrigo/corrigo/pkg/http"
	"github.com/corrigo/corrigo/pkg/http/jwt"
	"github.com/corrigo/corrigo/pkg/id"
	"github.com/corrigo/corrigo/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

type AccountLogic struct {
	ctx         *ctx.Context
	accountRepo repo.IAccountRepository
}

func NewAccountLogic(ctx *ctx.Context, accountRepo repo.IAccountRepository) *AccountLogic {
	return &AccountLogic{
		ctx:         ctx,
		accountRepo: accountRepo,
	}
}

// Register creates a free account with a zero balance. Paid and super
// accounts are provisioned through Provision.
func (al *AccountLogic) Register(register *model.Register) (*model.AccountInfo, error) {
	return al.createAccount(register.Username, register.Password, model.RoleFree)
}

// Provision creates an account of any active role with its starting
// balance. The actor must hold the super role.
func (al *AccountLogic) Provision(actorId string, register *model.Register) (*model.AccountInfo, error) {
	if err := al.requireRole(actorId, model.RoleSuper); err != nil {
		return nil, err
	}
	if !register.Role.IsActive() {
		return nil, ErrInvalidRole
	}
	return al.createAccount(register.Username, register.Password, register.Role)
}

func (al *AccountLogic) createAccount(username, password string, role model.Role) (*model.AccountInfo, error) {
	if username == "" || password == "" {
		return nil, ErrWrongPassword
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		AccountId: id.GetUUIDWithoutDashes(),
		Username:  username,
		Password:  string(hash),
		Role:      role,
		Tokens:    startingTokens(role),
	}
	if err := al.accountRepo.Create(account); err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	info := account.Info()
	return &info, nil
}

// Login authenticates an account and opens a Redis-backed session.
// Terminated accounts never authenticate; suspended accounts are
// rejected regardless of elapsed time; free accounts honour the login
// cooldown measured from the last successful login, and any cooldown
// started by a word-limit violation.
func (al *AccountLogic) Login(login *model.Login, auth http.Auth) (*model.LoginResp, error) {
	account, err := al.accountRepo.GetByUsername(login.Username)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	switch account.Role {
	case model.RoleTerminated:
		return nil, ErrTerminated
	case model.RoleSuspended:
		return nil, ErrSuspended
	}

	if !comparePassword(account.Password, login.Password) {
		return nil, ErrWrongPassword
	}

	if account.Role == model.RoleFree {
		if account.LastLoginAt != nil && time.Since(*account.LastLoginAt) < consts.FreeLoginCooldown {
			return nil, ErrCooldownActive
		}
		blocked, err := al.accountRepo.InCooldown(consts.SubmitCooldownKey, account.AccountId)
		if err != nil {
			return nil, err
		}
		if blocked {
			return nil, ErrCooldownActive
		}
	}

	aToken, rToken, err := jwt.GenToken(account.AccountId, []byte(auth.SecretKey), auth.AccessExpire, auth.RefreshExpire)
	if err != nil {
		log.Errorf("failed to generate tokens: %v", err)
		return nil, err
	}

	now := time.Now()
	if err := al.accountRepo.UpdateLastLogin(account.AccountId, now); err != nil {
		return nil, err
	}

	info := &model.TokenInfo{
		AccessToken:  aToken,
		RefreshToken: rToken,
		ExpireAt:     now.Add(auth.AccessExpire).Unix(),
		CreateAt:     now.Unix(),
	}
	if err := al.accountRepo.SetSession(account.AccountId, info, auth.AccessExpire); err != nil {
		log.Errorf("failed to store session: %v", err)
		return nil, err
	}

	return &model.LoginResp{
		AccountInfo: account.Info(),
		Token: map[string]string{
			"accessToken":  aToken,
			"refreshToken": rToken,
		},
	}, nil
}

func (al *AccountLogic) Logout(accountId string) error {
	return al.accountRepo.DelSession(accountId)
}

func (al *AccountLogic) Refresh(accountId, rToken string, auth *http.Auth) (map[string]string, error) {
	token, err := jwt.RefreshToken(auth, accountId, rToken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	info := &model.TokenInfo{
		AccessToken:  token["accessToken"],
		RefreshToken: token["refreshToken"],
		ExpireAt:     now.Add(auth.AccessExpire).Unix(),
		CreateAt:     now.Unix(),
	}
	if err := al.accountRepo.SetSession(accountId, info, auth.AccessExpire); err != nil {
		log.Errorf("failed to store session: %v", err)
		return nil, err
	}
	return token, nil
}

func (al *AccountLogic) GetInfo(accountId string) (*model.AccountInfo, error) {
	account, err := al.accountRepo.GetByAccountId(accountId)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	info := account.Info()
	return &info, nil
}

// List pages through every account. Super-only: the full roster of
// usernames, roles, and balances is an admin view.
func (al *AccountLogic) List(actorId string, offset, pageSize int) ([]model.Account, int64, error) {
	if err := al.requireRole(actorId, model.RoleSuper); err != nil {
		return nil, 0, err
	}
	return al.accountRepo.List(offset, pageSize)
}

// Purchase adds tokens to a paid account's balance.
func (al *AccountLogic) Purchase(accountId string, amount int64) (int64, error) {
	account, err := al.accountRepo.GetByAccountId(accountId)
	if err != nil {
		return 0, err
	}
	if account.Role != model.RolePaid {
		return account.Tokens, ErrNotPaid
	}
	if amount < consts.MinPurchaseTokens {
		return account.Tokens, ErrPurchaseTooSmall
	}
	return al.accountRepo.AdjustTokens(accountId, amount)
}

// AdjustTokens applies an arbitrary delta. The actor must hold the
// super role; the target's terminated state is absorbing.
func (al *AccountLogic) AdjustTokens(actorId, targetUsername string, delta int64) (int64, error) {
	if err := al.requireRole(actorId, model.RoleSuper); err != nil {
		return 0, err
	}
	target, err := al.accountRepo.GetByUsername(targetUsername)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return 0, ErrAccountNotFound
		}
		return 0, err
	}
	if target.Role == model.RoleTerminated {
		return target.Tokens, ErrTerminated
	}
	return al.accountRepo.AdjustTokens(target.AccountId, delta)
}

// Suspend moves an active account to suspended and revokes its
// session. Super-only; suspension is one-way.
func (al *AccountLogic) Suspend(actorId, targetUsername string) error {
	if err := al.requireRole(actorId, model.RoleSuper); err != nil {
		return err
	}
	target, err := al.accountRepo.GetByUsername(targetUsername)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if !target.Role.IsActive() {
		return ErrRoleTransition
	}
	if err := al.accountRepo.UpdateRole(target.AccountId, model.RoleSuspended); err != nil {
		return err
	}
	return al.accountRepo.DelSession(target.AccountId)
}

// Terminate flags an account as terminated. The row is retained for
// audit; the state is absorbing.
func (al *AccountLogic) Terminate(actorId, targetUsername string) error {
	if err := al.requireRole(actorId, model.RoleSuper); err != nil {
		return err
	}
	target, err := al.accountRepo.GetByUsername(targetUsername)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if target.Role == model.RoleTerminated {
		return ErrRoleTransition
	}
	if err := al.accountRepo.UpdateRole(target.AccountId, model.RoleTerminated); err != nil {
		return err
	}
	return al.accountRepo.DelSession(target.AccountId)
}

func (al *AccountLogic) requireRole(accountId string, role model.Role) error {
	account, err := al.accountRepo.GetByAccountId(accountId)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if account.Role != role {
		return ErrNotSuper
	}
	return nil
}

func startingTokens(role model.Role) int64 {
	switch role {
	case model.RolePaid:
		return consts.PaidStartingTokens
	case model.RoleSuper:
		return consts.SuperStartingTokens
	default:
		return consts.FreeStartingTokens
	}
}

func hashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

func comparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
