package model

import (
	"time"
)

// Role is the lifecycle state of an account. Suspended and terminated
// are modelled as roles so a single column carries the whole state
// machine; terminated is absorbing.
type Role string

const (
	RoleFree       Role = "free"
	RolePaid       Role = "paid"
	RoleSuper      Role = "super"
	RoleSuspended  Role = "suspended"
	RoleTerminated Role = "terminated"
)

// IsActive reports whether the role is one of the three active tiers.
func (r Role) IsActive() bool {
	return r == RoleFree || r == RolePaid || r == RoleSuper
}

// Valid reports whether r is a known role value.
func (r Role) Valid() bool {
	switch r {
	case RoleFree, RolePaid, RoleSuper, RoleSuspended, RoleTerminated:
		return true
	}
	return false
}

type Account struct {
	BaseModel
	AccountId        string     `gorm:"column:account_id" json:"accountId"`
	Username         string     `gorm:"column:username;uniqueIndex" json:"username"`
	Password         string     `gorm:"column:password" json:"-"`
	Role             Role       `gorm:"column:role" json:"role"`
	Tokens           int64      `gorm:"column:tokens" json:"tokens"`
	TotalCorrections int64      `gorm:"column:total_corrections" json:"totalCorrections"`
	TotalTokensUsed  int64      `gorm:"column:total_tokens_used" json:"totalTokensUsed"`
	LastLoginAt      *time.Time `gorm:"column:last_login_at" json:"lastLoginAt"`
}

func (Account) TableName() string {
	return "t_account"
}

type Register struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResp struct {
	AccountInfo AccountInfo       `json:"accountInfo"`
	Token       map[string]string `json:"token"`
}

type AccountInfo struct {
	AccountId        string `json:"accountId"`
	Username         string `json:"username"`
	Role             Role   `json:"role"`
	Tokens           int64  `json:"tokens"`
	TotalCorrections int64  `json:"totalCorrections"`
	TotalTokensUsed  int64  `json:"totalTokensUsed"`
}

func (a *Account) Info() AccountInfo {
	return AccountInfo{
		AccountId:        a.AccountId,
		Username:         a.Username,
		Role:             a.Role,
		Tokens:           a.Tokens,
		TotalCorrections: a.TotalCorrections,
		TotalTokensUsed:  a.TotalTokensUsed,
	}
}

type PurchaseReq struct {
	Amount int64 `json:"amount"`
}

type SetRoleReq struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type AdjustTokensReq struct {
	Username string `json:"username"`
	Delta    int64  `json:"delta"`
}

// TokenInfo is the session payload stored in Redis.
type TokenInfo struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpireAt     int64  `json:"expireAt"`
	CreateAt     int64  `json:"createAt"`
}
