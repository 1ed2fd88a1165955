package logic

import (
	"errors"
	"strings"

	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/internal/engine/repo"
	"github.com/corrigo/corrigo/pkg/ctx"
)

type BlacklistLogic struct {
	ctx           *ctx.Context
	accountRepo   repo.IAccountRepository
	blacklistRepo repo.IBlacklistRepository
}

func NewBlacklistLogic(ctx *ctx.Context, accountRepo repo.IAccountRepository, blacklistRepo repo.IBlacklistRepository) *BlacklistLogic {
	return &BlacklistLogic{
		ctx:           ctx,
		accountRepo:   accountRepo,
		blacklistRepo: blacklistRepo,
	}
}

// Add puts a word straight into the active registry. Idempotent:
// adding a word that is already present reports false without error.
func (bl *BlacklistLogic) Add(word, proposerId string) (bool, error) {
	word = normalizeWord(word)
	if word == "" {
		return false, ErrEmptyInput
	}
	return bl.blacklistRepo.Insert(word, proposerId)
}

// Suggest records a word for super review. It does not mask until
// approved.
func (bl *BlacklistLogic) Suggest(word, proposerId string) (bool, error) {
	word = normalizeWord(word)
	if word == "" {
		return false, ErrEmptyInput
	}
	return bl.blacklistRepo.Suggest(word, proposerId)
}

// Approve activates a suggested word. Super accounts only.
func (bl *BlacklistLogic) Approve(actorId, word string) error {
	if err := bl.requireSuper(actorId); err != nil {
		return err
	}
	word = normalizeWord(word)
	if word == "" {
		return ErrEmptyInput
	}
	if err := bl.blacklistRepo.Approve(word); err != nil {
		if errors.Is(err, repo.ErrWordNotSuggested) {
			return ErrWordNotSuggested
		}
		return err
	}
	return nil
}

func (bl *BlacklistLogic) ListSuggested(actorId string) ([]model.BlacklistEntry, error) {
	if err := bl.requireSuper(actorId); err != nil {
		return nil, err
	}
	return bl.blacklistRepo.ListSuggested()
}

func (bl *BlacklistLogic) List() ([]string, error) {
	return bl.blacklistRepo.ListActive()
}

// IsBlacklisted is a case-insensitive exact-match lookup.
func (bl *BlacklistLogic) IsBlacklisted(word string) (bool, error) {
	words, err := bl.blacklistRepo.ListActive()
	if err != nil {
		return false, err
	}
	word = strings.ToLower(word)
	for _, w := range words {
		if w == word {
			return true, nil
		}
	}
	return false, nil
}

func (bl *BlacklistLogic) requireSuper(actorId string) error {
	actor, err := bl.accountRepo.GetByAccountId(actorId)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if actor.Role != model.RoleSuper {
		return ErrNotSuper
	}
	return nil
}

func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
