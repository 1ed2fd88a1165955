package logic

import (
	"errors"
	"strings"

	"github.com/corrigo/corrigo/internal/engine/consts"
	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/internal/engine/repo"
	"github.com/corrigo/corrigo/pkg/ctx"
	"github.com/corrigo/corrigo/pkg/log"
	"github.com/corrigo/corrigo/pkg/metrics"
)

type SubmissionLogic struct {
	ctx           *ctx.Context
	accountRepo   repo.IAccountRepository
	blacklistRepo repo.IBlacklistRepository
	savedWordRepo repo.ISavedWordRepository
	collector     *metrics.EditorCollector
}

func NewSubmissionLogic(ctx *ctx.Context, accountRepo repo.IAccountRepository, blacklistRepo repo.IBlacklistRepository,
	savedWordRepo repo.ISavedWordRepository, collector *metrics.EditorCollector) *SubmissionLogic {
	return &SubmissionLogic{
		ctx:           ctx,
		accountRepo:   accountRepo,
		blacklistRepo: blacklistRepo,
		savedWordRepo: savedWordRepo,
		collector:     collector,
	}
}

// Submit runs the cost pipeline: word count, free-tier cap, blacklist
// masking and surcharge, and the balance charge, in that order. The
// balance mutates at most once per call.
func (sl *SubmissionLogic) Submit(accountId, text string) (*model.SubmissionResult, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		sl.countSubmission("empty")
		return nil, ErrEmptyInput
	}
	wordCount := len(words)

	account, err := sl.accountRepo.GetByAccountId(accountId)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if account.Role == model.RoleFree {
		blocked, err := sl.accountRepo.InCooldown(consts.SubmitCooldownKey, accountId)
		if err != nil {
			return nil, err
		}
		if blocked {
			sl.countSubmission("cooldown")
			return nil, ErrSubmitCooldown
		}
		if wordCount > consts.FreeWordLimit {
			return nil, sl.rejectOverLimit(accountId, wordCount)
		}
	}

	blacklist, err := sl.blacklistRepo.ListActive()
	if err != nil {
		return nil, err
	}
	saved, err := sl.savedWords(accountId)
	if err != nil {
		return nil, err
	}
	masked, found := maskText(text, blacklist, saved)
	surcharge := blacklistSurcharge(found)

	charge, err := sl.accountRepo.ChargeSubmission(accountId, int64(wordCount), surcharge)
	if err != nil {
		if errors.Is(err, repo.ErrInsufficientBalance) {
			sl.countSubmission("blacklist_unaffordable")
			return nil, ErrBlacklistUnaffordable
		}
		return nil, err
	}
	if !charge.Charged {
		sl.countSubmission("insufficient")
		return nil, &InsufficientTokensError{
			Required: int64(wordCount),
			Penalty:  charge.Penalty,
			Balance:  charge.Balance,
		}
	}

	sl.countSubmission("ok")
	if sl.collector != nil {
		sl.collector.TokensCharged.Add(float64(int64(wordCount) + surcharge))
	}

	return &model.SubmissionResult{
		MaskedText:       masked,
		WordCount:        wordCount,
		BlacklistedWords: found,
		TokensCharged:    int64(wordCount) + surcharge,
		Balance:          charge.Balance,
	}, nil
}

// rejectOverLimit settles a free-tier word-limit violation: half the
// balance is forfeit, the session is revoked, and a fresh cooldown
// window starts before the account may act again.
func (sl *SubmissionLogic) rejectOverLimit(accountId string, wordCount int) error {
	penalty, err := sl.accountRepo.HalveBalance(accountId)
	if err != nil {
		return err
	}
	if err := sl.accountRepo.DelSession(accountId); err != nil {
		log.Errorf("failed to revoke session: %v", err)
	}
	if err := sl.accountRepo.SetCooldown(consts.SubmitCooldownKey, accountId, consts.FreeSubmitCooldown); err != nil {
		log.Errorf("failed to start cooldown: %v", err)
	}
	sl.countSubmission("word_limit")
	return &WordLimitError{
		WordCount: wordCount,
		Limit:     consts.FreeWordLimit,
		Penalty:   penalty,
	}
}

func (sl *SubmissionLogic) countSubmission(outcome string) {
	if sl.collector != nil {
		sl.collector.Submissions.WithLabelValues(outcome).Inc()
	}
}

// savedWords loads the account's saved vocabulary as a lower-cased set.
func (sl *SubmissionLogic) savedWords(accountId string) (map[string]struct{}, error) {
	if sl.savedWordRepo == nil {
		return nil, nil
	}
	words, err := sl.savedWordRepo.List(accountId)
	if err != nil {
		return nil, err
	}
	return wordSet(words), nil
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// maskText replaces every blacklisted token with a run of the mask
// rune of the same length. Matching is case-insensitive; word order
// and non-blacklisted tokens are preserved verbatim. Words in the
// account's saved set never mask.
func maskText(text string, blacklist []string, saved map[string]struct{}) (string, []string) {
	set := wordSet(blacklist)

	tokens := strings.Fields(text)
	var found []string
	for i, token := range tokens {
		lower := strings.ToLower(token)
		if _, ok := saved[lower]; ok {
			continue
		}
		if _, ok := set[lower]; ok {
			tokens[i] = strings.Repeat(string(consts.MaskRune), len([]rune(token)))
			found = append(found, lower)
		}
	}
	return strings.Join(tokens, " "), found
}

// blacklistSurcharge is the sum of character lengths of every
// blacklisted word found.
func blacklistSurcharge(found []string) int64 {
	var total int64
	for _, w := range found {
		total += int64(len([]rune(w)))
	}
	return total
}
