package logic

import (
	"errors"
	"strings"
	"time"

	"github.com/corrigo/corrigo/internal/engine/consts"
	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/internal/engine/repo"
	"github.com/corrigo/corrigo/pkg/corrector"
	"github.com/corrigo/corrigo/pkg/ctx"
	"github.com/corrigo/corrigo/pkg/id"
	"github.com/corrigo/corrigo/pkg/log"
	"github.com/corrigo/corrigo/pkg/metrics"
	"github.com/corrigo/corrigo/pkg/storage"
)

type CorrectionLogic struct {
	ctx            *ctx.Context
	accountRepo    repo.IAccountRepository
	correctionRepo repo.ICorrectionRepository
	blacklistRepo  repo.IBlacklistRepository
	savedWordRepo  repo.ISavedWordRepository
	corrector      corrector.ICorrector
	store          storage.TextStore
	collector      *metrics.EditorCollector
}

func NewCorrectionLogic(ctx *ctx.Context, accountRepo repo.IAccountRepository, correctionRepo repo.ICorrectionRepository,
	blacklistRepo repo.IBlacklistRepository, savedWordRepo repo.ISavedWordRepository,
	c corrector.ICorrector, store storage.TextStore, collector *metrics.EditorCollector) *CorrectionLogic {
	return &CorrectionLogic{
		ctx:            ctx,
		accountRepo:    accountRepo,
		correctionRepo: correctionRepo,
		blacklistRepo:  blacklistRepo,
		savedWordRepo:  savedWordRepo,
		corrector:      c,
		store:          store,
		collector:      collector,
	}
}

// SelfCorrect settles a caller-supplied edit. The charge is half the
// number of positionally differing words, deducted atomically with
// producing the result. Corrected words join the account's saved
// vocabulary, so repeating the same fix is free.
func (cl *CorrectionLogic) SelfCorrect(accountId, original, edited string) (*model.SelfCorrectResp, error) {
	saved, err := cl.savedWordsFor(accountId)
	if err != nil {
		return nil, err
	}
	charge, corrected := selfCorrectionCharge(original, edited, saved)

	balance, err := cl.chargeFlat(accountId, charge)
	if err != nil {
		return nil, err
	}

	if cl.savedWordRepo != nil && len(corrected) > 0 {
		if err := cl.savedWordRepo.Save(accountId, corrected); err != nil {
			log.Errorf("failed to save corrected words: %v", err)
		}
	}

	record := &model.Correction{
		CorrectionId:  id.GetUlid(),
		AccountId:     accountId,
		Mode:          model.ModeSelf,
		OriginalText:  original,
		ResultText:    edited,
		TokensCharged: charge,
		Accepted:      true,
	}
	if err := cl.correctionRepo.Insert(record); err != nil {
		return nil, err
	}
	if err := cl.accountRepo.RecordCorrection(accountId); err != nil {
		log.Errorf("failed to record correction: %v", err)
	}
	cl.countCorrection(model.ModeSelf)

	return &model.SelfCorrectResp{
		CorrectionId:  record.CorrectionId,
		ResultText:    edited,
		TokensCharged: charge,
		Balance:       balance,
	}, nil
}

// EngineCorrect sends a masked text to the external correction
// engine. Unchanged text over the bonus threshold earns a flat bonus;
// changed text is recorded unsettled until the caller accepts it.
func (cl *CorrectionLogic) EngineCorrect(accountId, text string) (*model.EngineCorrectResp, error) {
	wordCount := len(strings.Fields(text))
	if wordCount == 0 {
		return nil, ErrEmptyInput
	}

	start := time.Now()
	corrected, err := cl.corrector.Correct(cl.ctx.GetCtx(), text)
	if cl.collector != nil {
		cl.collector.CorrectorLatency.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if cl.collector != nil {
			cl.collector.CorrectorErrors.Inc()
		}
		log.Errorf("correction engine call failed: %v", err)
		return nil, err
	}

	resp := &model.EngineCorrectResp{
		CorrectedText: corrected,
		Changed:       !strings.EqualFold(corrected, text),
	}

	if !resp.Changed && wordCount > consts.EngineBonusMinWords {
		balance, err := cl.accountRepo.AdjustTokens(accountId, consts.EngineBonusTokens)
		if err != nil {
			return nil, err
		}
		resp.BonusGranted = consts.EngineBonusTokens
		resp.Balance = balance
		if cl.collector != nil {
			cl.collector.TokensGranted.Add(float64(consts.EngineBonusTokens))
		}
	} else {
		account, err := cl.accountRepo.GetByAccountId(accountId)
		if err != nil {
			return nil, err
		}
		resp.Balance = account.Tokens
	}

	record := &model.Correction{
		CorrectionId: id.GetUlid(),
		AccountId:    accountId,
		Mode:         model.ModeEngine,
		OriginalText: text,
		ResultText:   corrected,
		Accepted:     !resp.Changed,
	}
	if err := cl.correctionRepo.Insert(record); err != nil {
		return nil, err
	}
	resp.CorrectionId = record.CorrectionId
	cl.countCorrection(model.ModeEngine)

	return resp, nil
}

// AcceptCorrection settles an engine-produced correction for a flat
// one-token charge.
func (cl *CorrectionLogic) AcceptCorrection(accountId, correctionId string) (int64, error) {
	record, err := cl.ownedCorrection(accountId, correctionId)
	if err != nil {
		return 0, err
	}
	if record.Mode != model.ModeEngine {
		return 0, ErrCorrectionMode
	}
	if record.Accepted {
		return 0, ErrAlreadyAccepted
	}

	balance, err := cl.chargeFlat(accountId, consts.AcceptCorrectionCost)
	if err != nil {
		return 0, err
	}

	if err := cl.correctionRepo.MarkAccepted(correctionId); err != nil {
		return balance, err
	}
	if err := cl.accountRepo.RecordCorrection(accountId); err != nil {
		log.Errorf("failed to record correction: %v", err)
	}
	return balance, nil
}

// WhitelistWord retires a blacklist entry so it no longer masks. Free
// of charge.
func (cl *CorrectionLogic) WhitelistWord(word string) error {
	return cl.blacklistRepo.Retire(strings.ToLower(strings.TrimSpace(word)))
}

// SaveText archives a correction's result text for a flat charge. The
// balance is untouched when it cannot cover the charge.
func (cl *CorrectionLogic) SaveText(accountId, correctionId string) (*model.SaveTextResp, error) {
	record, err := cl.ownedCorrection(accountId, correctionId)
	if err != nil {
		return nil, err
	}
	if record.ResultText == "" {
		return nil, ErrNothingToSave
	}

	balance, err := cl.chargeFlat(accountId, consts.SaveTextCost)
	if err != nil {
		return nil, err
	}

	objectName := accountId + "/" + record.CorrectionId + ".txt"
	objectPath, err := cl.store.PutText(cl.ctx, objectName, []byte(record.ResultText))
	if err != nil {
		// refund: the archive never happened
		if _, rerr := cl.accountRepo.AdjustTokens(accountId, consts.SaveTextCost); rerr != nil {
			log.Errorf("failed to refund save charge: %v", rerr)
		}
		return nil, err
	}

	if err := cl.correctionRepo.SetObjectPath(correctionId, objectPath); err != nil {
		return nil, err
	}

	return &model.SaveTextResp{
		ObjectPath:    objectPath,
		TokensCharged: consts.SaveTextCost,
		Balance:       balance,
	}, nil
}

func (cl *CorrectionLogic) History(accountId string, offset, pageSize int) ([]model.Correction, int64, error) {
	return cl.correctionRepo.ListForAccount(accountId, offset, pageSize)
}

// Stats reports an account's lifetime correction count, tokens spent on
// corrections, and current balance.
func (cl *CorrectionLogic) Stats(accountId string) (*model.AccountStats, error) {
	account, err := cl.accountRepo.GetByAccountId(accountId)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	count, tokens, err := cl.correctionRepo.StatsForAccount(accountId)
	if err != nil {
		return nil, err
	}
	return &model.AccountStats{
		TotalCorrections: count,
		TokensSpent:      tokens,
		Balance:          account.Tokens,
	}, nil
}

func (cl *CorrectionLogic) ownedCorrection(accountId, correctionId string) (*model.Correction, error) {
	record, err := cl.correctionRepo.Get(correctionId)
	if err != nil {
		if errors.Is(err, repo.ErrCorrectionNotFound) {
			return nil, ErrCorrectionMissing
		}
		return nil, err
	}
	if record.AccountId != accountId {
		return nil, ErrCorrectionMissing
	}
	return record, nil
}

func (cl *CorrectionLogic) chargeFlat(accountId string, amount int64) (int64, error) {
	if amount <= 0 {
		account, err := cl.accountRepo.GetByAccountId(accountId)
		if err != nil {
			return 0, err
		}
		return account.Tokens, nil
	}
	balance, err := cl.accountRepo.ChargeIfAffordable(accountId, amount)
	if err != nil {
		if errors.Is(err, repo.ErrInsufficientBalance) {
			return balance, &InsufficientTokensError{Required: amount, Balance: balance}
		}
		if errors.Is(err, repo.ErrAccountNotFound) {
			return 0, ErrAccountNotFound
		}
		return 0, err
	}
	if cl.collector != nil && amount > 0 {
		cl.collector.TokensCharged.Add(float64(amount))
	}
	return balance, nil
}

func (cl *CorrectionLogic) countCorrection(mode model.CorrectionMode) {
	if cl.collector == nil {
		return
	}
	cl.collector.Corrections.WithLabelValues(string(mode)).Inc()
}

func (cl *CorrectionLogic) savedWordsFor(accountId string) (map[string]struct{}, error) {
	if cl.savedWordRepo == nil {
		return nil, nil
	}
	words, err := cl.savedWordRepo.List(accountId)
	if err != nil {
		return nil, err
	}
	return wordSet(words), nil
}

// selfCorrectionCharge aligns the two word sequences positionally,
// pairwise by index up to the shorter length, and charges half the
// number of differing positions. Not an edit-distance alignment.
// Positions whose edited word is already in the account's saved set
// are free; the remaining corrected words are returned lower-cased so
// the caller can save them.
func selfCorrectionCharge(original, edited string, saved map[string]struct{}) (int64, []string) {
	a := strings.Fields(original)
	b := strings.Fields(edited)
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var differing int64
	var corrected []string
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			continue
		}
		if _, ok := saved[strings.ToLower(b[i])]; ok {
			continue
		}
		differing++
		corrected = append(corrected, strings.ToLower(b[i]))
	}
	return differing / 2, corrected
}
