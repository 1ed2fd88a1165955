package logic

import (
	"testing"

	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/pkg/corrector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCorrectionLogic(accounts *fakeAccountRepo, fc *fakeCorrector, store *fakeTextStore, words ...string) (*CorrectionLogic, *fakeCorrectionRepo) {
	corrections := newFakeCorrectionRepo()
	if store == nil {
		store = newFakeTextStore()
	}
	cl := NewCorrectionLogic(testCtx(), accounts, corrections, newFakeBlacklistRepo(words...),
		newFakeSavedWordRepo(), fc, store, nil)
	return cl, corrections
}

func TestSelfCorrectionCharge(t *testing.T) {
	tests := []struct {
		name     string
		original string
		edited   string
		want     int64
	}{
		{"identical", "a b c", "a b c", 0},
		{"one diff", "a b c", "a x c", 0},
		{"two diffs", "a b c d", "a x c y", 1},
		{"four diffs", "a b c d", "w x y z", 2},
		{"edited shorter", "a b c d e f", "x y", 1},
		{"edited longer", "a b", "x y z q", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			charge, _ := selfCorrectionCharge(tt.original, tt.edited, nil)
			assert.Equal(t, tt.want, charge)
		})
	}
}

func TestSelfCorrectionCharge_SavedWordsAreFree(t *testing.T) {
	saved := map[string]struct{}{"fixed": {}}

	charge, corrected := selfCorrectionCharge("a b c d", "a Fixed c new", saved)
	assert.EqualValues(t, 0, charge) // one billable diff, halved
	assert.Equal(t, []string{"new"}, corrected)

	charge, corrected = selfCorrectionCharge("a b c d", "w x y z", saved)
	assert.EqualValues(t, 2, charge)
	assert.Equal(t, []string{"w", "x", "y", "z"}, corrected)
}

func TestSelfCorrect_RepeatingAFixIsFree(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(account("a1", "alice", model.RolePaid, 10))
	cl, _ := newCorrectionLogic(accounts, &fakeCorrector{}, nil)

	resp, err := cl.SelfCorrect("a1", "a b c d", "a x c y")
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.TokensCharged)

	// the corrected words are now saved vocabulary
	resp, err = cl.SelfCorrect("a1", "a b c d", "a x c y")
	require.NoError(t, err)
	assert.EqualValues(t, 0, resp.TokensCharged)
	assert.EqualValues(t, 9, resp.Balance)
}

func TestStats_SumsCorrections(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(account("a1", "alice", model.RolePaid, 10))
	cl, _ := newCorrectionLogic(accounts, &fakeCorrector{}, nil)

	_, err := cl.SelfCorrect("a1", "a b c d", "w x y z")
	require.NoError(t, err)
	_, err = cl.SelfCorrect("a1", "p q", "r s")
	require.NoError(t, err)

	stats, err := cl.Stats("a1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalCorrections)
	assert.EqualValues(t, 3, stats.TokensSpent)
	assert.EqualValues(t, 7, stats.Balance)
}

func TestStats_UnknownAccount(t *testing.T) {
	cl, _ := newCorrectionLogic(newFakeAccountRepo(), &fakeCorrector{}, nil)

	_, err := cl.Stats("ghost")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestSelfCorrect_ChargesAndRecords(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(account("a1", "alice", model.RolePaid, 10))
	cl, corrections := newCorrectionLogic(accounts, &fakeCorrector{}, nil)

	resp, err := cl.SelfCorrect("a1", "a b c d", "w x y z")
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.TokensCharged)
	assert.EqualValues(t, 8, resp.Balance)

	record, err := corrections.Get(resp.CorrectionId)
	require.NoError(t, err)
	assert.Equal(t, model.ModeSelf, record.Mode)
	assert.True(t, record.Accepted)
}

func TestSelfCorrect_Insufficient(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(account("a1", "alice", model.RolePaid, 1))
	cl, _ := newCorrectionLogic(accounts, &fakeCorrector{}, nil)

	_, err := cl.SelfCorrect("a1", "a b c d", "w x y z")
	var insufficient *InsufficientTokensError
	require.ErrorAs(t, err, &insufficient)
	assert.EqualValues(t, 2, insufficient.Required)
	// balance untouched: no partial penalty on flat charges
	assert.EqualValues(t, 1, accounts.balance("a1"))
}

func TestEngineCorrect_UnchangedLongTextEarnsBonus(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(account("a1", "alice", model.RolePaid, 10))
	cl, _ := newCorrectionLogic(accounts, &fakeCorrector{}, nil)

	resp, err := cl.EngineCorrect("a1", "one two three four five six seven eight nine ten eleven")
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.EqualValues(t, 3, resp.BonusGranted)
	assert.EqualValues(t, 13, resp.Balance)
}

func TestEngineCorrect_UnchangedShortTextNoBonus(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(account("a1", "alice", model.RolePaid, 10))
	cl, _ := newCorrectionLogic(accounts, &fakeCorrector{}, nil)

	resp, err := cl.EngineCorrect("a1", "short text here")
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.EqualValues(t, 0, resp.BonusGranted)
	assert.EqualValues(t, 10, resp.Balance)
}

func TestEngineCorrect_CaseOnlyDifferenceIsUnchanged(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(account("a1", "alice", model.RolePaid, 0))
	fc := &fakeCorrector{fix: "One Two Three Four Five Six Seven Eight Nine Ten Eleven"}
	cl, _ := newCorrectionLogic(accounts, fc, nil)

	resp, err := cl.EngineCorrect("a1", "one two three four five six seven eight nine ten eleven")
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.EqualValues(t, 3, resp.BonusGranted)
}

func TestEngineCorrect_ChangedTextAwaitsAcceptance(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(account("a1", "alice", model.RolePaid, 10))
	fc := &fakeCorrector{fix: "the corrected text"}
	cl, corrections := newCorrectionLogic(accounts, fc, nil)

	resp, err := cl.EngineCorrect("a1", "teh corected text")
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.EqualValues(t, 0, resp.BonusGranted)
	assert.EqualValues(t, 10, resp.Balance)

	record, err := corrections.Get(resp.CorrectionId)
	require.NoError(t, err)
	assert.False(t, record.Accepted)

	balance, err := cl.AcceptCorrection("a1", resp.CorrectionId)
	require.NoError(t, err)
	assert.EqualValues(t, 9, balance)

	record, err = corrections.Get(resp.CorrectionId)
	require.NoError(t, err)
	assert.True(t, record.Accepted)

	// second accept rejected, no further charge
	_, err = cl.AcceptCorrection("a1", resp.CorrectionId)
	assert.ErrorIs(t, err, ErrAlreadyAccepted)
	assert.EqualValues(t, 9, accounts.balance("a1"))
}

func TestEngineCorrect_EngineUnavailable(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(account("a1", "alice", model.RolePaid, 10))
	cl, _ := newCorrectionLogic(accounts, &fakeCorrector{err: corrector.ErrUnavailable}, nil)

	_, err := cl.EngineCorrect("a1", "some text")
	assert.ErrorIs(t, err, corrector.ErrUnavailable)
	assert.EqualValues(t, 10, accounts.balance("a1"))
}

func TestWhitelistWord_RemovesFromMasking(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(account("a1", "alice", model.RolePaid, 100))
	blacklist := newFakeBlacklistRepo("badword")
	saved := newFakeSavedWordRepo()
	cl := NewCorrectionLogic(testCtx(), accounts, newFakeCorrectionRepo(), blacklist, saved, &fakeCorrector{}, newFakeTextStore(), nil)
	sl := NewSubmissionLogic(testCtx(), accounts, blacklist, saved, nil)

	require.NoError(t, cl.WhitelistWord("Badword"))

	res, err := sl.Submit("a1", "hello badword world")
	require.NoError(t, err)
	assert.Equal(t, "hello badword world", res.MaskedText)
}

func TestSaveText(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(account("a1", "alice", model.RolePaid, 10))
	store := newFakeTextStore()
	cl, _ := newCorrectionLogic(accounts, &fakeCorrector{}, store)

	resp, err := cl.SelfCorrect("a1", "a b", "a b")
	require.NoError(t, err)

	saved, err := cl.SaveText("a1", resp.CorrectionId)
	require.NoError(t, err)
	assert.EqualValues(t, 5, saved.TokensCharged)
	assert.EqualValues(t, 5, saved.Balance)

	body, err := store.GetText(testCtx(), saved.ObjectPath)
	require.NoError(t, err)
	assert.Equal(t, "a b", string(body))
}

func TestSaveText_InsufficientLeavesBalance(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(account("a1", "alice", model.RolePaid, 4))
	cl, _ := newCorrectionLogic(accounts, &fakeCorrector{}, nil)

	resp, err := cl.SelfCorrect("a1", "a b", "a b")
	require.NoError(t, err)

	_, err = cl.SaveText("a1", resp.CorrectionId)
	var insufficient *InsufficientTokensError
	require.ErrorAs(t, err, &insufficient)
	assert.EqualValues(t, 4, accounts.balance("a1"))
}

func TestSaveText_NotOwnCorrection(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(account("a1", "alice", model.RolePaid, 10))
	accounts.add(account("a2", "bob", model.RolePaid, 10))
	cl, _ := newCorrectionLogic(accounts, &fakeCorrector{}, nil)

	resp, err := cl.SelfCorrect("a1", "a b", "a b")
	require.NoError(t, err)

	_, err = cl.SaveText("a2", resp.CorrectionId)
	assert.ErrorIs(t, err, ErrCorrectionMissing)
}
