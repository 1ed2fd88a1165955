package logic

import (
	"testing"

	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlacklistLogic(words ...string) (*BlacklistLogic, *fakeAccountRepo) {
	accounts := newFakeAccountRepo()
	accounts.add(account("s1", "root", model.RoleSuper, 1000))
	accounts.add(account("p1", "alice", model.RolePaid, 100))
	return NewBlacklistLogic(testCtx(), accounts, newFakeBlacklistRepo(words...)), accounts
}

func TestBlacklistAdd_Idempotent(t *testing.T) {
	bl, _ := newBlacklistLogic()

	added, err := bl.Add("BadWord", "p1")
	require.NoError(t, err)
	assert.True(t, added)

	// lower-cased on insert, second add is a no-op
	added, err = bl.Add("badword", "p2")
	require.NoError(t, err)
	assert.False(t, added)

	words, err := bl.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"badword"}, words)
}

func TestBlacklistAdd_EmptyWord(t *testing.T) {
	bl, _ := newBlacklistLogic()
	_, err := bl.Add("   ", "p1")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestBlacklistSuggestApprove(t *testing.T) {
	bl, _ := newBlacklistLogic()

	suggested, err := bl.Suggest("SneakyWord", "p1")
	require.NoError(t, err)
	assert.True(t, suggested)

	// suggestion does not mask yet
	words, err := bl.List()
	require.NoError(t, err)
	assert.Empty(t, words)

	pending, err := bl.ListSuggested("s1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "sneakyword", pending[0].Word)
	assert.Equal(t, "p1", pending[0].ProposerId)

	require.NoError(t, bl.Approve("s1", "sneakyword"))

	words, err = bl.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"sneakyword"}, words)
}

func TestBlacklistApprove_RequiresSuper(t *testing.T) {
	bl, _ := newBlacklistLogic()

	_, err := bl.Suggest("sneakyword", "p1")
	require.NoError(t, err)

	assert.ErrorIs(t, bl.Approve("p1", "sneakyword"), ErrNotSuper)
	_, err = bl.ListSuggested("p1")
	assert.ErrorIs(t, err, ErrNotSuper)
}

func TestBlacklistApprove_NotSuggested(t *testing.T) {
	bl, _ := newBlacklistLogic()
	assert.ErrorIs(t, bl.Approve("s1", "neverheard"), ErrWordNotSuggested)
}

func TestIsBlacklisted(t *testing.T) {
	bl, _ := newBlacklistLogic("badword")

	hit, err := bl.IsBlacklisted("BADWORD")
	require.NoError(t, err)
	assert.True(t, hit)

	miss, err := bl.IsBlacklisted("fine")
	require.NoError(t, err)
	assert.False(t, miss)
}
