package logic

import (
	"testing"

	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collaborationFixture(t *testing.T) (*CollaborationLogic, *fakeAccountRepo, *model.Invitation) {
	t.Helper()
	accounts := newFakeAccountRepo()
	accounts.add(account("p1", "alice", model.RolePaid, 100))
	accounts.add(account("p2", "bob", model.RolePaid, 100))
	accounts.add(account("f1", "fred", model.RoleFree, 0))

	cl := NewCollaborationLogic(testCtx(), accounts, newFakeCollaborationRepo(accounts))
	inv, err := cl.Invite("p1", "bob", "our shared draft")
	require.NoError(t, err)
	return cl, accounts, inv
}

func TestInvite(t *testing.T) {
	_, _, inv := collaborationFixture(t)
	assert.Equal(t, model.InvitationPending, inv.Status)
	assert.Equal(t, "p1", inv.InviterId)
	assert.Equal(t, "p2", inv.InviteeId)
}

func TestInvite_InviteeMustBePaid(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(account("p1", "alice", model.RolePaid, 100))
	accounts.add(account("f1", "fred", model.RoleFree, 0))
	cl := NewCollaborationLogic(testCtx(), accounts, newFakeCollaborationRepo(accounts))

	_, err := cl.Invite("p1", "fred", "text")
	assert.ErrorIs(t, err, ErrInvalidInvitee)

	_, err = cl.Invite("p1", "nobody", "text")
	assert.ErrorIs(t, err, ErrInvalidInvitee)

	_, err = cl.Invite("p1", "alice", "text")
	assert.ErrorIs(t, err, ErrInvalidInvitee)
}

func TestAccept_CreatesCollaboration(t *testing.T) {
	cl, _, inv := collaborationFixture(t)

	collab, err := cl.Accept("p2", inv.InvitationId)
	require.NoError(t, err)
	assert.Equal(t, inv.InvitationId, collab.InvitationId)
	assert.Equal(t, "our shared draft", collab.Text)
	assert.Equal(t, "p2", collab.LastEditorId, "invitee seeds as last editor")

	// single-use
	_, err = cl.Accept("p2", inv.InvitationId)
	assert.ErrorIs(t, err, ErrInvitationNotPending)
}

func TestAccept_OnlyInvitee(t *testing.T) {
	cl, _, inv := collaborationFixture(t)

	_, err := cl.Accept("p1", inv.InvitationId)
	assert.ErrorIs(t, err, ErrInvitationNotFound)
}

func TestReject_PenalizesInviterExactlyOnce(t *testing.T) {
	cl, accounts, inv := collaborationFixture(t)

	require.NoError(t, cl.Reject("p2", inv.InvitationId))
	assert.EqualValues(t, 97, accounts.balance("p1"))

	// second reject fails without a further deduction
	assert.ErrorIs(t, cl.Reject("p2", inv.InvitationId), ErrInvitationNotPending)
	assert.EqualValues(t, 97, accounts.balance("p1"))
}

func TestReject_MayDriveBalanceNegative(t *testing.T) {
	accounts := newFakeAccountRepo()
	accounts.add(account("p1", "alice", model.RolePaid, 1))
	accounts.add(account("p2", "bob", model.RolePaid, 100))
	cl := NewCollaborationLogic(testCtx(), accounts, newFakeCollaborationRepo(accounts))

	inv, err := cl.Invite("p1", "bob", "text")
	require.NoError(t, err)

	require.NoError(t, cl.Reject("p2", inv.InvitationId))
	assert.EqualValues(t, -2, accounts.balance("p1"))
}

func TestReject_TerminatedInviterTakesNoPenalty(t *testing.T) {
	cl, accounts, inv := collaborationFixture(t)
	require.NoError(t, accounts.UpdateRole("p1", model.RoleTerminated))

	assert.ErrorIs(t, cl.Reject("p2", inv.InvitationId), ErrTerminated)
	assert.EqualValues(t, 100, accounts.balance("p1"))
}

func TestRejectAfterAccept(t *testing.T) {
	cl, accounts, inv := collaborationFixture(t)

	_, err := cl.Accept("p2", inv.InvitationId)
	require.NoError(t, err)

	assert.ErrorIs(t, cl.Reject("p2", inv.InvitationId), ErrInvitationNotPending)
	assert.EqualValues(t, 100, accounts.balance("p1"))
}

func TestEditCollaboration(t *testing.T) {
	cl, _, inv := collaborationFixture(t)

	collab, err := cl.Accept("p2", inv.InvitationId)
	require.NoError(t, err)

	require.NoError(t, cl.Edit("p1", collab.CollaborationId, "revised draft"))

	got, err := cl.ListCollaborations("p1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "revised draft", got[0].Text)
	assert.Equal(t, "p1", got[0].LastEditorId)

	// outsiders cannot edit
	assert.ErrorIs(t, cl.Edit("f1", collab.CollaborationId, "vandalism"), ErrNotCollaborator)
}

func TestListInvitations(t *testing.T) {
	cl, _, _ := collaborationFixture(t)

	pending, err := cl.ListInvitations("p2")
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	none, err := cl.ListInvitations("p1")
	require.NoError(t, err)
	assert.Empty(t, none)
}
