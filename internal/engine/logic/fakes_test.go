package logic

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/corrigo/corrigo/internal/engine/model"
	"github.com/corrigo/corrigo/internal/engine/repo"
	"github.com/corrigo/corrigo/pkg/ctx"
)

func testCtx() *ctx.Context {
	return ctx.NewContext(context.Background(), nil, nil, nil)
}

// fakeAccountRepo is an in-memory IAccountRepository with the same
// atomicity contract as the SQL implementation.
type fakeAccountRepo struct {
	mu        sync.Mutex
	accounts  map[string]*model.Account
	sessions  map[string]bool
	cooldowns map[string]time.Time
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts:  make(map[string]*model.Account),
		sessions:  make(map[string]bool),
		cooldowns: make(map[string]time.Time),
	}
}

func (f *fakeAccountRepo) add(a *model.Account) *model.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[a.AccountId] = a
	return a
}

func (f *fakeAccountRepo) balance(accountId string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[accountId].Tokens
}

func (f *fakeAccountRepo) Create(account *model.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Username == account.Username {
			return repo.ErrDuplicateUsername
		}
	}
	f.accounts[account.AccountId] = account
	return nil
}

func (f *fakeAccountRepo) GetByUsername(username string) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repo.ErrAccountNotFound
}

func (f *fakeAccountRepo) GetByAccountId(accountId string) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountId]
	if !ok {
		return nil, repo.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountRepo) List(offset, pageSize int) ([]model.Account, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Account
	for _, a := range f.accounts {
		out = append(out, *a)
	}
	return out, int64(len(f.accounts)), nil
}

func (f *fakeAccountRepo) AdjustTokens(accountId string, delta int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountId]
	if !ok {
		return 0, repo.ErrAccountNotFound
	}
	a.Tokens += delta
	return a.Tokens, nil
}

func (f *fakeAccountRepo) ChargeIfAffordable(accountId string, amount int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountId]
	if !ok {
		return 0, repo.ErrAccountNotFound
	}
	if a.Tokens < amount {
		return a.Tokens, repo.ErrInsufficientBalance
	}
	a.Tokens -= amount
	a.TotalTokensUsed += amount
	return a.Tokens, nil
}

func (f *fakeAccountRepo) ChargeSubmission(accountId string, wordCost, surcharge int64) (*repo.SubmissionCharge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountId]
	if !ok {
		return nil, repo.ErrAccountNotFound
	}

	charge := &repo.SubmissionCharge{}
	if a.Tokens < wordCost {
		charge.Penalty = halfBalance(a.Tokens)
		a.Tokens -= charge.Penalty
		charge.Balance = a.Tokens
		return charge, nil
	}
	if a.Tokens-wordCost < surcharge {
		charge.Balance = a.Tokens
		return charge, repo.ErrInsufficientBalance
	}

	total := wordCost + surcharge
	a.Tokens -= total
	a.TotalTokensUsed += total
	a.TotalCorrections++
	charge.Charged = true
	charge.Balance = a.Tokens
	return charge, nil
}

func (f *fakeAccountRepo) HalveBalance(accountId string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountId]
	if !ok {
		return 0, repo.ErrAccountNotFound
	}
	penalty := halfBalance(a.Tokens)
	a.Tokens -= penalty
	return penalty, nil
}

func halfBalance(balance int64) int64 {
	if balance <= 0 {
		return 0
	}
	return balance / 2
}

func (f *fakeAccountRepo) UpdateRole(accountId string, role model.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountId]
	if !ok {
		return repo.ErrAccountNotFound
	}
	a.Role = role
	return nil
}

func (f *fakeAccountRepo) RecordCorrection(accountId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[accountId]; ok {
		a.TotalCorrections++
	}
	return nil
}

func (f *fakeAccountRepo) UpdateLastLogin(accountId string, ts time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[accountId]; ok {
		a.LastLoginAt = &ts
	}
	return nil
}

func (f *fakeAccountRepo) SetSession(accountId string, info *model.TokenInfo, expire time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[accountId] = true
	return nil
}

func (f *fakeAccountRepo) DelSession(accountId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, accountId)
	return nil
}

func (f *fakeAccountRepo) SetCooldown(keyPrefix, accountId string, d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cooldowns[keyPrefix+accountId] = time.Now().Add(d)
	return nil
}

func (f *fakeAccountRepo) InCooldown(keyPrefix, accountId string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	until, ok := f.cooldowns[keyPrefix+accountId]
	return ok && time.Now().Before(until), nil
}

type fakeBlacklistRepo struct {
	mu        sync.Mutex
	words     []string
	suggested map[string]string
}

func newFakeBlacklistRepo(words ...string) *fakeBlacklistRepo {
	return &fakeBlacklistRepo{words: words, suggested: make(map[string]string)}
}

func (f *fakeBlacklistRepo) ListActive() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.words))
	copy(out, f.words)
	return out, nil
}

func (f *fakeBlacklistRepo) Insert(word, proposerId string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.words {
		if w == word {
			return false, nil
		}
	}
	f.words = append(f.words, word)
	return true, nil
}

func (f *fakeBlacklistRepo) Suggest(word, proposerId string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.words {
		if w == word {
			return false, nil
		}
	}
	if _, ok := f.suggested[word]; ok {
		return false, nil
	}
	f.suggested[word] = proposerId
	return true, nil
}

func (f *fakeBlacklistRepo) Approve(word string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.suggested[word]; !ok {
		return repo.ErrWordNotSuggested
	}
	delete(f.suggested, word)
	f.words = append(f.words, word)
	return nil
}

func (f *fakeBlacklistRepo) ListSuggested() ([]model.BlacklistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.BlacklistEntry
	for word, proposer := range f.suggested {
		out = append(out, model.BlacklistEntry{
			Word:       word,
			ProposerId: proposer,
			Status:     model.BlacklistSuggested,
		})
	}
	return out, nil
}

func (f *fakeBlacklistRepo) Retire(word string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, w := range f.words {
		if w == word {
			f.words = append(f.words[:i], f.words[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeBlacklistRepo) RefreshCache() error { return nil }

type fakeSavedWordRepo struct {
	mu    sync.Mutex
	words map[string]map[string]struct{}
	order map[string][]string
}

func newFakeSavedWordRepo() *fakeSavedWordRepo {
	return &fakeSavedWordRepo{
		words: make(map[string]map[string]struct{}),
		order: make(map[string][]string),
	}
}

func (f *fakeSavedWordRepo) Save(accountId string, words []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	set, ok := f.words[accountId]
	if !ok {
		set = make(map[string]struct{})
		f.words[accountId] = set
	}
	for _, w := range words {
		if _, dup := set[w]; dup {
			continue
		}
		set[w] = struct{}{}
		f.order[accountId] = append(f.order[accountId], w)
	}
	return nil
}

func (f *fakeSavedWordRepo) List(accountId string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.order[accountId]))
	copy(out, f.order[accountId])
	return out, nil
}

type fakeComplaintRepo struct {
	mu         sync.Mutex
	complaints map[string]*model.Complaint
	accounts   *fakeAccountRepo
}

func newFakeComplaintRepo(accounts *fakeAccountRepo) *fakeComplaintRepo {
	return &fakeComplaintRepo{
		complaints: make(map[string]*model.Complaint),
		accounts:   accounts,
	}
}

func (f *fakeComplaintRepo) Insert(c *model.Complaint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.complaints[c.ComplaintId] = c
	return nil
}

func (f *fakeComplaintRepo) Get(complaintId string) (*model.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.complaints[complaintId]
	if !ok {
		return nil, repo.ErrComplaintNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeComplaintRepo) ListPendingForComplained(accountId string) ([]model.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Complaint
	for _, c := range f.complaints {
		if c.ComplainedId == accountId && c.Status == model.ComplaintPending {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeComplaintRepo) ListAllPending() ([]model.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Complaint
	for _, c := range f.complaints {
		if c.Status == model.ComplaintPending {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeComplaintRepo) UpdateResponse(complaintId, response string, ts time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.complaints[complaintId]
	if !ok || c.Status != model.ComplaintPending || c.RespondedAt != nil {
		return repo.ErrAlreadyResponded
	}
	c.Response = response
	c.RespondedAt = &ts
	return nil
}

func (f *fakeComplaintRepo) Resolve(complaintId string, action model.ResolutionAction, penalty int64, targetId string, ts time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.complaints[complaintId]
	if !ok {
		return repo.ErrComplaintNotFound
	}
	if c.Status != model.ComplaintPending {
		return repo.ErrComplaintNotPending
	}
	if action == model.ActionTokenPenalty {
		if _, err := f.accounts.AdjustTokens(targetId, -penalty); err != nil {
			return err
		}
	}
	c.Status = model.ComplaintResolved
	c.Action = action
	c.PenaltyAmount = penalty
	c.PenaltyTargetId = targetId
	c.ResolvedAt = &ts
	return nil
}

type fakeCollaborationRepo struct {
	mu          sync.Mutex
	invitations map[string]*model.Invitation
	collabs     map[string]*model.Collaboration
	accounts    *fakeAccountRepo
}

func newFakeCollaborationRepo(accounts *fakeAccountRepo) *fakeCollaborationRepo {
	return &fakeCollaborationRepo{
		invitations: make(map[string]*model.Invitation),
		collabs:     make(map[string]*model.Collaboration),
		accounts:    accounts,
	}
}

func (f *fakeCollaborationRepo) InsertInvitation(inv *model.Invitation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invitations[inv.InvitationId] = inv
	return nil
}

func (f *fakeCollaborationRepo) GetInvitation(invitationId string) (*model.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invitations[invitationId]
	if !ok {
		return nil, repo.ErrInvitationNotFound
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeCollaborationRepo) ListPendingForInvitee(accountId string) ([]model.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Invitation
	for _, inv := range f.invitations {
		if inv.InviteeId == accountId && inv.Status == model.InvitationPending {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (f *fakeCollaborationRepo) Accept(invitationId, collaborationId string, ts time.Time) (*model.Collaboration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invitations[invitationId]
	if !ok {
		return nil, repo.ErrInvitationNotFound
	}
	if inv.Status != model.InvitationPending {
		return nil, repo.ErrInvitationNotPending
	}
	inv.Status = model.InvitationAccepted
	collab := &model.Collaboration{
		CollaborationId: collaborationId,
		InvitationId:    invitationId,
		Text:            inv.Text,
		LastEditorId:    inv.InviteeId,
		LastEditedAt:    &ts,
	}
	f.collabs[collaborationId] = collab
	cp := *collab
	return &cp, nil
}

func (f *fakeCollaborationRepo) Reject(invitationId string, penalty int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invitations[invitationId]
	if !ok {
		return repo.ErrInvitationNotFound
	}
	if inv.Status != model.InvitationPending {
		return repo.ErrInvitationNotPending
	}
	inv.Status = model.InvitationRejected
	_, err := f.accounts.AdjustTokens(inv.InviterId, -penalty)
	return err
}

func (f *fakeCollaborationRepo) GetCollaboration(collaborationId string) (*model.Collaboration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	collab, ok := f.collabs[collaborationId]
	if !ok {
		return nil, repo.ErrCollaborationNotFound
	}
	cp := *collab
	return &cp, nil
}

func (f *fakeCollaborationRepo) ListForAccount(accountId string) ([]model.Collaboration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Collaboration
	for _, collab := range f.collabs {
		inv := f.invitations[collab.InvitationId]
		if inv != nil && (inv.InviterId == accountId || inv.InviteeId == accountId) {
			out = append(out, *collab)
		}
	}
	return out, nil
}

func (f *fakeCollaborationRepo) UpdateText(collaborationId, text, editorId string, ts time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	collab, ok := f.collabs[collaborationId]
	if !ok {
		return repo.ErrCollaborationNotFound
	}
	collab.Text = text
	collab.LastEditorId = editorId
	collab.LastEditedAt = &ts
	return nil
}

type fakeCorrectionRepo struct {
	mu          sync.Mutex
	corrections map[string]*model.Correction
}

func newFakeCorrectionRepo() *fakeCorrectionRepo {
	return &fakeCorrectionRepo{corrections: make(map[string]*model.Correction)}
}

func (f *fakeCorrectionRepo) Insert(c *model.Correction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.corrections[c.CorrectionId] = c
	return nil
}

func (f *fakeCorrectionRepo) Get(correctionId string) (*model.Correction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.corrections[correctionId]
	if !ok {
		return nil, repo.ErrCorrectionNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCorrectionRepo) ListForAccount(accountId string, offset, pageSize int) ([]model.Correction, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Correction
	for _, c := range f.corrections {
		if c.AccountId == accountId {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCorrectionRepo) MarkAccepted(correctionId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.corrections[correctionId]
	if !ok {
		return repo.ErrCorrectionNotFound
	}
	c.Accepted = true
	return nil
}

func (f *fakeCorrectionRepo) StatsForAccount(accountId string) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count, tokens int64
	for _, c := range f.corrections {
		if c.AccountId == accountId {
			count++
			tokens += c.TokensCharged
		}
	}
	return count, tokens, nil
}

func (f *fakeCorrectionRepo) SetObjectPath(correctionId, objectPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.corrections[correctionId]
	if !ok {
		return repo.ErrCorrectionNotFound
	}
	c.ObjectPath = objectPath
	return nil
}

// fakeCorrector returns a canned correction, or echoes the input when
// fix is empty.
type fakeCorrector struct {
	fix string
	err error
}

func (f *fakeCorrector) Correct(_ context.Context, text string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.fix == "" {
		return text, nil
	}
	return f.fix, nil
}

type fakeTextStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newFakeTextStore() *fakeTextStore {
	return &fakeTextStore{objects: make(map[string][]byte)}
}

func (f *fakeTextStore) PutText(_ *ctx.Context, objectName string, body []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[objectName] = body
	return objectName, nil
}

func (f *fakeTextStore) GetText(_ *ctx.Context, objectName string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.objects[objectName]
	if !ok {
		return nil, errors.New("object not found")
	}
	return body, nil
}

func (f *fakeTextStore) Delete(_ *ctx.Context, objectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, objectName)
	return nil
}

func account(id, username string, role model.Role, tokens int64) *model.Account {
	return &model.Account{
		AccountId: id,
		Username:  username,
		Password:  mustHash("secret"),
		Role:      role,
		Tokens:    tokens,
	}
}

func mustHash(password string) string {
	hash, err := hashPassword(password)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
