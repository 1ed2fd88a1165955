package consts

// Token economy constants.
const (
	// Starting balances by role at account creation.
	FreeStartingTokens  = 0
	PaidStartingTokens  = 100
	SuperStartingTokens = 1000

	// FreeWordLimit is the per-submission word cap for free accounts.
	FreeWordLimit = 20

	// EngineBonusMinWords is the minimum word count for the
	// unchanged-text bonus on engine corrections.
	EngineBonusMinWords = 10

	// EngineBonusTokens is awarded when the engine returns the text
	// unchanged and the word count exceeds EngineBonusMinWords.
	EngineBonusTokens = 3

	// AcceptCorrectionCost is the flat charge for accepting an
	// engine-produced correction.
	AcceptCorrectionCost = 1

	// SaveTextCost is the flat charge for archiving a text.
	SaveTextCost = 5

	// RejectInvitationPenalty is deducted from the inviter when an
	// invitation is rejected. May drive the balance negative.
	RejectInvitationPenalty = 3

	// MinPurchaseTokens is the smallest allowed token purchase.
	MinPurchaseTokens = 10
)

// MaskRune replaces each character of a blacklisted word.
const MaskRune = '*'
