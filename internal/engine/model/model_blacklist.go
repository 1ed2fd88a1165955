package model

type BlacklistStatus string

const (
	BlacklistSuggested BlacklistStatus = "suggested"
	BlacklistActive    BlacklistStatus = "active"
	BlacklistRetired   BlacklistStatus = "retired"
)

// BlacklistEntry is a forbidden word. Words are stored lower-cased and
// matched case-insensitively. Suggested entries await super approval
// and do not mask yet. Retired entries are whitelisted words that no
// longer participate in masking.
type BlacklistEntry struct {
	BaseModel
	Word       string          `gorm:"column:word;uniqueIndex" json:"word"`
	ProposerId string          `gorm:"column:proposer_id" json:"proposerId"`
	Status     BlacklistStatus `gorm:"column:status" json:"status"`
}

func (BlacklistEntry) TableName() string {
	return "t_blacklist"
}

type AddBlacklistWordReq struct {
	Word string `json:"word"`
}

type WhitelistWordReq struct {
	Word string `json:"word"`
}

type SuggestBlacklistWordReq struct {
	Word string `json:"word"`
}

type ApproveBlacklistWordReq struct {
	Word string `json:"word"`
}
