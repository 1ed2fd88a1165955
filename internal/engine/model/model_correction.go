package model

type CorrectionMode string

const (
	ModeSelf   CorrectionMode = "self"
	ModeEngine CorrectionMode = "engine"
)

// Correction records a settled correction for history listings.
type Correction struct {
	BaseModel
	CorrectionId  string         `gorm:"column:correction_id;uniqueIndex" json:"correctionId"`
	AccountId     string         `gorm:"column:account_id" json:"accountId"`
	Mode          CorrectionMode `gorm:"column:mode" json:"mode"`
	OriginalText  string         `gorm:"column:original_text" json:"originalText"`
	ResultText    string         `gorm:"column:result_text" json:"resultText"`
	TokensCharged int64          `gorm:"column:tokens_charged" json:"tokensCharged"`
	Accepted      bool           `gorm:"column:accepted" json:"accepted"`
	ObjectPath    string         `gorm:"column:object_path" json:"objectPath"`
}

func (Correction) TableName() string {
	return "t_correction"
}

type SubmitTextReq struct {
	Text string `json:"text"`
}

// SubmissionResult is returned by the cost pipeline.
type SubmissionResult struct {
	MaskedText       string   `json:"maskedText"`
	WordCount        int      `json:"wordCount"`
	BlacklistedWords []string `json:"blacklistedWords"`
	TokensCharged    int64    `json:"tokensCharged"`
	Balance          int64    `json:"balance"`
}

type SelfCorrectReq struct {
	OriginalText string `json:"originalText"`
	EditedText   string `json:"editedText"`
}

type SelfCorrectResp struct {
	CorrectionId  string `json:"correctionId"`
	ResultText    string `json:"resultText"`
	TokensCharged int64  `json:"tokensCharged"`
	Balance       int64  `json:"balance"`
}

type EngineCorrectReq struct {
	Text string `json:"text"`
}

type EngineCorrectResp struct {
	CorrectionId  string `json:"correctionId"`
	CorrectedText string `json:"correctedText"`
	Changed       bool   `json:"changed"`
	BonusGranted  int64  `json:"bonusGranted"`
	Balance       int64  `json:"balance"`
}

type AcceptCorrectionReq struct {
	CorrectionId string `json:"correctionId"`
}

type SaveTextReq struct {
	CorrectionId string `json:"correctionId"`
}

type SaveTextResp struct {
	ObjectPath    string `json:"objectPath"`
	TokensCharged int64  `json:"tokensCharged"`
	Balance       int64  `json:"balance"`
}

// AccountStats summarises an account's correction activity.
type AccountStats struct {
	TotalCorrections int64 `json:"totalCorrections"`
	TokensSpent      int64 `json:"tokensSpent"`
	Balance          int64 `json:"balance"`
}
