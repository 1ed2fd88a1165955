package model

// SavedWord is a word an account has marked as correct. Saved words
// are excluded from masking and from self-correction charging for
// that account only.
type SavedWord struct {
	BaseModel
	AccountId string `gorm:"column:account_id;uniqueIndex:idx_account_word" json:"accountId"`
	Word      string `gorm:"column:word;uniqueIndex:idx_account_word" json:"word"`
}

func (SavedWord) TableName() string {
	return "t_saved_word"
}
