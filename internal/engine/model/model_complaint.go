package model

import "time"

type ComplaintStatus string

const (
	ComplaintPending  ComplaintStatus = "pending"
	ComplaintResolved ComplaintStatus = "resolved"
)

type ResolutionAction string

const (
	ActionNone         ResolutionAction = "none"
	ActionWarning      ResolutionAction = "warning"
	ActionTokenPenalty ResolutionAction = "token-penalty"
)

// Complaint is a dispute between two accounts. A response may be
// attached at most once while pending; resolution is terminal.
type Complaint struct {
	BaseModel
	ComplaintId     string           `gorm:"column:complaint_id;uniqueIndex" json:"complaintId"`
	ComplainerId    string           `gorm:"column:complainer_id" json:"complainerId"`
	ComplainedId    string           `gorm:"column:complained_id" json:"complainedId"`
	Reason          string           `gorm:"column:reason" json:"reason"`
	Response        string           `gorm:"column:response" json:"response"`
	Status          ComplaintStatus  `gorm:"column:status" json:"status"`
	Action          ResolutionAction `gorm:"column:action;default:none" json:"action"`
	PenaltyAmount   int64            `gorm:"column:penalty_amount" json:"penaltyAmount"`
	PenaltyTargetId string           `gorm:"column:penalty_target_id" json:"penaltyTargetId"`
	RespondedAt     *time.Time       `gorm:"column:responded_at" json:"respondedAt"`
	ResolvedAt      *time.Time       `gorm:"column:resolved_at" json:"resolvedAt"`
}

func (Complaint) TableName() string {
	return "t_complaint"
}

type SubmitComplaintReq struct {
	ComplainedUsername string `json:"complainedUsername"`
	Reason             string `json:"reason"`
}

type RespondComplaintReq struct {
	ComplaintId string `json:"complaintId"`
	Response    string `json:"response"`
}

type ResolveComplaintReq struct {
	ComplaintId     string           `json:"complaintId"`
	Action          ResolutionAction `json:"action"`
	PenaltyAmount   int64            `json:"penaltyAmount"`
	PenaltyTargetId string           `json:"penaltyTargetId"`
}
