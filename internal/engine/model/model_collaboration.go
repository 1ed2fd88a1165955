package model

import "time"

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
)

// Invitation is the first phase of a collaboration. The invitee must
// hold the paid role at invitation time; status moves from pending to
// accepted or rejected exactly once.
type Invitation struct {
	BaseModel
	InvitationId string           `gorm:"column:invitation_id;uniqueIndex" json:"invitationId"`
	InviterId    string           `gorm:"column:inviter_id" json:"inviterId"`
	InviteeId    string           `gorm:"column:invitee_id" json:"inviteeId"`
	Text         string           `gorm:"column:text" json:"text"`
	Status       InvitationStatus `gorm:"column:status" json:"status"`
}

func (Invitation) TableName() string {
	return "t_invitation"
}

// Collaboration exists iff its invitation is accepted.
type Collaboration struct {
	BaseModel
	CollaborationId string     `gorm:"column:collaboration_id;uniqueIndex" json:"collaborationId"`
	InvitationId    string     `gorm:"column:invitation_id;uniqueIndex" json:"invitationId"`
	Text            string     `gorm:"column:text" json:"text"`
	LastEditorId    string     `gorm:"column:last_editor_id" json:"lastEditorId"`
	LastEditedAt    *time.Time `gorm:"column:last_edited_at" json:"lastEditedAt"`
}

func (Collaboration) TableName() string {
	return "t_collaboration"
}

type InviteReq struct {
	InviteeUsername string `json:"inviteeUsername"`
	Text            string `json:"text"`
}

type InvitationActionReq struct {
	InvitationId string `json:"invitationId"`
}

type EditCollaborationReq struct {
	CollaborationId string `json:"collaborationId"`
	Text            string `json:"text"`
}
