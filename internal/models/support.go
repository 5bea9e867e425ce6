package models

import (
	"time"
)

const (
	ThreadOpen   = "OPEN"
	ThreadClosed = "CLOSED"
)

const (
	SenderUser  = "USER"
	SenderAdmin = "ADMIN"
)

// SupportThread is keyed at most once to a withdrawal request. A new user
// message reopens a closed thread.
type SupportThread struct {
	ID                  int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId              int       `gorm:"column:user_id;not null;index" json:"user_id"`
	WithdrawalRequestId *int      `gorm:"column:withdrawal_request_id;uniqueIndex" json:"withdrawal_request_id"`
	Status              string    `gorm:"column:status;size:20;not null;default:OPEN" json:"status"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Messages []SupportMessage `gorm:"foreignKey:ThreadId" json:"messages,omitempty"`
}

func (SupportThread) TableName() string {
	return "support_threads"
}

// SupportMessage rows are append-only, ordered by creation time.
type SupportMessage struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ThreadId  int       `gorm:"column:thread_id;not null;index" json:"thread_id"`
	Sender    string    `gorm:"column:sender;size:10;not null" json:"sender"`
	Body      string    `gorm:"column:body;type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SupportMessage) TableName() string {
	return "support_messages"
}
