package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a directional direct message. Read flips when the receiver
// fetches the conversation.
type Message struct {
	ID         string    `gorm:"column:id;primaryKey;type:uuid"`
	SenderID   string    `gorm:"column:sender_id;type:uuid;not null;index:idx_messages_pair"`
	ReceiverID string    `gorm:"column:receiver_id;type:uuid;not null;index:idx_messages_pair"`
	Content    string    `gorm:"column:content;type:text;not null"`
	Read       bool      `gorm:"column:read;not null;default:false;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
