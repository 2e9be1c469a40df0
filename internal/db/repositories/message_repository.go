package repositories

import (
	"context"
	"fmt"

	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new GORM-based message repository
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *gormModels.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// Conversation returns the full two-party thread in chronological order
func (r *MessageRepository) Conversation(ctx context.Context, userID, otherID string) ([]gormModels.Message, error) {
	var messages []gormModels.Message

	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC").
		Find(&messages).Error

	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	return messages, nil
}

// MarkRead flips every unread message from sender to receiver in one
// UPDATE so concurrent readers never observe a half-marked thread
func (r *MessageRepository) MarkRead(ctx context.Context, receiverID, senderID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND read = ?", receiverID, senderID, false).
		Update("read", true)

	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", res.Error)
	}

	return res.RowsAffected, nil
}

// ListInvolving returns every message sent or received by the user,
// newest first; the inbox aggregation happens in the service
func (r *MessageRepository) ListInvolving(ctx context.Context, userID string) ([]gormModels.Message, error) {
	var messages []gormModels.Message

	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}
