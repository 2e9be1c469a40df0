package services

import (
	"context"
	"fmt"

	"placement-experiment/praxis/internal/auth"
	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/db/repositories"
	"placement-experiment/praxis/internal/logging"
	"placement-experiment/praxis/internal/metrics"
	"placement-experiment/praxis/internal/models/dtos"
	gormModels "placement-experiment/praxis/internal/models/gorm"

	"gorm.io/gorm"
)

// MessageService enforces the role matrix on sends: admins reach
// anyone, mentors and students reach each other only through a live
// assignment, peers never reach each other. Reading an existing thread
// is not gated on the matrix, so history survives reassignment.
type MessageService struct {
	messageRepo *repositories.MessageRepository
	userRepo    *repositories.UserRepository
	authz       *AuthzService
	metricsReg  *metrics.MetricsRegistry
}

func NewMessageService(messageRepo *repositories.MessageRepository, userRepo *repositories.UserRepository,
	authz *AuthzService, metricsReg *metrics.MetricsRegistry) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		authz:       authz,
		metricsReg:  metricsReg,
	}
}

func messageResponse(m *gormModels.Message) dtos.MessageResponse {
	return dtos.MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Read:       m.Read,
		CreatedAt:  m.CreatedAt,
	}
}

// canMessage applies the role matrix. Assignment checks always hit the
// live registry so a reassigned pair loses the channel immediately.
func (s *MessageService) canMessage(ctx context.Context, senderID string, senderRole constants.Role, receiver *gormModels.User) (bool, error) {
	if senderRole == constants.RoleAdmin {
		return true, nil
	}
	if receiver.Role == constants.RoleAdmin {
		return true, nil
	}
	if receiver.Role == senderRole {
		return false, nil
	}

	switch senderRole {
	case constants.RoleMentor:
		return s.authz.MentorOwnsLive(ctx, senderID, receiver.ID)
	case constants.RoleStudent:
		return s.authz.MentorOwnsLive(ctx, receiver.ID, senderID)
	}
	return false, nil
}

func (s *MessageService) Send(ctx context.Context, claims auth.UserClaims, req dtos.SendMessageReq) (*dtos.MessageResponse, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalid)
	}
	if len(req.Content) > constants.MaxMessageLength {
		return nil, fmt.Errorf("%w: content exceeds %d characters", ErrInvalid, constants.MaxMessageLength)
	}
	if req.ReceiverID == claims.UserID() {
		return nil, fmt.Errorf("%w: cannot message yourself", ErrInvalid)
	}

	receiver, err := s.userRepo.GetByID(ctx, req.ReceiverID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.MsgUserNotFound)
		}
		return nil, fmt.Errorf("failed to fetch receiver: %w", err)
	}

	allowed, err := s.canMessage(ctx, claims.UserID(), constants.Role(claims.Role()), receiver)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, constants.MsgMessagingNotAllowed)
	}

	message := gormModels.Message{
		SenderID:   claims.UserID(),
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}

	if err := s.messageRepo.Create(ctx, &message); err != nil {
		return nil, err
	}

	if s.metricsReg != nil {
		s.metricsReg.MessagesSentTotal.Inc()
	}

	logging.Debug("Message sent", "sender_id", message.SenderID, "receiver_id", message.ReceiverID)

	resp := messageResponse(&message)
	return &resp, nil
}

// Conversation returns the two-party thread and, as a side effect,
// marks every message the viewer received in it as read
func (s *MessageService) Conversation(ctx context.Context, claims auth.UserClaims, otherID string) (*dtos.ConversationResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, constants.MsgUserNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	messages, err := s.messageRepo.Conversation(ctx, claims.UserID(), otherID)
	if err != nil {
		return nil, err
	}

	marked, err := s.messageRepo.MarkRead(ctx, claims.UserID(), otherID)
	if err != nil {
		return nil, err
	}

	responses := make([]dtos.MessageResponse, 0, len(messages))
	for i := range messages {
		m := messageResponse(&messages[i])
		// reflect the read flip without a second query
		if m.ReceiverID == claims.UserID() {
			m.Read = true
		}
		responses = append(responses, m)
	}

	return &dtos.ConversationResponse{
		Messages:   responses,
		MarkedRead: marked,
	}, nil
}

// Inbox folds the user's messages into one entry per counterpart with
// the latest message and an unread count
func (s *MessageService) Inbox(ctx context.Context, claims auth.UserClaims) ([]dtos.InboxEntry, error) {
	messages, err := s.messageRepo.ListInvolving(ctx, claims.UserID())
	if err != nil {
		return nil, err
	}

	order := make([]string, 0)
	entries := make(map[string]*dtos.InboxEntry)

	for i := range messages {
		m := &messages[i]
		counterpart := m.SenderID
		if counterpart == claims.UserID() {
			counterpart = m.ReceiverID
		}

		entry, ok := entries[counterpart]
		if !ok {
			// messages arrive newest first, so the first one seen
			// per counterpart is the latest
			entry = &dtos.InboxEntry{
				CounterpartID: counterpart,
				LastMessage:   m.Content,
				LastMessageAt: m.CreatedAt,
			}
			entries[counterpart] = entry
			order = append(order, counterpart)
		}
		if m.ReceiverID == claims.UserID() && !m.Read {
			entry.UnreadCount++
		}
	}

	result := make([]dtos.InboxEntry, 0, len(order))
	for _, id := range order {
		entry := entries[id]
		if user, err := s.userRepo.GetByID(ctx, id); err == nil {
			entry.CounterpartName = user.Name
		}
		result = append(result, *entry)
	}
	return result, nil
}
