package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"placement-experiment/praxis/internal/constants"
	"placement-experiment/praxis/internal/models/dtos"
)

func TestMessageService_RoleMatrix(t *testing.T) {
	db := setupTestDB(t)
	svcs := newServiceSet(db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin", constants.RoleAdmin)
	mentor := seedUser(t, db, "mentor", constants.RoleMentor)
	otherMentor := seedUser(t, db, "mentor2", constants.RoleMentor)
	student := seedUser(t, db, "student", constants.RoleStudent)
	otherStudent := seedUser(t, db, "student2", constants.RoleStudent)

	if _, err := svcs.assignments.Assign(ctx, mentor.ID, student.ID, ""); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	// student to own mentor
	if _, err := svcs.messages.Send(ctx, claimsFor(student), dtos.SendMessageReq{ReceiverID: mentor.ID, Content: "hi"}); err != nil {
		t.Errorf("student->own mentor should pass, got %v", err)
	}
	// mentor to assigned student
	if _, err := svcs.messages.Send(ctx, claimsFor(mentor), dtos.SendMessageReq{ReceiverID: student.ID, Content: "hello"}); err != nil {
		t.Errorf("mentor->assigned student should pass, got %v", err)
	}
	// either side to admin
	if _, err := svcs.messages.Send(ctx, claimsFor(student), dtos.SendMessageReq{ReceiverID: admin.ID, Content: "help"}); err != nil {
		t.Errorf("student->admin should pass, got %v", err)
	}
	// admin to anyone
	if _, err := svcs.messages.Send(ctx, claimsFor(admin), dtos.SendMessageReq{ReceiverID: otherStudent.ID, Content: "welcome"}); err != nil {
		t.Errorf("admin->student should pass, got %v", err)
	}

	// peers never reach each other
	if _, err := svcs.messages.Send(ctx, claimsFor(student), dtos.SendMessageReq{ReceiverID: otherStudent.ID, Content: "psst"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("student->student should be forbidden, got %v", err)
	}
	if _, err := svcs.messages.Send(ctx, claimsFor(mentor), dtos.SendMessageReq{ReceiverID: otherMentor.ID, Content: "psst"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("mentor->mentor should be forbidden, got %v", err)
	}

	// no live assignment, no channel
	if _, err := svcs.messages.Send(ctx, claimsFor(otherMentor), dtos.SendMessageReq{ReceiverID: student.ID, Content: "hi"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("unassigned mentor->student should be forbidden, got %v", err)
	}
	if _, err := svcs.messages.Send(ctx, claimsFor(otherStudent), dtos.SendMessageReq{ReceiverID: mentor.ID, Content: "hi"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("student->someone else's mentor should be forbidden, got %v", err)
	}
}

func TestMessageService_SendValidation(t *testing.T) {
	db := setupTestDB(t)
	svcs := newServiceSet(db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin", constants.RoleAdmin)
	student := seedUser(t, db, "student", constants.RoleStudent)

	if _, err := svcs.messages.Send(ctx, claimsFor(admin), dtos.SendMessageReq{ReceiverID: student.ID}); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for empty content, got %v", err)
	}

	long := strings.Repeat("a", constants.MaxMessageLength+1)
	if _, err := svcs.messages.Send(ctx, claimsFor(admin), dtos.SendMessageReq{ReceiverID: student.ID, Content: long}); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for oversized content, got %v", err)
	}

	if _, err := svcs.messages.Send(ctx, claimsFor(admin), dtos.SendMessageReq{ReceiverID: admin.ID, Content: "me"}); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid for self-message, got %v", err)
	}

	if _, err := svcs.messages.Send(ctx, claimsFor(admin), dtos.SendMessageReq{ReceiverID: "missing", Content: "hi"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown receiver, got %v", err)
	}
}

func TestMessageService_ConversationMarksRead(t *testing.T) {
	db := setupTestDB(t)
	svcs := newServiceSet(db)
	ctx := context.Background()

	mentor := seedUser(t, db, "mentor", constants.RoleMentor)
	student := seedUser(t, db, "student", constants.RoleStudent)
	if _, err := svcs.assignments.Assign(ctx, mentor.ID, student.ID, ""); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	for _, content := range []string{"first", "second"} {
		if _, err := svcs.messages.Send(ctx, claimsFor(student), dtos.SendMessageReq{ReceiverID: mentor.ID, Content: content}); err != nil {
			t.Fatalf("Send failed: %v", err)
		}
	}

	conversation, err := svcs.messages.Conversation(ctx, claimsFor(mentor), student.ID)
	if err != nil {
		t.Fatalf("Conversation failed: %v", err)
	}
	if conversation.MarkedRead != 2 {
		t.Errorf("Expected 2 messages marked read, got %d", conversation.MarkedRead)
	}
	if len(conversation.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(conversation.Messages))
	}
	for _, m := range conversation.Messages {
		if !m.Read {
			t.Errorf("Expected message %s to be read in the view", m.ID)
		}
	}

	// re-reading marks nothing new
	conversation, err = svcs.messages.Conversation(ctx, claimsFor(mentor), student.ID)
	if err != nil {
		t.Fatalf("Second Conversation failed: %v", err)
	}
	if conversation.MarkedRead != 0 {
		t.Errorf("Expected 0 newly marked messages, got %d", conversation.MarkedRead)
	}
}

func TestMessageService_InboxAggregation(t *testing.T) {
	db := setupTestDB(t)
	svcs := newServiceSet(db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin", constants.RoleAdmin)
	mentor := seedUser(t, db, "mentor", constants.RoleMentor)
	student := seedUser(t, db, "student", constants.RoleStudent)
	if _, err := svcs.assignments.Assign(ctx, mentor.ID, student.ID, ""); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	if _, err := svcs.messages.Send(ctx, claimsFor(student), dtos.SendMessageReq{ReceiverID: mentor.ID, Content: "question"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if _, err := svcs.messages.Send(ctx, claimsFor(admin), dtos.SendMessageReq{ReceiverID: mentor.ID, Content: "announcement"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	inbox, err := svcs.messages.Inbox(ctx, claimsFor(mentor))
	if err != nil {
		t.Fatalf("Inbox failed: %v", err)
	}
	if len(inbox) != 2 {
		t.Fatalf("Expected 2 inbox entries, got %d", len(inbox))
	}
	for _, entry := range inbox {
		if entry.UnreadCount != 1 {
			t.Errorf("Expected 1 unread from %s, got %d", entry.CounterpartID, entry.UnreadCount)
		}
		if entry.CounterpartName == "" {
			t.Errorf("Expected counterpart name for %s", entry.CounterpartID)
		}
	}
}
