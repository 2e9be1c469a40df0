package dtos

import "time"

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// ---- AUTH ----

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserSummary `json:"user"`
}

// ---- USERS ----

type UserSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// ---- ASSIGNMENTS ----

type AssignmentResponse struct {
	ID           string       `json:"id"`
	MentorID     string       `json:"mentor_id"`
	StudentID    string       `json:"student_id"`
	Notes        string       `json:"notes"`
	AssignedDate time.Time    `json:"assigned_date"`
	Mentor       *UserSummary `json:"mentor,omitempty"`
	Student      *UserSummary `json:"student,omitempty"`
}

// ---- VERIFICATION ----

type VerificationResponse struct {
	ID         string  `json:"id"`
	ItemKind   string  `json:"item_kind"`
	ItemID     string  `json:"item_id"`
	Status     string  `json:"status"`
	Feedback   *string `json:"feedback,omitempty"`
	VerifiedBy *string `json:"verified_by,omitempty"`
}

// ---- MESSAGING ----

type MessageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

type ConversationResponse struct {
	Messages   []MessageResponse `json:"messages"`
	MarkedRead int64             `json:"marked_read"`
}

type InboxEntry struct {
	CounterpartID   string    `json:"counterpart_id"`
	CounterpartName string    `json:"counterpart_name"`
	LastMessage     string    `json:"last_message"`
	LastMessageAt   time.Time `json:"last_message_at"`
	UnreadCount     int64     `json:"unread_count"`
}

// ---- SKILLS ----

type SkillImportReport struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ---- REPORTS ----

type OverviewReport struct {
	UsersByRole            map[string]int64 `json:"users_by_role"`
	ActivitiesByStatus     map[string]int64 `json:"activities_by_status"`
	SessionsByStatus       map[string]int64 `json:"sessions_by_status"`
	QualificationsByStatus map[string]int64 `json:"qualifications_by_status"`
	VerificationsByStatus  map[string]int64 `json:"verifications_by_status"`
	ActiveAssignments      int64            `json:"active_assignments"`
	UnreadMessages         int64            `json:"unread_messages"`
}

// ---- HEALTH ----

type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Uptime   string                   `json:"uptime"`
	Services map[string]ServiceStatus `json:"services"`
}

type StudentItemTally struct {
	StudentID   string `json:"student_id" db:"student_id"`
	StudentName string `json:"student_name" db:"student_name"`
	Pending     int64  `json:"pending" db:"pending"`
	Submitted   int64  `json:"submitted" db:"submitted"`
	Completed   int64  `json:"completed" db:"completed"`
	Rejected    int64  `json:"rejected" db:"rejected"`
}
