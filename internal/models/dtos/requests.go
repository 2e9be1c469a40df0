package dtos

// ---- AUTH ----

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ---- USERS ----

type CreateUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserReq struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Status *string `json:"status"`
}

type UpdateProfileReq struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// ---- ASSIGNMENTS ----

type AssignReq struct {
	MentorID  string `json:"mentor_id"`
	StudentID string `json:"student_id"`
	Notes     string `json:"notes"`
}

// ---- ITEMS ----

type CreateActivityReq struct {
	StudentID       string `json:"student_id"`
	Title           string `json:"title"`
	ActivityType    string `json:"activity_type"`
	DateCompleted   string `json:"date_completed"`
	DurationMinutes int    `json:"duration_minutes"`
	EvidenceURL     string `json:"evidence_url"`
}

type UpdateActivityReq struct {
	Title           *string `json:"title"`
	ActivityType    *string `json:"activity_type"`
	DateCompleted   *string `json:"date_completed"`
	DurationMinutes *int    `json:"duration_minutes"`
	EvidenceURL     *string `json:"evidence_url"`
}

type CreateSessionReq struct {
	StudentID       string `json:"student_id"`
	Title           string `json:"title"`
	SessionDate     string `json:"session_date"`
	DurationMinutes int    `json:"duration_minutes"`
	Notes           string `json:"notes"`
}

type UpdateSessionReq struct {
	Title           *string `json:"title"`
	SessionDate     *string `json:"session_date"`
	DurationMinutes *int    `json:"duration_minutes"`
	Notes           *string `json:"notes"`
}

type CreateQualificationReq struct {
	StudentID           string `json:"student_id"`
	Title               string `json:"title"`
	IssuingOrganization string `json:"issuing_organization"`
	IssueDate           string `json:"issue_date"`
	ExpiryDate          string `json:"expiry_date"`
	CertificateURL      string `json:"certificate_url"`
}

type UpdateQualificationReq struct {
	Title               *string `json:"title"`
	IssuingOrganization *string `json:"issuing_organization"`
	IssueDate           *string `json:"issue_date"`
	ExpiryDate          *string `json:"expiry_date"`
	CertificateURL      *string `json:"certificate_url"`
}

// ---- VERIFICATION ----

type VerifyReq struct {
	ItemKind string `json:"item_kind"`
	ItemID   string `json:"item_id"`
	Verdict  string `json:"verdict"`
	Feedback string `json:"feedback"`
}

type ReopenReq struct {
	ItemKind string `json:"item_kind"`
	ItemID   string `json:"item_id"`
}

// ---- MESSAGING ----

type SendMessageReq struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

// ---- SKILLS ----

type SkillReq struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type StudentSkillReq struct {
	SkillID string `json:"skill_id"`
	Level   int    `json:"level"`
}

// ---- CV ----

type UpsertCVReq struct {
	Summary string `json:"summary"`
	CVURL   string `json:"cv_url"`
}
