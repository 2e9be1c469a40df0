package constants

// ItemStatus is the lifecycle state of an activity, session or qualification
type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemSubmitted ItemStatus = "submitted"
	ItemCompleted ItemStatus = "completed"
	ItemRejected  ItemStatus = "rejected"
)

func (s ItemStatus) String() string { return string(s) }

// VerificationStatus is the state of a verification row
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) String() string { return string(s) }

// Terminal reports whether a verdict has been recorded. Terminal rows
// only change through an explicit reopen.
func (s VerificationStatus) Terminal() bool {
	return s == VerificationVerified || s == VerificationRejected
}

// Verdict is the caller-supplied outcome of a verification request
type Verdict string

const (
	VerdictVerified Verdict = "verified"
	VerdictRejected Verdict = "rejected"
)

func (v Verdict) IsValid() bool {
	return v == VerdictVerified || v == VerdictRejected
}

// ItemKind distinguishes the three verifiable record tables
type ItemKind string

const (
	KindActivity      ItemKind = "activity"
	KindSession       ItemKind = "session"
	KindQualification ItemKind = "qualification"
)

func (k ItemKind) IsValid() bool {
	switch k {
	case KindActivity, KindSession, KindQualification:
		return true
	}
	return false
}

// UserStatus is the account state
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)
