package constants

const (
	MsgInvalidCredentials  = "Invalid email or password"
	MsgAccountInactive     = "Account is inactive"
	MsgUserNotFound        = "User not found"
	MsgStudentNotFound     = "Student not found"
	MsgMentorNotFound      = "Mentor not found"
	MsgItemNotFound        = "Item not found"
	MsgNotAssigned         = "Mentor is not assigned to this student"
	MsgMessagingNotAllowed = "Messaging with this user is not allowed"
	MsgDuplicateEmail      = "A user with this email already exists"
)
