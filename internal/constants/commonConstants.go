package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixMentorOf CachePrefix = "MENTOR_OF_"
)

const (
	// SessionCookieName is the httpOnly cookie carrying the redis session id
	SessionCookieName = "praxis_session"

	// TokenTTLHours is the JWT lifetime
	TokenTTLHours = 24

	// MaxMessageLength caps direct message content
	MaxMessageLength = 4000
)
