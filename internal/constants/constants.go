package constants

import "time"

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "token"

// ContextKeyUserID is the gin context key for the authenticated user ID.
const ContextKeyUserID = "user_id"

// Session lifetimes. Login with "remember me" gets the long window.
const (
	SessionTTL    = 24 * time.Hour
	RememberMeTTL = 15 * 24 * time.Hour
)

const (
	MinPasswordLength = 6
	MinTitleLength    = 3
)

// MaxSuggestedTasks caps how many task suggestions a single request may yield.
const MaxSuggestedTasks = 20
