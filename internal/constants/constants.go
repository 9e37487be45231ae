package constants

// Session / context keys
const (
	ContextKeyUserID = "user_id"
	SessionName      = "planner_session"
)

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 8
)

// AI generation
const (
	MaxGeneratedScenarios = 20
)

// DateLayout is the wire format for date-only values (task days, habit logs).
const DateLayout = "2006-01-02"
