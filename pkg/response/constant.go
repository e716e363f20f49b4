package response

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Internal server error"
	ValidationErrorMsg  = "Validation error"

	ValidationErrorCode     = 400
	InternalServerErrorCode = 500

	// DefaultStackTraceDepth bounds stack capture for error reports.
	DefaultStackTraceDepth = 16

	// DiscordMaxMessageLen is the Discord message content limit.
	DiscordMaxMessageLen = 1900
)
