package constants

// Pagination
const (
	DefaultPage     = 1
	DefaultPageSize = 15
	MaxPageSize     = 100
)

// Ticket field limits
const (
	MaxTitleLength = 150
)

// Request header names
const (
	HeaderRequestID = "X-Request-ID"
)

// Context keys
const (
	ContextKeyRequestID = "request_id"
)
