package http

const (
	ErrInvalidJsonPayload   = "Invalid JSON payload"
	ErrInvalidFormPayload   = "Invalid form payload"
	ErrInvalidConfiguration = "Invalid Configuration value"
	ErrInternalServer       = "Internal server error"
	ErrBlockPageUnavailable = "Block page unavailable"
)
