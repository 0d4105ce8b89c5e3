package middleware

// Context keys and headers shared by the HTTP middleware
const (
	ContextKeyRequestID = "request_id"

	HeaderRequestID = "X-Request-ID"
)
