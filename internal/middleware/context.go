package middleware

// Context keys used to store authentication metadata.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyIdentity  = "identity"
	ContextKeyRequestID = "request_id"
)
