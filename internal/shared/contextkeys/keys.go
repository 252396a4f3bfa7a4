package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "betogether-admin context key " + string(c)
}

const (
	// SessionKey holds the *model.Session resolved by the session guard.
	SessionKey = contextKey("session")
	// SessionIDKey holds the console session id.
	SessionIDKey = contextKey("sessionID")
	// AdminEmailKey holds the email of the logged-in administrator.
	AdminEmailKey = contextKey("adminEmail")
	// RequestIDKey is set by the request id middleware.
	RequestIDKey = contextKey("requestID")
	// ComponentKey and OperationKey annotate log lines.
	ComponentKey = contextKey("component")
	OperationKey = contextKey("operation")
)
