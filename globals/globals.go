package globals

import "context"

// Context keys set by the auth middleware.
type ContextKey string

const (
	UserIDKey ContextKey = "userId"
	RoleKey   ContextKey = "role"
)

var Ctx = context.Background()
