package utils

import "context"

type ctxKey string

const roleKey ctxKey = "role"

// WithRole records the authenticated role for downstream handlers.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok && role != ""
}
