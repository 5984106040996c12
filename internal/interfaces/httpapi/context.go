package httpapi

import "context"

type contextKey string

const adminUserContextKey contextKey = "admin_user"

func withAdminUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, adminUserContextKey, user)
}

// adminUserFromContext returns the Basic auth user that passed
// RequireAdminBasicAuth. It is empty when enforcement is off.
func adminUserFromContext(ctx context.Context) string {
	user, _ := ctx.Value(adminUserContextKey).(string)
	return user
}
