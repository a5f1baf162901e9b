package userctx

import "context"

type contextKey string

const userIDContextKey contextKey = "user_id"

// DefaultUserID owns every request that arrives without a token.
const DefaultUserID = "default"

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok && userID != ""
}

// OwnerUserID returns the authenticated user or DefaultUserID.
func OwnerUserID(ctx context.Context) string {
	if id, ok := GetUserID(ctx); ok {
		return id
	}
	return DefaultUserID
}
