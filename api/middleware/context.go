package middleware

import "context"

type contextKey string

const (
	ctxMemberID contextKey = "member_id"
	ctxNickname contextKey = "nickname"
)

func MemberIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxMemberID).(string); ok {
		return v
	}
	return ""
}

func NicknameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxNickname).(string); ok {
		return v
	}
	return ""
}

// WithMemberID injects the member identifier into the context.
func WithMemberID(ctx context.Context, memberID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxMemberID, memberID)
}
