package util

import (
	"context"
	"net"
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/constants"
	"github.com/RoyceAzure/lab/bookstore/internal/model"
)

// WithIdentity 將已登入的身分放入 ctx
func WithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, constants.IdentityKey, identity)
}

// GetIdentityFromContext 從請求上下文取得登入身分
//
// 參數:
//   - ctx: 經過 session middleware 的請求上下文
//
// 返回值:
//   - *model.Identity: 未登入時為 nil
func GetIdentityFromContext(ctx context.Context) *model.Identity {
	if v, ok := ctx.Value(constants.IdentityKey).(*model.Identity); ok {
		return v
	}
	return nil
}

// GetMemberID 未登入回傳 0
func GetMemberID(ctx context.Context) int64 {
	if identity := GetIdentityFromContext(ctx); identity != nil {
		return identity.MemberID
	}
	return 0
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, constants.RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(constants.RequestIDKey).(string); ok {
		return v
	}
	return "unknown"
}

// ClientIP 取 RemoteAddr 的 host 部分, RealIP middleware 之後即為真實來源
func ClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
