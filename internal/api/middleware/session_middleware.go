package middleware

import (
	"context"
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/RoyceAzure/lab/bookstore/internal/constants"
	"github.com/RoyceAzure/lab/bookstore/internal/model"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
	"github.com/RoyceAzure/lab/bookstore/internal/util"
	"github.com/rs/zerolog"
)

// SessionMiddleware 解析 session cookie, 任何錯誤都不會中斷請求, 只是不設置 identity
func SessionMiddleware(sessionService service.ISessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			memberID, err := sessionService.Resolve(r.Context(), cookie.Value)
			if err != nil {
				if !apperr.Is(err, apperr.UnauthenticatedCode) {
					zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to resolve session")
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := util.WithIdentity(r.Context(), &model.Identity{
				MemberID:  memberID,
				SessionID: cookie.Value,
			})
			tagMember(ctx, memberID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tagMember 只修改 LoggerMiddleware 建立的 request logger, 不動全域預設 logger
func tagMember(ctx context.Context, memberID int64) {
	l := zerolog.Ctx(ctx)
	if l == zerolog.DefaultContextLogger || l.GetLevel() == zerolog.Disabled {
		return
	}
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Int64("member_id", memberID)
	})
}
