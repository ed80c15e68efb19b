package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/api/response"
	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/bookstore/internal/util"
	"github.com/rs/zerolog/log"
)

// NewRateLimitMiddleware 以 scope + client ip 為 key 限流
// limiter 出錯時放行, 不讓 redis 故障擋住登入
func NewRateLimitMiddleware(limiter ratelimit.ILimiter, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), scope+":"+util.ClientIP(r))
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", "1")
				response.ErrorJSON(w, apperr.TooManyRequestsCode, "", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
