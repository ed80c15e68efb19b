package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/api/response"
	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/RoyceAzure/lab/bookstore/internal/util"
)

// 驗證 ctx 是否有登入身分
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if util.GetIdentityFromContext(r.Context()) == nil {
			response.ErrorJSON(w, apperr.UnauthenticatedCode, "login required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
