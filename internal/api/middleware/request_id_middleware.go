package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/util"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

func RequestIdMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		//沿用上游帶來的 request id
		requestId := r.Header.Get(RequestIDHeader)
		if requestId == "" || len(requestId) > 64 {
			requestId = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestId)

		next.ServeHTTP(w, r.WithContext(util.WithRequestID(r.Context(), requestId)))
	})
}
