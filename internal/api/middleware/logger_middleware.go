package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/api/response"
	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/RoyceAzure/lab/bookstore/internal/util"
	"github.com/rs/zerolog"
)

type StatusRecoder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *StatusRecoder) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *StatusRecoder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *StatusRecoder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// LoggerMiddleware 記錄 request 並處理 panic, 須放在其他會呼叫外部服務的中間件之前
// request scoped logger 會放進 ctx, 之後可用 zerolog.Ctx 取得
func LoggerMiddleware(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recoder := &StatusRecoder{ResponseWriter: w}

			ctx := r.Context()
			lc := logger.With().Str("request_id", util.GetRequestID(ctx))
			if memberID := util.GetMemberID(ctx); memberID != 0 {
				lc = lc.Int64("member_id", memberID)
			}
			ctx = lc.Logger().WithContext(ctx)
			// 之後的中間件可透過 UpdateContext 補上欄位
			reqLogger := zerolog.Ctx(ctx)
			r = r.WithContext(ctx)

			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					reqLogger.Error().
						Str("method", r.Method).
						Str("url", r.URL.String()).
						Str("error", fmt.Sprintf("%v", err)).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")

					if !recoder.wroteHeader {
						response.ErrorJSON(recoder, apperr.InternalCode, "", nil)
					}
				}

				reqLogger.Info().
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Int("status", recoder.Status()).
					Dur("duration", time.Since(start)).
					Msg("request completed")
			}()

			next.ServeHTTP(recoder, r)
		})
	}
}
