package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type ResponseError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func SuccessJSON(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Code: http.StatusOK, Message: "ok", Data: data})
}

func CreatedJSON(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, Response{Code: http.StatusCreated, Message: "created", Data: data})
}

func ErrorJSON(w http.ResponseWriter, code apperr.Code, msg string, fields map[string]string) {
	if msg == "" {
		msg = apperr.ErrStrMap[code]
	}
	writeJSON(w, int(code), ResponseError{Code: int(code), Message: msg, Fields: fields})
}

// WriteError 將 service 錯誤轉成 http 回應
//
// 參數:
//   - w: http response writer
//   - r: 原始 request, 用來取得 request scoped logger
//   - err: service 回傳的錯誤
//
// 500 只回傳通用訊息, 原始錯誤寫到 log; 503 附上 Retry-After
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(err)
	}

	logger := zerolog.Ctx(r.Context())
	switch appErr.Code {
	case apperr.InternalCode:
		logger.Error().Err(err).Msg("request failed")
		ErrorJSON(w, appErr.Code, "", nil)
		return
	case apperr.TransientCode:
		logger.Warn().Err(err).Msg("transient failure")
		w.Header().Set("Retry-After", "1")
	}
	ErrorJSON(w, appErr.Code, appErr.Msg, appErr.Fields)
}
