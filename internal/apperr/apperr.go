package apperr

import (
	"errors"
	"fmt"
)

// Code 同時作為 HTTP status 使用
type Code int

const (
	ValidationCode      Code = 400
	UnauthenticatedCode Code = 401
	NotFoundCode        Code = 404
	ConflictCode        Code = 409
	TooManyRequestsCode Code = 429
	InternalCode        Code = 500
	TransientCode       Code = 503
)

var ErrStrMap = map[Code]string{
	ValidationCode:      "validation failed",
	UnauthenticatedCode: "unauthenticated",
	NotFoundCode:        "not found",
	ConflictCode:        "conflict",
	TooManyRequestsCode: "too many requests",
	InternalCode:        "internal server error",
	TransientCode:       "service temporarily unavailable, please retry",
}

type AppError struct {
	Code   Code
	Msg    string
	Fields map[string]string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Retryable 只有暫時性的儲存錯誤可以重試
func (e *AppError) Retryable() bool {
	return e.Code == TransientCode
}

func New(code Code, msg string) *AppError {
	return &AppError{Code: code, Msg: msg}
}

func Wrap(code Code, msg string, err error) *AppError {
	return &AppError{Code: code, Msg: msg, Err: err}
}

// Validation 回傳帶有欄位錯誤的 ValidationCode 錯誤
func Validation(fields map[string]string) *AppError {
	return &AppError{
		Code:   ValidationCode,
		Msg:    ErrStrMap[ValidationCode],
		Fields: fields,
	}
}

func Invalid(field, msg string) *AppError {
	return Validation(map[string]string{field: msg})
}

func NotFound(msg string) *AppError {
	return New(NotFoundCode, msg)
}

func Conflict(msg string) *AppError {
	return New(ConflictCode, msg)
}

func Unauthenticated(msg string) *AppError {
	return New(UnauthenticatedCode, msg)
}

func Internal(err error) *AppError {
	return Wrap(InternalCode, ErrStrMap[InternalCode], err)
}

func Transient(msg string, err error) *AppError {
	return Wrap(TransientCode, msg, err)
}

// CodeOf 取得錯誤代碼, 非 AppError 一律視為 InternalCode
func CodeOf(err error) Code {
	if err == nil {
		return 0
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalCode
}

func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

func IsRetryable(err error) bool {
	return Is(err, TransientCode)
}

// FieldErrors 收集多個欄位錯誤, 最後一次回傳
type FieldErrors map[string]string

func (f FieldErrors) Add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return Validation(f)
}
