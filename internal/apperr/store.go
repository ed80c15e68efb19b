package apperr

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// postgres SQLSTATE
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgQueryCanceled        = "57014"
)

// FromStore 將 repository 回傳的錯誤歸類到 AppError
//
// 參數:
//   - err: pgx / gorm / context 回傳的原始錯誤
//
// 返回值:
//   - nil: err 為 nil
//   - NotFoundCode: 查無資料或外鍵不存在
//   - ConflictCode: 唯一鍵重複
//   - ValidationCode: 資料違反 check constraint 或格式錯誤
//   - TransientCode: 逾時, 連線中斷, 鎖衝突等可重試錯誤
//   - InternalCode: 其他
func FromStore(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
		return Wrap(NotFoundCode, ErrStrMap[NotFoundCode], err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Transient("operation timed out", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromPgError(pgErr)
	}

	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) || IsConnectionError(err) {
		return Transient("database unavailable", err)
	}

	return Internal(err)
}

func fromPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgUniqueViolation:
		return Wrap(ConflictCode, ErrStrMap[ConflictCode], pgErr)
	case pgForeignKeyViolation:
		return Wrap(NotFoundCode, "referenced record does not exist", pgErr)
	case pgCheckViolation:
		return Wrap(ValidationCode, ErrStrMap[ValidationCode], pgErr)
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable, pgQueryCanceled:
		return Transient("database contention, please retry", pgErr)
	}

	switch {
	// connection exception
	case strings.HasPrefix(pgErr.Code, "08"),
		// insufficient resources
		strings.HasPrefix(pgErr.Code, "53"),
		// admin shutdown, crash shutdown, cannot connect now
		strings.HasPrefix(pgErr.Code, "57P0"):
		return Transient("database unavailable", pgErr)
	// data exception
	case strings.HasPrefix(pgErr.Code, "22"):
		return Wrap(ValidationCode, ErrStrMap[ValidationCode], pgErr)
	}
	return Internal(pgErr)
}

// IsConnectionError 判斷是否為網路層連線錯誤
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		var sysErr syscall.Errno
		if errors.As(netErr.Err, &sysErr) {
			switch sysErr {
			case syscall.ECONNREFUSED,
				syscall.ECONNRESET,
				syscall.ECONNABORTED,
				syscall.ENETUNREACH,
				syscall.ENETRESET,
				syscall.ETIMEDOUT:
				return true
			}
		}
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset by peer") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "i/o timeout")
}
