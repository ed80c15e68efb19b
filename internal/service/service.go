package service

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/RoyceAzure/lab/bookstore/internal/constants"
)

// withTimeout 每個 service 操作都有上限, 逾時由 apperr.FromStore 轉成可重試錯誤
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = constants.DefaultOperationTimeout
	}
	return context.WithTimeout(ctx, d)
}

// storeErr 將查無資料轉成帶訊息的 NotFound, 其餘依 FromStore 分類
func storeErr(err error, notFoundMsg string) error {
	err = apperr.FromStore(err)
	if apperr.Is(err, apperr.NotFoundCode) && notFoundMsg != "" {
		return apperr.Wrap(apperr.NotFoundCode, notFoundMsg, err)
	}
	return err
}

func requireMember(memberID int64) error {
	if memberID <= 0 {
		return apperr.Unauthenticated("login required")
	}
	return nil
}
