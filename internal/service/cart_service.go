package service

import (
	"context"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db/sqlc"
	"github.com/RoyceAzure/lab/bookstore/internal/model"
)

type ICartService interface {
	AddItem(ctx context.Context, memberID int64, isbn string, quantity int) (int, error)
	ListItems(ctx context.Context, memberID int64) (*model.Cart, error)
	Clear(ctx context.Context, memberID int64) error
}

type CartService struct {
	dbDao   db.IStore
	timeout time.Duration
}

var _ ICartService = (*CartService)(nil)

func NewCartService(dbDao db.IStore, timeout time.Duration) ICartService {
	return &CartService{
		dbDao:   dbDao,
		timeout: timeout,
	}
}

// AddItem 將數量累加到既有的購物車明細, 不存在則新增
//
// 參數:
//   - memberID: 目前登入的會員
//   - isbn: 書籍編號
//   - quantity: 本次加入的數量, 1..100
//
// 返回值:
//   - int: 累加後的數量
//
// 錯誤:
//   - apperr.ValidationCode 400: isbn 未填或數量不在範圍內
//   - apperr.NotFoundCode 404: 書籍不存在
//   - apperr.TransientCode 503: 逾時或資料庫暫時無法使用
func (c *CartService) AddItem(ctx context.Context, memberID int64, isbn string, quantity int) (int, error) {
	if err := requireMember(memberID); err != nil {
		return 0, err
	}

	fields := apperr.FieldErrors{}
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		fields.Add("isbn", "isbn is required")
	}
	if err := validateQuantity(quantity); err != nil {
		fields.Add("quantity", "quantity must be between 1 and 100")
	}
	if err := fields.Err(); err != nil {
		return 0, err
	}

	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	// 單一 upsert, 同一本書並發加入不會遺失數量
	qty, err := c.dbDao.AddCartItem(ctx, sqlc.AddCartItemParams{
		MemberID: memberID,
		Isbn:     isbn,
		Qty:      int32(quantity),
	})
	if err != nil {
		return 0, storeErr(err, "book not found")
	}
	return int(qty), nil
}

func (c *CartService) ListItems(ctx context.Context, memberID int64) (*model.Cart, error) {
	if err := requireMember(memberID); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	rows, err := c.dbDao.ListCartLines(ctx, memberID)
	if err != nil {
		return nil, storeErr(err, "")
	}

	lines := make([]model.CartLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, model.CartLine{
			ISBN:     row.Isbn,
			Title:    row.Title,
			Author:   row.Author,
			Price:    row.Price,
			Quantity: int(row.Qty),
		})
	}
	cart := model.NewCart(lines)
	return &cart, nil
}

func (c *CartService) Clear(ctx context.Context, memberID int64) error {
	if err := requireMember(memberID); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.dbDao.ClearCart(ctx, memberID); err != nil {
		return storeErr(err, "")
	}
	return nil
}
