package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/RoyceAzure/lab/bookstore/internal/constants"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/event"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db/sqlc"
	"github.com/RoyceAzure/lab/bookstore/internal/model"
	"github.com/rs/zerolog/log"
)

var ErrEmptyCart = errors.New("cart is empty")

type IOrderService interface {
	PlaceOrder(ctx context.Context, memberID int64) (*model.PlacedOrder, error)
	GetOrder(ctx context.Context, memberID, orderID int64) (*model.OrderDetail, error)
	ListOrders(ctx context.Context, memberID int64) ([]model.Order, error)
}

type OrderService struct {
	dbDao     db.IStore
	publisher event.IOrderEventPublisher
	timeout   time.Duration
	now       func() time.Time
}

var _ IOrderService = (*OrderService)(nil)

type OrderServiceOption func(*OrderService)

// WithClock 測試時固定下單時間
func WithClock(now func() time.Time) OrderServiceOption {
	return func(s *OrderService) {
		s.now = now
	}
}

func NewOrderService(dbDao db.IStore, publisher event.IOrderEventPublisher, timeout time.Duration, opts ...OrderServiceOption) IOrderService {
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}
	s := &OrderService{
		dbDao:     dbDao,
		publisher: publisher,
		timeout:   timeout,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ShippingEstimate 下單日期加七天, 僅供顯示
func ShippingEstimate(orderedAt time.Time) string {
	return orderedAt.AddDate(0, 0, constants.ShippingLeadDays).Format(constants.DateLayout)
}

// PlaceOrder 將購物車轉成訂單並清空購物車, 全部在同一個交易內完成
//
// 參數:
//   - memberID: 目前登入的會員
//
// 返回值:
//   - *model.PlacedOrder: 訂單編號, 收件資訊, 明細, 總金額與預計到貨日
//
// 錯誤:
//   - apperr.NotFoundCode 404: 會員不存在
//   - apperr.ValidationCode 400: 購物車是空的, 不會建立訂單
//   - apperr.TransientCode 503: 逾時, 鎖衝突或資料庫暫時無法使用, 可重試
//   - apperr.InternalCode 500: 其他錯誤
func (s *OrderService) PlaceOrder(ctx context.Context, memberID int64) (*model.PlacedOrder, error) {
	if err := requireMember(memberID); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	orderedAt := s.now().UTC()
	var placed model.PlacedOrder

	err := s.dbDao.ExecTx(ctx, func(q sqlc.Querier) error {
		// 鎖住會員列, 阻擋同會員的新購物車明細寫入直到交易結束
		member, err := q.GetMemberForUpdate(ctx, memberID)
		if err != nil {
			return storeErr(err, "member not found")
		}

		cartLines, err := q.LockCartLines(ctx, memberID)
		if err != nil {
			return storeErr(err, "")
		}
		if len(cartLines) == 0 {
			return apperr.Wrap(apperr.ValidationCode, ErrEmptyCart.Error(), ErrEmptyCart)
		}

		order, err := q.CreateOrder(ctx, sqlc.CreateOrderParams{
			MemberID:    member.ID,
			CreatedAt:   orderedAt,
			ShipAddress: member.Address,
			ShipCity:    member.City,
			ShipZip:     member.Zip,
		})
		if err != nil {
			return storeErr(err, "")
		}

		lines := make([]model.OrderLine, 0, len(cartLines))
		for _, cl := range cartLines {
			amount := model.LineAmount(cl.Price, int(cl.Qty))
			if _, err := q.CreateOrderLine(ctx, sqlc.CreateOrderLineParams{
				OrderID: order.ID,
				Isbn:    cl.Isbn,
				Qty:     cl.Qty,
				Amount:  amount,
			}); err != nil {
				return storeErr(err, "")
			}
			lines = append(lines, model.OrderLine{
				OrderID:  order.ID,
				ISBN:     cl.Isbn,
				Title:    cl.Title,
				Quantity: int(cl.Qty),
				Amount:   amount,
			})
		}

		if _, err := q.ClearCart(ctx, memberID); err != nil {
			return storeErr(err, "")
		}

		placed = model.PlacedOrder{
			OrderDetail: model.OrderDetail{
				Order:      convertRepoOrderToModel(order, member.Fname+" "+member.Lname),
				Lines:      lines,
				GrandTotal: model.SumOrderLines(lines),
			},
			ShippingEstimate: ShippingEstimate(orderedAt),
		}
		return nil
	})
	if err != nil {
		return nil, storeErr(err, "")
	}

	s.publishPlaced(ctx, &placed)
	return &placed, nil
}

// publishPlaced 訂單已提交, 發送失敗只記錄不回傳
func (s *OrderService) publishPlaced(ctx context.Context, placed *model.PlacedOrder) {
	evt := event.OrderPlacedEvent{
		OrderID:    placed.ID,
		MemberID:   placed.MemberID,
		CreatedAt:  placed.CreatedAt,
		GrandTotal: placed.GrandTotal,
		Lines:      make([]event.OrderPlacedLine, 0, len(placed.Lines)),
	}
	for _, l := range placed.Lines {
		evt.Lines = append(evt.Lines, event.OrderPlacedLine{ISBN: l.ISBN, Quantity: l.Quantity, Amount: l.Amount})
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.publisher.PublishOrderPlaced(pubCtx, evt); err != nil {
		log.Error().Err(err).Int64("order_id", placed.ID).Msg("failed to publish order placed event")
	}
}

func (s *OrderService) GetOrder(ctx context.Context, memberID, orderID int64) (*model.OrderDetail, error) {
	if err := requireMember(memberID); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	order, err := s.dbDao.GetOrderForMember(ctx, sqlc.GetOrderForMemberParams{ID: orderID, MemberID: memberID})
	if err != nil {
		return nil, storeErr(err, "order not found")
	}
	member, err := s.dbDao.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, storeErr(err, "member not found")
	}

	rows, err := s.dbDao.ListOrderLines(ctx, order.ID)
	if err != nil {
		return nil, storeErr(err, "")
	}

	lines := make([]model.OrderLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, model.OrderLine{
			OrderID:  row.OrderID,
			ISBN:     row.Isbn,
			Title:    row.Title,
			Quantity: int(row.Qty),
			Amount:   row.Amount,
		})
	}

	return &model.OrderDetail{
		Order:      convertRepoOrderToModel(order, member.Fname+" "+member.Lname),
		Lines:      lines,
		GrandTotal: model.SumOrderLines(lines),
	}, nil
}

func (s *OrderService) ListOrders(ctx context.Context, memberID int64) ([]model.Order, error) {
	if err := requireMember(memberID); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.dbDao.ListOrdersByMember(ctx, memberID)
	if err != nil {
		return nil, storeErr(err, "")
	}
	orders := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, convertRepoOrderToModel(row, ""))
	}
	return orders, nil
}

func convertRepoOrderToModel(order sqlc.Order, name string) model.Order {
	return model.Order{
		ID:        order.ID,
		MemberID:  order.MemberID,
		CreatedAt: order.CreatedAt,
		ShipTo: model.ShipTo{
			Name:    name,
			Address: order.ShipAddress,
			City:    order.ShipCity,
			Zip:     order.ShipZip,
		},
	}
}
