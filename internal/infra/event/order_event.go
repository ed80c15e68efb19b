package event

import (
	"time"

	"github.com/shopspring/decimal"
)

const OrderPlacedType = "order.placed"

type OrderPlacedLine struct {
	ISBN     string          `json:"isbn"`
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

type OrderPlacedEvent struct {
	Type       string            `json:"type"`
	OrderID    int64             `json:"order_id"`
	MemberID   int64             `json:"member_id"`
	CreatedAt  time.Time         `json:"created_at"`
	Lines      []OrderPlacedLine `json:"lines"`
	GrandTotal decimal.Decimal   `json:"grand_total"`
}
