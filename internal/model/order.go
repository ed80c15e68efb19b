package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShipTo struct {
	Name    string
	Address string
	City    string
	Zip     string
}

type Order struct {
	ID        int64
	MemberID  int64
	CreatedAt time.Time
	ShipTo    ShipTo
}

// OrderLine 下單當下的價格快照, 建立後不再變動
type OrderLine struct {
	OrderID  int64
	ISBN     string
	Title    string
	Quantity int
	Amount   decimal.Decimal
}

type OrderDetail struct {
	Order
	Lines      []OrderLine
	GrandTotal decimal.Decimal
}

// PlacedOrder 結帳完成後回傳給呼叫端的確認資料
type PlacedOrder struct {
	OrderDetail
	ShippingEstimate string
}

func SumOrderLines(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
	}
	return total.Round(2)
}
