package dto

import "time"

type ShipToDTO struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

type OrderLineDTO struct {
	ISBN     string `json:"isbn"`
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Amount   string `json:"amount"`
}

type OrderDTO struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ShipTo    ShipToDTO `json:"ship_to"`
}

type OrderDetailDTO struct {
	OrderDTO
	Lines      []OrderLineDTO `json:"lines"`
	GrandTotal string         `json:"grand_total"`
}

// PlacedOrderDTO 結帳確認頁
type PlacedOrderDTO struct {
	OrderDetailDTO
	ShippingEstimate string `json:"shipping_estimate"`
}
