package dto

import "encoding/json"

// AddCartItemDTO quantity 保留原始 json, 由 service 驗證是否為整數
type AddCartItemDTO struct {
	ISBN     string          `json:"isbn"`
	Quantity json.RawMessage `json:"quantity" swaggertype:"integer" example:"3"`
}

type AddCartItemResponse struct {
	ISBN     string `json:"isbn"`
	Quantity int    `json:"quantity"`
}

type CartLineDTO struct {
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type CartDTO struct {
	Lines      []CartLineDTO `json:"lines"`
	GrandTotal string        `json:"grand_total"`
}
