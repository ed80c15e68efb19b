package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/api/dto"
	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/RoyceAzure/lab/bookstore/internal/model"
)

const maxBodyBytes = 1 << 20

// decodeJSON body 解析失敗一律回傳 ValidationCode
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Wrap(apperr.ValidationCode, "malformed request body", err)
	}
	return nil
}

func convertMemberModelToDTO(m *model.Member) dto.MemberDTO {
	return dto.MemberDTO{
		ID:        m.ID,
		FName:     m.FName,
		LName:     m.LName,
		Address:   m.Address,
		City:      m.City,
		Zip:       m.Zip,
		Phone:     m.Phone,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}

func convertBookModelToDTO(b model.Book) dto.BookDTO {
	return dto.BookDTO{
		ISBN:    b.ISBN,
		Author:  b.Author,
		Title:   b.Title,
		Price:   b.Price.StringFixed(2),
		Subject: b.Subject,
	}
}

func convertCartModelToDTO(c *model.Cart) dto.CartDTO {
	lines := make([]dto.CartLineDTO, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, dto.CartLineDTO{
			ISBN:      l.ISBN,
			Title:     l.Title,
			Author:    l.Author,
			Price:     l.Price.StringFixed(2),
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal.StringFixed(2),
		})
	}
	return dto.CartDTO{
		Lines:      lines,
		GrandTotal: c.GrandTotal.StringFixed(2),
	}
}

func convertOrderModelToDTO(o model.Order) dto.OrderDTO {
	return dto.OrderDTO{
		ID:        o.ID,
		CreatedAt: o.CreatedAt,
		ShipTo: dto.ShipToDTO{
			Name:    o.ShipTo.Name,
			Address: o.ShipTo.Address,
			City:    o.ShipTo.City,
			Zip:     o.ShipTo.Zip,
		},
	}
}

func convertOrderDetailModelToDTO(d *model.OrderDetail) dto.OrderDetailDTO {
	lines := make([]dto.OrderLineDTO, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, dto.OrderLineDTO{
			ISBN:     l.ISBN,
			Title:    l.Title,
			Quantity: l.Quantity,
			Amount:   l.Amount.StringFixed(2),
		})
	}
	return dto.OrderDetailDTO{
		OrderDTO:   convertOrderModelToDTO(d.Order),
		Lines:      lines,
		GrandTotal: d.GrandTotal.StringFixed(2),
	}
}
