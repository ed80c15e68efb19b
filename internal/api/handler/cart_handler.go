package handler

import (
	"net/http"
	"strings"

	"github.com/RoyceAzure/lab/bookstore/internal/api/dto"
	"github.com/RoyceAzure/lab/bookstore/internal/api/response"
	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
	"github.com/RoyceAzure/lab/bookstore/internal/util"
)

type CartHandler struct {
	cartService  service.ICartService
	orderService service.IOrderService
}

func NewCartHandler(cartService service.ICartService, orderService service.IOrderService) *CartHandler {
	if cartService == nil || orderService == nil {
		panic("cartService and orderService cannot be nil")
	}
	return &CartHandler{
		cartService:  cartService,
		orderService: orderService,
	}
}

// @Summary list cart
// @Tags cart
// @Produce json
// @Success 200 {object} response.Response{data=dto.CartDTO} "success"
// @Failure 401 {object} response.ResponseError "UnauthenticatedCode"
// @Router /cart [get]
func (c *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	cart, err := c.cartService.ListItems(r.Context(), util.GetMemberID(r.Context()))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, convertCartModelToDTO(cart))
}

// @Summary add book to cart
// @Description quantity 會累加到既有的明細
// @Tags cart
// @Accept json
// @Produce json
// @Param item body dto.AddCartItemDTO true "isbn and quantity 1..100"
// @Success 200 {object} response.Response{data=dto.AddCartItemResponse} "success"
// @Failure 400 {object} response.ResponseError "ValidationCode"
// @Failure 401 {object} response.ResponseError "UnauthenticatedCode"
// @Failure 404 {object} response.ResponseError "NotFoundCode"
// @Router /cart/items [post]
func (c *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var in dto.AddCartItemDTO
	if err := decodeJSON(w, r, &in); err != nil {
		response.WriteError(w, r, err)
		return
	}

	// 接受 3 或 "3", 其餘交給 ParseQuantity 判斷
	fields := apperr.FieldErrors{}
	if strings.TrimSpace(in.ISBN) == "" {
		fields.Add("isbn", "isbn is required")
	}
	qty, err := service.ParseQuantity(strings.Trim(string(in.Quantity), `"`))
	if err != nil {
		fields.Add("quantity", "quantity must be an integer between 1 and 100")
	}
	if err := fields.Err(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	total, err := c.cartService.AddItem(r.Context(), util.GetMemberID(r.Context()), in.ISBN, qty)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, dto.AddCartItemResponse{
		ISBN:     strings.TrimSpace(in.ISBN),
		Quantity: total,
	})
}

// @Summary clear cart
// @Tags cart
// @Produce json
// @Success 200 {object} response.Response "success"
// @Failure 401 {object} response.ResponseError "UnauthenticatedCode"
// @Router /cart [delete]
func (c *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := c.cartService.Clear(r.Context(), util.GetMemberID(r.Context())); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, nil)
}

// @Summary checkout
// @Description 將購物車轉成訂單, 成功後購物車清空
// @Tags cart
// @Produce json
// @Success 201 {object} response.Response{data=dto.PlacedOrderDTO} "order placed"
// @Failure 400 {object} response.ResponseError "cart is empty"
// @Failure 401 {object} response.ResponseError "UnauthenticatedCode"
// @Failure 503 {object} response.ResponseError "retryable"
// @Router /cart/checkout [post]
func (c *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	placed, err := c.orderService.PlaceOrder(r.Context(), util.GetMemberID(r.Context()))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.CreatedJSON(w, dto.PlacedOrderDTO{
		OrderDetailDTO:   convertOrderDetailModelToDTO(&placed.OrderDetail),
		ShippingEstimate: placed.ShippingEstimate,
	})
}
