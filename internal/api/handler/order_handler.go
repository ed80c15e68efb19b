package handler

import (
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/bookstore/internal/api/dto"
	"github.com/RoyceAzure/lab/bookstore/internal/api/response"
	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
	"github.com/RoyceAzure/lab/bookstore/internal/util"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{
		orderService: orderService,
	}
}

// @Summary list orders
// @Tags orders
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.OrderDTO} "success"
// @Failure 401 {object} response.ResponseError "UnauthenticatedCode"
// @Router /orders [get]
func (o *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := o.orderService.ListOrders(r.Context(), util.GetMemberID(r.Context()))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	res := make([]dto.OrderDTO, 0, len(orders))
	for _, order := range orders {
		res = append(res, convertOrderModelToDTO(order))
	}
	response.SuccessJSON(w, res)
}

// @Summary get order
// @Tags orders
// @Produce json
// @Param id path int true "order id"
// @Success 200 {object} response.Response{data=dto.OrderDetailDTO} "success"
// @Failure 401 {object} response.ResponseError "UnauthenticatedCode"
// @Failure 404 {object} response.ResponseError "NotFoundCode"
// @Router /orders/{id} [get]
func (o *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || orderID <= 0 {
		response.WriteError(w, r, apperr.Invalid("id", "order id must be a positive integer"))
		return
	}

	detail, err := o.orderService.GetOrder(r.Context(), util.GetMemberID(r.Context()), orderID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, convertOrderDetailModelToDTO(detail))
}
