package api

import "github.com/RoyceAzure/lab/bookstore/internal/api/handler"

type Server struct {
	AuthHandler   *handler.AuthHandler
	BookHandler   *handler.BookHandler
	CartHandler   *handler.CartHandler
	OrderHandler  *handler.OrderHandler
	HealthHandler *handler.HealthHandler
}

func NewServer(
	authHandler *handler.AuthHandler,
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	return &Server{
		AuthHandler:   authHandler,
		BookHandler:   bookHandler,
		CartHandler:   cartHandler,
		OrderHandler:  orderHandler,
		HealthHandler: healthHandler,
	}
}
