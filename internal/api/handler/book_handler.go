package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/api/dto"
	"github.com/RoyceAzure/lab/bookstore/internal/api/response"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
)

type BookHandler struct {
	catalogService service.ICatalogService
}

func NewBookHandler(catalogService service.ICatalogService) *BookHandler {
	if catalogService == nil {
		panic("catalogService cannot be nil")
	}
	return &BookHandler{
		catalogService: catalogService,
	}
}

// @Summary list subjects
// @Tags books
// @Produce json
// @Success 200 {object} response.Response{data=[]string} "success"
// @Router /books/subjects [get]
func (b *BookHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := b.catalogService.ListSubjects(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, subjects)
}

// @Summary search books
// @Tags books
// @Produce json
// @Param subject query string true "subject, substring match"
// @Param author query string false "author prefix"
// @Param title query string false "title substring"
// @Param page query int false "page, default 1"
// @Param itemsPerPage query int false "items per page, 1..20, default 5"
// @Success 200 {object} response.Response{data=dto.BookPageDTO} "success"
// @Failure 400 {object} response.ResponseError "ValidationCode"
// @Router /books [get]
func (b *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := b.catalogService.Search(r.Context(), service.SearchInput{
		Subject:      q.Get("subject"),
		Author:       q.Get("author"),
		Title:        q.Get("title"),
		Page:         q.Get("page"),
		ItemsPerPage: q.Get("itemsPerPage"),
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	books := make([]dto.BookDTO, 0, len(page.Books))
	for _, book := range page.Books {
		books = append(books, convertBookModelToDTO(book))
	}
	response.SuccessJSON(w, dto.BookPageDTO{
		Books:        books,
		Total:        page.Total,
		Page:         page.Page,
		ItemsPerPage: page.Limit,
		TotalPages:   page.TotalPages,
	})
}
