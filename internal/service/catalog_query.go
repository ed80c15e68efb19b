package service

import (
	"strings"

	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/RoyceAzure/lab/bookstore/internal/constants"
	"github.com/RoyceAzure/lab/bookstore/internal/model"
)

// SearchInput 使用者送出的原始查詢參數
type SearchInput struct {
	Subject      string
	Author       string
	Title        string
	Page         string
	ItemsPerPage string
}

// CatalogQueryBuilder 逐步組出 CatalogQuery, 所有條件皆以參數綁定
type CatalogQueryBuilder struct {
	predicates []model.Predicate
	page       int
	limit      int
}

func NewCatalogQueryBuilder() *CatalogQueryBuilder {
	return &CatalogQueryBuilder{page: constants.DefaultPage, limit: constants.DefaultItemsPerPage}
}

func (b *CatalogQueryBuilder) where(column string, match model.MatchKind, value string) *CatalogQueryBuilder {
	value = strings.TrimSpace(value)
	if value == "" {
		return b
	}
	b.predicates = append(b.predicates, model.Predicate{Column: column, Match: match, Value: value})
	return b
}

func (b *CatalogQueryBuilder) SubjectContains(subject string) *CatalogQueryBuilder {
	return b.where("subject", model.MatchContains, subject)
}

func (b *CatalogQueryBuilder) AuthorStartsWith(author string) *CatalogQueryBuilder {
	return b.where("author", model.MatchPrefix, author)
}

func (b *CatalogQueryBuilder) TitleContains(title string) *CatalogQueryBuilder {
	return b.where("title", model.MatchContains, title)
}

func (b *CatalogQueryBuilder) Paginate(page, itemsPerPage int) *CatalogQueryBuilder {
	if page < 1 {
		page = 1
	}
	b.page = page
	b.limit = ClampItemsPerPage(itemsPerPage)
	return b
}

func (b *CatalogQueryBuilder) Build() model.CatalogQuery {
	predicates := make([]model.Predicate, len(b.predicates))
	copy(predicates, b.predicates)
	return model.CatalogQuery{
		Predicates: predicates,
		Page:       b.page,
		Limit:      b.limit,
	}
}

// BuildCatalogQuery 驗證輸入並組出查詢
//
// 錯誤:
//   - apperr.ValidationCode: subject 未填, 或 page 不是正整數
func BuildCatalogQuery(in SearchInput) (model.CatalogQuery, error) {
	fields := apperr.FieldErrors{}
	if strings.TrimSpace(in.Subject) == "" {
		fields.Add("subject", "subject is required")
	}

	page, pageErr := ParsePage(in.Page)
	if pageErr != nil {
		fields.Add("page", "page must be a positive integer")
	}
	if err := fields.Err(); err != nil {
		return model.CatalogQuery{}, err
	}

	return NewCatalogQueryBuilder().
		SubjectContains(in.Subject).
		AuthorStartsWith(in.Author).
		TitleContains(in.Title).
		Paginate(page, ParseItemsPerPage(in.ItemsPerPage)).
		Build(), nil
}
