package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/RoyceAzure/lab/bookstore/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ICatalogRepository interface {
	Search(ctx context.Context, q model.CatalogQuery) (model.CatalogPage, error)
}

// CatalogRepository 書目查詢的 read model, 以 gorm 組動態條件
type CatalogRepository struct {
	db *gorm.DB
}

var _ ICatalogRepository = (*CatalogRepository)(nil)

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// 只允許以下欄位出現在查詢條件中
var searchableColumns = map[string]struct{}{
	"subject": {},
	"author":  {},
	"title":   {},
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern 將使用者輸入轉成 LIKE pattern, 輸入中的萬用字元一律當成字面值
func LikePattern(p model.Predicate) string {
	v := likeEscaper.Replace(strings.ToLower(p.Value))
	if p.Match == model.MatchPrefix {
		return v + "%"
	}
	return "%" + v + "%"
}

func (r *CatalogRepository) filtered(ctx context.Context, q model.CatalogQuery) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Model(&model.Book{})
	for _, p := range q.Predicates {
		if _, ok := searchableColumns[p.Column]; !ok {
			return nil, fmt.Errorf("catalog column %q is not searchable", p.Column)
		}
		tx = tx.Where(clause.Expr{
			SQL:  `LOWER(?) LIKE ? ESCAPE '\'`,
			Vars: []interface{}{clause.Column{Name: p.Column}, LikePattern(p)},
		})
	}
	return tx.Session(&gorm.Session{}), nil
}

// pageOf 呼叫端須先確認 offset 小於 total
func pageOf(tx *gorm.DB, q model.CatalogQuery, dest *[]model.Book) *gorm.DB {
	return tx.Order("isbn").Offset(int(q.Offset())).Limit(q.Limit).Find(dest)
}

func (r *CatalogRepository) Search(ctx context.Context, q model.CatalogQuery) (model.CatalogPage, error) {
	page := model.CatalogPage{
		Books: []model.Book{},
		Page:  q.Page,
		Limit: q.Limit,
	}

	tx, err := r.filtered(ctx, q)
	if err != nil {
		return page, err
	}

	if err := tx.Count(&page.Total).Error; err != nil {
		return page, err
	}
	page.TotalPages = model.TotalPagesFor(page.Total, q.Limit)

	if page.Total == 0 || q.Offset() >= page.Total {
		return page, nil
	}

	if err := pageOf(tx, q, &page.Books).Error; err != nil {
		return page, err
	}
	return page, nil
}
