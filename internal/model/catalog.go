package model

import "math"

// MatchKind 決定 LIKE pattern 的組法
type MatchKind int

const (
	MatchContains MatchKind = iota
	MatchPrefix
)

// Predicate 為單一欄位的不分大小寫比對條件, Value 為使用者原始輸入
type Predicate struct {
	Column string
	Match  MatchKind
	Value  string
}

type CatalogQuery struct {
	Predicates []Predicate
	Page       int
	Limit      int
}

// Offset (page-1)*limit, 溢位時回傳 math.MaxInt64, 一律落在最後一頁之後
func (q CatalogQuery) Offset() int64 {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}
	skip, limit := int64(q.Page-1), int64(q.Limit)
	if skip > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return skip * limit
}

type CatalogPage struct {
	Books      []Book
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TotalPagesFor ceil(total/limit)
func TotalPagesFor(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}
