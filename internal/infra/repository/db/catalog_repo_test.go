package db

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db/sqlc"
	"github.com/RoyceAzure/lab/bookstore/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newDryRunRepo(t *testing.T) *CatalogRepository {
	t.Helper()
	gdb, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=bookstore dbname=bookstore sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return NewCatalogRepository(gdb)
}

func TestLikePattern(t *testing.T) {
	testCases := []struct {
		name string
		in   model.Predicate
		want string
	}{
		{name: "contains", in: model.Predicate{Column: "title", Match: model.MatchContains, Value: "Go"}, want: "%go%"},
		{name: "prefix", in: model.Predicate{Column: "author", Match: model.MatchPrefix, Value: "Knuth"}, want: "knuth%"},
		{name: "escape percent", in: model.Predicate{Column: "title", Value: "100%"}, want: `%100\%%`},
		{name: "escape underscore", in: model.Predicate{Column: "title", Value: "a_b"}, want: `%a\_b%`},
		{name: "escape backslash", in: model.Predicate{Column: "title", Value: `a\b`}, want: `%a\\b%`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, LikePattern(tc.in))
		})
	}
}

func TestCatalogFilterIsParameterized(t *testing.T) {
	repo := newDryRunRepo(t)
	injection := "x' OR '1'='1"
	q := model.CatalogQuery{
		Predicates: []model.Predicate{
			{Column: "subject", Match: model.MatchContains, Value: "Fiction"},
			{Column: "author", Match: model.MatchPrefix, Value: injection},
		},
		Page:  2,
		Limit: 5,
	}

	tx, err := repo.filtered(context.Background(), q)
	require.NoError(t, err)

	var books []model.Book
	stmt := pageOf(tx, q, &books).Statement
	sql := stmt.SQL.String()

	require.Contains(t, sql, `LOWER("subject") LIKE $1`)
	require.Contains(t, sql, `LOWER("author") LIKE $2`)
	require.Contains(t, sql, "ORDER BY isbn")
	require.NotContains(t, sql, injection)
	require.GreaterOrEqual(t, len(stmt.Vars), 2)
	require.Equal(t, "%fiction%", stmt.Vars[0])
	require.Equal(t, "x' or '1'='1%", stmt.Vars[1])
}

func TestCatalogRejectsUnknownColumn(t *testing.T) {
	repo := newDryRunRepo(t)
	_, err := repo.filtered(context.Background(), model.CatalogQuery{
		Predicates: []model.Predicate{{Column: "price; DROP TABLE books", Value: "1"}},
		Page:       1,
		Limit:      5,
	})
	require.Error(t, err)
}

func newCatalogRepo(t *testing.T) *CatalogRepository {
	t.Helper()
	requireDB(t)
	gdb, err := OpenGorm(testPool)
	require.NoError(t, err)
	return NewCatalogRepository(gdb)
}

// seedSubject 寫入 titles 數量的書, isbn 依 titles 順序遞增
func seedSubject(t *testing.T, subject string, titles []string) []string {
	t.Helper()
	base := uuid.NewString()[:8]
	isbns := make([]string, 0, len(titles))
	for i, title := range titles {
		isbn := fmt.Sprintf("%s-%02d", base, i)
		require.NoError(t, testStore.UpsertBook(context.Background(), sqlc.UpsertBookParams{
			Isbn:    isbn,
			Author:  "Paging Author",
			Title:   title,
			Price:   decimal.RequireFromString("9.90"),
			Subject: subject,
		}))
		isbns = append(isbns, isbn)
	}
	return isbns
}

func subjectQuery(subject string, page, limit int, extra ...model.Predicate) model.CatalogQuery {
	return model.CatalogQuery{
		Predicates: append([]model.Predicate{{Column: "subject", Match: model.MatchContains, Value: subject}}, extra...),
		Page:       page,
		Limit:      limit,
	}
}

func TestCatalogSearchPaging(t *testing.T) {
	repo := newCatalogRepo(t)
	ctx := context.Background()
	subject := "Paging " + uuid.NewString()[:8]
	isbns := seedSubject(t, subject, []string{"A", "B", "C", "D", "E", "F", "G"})

	var seen []string
	for pageNo := 1; pageNo <= 3; pageNo++ {
		page, err := repo.Search(ctx, subjectQuery(subject, pageNo, 3))
		require.NoError(t, err)
		require.EqualValues(t, 7, page.Total)
		require.Equal(t, 3, page.TotalPages)
		require.Equal(t, pageNo, page.Page)
		require.LessOrEqual(t, len(page.Books), page.Limit)
		for _, b := range page.Books {
			seen = append(seen, b.ISBN)
		}
	}
	require.Equal(t, isbns, seen)

	last, err := repo.Search(ctx, subjectQuery(subject, 3, 3))
	require.NoError(t, err)
	require.Len(t, last.Books, 1)

	past, err := repo.Search(ctx, subjectQuery(subject, 4, 3))
	require.NoError(t, err)
	require.EqualValues(t, 7, past.Total)
	require.Empty(t, past.Books)

	huge, err := repo.Search(ctx, subjectQuery(subject, math.MaxInt, 20))
	require.NoError(t, err)
	require.EqualValues(t, 7, huge.Total)
	require.Empty(t, huge.Books)
}

func TestCatalogSearchWildcardsAreLiteral(t *testing.T) {
	repo := newCatalogRepo(t)
	ctx := context.Background()
	subject := "Literal " + uuid.NewString()[:8]
	isbns := seedSubject(t, subject, []string{"100% Go", "1000 Go", "a_b", "axb"})

	page, err := repo.Search(ctx, subjectQuery(subject, 1, 20,
		model.Predicate{Column: "title", Match: model.MatchContains, Value: "100%"}))
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	require.Equal(t, isbns[0], page.Books[0].ISBN)

	page, err = repo.Search(ctx, subjectQuery(subject, 1, 20,
		model.Predicate{Column: "title", Match: model.MatchPrefix, Value: "A_"}))
	require.NoError(t, err)
	require.EqualValues(t, 1, page.Total)
	require.Equal(t, isbns[2], page.Books[0].ISBN)

	page, err = repo.Search(ctx, subjectQuery("no such subject "+uuid.NewString()[:8], 1, 5))
	require.NoError(t, err)
	require.Zero(t, page.Total)
	require.Zero(t, page.TotalPages)
	require.Empty(t, page.Books)
}
