package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db/sqlc"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func createRandomMember(t *testing.T) sqlc.Member {
	t.Helper()
	member, err := testStore.CreateMember(context.Background(), sqlc.CreateMemberParams{
		Fname:        "Ada",
		Lname:        "Lovelace",
		Address:      "1 Analytical St",
		City:         "London",
		Zip:          "123 45",
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	require.NotZero(t, member.ID)
	return member
}

func createRandomBook(t *testing.T, price string) sqlc.Book {
	t.Helper()
	book := sqlc.UpsertBookParams{
		Isbn:    uuid.NewString()[:13],
		Author:  "Test Author",
		Title:   "Test Title",
		Price:   decimal.RequireFromString(price),
		Subject: "Testing",
	}
	require.NoError(t, testStore.UpsertBook(context.Background(), book))
	got, err := testStore.GetBook(context.Background(), book.Isbn)
	require.NoError(t, err)
	return got
}

func TestAddCartItemMergesQuantity(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	member := createRandomMember(t)
	book := createRandomBook(t, "10.00")

	qty, err := testStore.AddCartItem(ctx, sqlc.AddCartItemParams{MemberID: member.ID, Isbn: book.Isbn, Qty: 3})
	require.NoError(t, err)
	require.EqualValues(t, 3, qty)

	qty, err = testStore.AddCartItem(ctx, sqlc.AddCartItemParams{MemberID: member.ID, Isbn: book.Isbn, Qty: 2})
	require.NoError(t, err)
	require.EqualValues(t, 5, qty)

	lines, err := testStore.ListCartLines(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.EqualValues(t, 5, lines[0].Qty)
}

func TestAddCartItemConcurrent(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	member := createRandomMember(t)
	book := createRandomBook(t, "1.00")

	const n = 10
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := testStore.AddCartItem(ctx, sqlc.AddCartItemParams{MemberID: member.ID, Isbn: book.Isbn, Qty: 1})
			return err
		})
	}
	require.NoError(t, g.Wait())

	lines, err := testStore.ListCartLines(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.EqualValues(t, n, lines[0].Qty)
}

func TestClearCartIdempotent(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	member := createRandomMember(t)
	book := createRandomBook(t, "2.50")

	_, err := testStore.AddCartItem(ctx, sqlc.AddCartItemParams{MemberID: member.ID, Isbn: book.Isbn, Qty: 1})
	require.NoError(t, err)

	n, err := testStore.ClearCart(ctx, member.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = testStore.ClearCart(ctx, member.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	lines, err := testStore.ListCartLines(ctx, member.ID)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestExecTxRollback(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	member := createRandomMember(t)
	book := createRandomBook(t, "4.00")

	_, err := testStore.AddCartItem(ctx, sqlc.AddCartItemParams{MemberID: member.ID, Isbn: book.Isbn, Qty: 2})
	require.NoError(t, err)

	var orderID int64
	boom := errors.New("boom")
	err = testStore.ExecTx(ctx, func(q sqlc.Querier) error {
		order, err := q.CreateOrder(ctx, sqlc.CreateOrderParams{
			MemberID:    member.ID,
			CreatedAt:   time.Now().UTC(),
			ShipAddress: member.Address,
			ShipCity:    member.City,
			ShipZip:     member.Zip,
		})
		if err != nil {
			return err
		}
		orderID = order.ID
		if _, err := q.ClearCart(ctx, member.ID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = testStore.GetOrderForMember(ctx, sqlc.GetOrderForMemberParams{ID: orderID, MemberID: member.ID})
	require.ErrorIs(t, err, pgx.ErrNoRows)

	lines, err := testStore.ListCartLines(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
}

func TestOrderLineSnapshotsPrice(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	member := createRandomMember(t)
	book := createRandomBook(t, "10.00")

	var order sqlc.Order
	err := testStore.ExecTx(ctx, func(q sqlc.Querier) error {
		var err error
		order, err = q.CreateOrder(ctx, sqlc.CreateOrderParams{
			MemberID:    member.ID,
			CreatedAt:   time.Now().UTC(),
			ShipAddress: member.Address,
			ShipCity:    member.City,
			ShipZip:     member.Zip,
		})
		if err != nil {
			return err
		}
		_, err = q.CreateOrderLine(ctx, sqlc.CreateOrderLineParams{
			OrderID: order.ID,
			Isbn:    book.Isbn,
			Qty:     2,
			Amount:  decimal.RequireFromString("20.00"),
		})
		return err
	})
	require.NoError(t, err)

	// 調價不影響歷史訂單
	require.NoError(t, testStore.UpsertBook(ctx, sqlc.UpsertBookParams{
		Isbn: book.Isbn, Author: book.Author, Title: book.Title, Subject: book.Subject,
		Price: decimal.RequireFromString("99.99"),
	}))

	lines, err := testStore.ListOrderLines(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.True(t, decimal.RequireFromString("20.00").Equal(lines[0].Amount))
}
