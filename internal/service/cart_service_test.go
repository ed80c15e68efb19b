package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T) (*fakeStore, ICartService, int64) {
	t.Helper()
	store := newFakeStore()
	store.addBook("0131103628", "The C Programming Language", "Kernighan", "10.00", "Programming")
	store.addBook("0201633612", "Design Patterns", "Gamma", "5.50", "Programming")
	memberID := store.addMember("Ada", "Lovelace")
	return store, NewCartService(store, time.Second), memberID
}

func TestCartAddItemMerges(t *testing.T) {
	store, svc, memberID := newCartFixture(t)
	ctx := context.Background()

	qty, err := svc.AddItem(ctx, memberID, "0131103628", 3)
	require.NoError(t, err)
	require.Equal(t, 3, qty)

	qty, err = svc.AddItem(ctx, memberID, "0131103628", 2)
	require.NoError(t, err)
	require.Equal(t, 5, qty)
	require.Equal(t, int32(5), store.cartQty(memberID, "0131103628"))

	cart, err := svc.ListItems(ctx, memberID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	require.Equal(t, "50", cart.GrandTotal.String())
}

func TestCartAddItemConcurrent(t *testing.T) {
	store, svc, memberID := newCartFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(context.Background(), memberID, "0201633612", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(20), store.cartQty(memberID, "0201633612"))
}

func TestCartAddItemValidation(t *testing.T) {
	_, svc, memberID := newCartFixture(t)
	ctx := context.Background()

	for _, qty := range []int{0, -1, 101} {
		_, err := svc.AddItem(ctx, memberID, "0131103628", qty)
		require.True(t, apperr.Is(err, apperr.ValidationCode), "qty %d", qty)
	}

	_, err := svc.AddItem(ctx, memberID, "  ", 1)
	require.True(t, apperr.Is(err, apperr.ValidationCode))

	_, err = svc.AddItem(ctx, 0, "0131103628", 1)
	require.True(t, apperr.Is(err, apperr.UnauthenticatedCode))
}

func TestCartAddItemUnknownBook(t *testing.T) {
	_, svc, memberID := newCartFixture(t)

	_, err := svc.AddItem(context.Background(), memberID, "9999999999", 1)
	require.True(t, apperr.Is(err, apperr.NotFoundCode))

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "book not found", appErr.Msg)
}

func TestCartAddItemTransient(t *testing.T) {
	store, svc, memberID := newCartFixture(t)
	store.failOn["AddCartItem"] = &pgconn.PgError{Code: "40P01"}

	_, err := svc.AddItem(context.Background(), memberID, "0131103628", 1)
	require.True(t, apperr.IsRetryable(err))
}

func TestCartListItemsEmpty(t *testing.T) {
	_, svc, memberID := newCartFixture(t)

	cart, err := svc.ListItems(context.Background(), memberID)
	require.NoError(t, err)
	require.NotNil(t, cart.Lines)
	require.Empty(t, cart.Lines)
	require.True(t, cart.GrandTotal.IsZero())
}

func TestCartListItemsTotals(t *testing.T) {
	_, svc, memberID := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, memberID, "0131103628", 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, memberID, "0201633612", 1)
	require.NoError(t, err)

	cart, err := svc.ListItems(ctx, memberID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)
	require.Equal(t, "20", cart.Lines[0].LineTotal.String())
	require.Equal(t, "5.5", cart.Lines[1].LineTotal.String())
	require.Equal(t, "25.5", cart.GrandTotal.String())
}

func TestCartClear(t *testing.T) {
	store, svc, memberID := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, memberID, "0131103628", 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, memberID))
	require.NoError(t, svc.Clear(ctx, memberID))

	cart, err := svc.ListItems(ctx, memberID)
	require.NoError(t, err)
	require.Empty(t, cart.Lines)

	store.failOn["ClearCart"] = errors.New("boom")
	err = svc.Clear(ctx, memberID)
	require.True(t, apperr.Is(err, apperr.InternalCode))
}
