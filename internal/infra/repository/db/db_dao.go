package db

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db/sqlc"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IStore interface {
	sqlc.Querier
	ExecTx(ctx context.Context, fn func(sqlc.Querier) error) error
	ExecMultiTx(ctx context.Context, fns []func(sqlc.Querier) error) error
	Ping(ctx context.Context) error
}

// Store 管理連線池與交易
type Store struct {
	*sqlc.Queries
	db *pgxpool.Pool
}

var _ IStore = (*Store)(nil)

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{
		db:      db,
		Queries: sqlc.New(db),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

var txOptions = pgx.TxOptions{
	IsoLevel:       pgx.ReadCommitted,
	AccessMode:     pgx.ReadWrite,
	DeferrableMode: pgx.NotDeferrable,
}

// ExecTx 在單一交易中執行 fn, fn 回傳錯誤時整筆 rollback
func (s *Store) ExecTx(ctx context.Context, fn func(sqlc.Querier) error) error {
	tx, err := s.db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(sqlc.New(tx))
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %w, rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

// ExecMultiTx 多個 fn 共用同一個交易
func (s *Store) ExecMultiTx(ctx context.Context, fns []func(sqlc.Querier) error) error {
	return s.ExecTx(ctx, func(q sqlc.Querier) error {
		for _, fn := range fns {
			if err := fn(q); err != nil {
				return err
			}
		}
		return nil
	})
}
