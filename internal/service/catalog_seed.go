package service

import (
	"context"

	"github.com/RoyceAzure/lab/bookstore/internal/config"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/redis_repo"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db/sqlc"
	"github.com/rs/zerolog/log"
)

// SeedCatalog 以單一交易 upsert 所有書目, 成功後清掉 subject cache
func SeedCatalog(ctx context.Context, dbDao db.IStore, subjectCache redis_repo.ISubjectCache, seed *config.CatalogSeed) (int, error) {
	fns := make([]func(sqlc.Querier) error, 0, len(seed.Books))
	for _, b := range seed.Books {
		b := b
		fns = append(fns, func(q sqlc.Querier) error {
			return q.UpsertBook(ctx, sqlc.UpsertBookParams{
				Isbn:    b.ISBN,
				Author:  b.Author,
				Title:   b.Title,
				Price:   b.Price.Round(2),
				Subject: b.Subject,
			})
		})
	}

	if err := dbDao.ExecMultiTx(ctx, fns); err != nil {
		return 0, storeErr(err, "")
	}

	if subjectCache != nil {
		if err := subjectCache.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate subject cache after seeding")
		}
	}
	return len(fns), nil
}
