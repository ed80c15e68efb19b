package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/infra/redis_repo"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/bookstore/internal/model"
	"github.com/rs/zerolog/log"
)

//go:generate mockgen -destination=mock/mock_service.go -package=mock_service github.com/RoyceAzure/lab/bookstore/internal/service ICatalogService,ICartService,IOrderService,IMemberService,ISessionService
type ICatalogService interface {
	ListSubjects(ctx context.Context) ([]string, error)
	Search(ctx context.Context, in SearchInput) (*model.CatalogPage, error)
}

type CatalogService struct {
	dbDao        db.IStore
	catalogRepo  db.ICatalogRepository
	subjectCache redis_repo.ISubjectCache
	cacheTTL     time.Duration
	timeout      time.Duration
}

var _ ICatalogService = (*CatalogService)(nil)

// NewCatalogService subjectCache 可為 nil, 此時每次都查 DB
func NewCatalogService(dbDao db.IStore, catalogRepo db.ICatalogRepository, subjectCache redis_repo.ISubjectCache, cacheTTL, timeout time.Duration) ICatalogService {
	return &CatalogService{
		dbDao:        dbDao,
		catalogRepo:  catalogRepo,
		subjectCache: subjectCache,
		cacheTTL:     cacheTTL,
		timeout:      timeout,
	}
}

// ListSubjects cache aside, cache 錯誤只記 log 不影響回應
func (s *CatalogService) ListSubjects(ctx context.Context) ([]string, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if s.subjectCache != nil {
		subjects, err := s.subjectCache.Get(ctx)
		if err == nil {
			return subjects, nil
		}
		if !errors.Is(err, redis_repo.ErrCacheMiss) {
			log.Warn().Err(err).Msg("failed to read subject cache")
		}
	}

	subjects, err := s.dbDao.ListSubjects(ctx)
	if err != nil {
		return nil, storeErr(err, "")
	}
	if subjects == nil {
		subjects = []string{}
	}

	if s.subjectCache != nil {
		if err := s.subjectCache.Set(ctx, subjects, s.cacheTTL); err != nil {
			log.Warn().Err(err).Msg("failed to fill subject cache")
		}
	}
	return subjects, nil
}

func (s *CatalogService) Search(ctx context.Context, in SearchInput) (*model.CatalogPage, error) {
	q, err := BuildCatalogQuery(in)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	page, err := s.catalogRepo.Search(ctx, q)
	if err != nil {
		return nil, storeErr(err, "")
	}
	return &page, nil
}
