package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/redis_repo"
)

type ISessionService interface {
	Create(ctx context.Context, memberID int64) (string, error)
	Resolve(ctx context.Context, sessionID string) (int64, error)
	Destroy(ctx context.Context, sessionID string) error
	TTL() time.Duration
}

type SessionService struct {
	repo    redis_repo.ISessionRepo
	ttl     time.Duration
	timeout time.Duration
}

var _ ISessionService = (*SessionService)(nil)

func NewSessionService(repo redis_repo.ISessionRepo, ttl, timeout time.Duration) ISessionService {
	return &SessionService{
		repo:    repo,
		ttl:     ttl,
		timeout: timeout,
	}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func (s *SessionService) Create(ctx context.Context, memberID int64) (string, error) {
	if err := requireMember(memberID); err != nil {
		return "", err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	sessionID, err := s.repo.Create(ctx, memberID, s.ttl)
	if err != nil {
		return "", apperr.Transient("session store unavailable", err)
	}
	return sessionID, nil
}

// Resolve session 不存在或過期回傳 UnauthenticatedCode
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (int64, error) {
	if sessionID == "" {
		return 0, apperr.Unauthenticated("login required")
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	memberID, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, redis_repo.ErrSessionNotFound) {
			return 0, apperr.Wrap(apperr.UnauthenticatedCode, "session expired", err)
		}
		return 0, apperr.Transient("session store unavailable", err)
	}
	return memberID, nil
}

func (s *SessionService) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return apperr.Transient("session store unavailable", err)
	}
	return nil
}
