package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/fieldsafe-service/internal/auth"
	"github.com/spec-kit/fieldsafe-service/internal/domain"
	"github.com/spec-kit/fieldsafe-service/internal/repository"
)

// SessionService re-verifies a token end-to-end and refreshes volatile
// claims from the directory before returning the principal. An out-of-band
// locale change becomes visible on the next revalidation without re-login.
type SessionService struct {
	codec    *auth.Codec
	staff    repository.StaffRepository
	workers  repository.FieldworkerRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewSessionService builds the service. cache may be nil; caching is an
// optimization, never a correctness requirement.
func NewSessionService(codec *auth.Codec, staff repository.StaffRepository, workers repository.FieldworkerRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *SessionService {
	return &SessionService{
		codec:    codec,
		staff:    staff,
		workers:  workers,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Revalidate decodes the token and overlays the current locale from the
// directory. A failed directory lookup falls back to the token-embedded
// value rather than failing the revalidation.
func (s *SessionService) Revalidate(ctx context.Context, token string) (*domain.Principal, error) {
	principal, err := s.codec.Decode(token)
	if err != nil {
		return nil, err
	}

	if locale, ok := s.currentLocale(ctx, principal); ok && locale != "" {
		principal.Locale = locale
	}
	return principal, nil
}

func (s *SessionService) currentLocale(ctx context.Context, principal *domain.Principal) (string, bool) {
	cacheKey := "locale:" + string(principal.Kind) + ":" + principal.ID

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			return cached, true
		}
	}

	locale, err := s.lookupLocale(ctx, principal)
	if err != nil {
		s.logger.Debug("locale lookup failed; using token value",
			zap.String("principal_id", principal.ID),
			zap.Error(err))
		return "", false
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, cacheKey, locale, s.cacheTTL).Err(); err != nil {
			s.logger.Debug("locale cache write failed", zap.Error(err))
		}
	}
	return locale, true
}

func (s *SessionService) lookupLocale(ctx context.Context, principal *domain.Principal) (string, error) {
	switch principal.Kind {
	case domain.KindStaff:
		staff, err := s.staff.GetByID(ctx, principal.ID)
		if err != nil {
			return "", err
		}
		return staff.Locale, nil
	default:
		worker, err := s.workers.GetByID(ctx, principal.ID)
		if err != nil {
			return "", err
		}
		return worker.Locale, nil
	}
}
