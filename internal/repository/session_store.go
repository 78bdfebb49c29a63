package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"RiskView/internal/domain/models"
	domrepo "RiskView/internal/domain/repository"
	"RiskView/pkg/cache"
)

const sessionPrefix = "view"

// SessionStore keeps view snapshots and their generation counters in the cache.
type SessionStore struct {
	cache cache.Service
	ttl   time.Duration
}

var (
	_ domrepo.SnapshotStore = (*SessionStore)(nil)
	_ domrepo.Generations   = (*SessionStore)(nil)
)

// NewSessionStore stores entries for ttl after their last write.
func NewSessionStore(c cache.Service, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: c, ttl: ttl}
}

func snapshotKey(id string) string {
	return cache.GenerateKey(sessionPrefix, id)
}

func generationKey(id string) string {
	return cache.GenerateKeyWithParams(sessionPrefix, id, "gen")
}

// Load returns nil, nil for an unknown or expired view.
func (s *SessionStore) Load(ctx context.Context, id string) (*models.ViewSnapshot, error) {
	var snap models.ViewSnapshot
	if err := s.cache.Get(ctx, snapshotKey(id), &snap); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return &snap, nil
}

func (s *SessionStore) Save(ctx context.Context, snap *models.ViewSnapshot) error {
	if err := s.cache.Set(ctx, snapshotKey(snap.ID), snap, s.ttl); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Next increments the view's generation and refreshes its expiry.
func (s *SessionStore) Next(ctx context.Context, id string) (int64, error) {
	key := generationKey(id)
	gen, err := s.cache.Increment(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("next generation: %w", err)
	}
	if _, err := s.cache.Expire(ctx, key, s.ttl); err != nil {
		return 0, fmt.Errorf("expire generation: %w", err)
	}
	return gen, nil
}

// Current returns 0 for a view that never loaded.
func (s *SessionStore) Current(ctx context.Context, id string) (int64, error) {
	var raw string
	if err := s.cache.Get(ctx, generationKey(id), &raw); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return 0, nil
		}
		return 0, fmt.Errorf("current generation: %w", err)
	}
	gen, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("current generation: %w", err)
	}
	return gen, nil
}
