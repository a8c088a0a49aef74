package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/auth"
	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/kv"
)

// Keys of the volatile session store.
const (
	CurrentUserKey = "currentUserId"
	DisplayNameKey = "displayName"
)

// SessionService tracks which user is logged in. It is backed by a volatile
// store so a session never outlives the process.
//
// CurrentUser is the route guard for protected commands: it fails with
// common.ErrNoSession when nobody is logged in or the token is no longer
// valid.
type SessionService interface {
	SetCurrentUser(ctx context.Context, userID string, displayName string) error
	CurrentUser(ctx context.Context) (string, error)
	DisplayName(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

type sessionService struct {
	store  kv.Store
	secret []byte
	ttl    time.Duration
}

// NewSessionService returns a SessionService signing its tokens with a fresh
// random key. A zero ttl keeps the session until Clear.
func NewSessionService(store kv.Store, ttl time.Duration) SessionService {
	return &sessionService{store: store, secret: common.GenerateRandByteArray(32), ttl: ttl}
}

func (s *sessionService) SetCurrentUser(ctx context.Context, userID string, displayName string) error {
	token, err := auth.GenerateToken(userID, s.secret, s.ttl)
	if err != nil {
		return fmt.Errorf("session token: %w", err)
	}
	if err := s.store.Set(ctx, CurrentUserKey, []byte(token)); err != nil {
		return err
	}
	return s.store.Set(ctx, DisplayNameKey, []byte(displayName))
}

// CurrentUser returns the logged-in user id. A stale or tampered token
// clears the session.
func (s *sessionService) CurrentUser(ctx context.Context) (string, error) {
	token, err := s.store.Get(ctx, CurrentUserKey)
	if err != nil {
		return "", err
	}
	if len(token) == 0 {
		return "", common.ErrNoSession
	}

	userID, err := auth.GetUserIDFromToken(string(token), s.secret)
	if err != nil {
		if cerr := s.Clear(ctx); cerr != nil {
			return "", cerr
		}
		return "", fmt.Errorf("%w: %w", common.ErrNoSession, err)
	}
	return userID, nil
}

func (s *sessionService) DisplayName(ctx context.Context) (string, error) {
	name, err := s.store.Get(ctx, DisplayNameKey)
	if err != nil {
		return "", err
	}
	return string(name), nil
}

func (s *sessionService) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, CurrentUserKey, DisplayNameKey)
}
