package services

import (
	"context"

	"github.com/dmitrijs2005/budgetkeeper/internal/kv"
)

// AuthModeKey stores the auth form offered first on start.
const AuthModeKey = "authMode"

// AuthMode names one of the two auth forms.
type AuthMode string

const (
	AuthModeLogin  AuthMode = "login"
	AuthModeSignup AuthMode = "signup"
)

// Other returns the opposite mode.
func (m AuthMode) Other() AuthMode {
	if m == AuthModeSignup {
		return AuthModeLogin
	}
	return AuthModeSignup
}

// PrefsService keeps small UI preferences in persistent storage.
type PrefsService interface {
	AuthMode(ctx context.Context) (AuthMode, error)
	SetAuthMode(ctx context.Context, mode AuthMode) error
	ToggleAuthMode(ctx context.Context) (AuthMode, error)
}

type prefsService struct {
	store kv.Store
}

func NewPrefsService(store kv.Store) PrefsService {
	return &prefsService{store: store}
}

// AuthMode returns the remembered mode, defaulting to login for missing or
// unknown values.
func (p *prefsService) AuthMode(ctx context.Context) (AuthMode, error) {
	v, err := p.store.Get(ctx, AuthModeKey)
	if err != nil {
		return "", err
	}
	if AuthMode(v) == AuthModeSignup {
		return AuthModeSignup, nil
	}
	return AuthModeLogin, nil
}

func (p *prefsService) SetAuthMode(ctx context.Context, mode AuthMode) error {
	return p.store.Set(ctx, AuthModeKey, []byte(mode))
}

func (p *prefsService) ToggleAuthMode(ctx context.Context) (AuthMode, error) {
	cur, err := p.AuthMode(ctx)
	if err != nil {
		return "", err
	}
	next := cur.Other()
	if err := p.SetAuthMode(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}
