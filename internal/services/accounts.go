package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/cryptox"
	"github.com/dmitrijs2005/budgetkeeper/internal/kv"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/google/uuid"
)

// UsersKey is the storage key holding every registered account.
const UsersKey = "users"

// AccountService manages registered accounts.
//
// Contract:
//   - ListUsers: every stored account; absent or corrupt storage yields none.
//   - CreateUser: registers a new account under the normalized email, or
//     fails with common.ErrDuplicateEmail.
//   - Authenticate: returns the account matching email and password, or
//     common.ErrUserNotFound / common.ErrBadPassword.
//   - GetUser: looks an account up by id, or common.ErrUserNotFound.
type AccountService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, email string, password []byte, profile models.Profile) (*models.User, error)
	Authenticate(ctx context.Context, email string, password []byte) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type accountService struct {
	store  kv.Store
	hasher cryptox.Hasher
	log    logging.Logger
	now    func() time.Time
}

// NewAccountService returns an AccountService persisting to store and
// hashing new passwords with hasher.
func NewAccountService(store kv.Store, hasher cryptox.Hasher, log logging.Logger) AccountService {
	return &accountService{store: store, hasher: hasher, log: log, now: time.Now}
}

func (s *accountService) ListUsers(ctx context.Context) ([]models.User, error) {
	data, err := s.store.Get(ctx, UsersKey)
	if err != nil {
		return nil, err
	}
	return decodeList[models.User](ctx, s.log, UsersKey, data), nil
}

func (s *accountService) saveUsers(ctx context.Context, users []models.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	return s.store.Set(ctx, UsersKey, data)
}

func (s *accountService) CreateUser(ctx context.Context, email string, password []byte, profile models.Profile) (*models.User, error) {
	email = models.NormalizeEmail(email)

	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return nil, common.ErrDuplicateEmail
		}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Profile:      profile,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.saveUsers(ctx, append(users, user)); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user created", "user_id", user.ID)
	return &user, nil
}

func (s *accountService) Authenticate(ctx context.Context, email string, password []byte) (*models.User, error) {
	email = models.NormalizeEmail(email)

	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email != email {
			continue
		}
		if !cryptox.VerifyPassword(users[i].PasswordHash, password) {
			return nil, common.ErrBadPassword
		}
		return &users[i], nil
	}
	return nil, common.ErrUserNotFound
}

func (s *accountService) GetUser(ctx context.Context, id string) (*models.User, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, common.ErrUserNotFound
}
