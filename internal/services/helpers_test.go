package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/budgetkeeper/internal/cryptox"
	"github.com/dmitrijs2005/budgetkeeper/internal/kv"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/stretchr/testify/require"
)

var errStorage = errors.New("disk on fire")

// failingStore fails every read and write.
type failingStore struct {
	kv.Store
}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errStorage }
func (failingStore) Set(context.Context, string, []byte) error   { return errStorage }
func (failingStore) Delete(context.Context, ...string) error     { return errStorage }

func newAccounts(t *testing.T, store kv.Store, scheme string) AccountService {
	t.Helper()
	h, err := cryptox.NewHasher(scheme)
	require.NoError(t, err)
	return NewAccountService(store, h, logging.NewNop())
}
