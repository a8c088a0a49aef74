package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/kv"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/shopspring/decimal"
)

// TransactionsKey is the storage key of the ledger owned by userID.
func TransactionsKey(userID string) string {
	return "transactions_" + userID
}

// LedgerService reads and edits per-user transaction lists. Lists are kept
// newest-first by insertion; every mutating call returns the full updated
// list.
type LedgerService interface {
	List(ctx context.Context, userID string) ([]models.Transaction, error)
	Add(ctx context.Context, userID string, tx models.Transaction) ([]models.Transaction, error)
	Delete(ctx context.Context, userID string, txID string) ([]models.Transaction, error)
}

type ledgerService struct {
	store kv.Store
	log   logging.Logger
}

// NewLedgerService returns a LedgerService persisting to store.
func NewLedgerService(store kv.Store, log logging.Logger) LedgerService {
	return &ledgerService{store: store, log: log}
}

func (s *ledgerService) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	key := TransactionsKey(userID)
	data, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Transaction](ctx, s.log, key, data), nil
}

func (s *ledgerService) save(ctx context.Context, userID string, txs []models.Transaction) error {
	data, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	return s.store.Set(ctx, TransactionsKey(userID), data)
}

// Add validates tx, rounds its amount to cents and puts it at the head of
// the ledger.
func (s *ledgerService) Add(ctx context.Context, userID string, tx models.Transaction) ([]models.Transaction, error) {
	if !tx.Type.Valid() {
		return nil, fmt.Errorf("%w: %w", common.ErrValidation, models.ErrUnknownTxType)
	}
	tx.Amount = models.NormalizeAmount(tx.Amount)
	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrValidation, err)
	}

	txs, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	txs = append([]models.Transaction{tx}, txs...)
	if err := s.save(ctx, userID, txs); err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "transaction added", "user_id", userID, "tx_id", tx.ID)
	return txs, nil
}

// Delete removes every transaction with id txID. The list is written back
// even when nothing matched.
func (s *ledgerService) Delete(ctx context.Context, userID string, txID string) ([]models.Transaction, error) {
	txs, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := txs[:0]
	for _, t := range txs {
		if t.ID != txID {
			kept = append(kept, t)
		}
	}

	if err := s.save(ctx, userID, kept); err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "transaction deleted", "user_id", userID, "tx_id", txID, "removed", len(txs)-len(kept))
	return kept, nil
}

// ComputeTotals sums income and expense amounts. Anything that is not income
// counts as an expense.
func ComputeTotals(txs []models.Transaction) models.Totals {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txs {
		if t.Type == models.TxIncome {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}
	return models.Totals{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}
