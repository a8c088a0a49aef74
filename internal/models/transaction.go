package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are stored as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// TxType classifies a transaction.
type TxType string

const (
	TxIncome  TxType = "income"
	TxExpense TxType = "expense"
)

var (
	ErrUnknownTxType         = errors.New("type must be income or expense")
	ErrIncompleteTransaction = errors.New("transaction record is incomplete")
)

// ParseTxType maps user input to a TxType. Matching is case-insensitive.
func ParseTxType(s string) (TxType, error) {
	switch TxType(strings.ToLower(strings.TrimSpace(s))) {
	case TxIncome:
		return TxIncome, nil
	case TxExpense:
		return TxExpense, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTxType, s)
}

func (t TxType) Valid() bool {
	return t == TxIncome || t == TxExpense
}

// Transaction is a single ledger line owned by one user. The owner is not a
// field: it is encoded in the storage key of the ledger.
type Transaction struct {
	ID        string          `json:"id"`
	Type      TxType          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Date      Date            `json:"date"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NormalizeAmount rounds to two decimal places, half away from zero
// (half-up for the positive amounts the ledger accepts): 250.555 -> 250.56.
func NormalizeAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// MaxAmount is the largest amount whose minor units fit in an int64.
var MaxAmount = decimal.New(math.MaxInt64, -2)

const (
	maxAmountDigits = 17 // integer digits of MaxAmount
	maxAmountScale  = 28
)

// AmountInRange reports whether |d| <= MaxAmount with at most 28 decimal
// places. Digits are counted before any rescaling, so inputs such as 1e5000000
// are rejected without being expanded.
func AmountInRange(d decimal.Decimal) bool {
	if d.Exponent() < -maxAmountScale {
		return false
	}
	if d.NumDigits()+int(d.Exponent()) > maxAmountDigits {
		return false
	}
	return d.Abs().Cmp(MaxAmount) <= 0
}

// Validate checks the fields every stored transaction must carry. The type is
// not checked here: stored records with any type other than income count as
// expenses.
func (t Transaction) Validate() error {
	switch {
	case t.ID == "":
		return fmt.Errorf("%w: missing id", ErrIncompleteTransaction)
	case !t.Amount.IsPositive():
		return fmt.Errorf("%w: amount must be positive", ErrIncompleteTransaction)
	case strings.TrimSpace(t.Category) == "":
		return fmt.Errorf("%w: missing category", ErrIncompleteTransaction)
	case t.Date.IsZero():
		return fmt.Errorf("%w: missing date", ErrIncompleteTransaction)
	}
	return nil
}

// Totals aggregates a ledger.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}
