package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{"1000", "USD", "$1,000.00"},
		{"250.56", "USD", "$250.56"},
		{"-5.5", "USD", "-$5.50"},
		{"0", "USD", "$0.00"},
		{"12.5", "ZZZ", "12.50 ZZZ"},
		{"92233720368547758.07", "USD", "$92,233,720,368,547,758.07"},
		{"100000000000000000000", "USD", "100000000000000000000.00 USD"},
		{"-100000000000000000000", "USD", "-100000000000000000000.00 USD"},
	}
	for _, tt := range tests {
		t.Run(tt.amount+tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMoney(decimal.RequireFromString(tt.amount), tt.code))
		})
	}
}

func TestLedgerMarkdown(t *testing.T) {
	txs := []models.Transaction{
		{ID: "t2", Type: models.TxExpense, Amount: decimal.RequireFromString("250.56"), Category: "Groceries", Date: models.NewDate(2024, time.January, 2), Note: "two\nlines"},
		{ID: "t1", Type: models.TxIncome, Amount: decimal.RequireFromString("1000"), Category: "Salary", Date: models.NewDate(2024, time.January, 1)},
	}

	md := ledgerMarkdown(txs, "USD")

	assert.True(t, strings.Index(md, "| t2 |") < strings.Index(md, "| t1 |"), "rows keep ledger order")
	assert.Contains(t, md, "| t2 | 2024-01-02 | EXPENSE | Groceries | $250.56 | two lines |")
	assert.Contains(t, md, "| t1 | 2024-01-01 | INCOME | Salary | $1,000.00 |  |")
	assert.Contains(t, md, "| $1,000.00 | $250.56 | $749.44 |")
	assert.NotContains(t, md, "_No transactions yet._")

	empty := ledgerMarkdown(nil, "USD")
	assert.Contains(t, empty, "_No transactions yet._")
	assert.Contains(t, empty, "| $0.00 | $0.00 | $0.00 |")
}

func TestUsersMarkdown(t *testing.T) {
	assert.Contains(t, usersMarkdown(nil), "_No accounts yet._")

	md := usersMarkdown([]models.User{{ID: "u1", Email: "a@b.com", PasswordHash: "secret-hash"}})
	assert.Contains(t, md, "| u1 | a@b.com | a |")
	assert.NotContains(t, md, "secret-hash")
}

func TestRenderMarkdown_PlainWhenNotTerminal(t *testing.T) {
	orig := stdoutIsTerminal
	t.Cleanup(func() { stdoutIsTerminal = orig })

	stdoutIsTerminal = func() bool { return false }
	assert.Equal(t, "## Totals\n", renderMarkdown("## Totals\n"))

	stdoutIsTerminal = func() bool { return true }
	out := renderMarkdown("## Totals\n")
	assert.Contains(t, out, "Totals")
}
