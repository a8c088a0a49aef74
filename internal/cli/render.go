package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/services"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

// stdoutIsTerminal is a test seam: Markdown is rendered with glamour only
// for terminals.
var stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

// formatMoney formats amount in the currency with the given ISO code. Unknown
// codes and amounts beyond models.MaxAmount fall back to a plain two-decimal
// number followed by the code.
func formatMoney(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil || !models.AmountInRange(amount) {
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// escapeCell keeps user text from breaking a Markdown table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func ledgerMarkdown(txs []models.Transaction, currency string) string {
	var b strings.Builder

	b.WriteString("## Transactions\n\n")
	if len(txs) == 0 {
		b.WriteString("_No transactions yet._\n\n")
	} else {
		b.WriteString("| ID | Date | Type | Category | Amount | Note |\n")
		b.WriteString("|---|---|---|---|---:|---|\n")
		for _, t := range txs {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				t.ID,
				t.Date,
				strings.ToUpper(string(t.Type)),
				escapeCell(t.Category),
				formatMoney(t.Amount, currency),
				escapeCell(t.Note),
			)
		}
		b.WriteString("\n")
	}

	b.WriteString(totalsMarkdown(services.ComputeTotals(txs), currency))
	return b.String()
}

func totalsMarkdown(t models.Totals, currency string) string {
	var b strings.Builder
	b.WriteString("## Totals\n\n")
	b.WriteString("| Income | Expense | Balance |\n")
	b.WriteString("|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %s | %s | %s |\n",
		formatMoney(t.Income, currency),
		formatMoney(t.Expense, currency),
		formatMoney(t.Balance, currency),
	)
	return b.String()
}

func usersMarkdown(users []models.User) string {
	var b strings.Builder
	b.WriteString("## Accounts\n\n")
	if len(users) == 0 {
		b.WriteString("_No accounts yet._\n")
		return b.String()
	}
	b.WriteString("| ID | Email | Name | Created |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, u := range users {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			u.ID,
			escapeCell(u.Email),
			escapeCell(u.DisplayName()),
			u.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return b.String()
}

// renderMarkdown styles md for the terminal, returning it unchanged when
// stdout is not a terminal or rendering fails.
func renderMarkdown(md string) string {
	if !stdoutIsTerminal() {
		return md
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return out
}
