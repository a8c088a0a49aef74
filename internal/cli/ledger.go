package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/services"
)

// Add prompts for a transaction, stores it at the head of the ledger and
// shows the updated ledger.
func (a *App) Add(ctx context.Context) error {
	userID, err := a.session.CurrentUser(ctx)
	if err != nil {
		return err
	}

	var f services.TransactionForm
	prompts := []struct {
		label string
		dst   *string
	}{
		{"Type (income/expense) [expense]", &f.Type},
		{"Amount", &f.Amount},
		{"Category", &f.Category},
		{"Date (YYYY-MM-DD) [today]", &f.Date},
		{"Note (optional)", &f.Note},
	}
	for _, p := range prompts {
		if *p.dst, err = getSimpleText(a.reader, p.label, os.Stdout); err != nil {
			return err
		}
	}

	tx, err := a.forms.BuildTransaction(f)
	if err != nil {
		return err
	}

	txs, err := a.ledger.Add(ctx, userID, tx)
	if err != nil {
		return err
	}

	printlnFn("Transaction added.")
	a.showLedger(txs)
	return nil
}

// List shows the ledger, newest first, followed by the totals.
func (a *App) List(ctx context.Context) error {
	userID, err := a.session.CurrentUser(ctx)
	if err != nil {
		return err
	}

	txs, err := a.ledger.List(ctx, userID)
	if err != nil {
		return err
	}

	a.showLedger(txs)
	return nil
}

// Delete removes the transaction with id, prompting for it when empty.
func (a *App) Delete(ctx context.Context, id string) error {
	userID, err := a.session.CurrentUser(ctx)
	if err != nil {
		return err
	}

	if id == "" {
		if id, err = getSimpleText(a.reader, "Enter transaction id to delete", os.Stdout); err != nil {
			return err
		}
		if id == "" {
			return fmt.Errorf("%w: id is required", common.ErrValidation)
		}
	}

	before, err := a.ledger.List(ctx, userID)
	if err != nil {
		return err
	}

	txs, err := a.ledger.Delete(ctx, userID, id)
	if err != nil {
		return err
	}

	if len(txs) == len(before) {
		printlnFn(fmt.Sprintf("No transaction with id %s.", id))
	} else {
		printlnFn("Transaction deleted.")
	}
	a.showLedger(txs)
	return nil
}

// Totals shows income, expense and balance only.
func (a *App) Totals(ctx context.Context) error {
	userID, err := a.session.CurrentUser(ctx)
	if err != nil {
		return err
	}

	txs, err := a.ledger.List(ctx, userID)
	if err != nil {
		return err
	}

	printlnFn(renderMarkdown(totalsMarkdown(services.ComputeTotals(txs), a.config.Currency)))
	return nil
}

func (a *App) showLedger(txs []models.Transaction) {
	printlnFn(renderMarkdown(ledgerMarkdown(txs, a.config.Currency)))
}
