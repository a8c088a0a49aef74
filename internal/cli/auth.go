package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, err := a.session.CurrentUser(ctx)
	return err == nil
}

// StartForm opens the remembered auth form, login unless signup was used last.
func (a *App) StartForm(ctx context.Context) error {
	mode, err := a.prefs.AuthMode(ctx)
	if err != nil {
		return err
	}
	if mode == services.AuthModeSignup {
		return a.Signup(ctx)
	}
	return a.Login(ctx)
}

// ToggleMode switches the remembered auth form and opens it.
func (a *App) ToggleMode(ctx context.Context) error {
	mode, err := a.prefs.ToggleAuthMode(ctx)
	if err != nil {
		return err
	}
	printlnFn("Switched to", mode, "form")
	return a.StartForm(ctx)
}

// Signup prompts for credentials and profile and creates the account. It
// does not log the user in: on success the remembered form switches back to
// login.
func (a *App) Signup(ctx context.Context) error {
	if err := a.prefs.SetAuthMode(ctx, services.AuthModeSignup); err != nil {
		return err
	}

	var f services.SignupForm
	var err error

	if f.Email, err = getSimpleText(a.reader, "Email", os.Stdout); err != nil {
		return err
	}

	password, err := getPassword(a.reader, fmt.Sprintf("Password (min %d chars)", a.config.MinPasswordLength), os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if f.FirstName, err = getSimpleText(a.reader, "First name", os.Stdout); err != nil {
		return err
	}
	if f.LastName, err = getSimpleText(a.reader, "Last name", os.Stdout); err != nil {
		return err
	}
	if f.DOB, err = getSimpleText(a.reader, "Date of birth (YYYY-MM-DD)", os.Stdout); err != nil {
		return err
	}

	f.Password, f.Confirm = string(password), string(confirm)
	profile, err := a.forms.ValidateSignup(&f)
	if err != nil {
		return err
	}

	if _, err := a.accounts.CreateUser(ctx, f.Email, password, profile); err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return fmt.Errorf("%w, try logging in", err)
		}
		return err
	}

	printlnFn("Account created. Now log in.")
	return a.prefs.SetAuthMode(ctx, services.AuthModeLogin)
}

// Login prompts for credentials, starts a session and shows the ledger.
func (a *App) Login(ctx context.Context) error {
	if err := a.prefs.SetAuthMode(ctx, services.AuthModeLogin); err != nil {
		return err
	}

	var f services.LoginForm
	var err error

	if f.Email, err = getSimpleText(a.reader, "Email", os.Stdout); err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	f.Password = string(password)
	if err := a.forms.ValidateLogin(&f); err != nil {
		return err
	}

	user, err := a.accounts.Authenticate(ctx, f.Email, password)
	if err != nil {
		a.log.Info(ctx, "login failed", "error", err)
		return err
	}

	name := user.DisplayName()
	if err := a.session.SetCurrentUser(ctx, user.ID, name); err != nil {
		return err
	}
	a.log.Info(ctx, "logged in", "user_id", user.ID)

	printlnFn(fmt.Sprintf("Welcome, %s!", name))
	return a.List(ctx)
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// Whoami prints the current account. A session whose account no longer
// exists is cleared.
func (a *App) Whoami(ctx context.Context) error {
	userID, err := a.session.CurrentUser(ctx)
	if err != nil {
		return err
	}

	user, err := a.accounts.GetUser(ctx, userID)
	if errors.Is(err, common.ErrUserNotFound) {
		if cerr := a.session.Clear(ctx); cerr != nil {
			return cerr
		}
		return common.ErrNoSession
	}
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("%s <%s>", user.DisplayName(), user.Email))
	if !user.DOB.IsZero() {
		printlnFn("Date of birth:", user.DOB.String())
	}
	printlnFn("Member since:", user.CreatedAt.Local().Format("2006-01-02"))
	return nil
}
