package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SignupForm is the raw input of the signup prompt.
type SignupForm struct {
	Email     string `validate:"required"`
	Password  string `validate:"required"`
	Confirm   string
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	DOB       string `validate:"required"`
}

// LoginForm is the raw input of the login prompt.
type LoginForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// TransactionForm is the raw input of the add prompt. Type defaults to
// expense and Date to today.
type TransactionForm struct {
	Amount   string `validate:"amountrange,amount"`
	Category string `validate:"required"`
	Date     string `validate:"omitempty,datetime=2006-01-02"`
	Type     string `validate:"omitempty,oneof=income expense"`
	Note     string
}

// FormValidator checks submitted forms before they reach the stores.
type FormValidator struct {
	v                 *validator.Validate
	minPasswordLength int
	now               func() time.Time
}

// NewFormValidator returns a FormValidator requiring passwords of at least
// minPasswordLength characters.
func NewFormValidator(minPasswordLength int) *FormValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("amountrange", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err != nil || models.AmountInRange(d)
	})
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && models.NormalizeAmount(d).IsPositive()
	})
	return &FormValidator{v: v, minPasswordLength: minPasswordLength, now: time.Now}
}

// ValidateSignup trims f in place and checks it in this order: email and
// password present, password length, confirmation, profile present, date of
// birth well-formed and not in the future. It returns the parsed profile.
func (fv *FormValidator) ValidateSignup(f *SignupForm) (models.Profile, error) {
	f.Email = models.NormalizeEmail(f.Email)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.DOB = strings.TrimSpace(f.DOB)

	if err := fv.v.StructPartial(f, "Email", "Password"); err != nil {
		return models.Profile{}, fmt.Errorf("%w: please enter email and password", common.ErrValidation)
	}
	if utf8.RuneCountInString(f.Password) < fv.minPasswordLength {
		return models.Profile{}, fmt.Errorf("%w: must be at least %d characters", common.ErrWeakPassword, fv.minPasswordLength)
	}
	if f.Password != f.Confirm {
		return models.Profile{}, common.ErrPasswordMismatch
	}
	if err := fv.v.StructPartial(f, "FirstName", "LastName", "DOB"); err != nil {
		return models.Profile{}, fmt.Errorf("%w: please enter first name, last name, and date of birth", common.ErrValidation)
	}

	dob, err := models.ParseDate(f.DOB)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: date of birth must be YYYY-MM-DD", common.ErrValidation)
	}
	if dob.After(models.DateOf(fv.now())) {
		return models.Profile{}, common.ErrFutureDateOfBirth
	}

	return models.Profile{FirstName: f.FirstName, LastName: f.LastName, DOB: dob}, nil
}

// ValidateLogin trims the email of f and checks that both fields are set.
func (fv *FormValidator) ValidateLogin(f *LoginForm) error {
	f.Email = models.NormalizeEmail(f.Email)
	if err := fv.v.Struct(f); err != nil {
		return fmt.Errorf("%w: please enter email and password", common.ErrValidation)
	}
	return nil
}

// BuildTransaction validates f and turns it into a new transaction with a
// fresh id and a rounded amount. Only the first failing field is reported.
func (fv *FormValidator) BuildTransaction(f TransactionForm) (models.Transaction, error) {
	f.Amount = strings.TrimSpace(f.Amount)
	f.Category = strings.TrimSpace(f.Category)
	f.Date = strings.TrimSpace(f.Date)
	f.Type = strings.ToLower(strings.TrimSpace(f.Type))
	f.Note = strings.TrimSpace(f.Note)

	if err := fv.v.Struct(f); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return models.Transaction{}, fmt.Errorf("%w: %s", common.ErrValidation, fieldError(ve[0]))
		}
		return models.Transaction{}, err
	}

	now := fv.now()

	txType := models.TxExpense
	if f.Type != "" {
		txType = models.TxType(f.Type)
	}

	date := models.DateOf(now)
	if f.Date != "" {
		d, err := models.ParseDate(f.Date)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("%w: %s", common.ErrValidation, err)
		}
		date = d
	}

	amount, _ := decimal.NewFromString(f.Amount)

	return models.Transaction{
		ID:        uuid.NewString(),
		Type:      txType,
		Amount:    models.NormalizeAmount(amount),
		Category:  f.Category,
		Date:      date,
		Note:      f.Note,
		CreatedAt: now.UTC(),
	}, nil
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "amount":
		return field + " must be greater than 0"
	case "amountrange":
		return field + " is out of range"
	case "datetime":
		return field + " must be YYYY-MM-DD"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
