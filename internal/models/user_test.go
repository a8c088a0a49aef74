package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.com\t"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"first and last", User{Email: "jd@x.io", Profile: Profile{FirstName: "Jane", LastName: "Doe"}}, "Jane Doe"},
		{"first only", User{Email: "jd@x.io", Profile: Profile{FirstName: "Jane"}}, "Jane"},
		{"last only falls back to email", User{Email: "jd@x.io", Profile: Profile{LastName: "Doe"}}, "jd"},
		{"no profile", User{Email: "someone@example.org"}, "someone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DisplayName())
		})
	}
}

func TestUser_JSONShapeIsFlat(t *testing.T) {
	u := User{
		ID:           "u1",
		Email:        "a@b.com",
		PasswordHash: "abc",
		Profile:      Profile{FirstName: "A", LastName: "B", DOB: NewDate(1990, time.May, 4)},
		CreatedAt:    time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "u1",
		"email": "a@b.com",
		"passwordHash": "abc",
		"firstName": "A",
		"lastName": "B",
		"dob": "1990-05-04",
		"createdAt": "2024-01-01T10:00:00Z"
	}`, string(b))
}

func TestUser_DOBOmittedWhenUnset(t *testing.T) {
	b, err := json.Marshal(User{ID: "u1", Email: "a@b.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "dob")
}

func TestUser_Validate(t *testing.T) {
	require.NoError(t, User{ID: "1", Email: "a@b.com", PasswordHash: "h"}.Validate())
	require.ErrorIs(t, User{Email: "a@b.com", PasswordHash: "h"}.Validate(), ErrIncompleteUser)
	require.ErrorIs(t, User{ID: "1", PasswordHash: "h"}.Validate(), ErrIncompleteUser)
	require.ErrorIs(t, User{ID: "1", Email: "a@b.com"}.Validate(), ErrIncompleteUser)
}
