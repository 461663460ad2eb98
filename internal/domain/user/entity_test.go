//go:build unit

package user_test

import (
	"testing"

	"bookstand/internal/domain/user"
	"bookstand/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmp.AllowUnexported(user.User{}, user.Email{}),
}

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewUserBuilder()
			tc.mutate(b)
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestUser(t *testing.T) {
	t.Run("reconstruction preserves the persisted state", func(t *testing.T) {
		b := builder.NewUserBuilder().AsAdmin()
		actual, err := b.BuildDomain()
		require.NoError(t, err)

		email, _ := user.NewEmail(b.Email)
		expected := user.ReconstructUser(
			b.ID, email, b.PasswordHash, b.FullName, b.Role,
			b.IsActive, b.LastLogin, b.CreatedAt, b.UpdatedAt,
		)

		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("User mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("email validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "valid email",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") },
			},
			{
				name:   "empty email",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing at sign",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("not-an-email") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "surrounding whitespace is trimmed",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("  padded@example.com  ") },
			},
		})
	})
}

func TestNewUser(t *testing.T) {
	email, err := user.NewEmail("fresh@example.com")
	require.NoError(t, err)

	u := user.NewUser(email, "hashed", "Fresh Member", user.RoleMember)

	assert.True(t, u.IsActive())
	assert.Nil(t, u.LastLogin())
	assert.False(t, u.Role().IsAdmin())
	assert.Equal(t, "fresh@example.com", u.Email().Value())
}

func TestNewRole(t *testing.T) {
	tests := []struct {
		input string
		errIs error
	}{
		{input: "member"},
		{input: "admin"},
		{input: "superuser", errIs: user.ErrInvalidRole},
		{input: "", errIs: user.ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run("role "+tt.input, func(t *testing.T) {
			role, err := user.NewRole(tt.input)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, string(role))
		})
	}
}

func TestNewPassword(t *testing.T) {
	_, err := user.NewPassword("short")
	require.ErrorIs(t, err, user.ErrPasswordTooWeak)

	p, err := user.NewPassword("long-enough-password")
	require.NoError(t, err)
	assert.Equal(t, "long-enough-password", p.Value())
}
