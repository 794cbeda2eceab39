package service

import (
	"errors"
	"testing"

	"github.com/furniro/storefront/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 8, RequireUpper: true, RequireNumber: true}

	cases := []struct {
		password string
		key      string
	}{
		{password: "", key: "error.password_required"},
		{password: "Ab1", key: "error.password_min_length"},
		{password: "abcdefg1", key: "error.password_require_upper"},
		{password: "Abcdefgh", key: "error.password_require_number"},
		{password: "Abcdefg1", key: ""},
	}
	for _, tc := range cases {
		err := validatePassword(policy, tc.password)
		if tc.key == "" {
			assert.NoError(t, err, tc.password)
			continue
		}
		require.Error(t, err, tc.password)
		assert.True(t, errors.Is(err, ErrWeakPassword))
		var perr *PasswordPolicyError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, tc.key, perr.Key())
	}

	err := validatePassword(policy, "Ab1")
	var perr *PasswordPolicyError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, []interface{}{8}, perr.Args())
}
