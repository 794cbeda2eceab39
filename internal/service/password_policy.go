package service

import (
	"unicode"

	"github.com/furniro/storefront/internal/config"
)

// PasswordPolicyError 密码不满足策略，携带 i18n key 与格式化参数
type PasswordPolicyError struct {
	key  string
	args []interface{}
}

func (e *PasswordPolicyError) Error() string { return e.key }

// Is 使 errors.Is(err, ErrWeakPassword) 成立
func (e *PasswordPolicyError) Is(target error) bool { return target == ErrWeakPassword }

// Key i18n 文案 key
func (e *PasswordPolicyError) Key() string { return e.key }

// Args 文案参数
func (e *PasswordPolicyError) Args() []interface{} { return e.args }

type charClassRule struct {
	required bool
	match    func(rune) bool
	key      string
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if password == "" {
		return &PasswordPolicyError{key: "error.password_required"}
	}
	if runes := []rune(password); policy.MinLength > 0 && len(runes) < policy.MinLength {
		return &PasswordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	rules := []charClassRule{
		{required: policy.RequireUpper, match: unicode.IsUpper, key: "error.password_require_upper"},
		{required: policy.RequireLower, match: unicode.IsLower, key: "error.password_require_lower"},
		{required: policy.RequireNumber, match: unicode.IsDigit, key: "error.password_require_number"},
	}
	for _, rule := range rules {
		if rule.required && !containsRune(password, rule.match) {
			return &PasswordPolicyError{key: rule.key}
		}
	}
	return nil
}

func containsRune(s string, match func(rune) bool) bool {
	for _, r := range s {
		if match(r) {
			return true
		}
	}
	return false
}
