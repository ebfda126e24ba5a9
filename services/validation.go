package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ValidationError перечисляет нарушенные правила по полям.
// Обработчики отдают её клиенту как {"error": {field: message}} со статусом 400.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

var (
	emailRegexp       = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	passwordUpperRe   = regexp.MustCompile(`[A-Z]`)
	passwordLowerRe   = regexp.MustCompile(`[a-z]`)
	passwordSpecialRe = regexp.MustCompile(`[@#$%!^&+=]`)
)

const (
	passwordMinLength = 6
	passwordMaxLength = 12
)

func validateEmail(email string) (string, bool) {
	if email == "" {
		return "email is required", false
	}
	if !emailRegexp.MatchString(email) {
		return "not a valid email address", false
	}
	return "", true
}

// validatePassword применяет правила сложности из схемы пользователя:
// длина 6–12, минимум одна заглавная, одна строчная и один спецсимвол
// из набора @#$%!^&+=.
func validatePassword(password string) (string, bool) {
	switch {
	case password == "":
		return "password is required", false
	case len(password) < passwordMinLength || len(password) > passwordMaxLength:
		return fmt.Sprintf("password length must be between %d and %d characters", passwordMinLength, passwordMaxLength), false
	case !passwordUpperRe.MatchString(password):
		return "password must contain at least one uppercase letter", false
	case !passwordLowerRe.MatchString(password):
		return "password must contain at least one lowercase letter", false
	case !passwordSpecialRe.MatchString(password):
		return "password must contain at least one special character", false
	}
	return "", true
}
