package validator

import (
	"errors"
	"net/mail"
	"strings"
	"unicode"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")

	// パスワードが弱い
	ErrWeakPassword = errors.New("weak password")
)

// サインアップの入力を検証
func ValidateRegister(email string, password string, name string) error {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	// 必須チェック
	if email == "" || password == "" || name == "" {
		return ErrInvalidInput
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidInput
	}

	// 8文字以上、英字と数字を両方含む
	if len(password) < 8 {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}

	return nil
}
