package forms

import (
	"errors"

	"github.com/bigkaa/cms-admin/internal/domain/model"
)

// MinPasswordLength — минимальная длина нового пароля.
const MinPasswordLength = 6

// Ошибки проверки паролей (тексты показываются пользователю).
var (
	ErrPasswordMismatch = errors.New("Passwords do not match")
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters")
)

// ValidateAdmin проверяет черновик администратора. Совпадение паролей
// проверяется всегда, длина — только при создании.
func ValidateAdmin(f model.AdminForm, creating bool) error {
	if f.Password != f.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if creating && len(f.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateProfile проверяет черновик профиля. Пустой пароль означает,
// что пароль не меняется, и не проверяется.
func ValidateProfile(f model.AdminForm) error {
	if f.Password == "" {
		return nil
	}
	if f.Password != f.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(f.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
