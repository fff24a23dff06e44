package errors

import (
	stderrors "errors"
	"strings"

	"gorm.io/gorm"
)

// ParseError classifies driver errors the data-access layer knows how to name.
// subject describes what was being looked up or written ("user a@jwt.com").
// Errors it does not recognise are returned unchanged.
func ParseError(err error, subject string) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if stderrors.As(err, &appErr) {
		return err
	}

	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("%s not found", subject)
	}

	if stderrors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return Conflict(subject+" already exists", err)
	}

	return err
}

// isUniqueViolation recognises unique violations from postgres (23505) and sqlite
// when gorm's TranslateError is not enabled.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "sqlstate 23505")
}
