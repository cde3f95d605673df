package repository

import (
	"errors"
	"strings"

	"food-ordering-api/apperror"

	"gorm.io/gorm"
)

// translate maps gorm failures onto the shared error taxonomy.
func translate(op string, err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(what + " not found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return apperror.Conflict(what + " already exists")
	}
	return apperror.Store(op, err)
}

// sqlite reports unique violations as plain text; postgres through
// TranslateError when enabled.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
