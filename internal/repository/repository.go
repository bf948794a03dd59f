// Package repository implements data access over GORM. Repositories return
// (nil, nil) when a lookup by unique key finds nothing; callers decide
// whether that is an error.
package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isUniqueConstraintError reports whether err is a unique-index violation.
// Matches both the postgres (SQLSTATE 23505) and sqlite wording so tests on
// the in-memory driver behave like production.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
