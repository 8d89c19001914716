package sqlite

import (
	"fmt"
	"strings"

	"github.com/rpggio/clipdeck/internal/repository"
)

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func mapWriteError(op string, err error) error {
	switch {
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, repository.ErrForeignKeyViolation)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, repository.ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
