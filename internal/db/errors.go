package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/rhythm/internal/services"
	"gorm.io/gorm"
)

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", services.ErrRecordNotFound, err)
	}
	if isConstraintViolation(err) {
		return fmt.Errorf("%w: %w", services.ErrConstraintViolation, err)
	}
	return err
}

func isConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") ||
		strings.Contains(message, "primary key must be unique")
}
