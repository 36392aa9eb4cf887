package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"symbiomatch-backend/internal/database/models"
	apperrors "symbiomatch-backend/internal/errors"
	"symbiomatch-backend/internal/logger"

	"gorm.io/gorm"
)

// Driver messages for dialects whose errors gorm does not translate
var (
	duplicateKeyMessages = []string{"UNIQUE constraint failed", "duplicate key value"}
	foreignKeyMessages   = []string{"FOREIGN KEY constraint failed", "violates foreign key constraint"}
	notNullMessages      = []string{"NOT NULL constraint failed", "violates not-null constraint"}
)

// translate maps a driver error raised while writing table onto the error taxonomy
func (g *Gateway) translate(ctx context.Context, table, op string, err error) error {
	entity := models.EntityName(table)

	var kind apperrors.ConstraintKind
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey) || containsAny(err, duplicateKeyMessages):
		kind = apperrors.ConstraintDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated) || containsAny(err, foreignKeyMessages):
		kind = apperrors.ConstraintForeignKey
	case containsAny(err, notNullMessages):
		kind = apperrors.ConstraintRequired
	default:
		return fmt.Errorf("%s %s: %w", op, entity, err)
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"table":     table,
		"operation": op,
		"kind":      string(kind),
	}).WithError(err).Warn("constraint violation")
	return apperrors.NewConstraintViolation(entity, kind, "", err)
}

func containsAny(err error, needles []string) bool {
	msg := err.Error()
	for _, n := range needles {
		if strings.Contains(msg, n) {
			return true
		}
	}
	return false
}
