package database

import (
	"context"
	"errors"
	"fmt"

	"symbiomatch-backend/internal/database/models"
	apperrors "symbiomatch-backend/internal/errors"

	"gorm.io/gorm"
)

// recordPtr lets the fetch helpers name the table of T without an instance
type recordPtr[T any] interface {
	*T
	models.Record
}

// Get returns the row of T with the given id and hydrates the named relations
func Get[T any, PT recordPtr[T]](ctx context.Context, g *Gateway, id any, includes ...string) (*T, error) {
	var row T
	table := PT(&row).TableName()

	err := preload(g.Conn(ctx), includes).Where(clauseID(table), id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(models.EntityName(table))
		}
		return nil, fmt.Errorf("get %s: %w", models.EntityName(table), err)
	}
	return &row, nil
}

// All returns every row of T in store order
func All[T any, PT recordPtr[T]](ctx context.Context, g *Gateway, includes ...string) ([]T, error) {
	rows := []T{}
	if err := preload(g.Conn(ctx), includes).Find(&rows).Error; err != nil {
		var zero T
		return nil, fmt.Errorf("list %s: %w", models.EntityName(PT(&zero).TableName()), err)
	}
	return rows, nil
}

// Find returns the rows of T matching the predicate. query follows gorm's Where forms.
func Find[T any, PT recordPtr[T]](ctx context.Context, g *Gateway, includes []string, query any, args ...any) ([]T, error) {
	rows := []T{}
	if err := preload(g.Conn(ctx), includes).Where(query, args...).Find(&rows).Error; err != nil {
		var zero T
		return nil, fmt.Errorf("find %s: %w", models.EntityName(PT(&zero).TableName()), err)
	}
	return rows, nil
}

func preload(db *gorm.DB, includes []string) *gorm.DB {
	for _, name := range includes {
		db = db.Preload(name)
	}
	return db
}

func clauseID(table string) string {
	return table + ".id = ?"
}
