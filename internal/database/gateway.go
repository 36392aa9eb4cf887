package database

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"symbiomatch-backend/internal/database/models"
	apperrors "symbiomatch-backend/internal/errors"
	"symbiomatch-backend/internal/logger"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Relation names accepted as includes by Get, All and Find
const (
	IncludeCompany         = "Company"
	IncludeCompanyLocation = "Company.Location"
	IncludeLocation        = "Location"
	IncludeMaterials       = "Materials"
	IncludeProducts        = "Products"
	IncludeProduct         = "Product"
	IncludeMatch           = "Match"
	IncludeMatchProduct    = "Match.Product"
	IncludeUserMatches     = "UserMatches"
	IncludeCompanyMatches  = "CompanyMatches"
)

type txKey struct{}

// Gateway is the single entry point to the relational store. Every write goes through
// validation and error translation; deletes follow the policies in models.Relations.
type Gateway struct {
	db       *gorm.DB
	validate *validator.Validate
}

// NewGateway creates a gateway over an opened and migrated connection
func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db, validate: models.NewValidator()}
}

// Transaction runs fn inside one transaction. The transaction travels on the context
// passed to fn; a nested call joins the outer transaction instead of opening a new one.
func (g *Gateway) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// Conn returns the transaction carried by ctx, or the plain connection outside one
func (g *Gateway) Conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return g.db.WithContext(ctx)
}

// Insert validates and persists a new row. Associations set on the record are not written.
func (g *Gateway) Insert(ctx context.Context, record models.Record) error {
	table := record.TableName()
	if err := g.check(ctx, table, record); err != nil {
		return err
	}

	if err := g.Conn(ctx).Omit(clause.Associations).Create(record).Error; err != nil {
		return g.translate(ctx, table, "insert", err)
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"table": table,
		"key":   record.PrimaryKey(),
	}).Debug("row inserted")
	return nil
}

// Update replaces every column of an existing row except created_at. Versioned rows carrying
// a version are only written when the stored version still matches; on success the record
// holds the new version.
func (g *Gateway) Update(ctx context.Context, record models.Record) error {
	table := record.TableName()
	if err := g.check(ctx, table, record); err != nil {
		return err
	}

	key := record.PrimaryKey()
	if missingKey(key) {
		return apperrors.NewNotFoundError(models.EntityName(table))
	}

	return g.Transaction(ctx, func(ctx context.Context) error {
		tx := g.Conn(ctx)

		query := tx.Model(record).Where(key).Select("*").Omit("created_at", "version", clause.Associations)
		versioned, isVersioned := record.(models.Versioned)
		var expected int64
		if isVersioned {
			expected = versioned.CurrentVersion()
			if expected > 0 {
				query = query.Where("version = ?", expected)
			}
		}

		res := query.Updates(record)
		if res.Error != nil {
			return g.translate(ctx, table, "update", res.Error)
		}
		if res.RowsAffected == 0 {
			exists, err := g.exists(tx, table, key)
			if err != nil {
				return err
			}
			if !exists {
				return apperrors.NewNotFoundError(models.EntityName(table))
			}
			logger.WithContext(ctx).WithFields(map[string]interface{}{
				"table":   table,
				"key":     key,
				"version": expected,
			}).Warn("stale update rejected")
			return apperrors.NewConflictError(models.EntityName(table))
		}

		if isVersioned {
			if err := tx.Table(table).Where(key).UpdateColumn("version", gorm.Expr("version + ?", 1)).Error; err != nil {
				return fmt.Errorf("bump %s version: %w", models.EntityName(table), err)
			}
			var version int64
			if err := tx.Table(table).Where(key).Select("version").Scan(&version).Error; err != nil {
				return fmt.Errorf("read %s version: %w", models.EntityName(table), err)
			}
			versioned.SetVersion(version)
		}

		logger.WithContext(ctx).WithFields(map[string]interface{}{
			"table": table,
			"key":   key,
		}).Debug("row updated")
		return nil
	})
}

// Delete removes a row and applies the delete policy of every edge below it, child first,
// in one transaction. Join rows are removed as exactly that pair.
func (g *Gateway) Delete(ctx context.Context, record models.Record) error {
	table := record.TableName()
	key := record.PrimaryKey()
	id, ok := key["id"]
	if !ok {
		return g.Remove(ctx, record)
	}
	if missingKey(key) {
		return apperrors.NewNotFoundError(models.EntityName(table))
	}

	return g.Transaction(ctx, func(ctx context.Context) error {
		tx := g.Conn(ctx)
		exists, err := g.exists(tx, table, key)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewNotFoundError(models.EntityName(table))
		}

		if err := g.cascade(ctx, tx, table, []string{fmt.Sprint(id)}); err != nil {
			return err
		}

		logger.WithContext(ctx).WithFields(map[string]interface{}{
			"table": table,
			"id":    id,
		}).Debug("row deleted")
		return nil
	})
}

// Remove deletes a single join row by its composite key. Rows keyed by id go through
// Delete so their delete policies still apply.
func (g *Gateway) Remove(ctx context.Context, record models.Record) error {
	table := record.TableName()
	key := record.PrimaryKey()
	if len(key) == 0 || missingKey(key) {
		return apperrors.ErrMissingPrimaryKey
	}
	if _, ok := key["id"]; ok {
		return g.Delete(ctx, record)
	}

	res := g.Conn(ctx).Where(key).Delete(record)
	if res.Error != nil {
		return g.translate(ctx, table, "delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError(models.EntityName(table))
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"table": table,
		"key":   key,
	}).Debug("join row removed")
	return nil
}

// cascade deletes the rows of table with the given ids after resolving every edge leaving it
func (g *Gateway) cascade(ctx context.Context, tx *gorm.DB, table string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	// rows referenced from table itself; they can only go once the referencing rows are gone
	var owned []models.Relation
	ownedIDs := map[string][]string{}

	for _, rel := range models.RelationsOf(table) {
		switch {
		case rel.Inverse:
			var refs []string
			if err := tx.Table(table).Where(in("id", ids)).Where(rel.ForeignKey+" IS NOT NULL").
				Pluck(rel.ForeignKey, &refs).Error; err != nil {
				return fmt.Errorf("collect %s of %s: %w", rel.ForeignKey, table, err)
			}
			if rel.OnDelete == models.Cascade {
				owned = append(owned, rel)
				ownedIDs[rel.Child] = append(ownedIDs[rel.Child], refs...)
			}

		case rel.OnDelete == models.Restrict:
			var count int64
			if err := tx.Table(rel.Child).Where(in(rel.ForeignKey, ids)).Count(&count).Error; err != nil {
				return fmt.Errorf("count %s: %w", rel.Child, err)
			}
			if count > 0 {
				logger.WithContext(ctx).WithFields(map[string]interface{}{
					"table":      table,
					"dependents": rel.Child,
					"count":      count,
				}).Warn("delete blocked by restrict relation")
				return apperrors.NewConstraintViolation(
					models.EntityName(table),
					apperrors.ConstraintRestrict,
					fmt.Sprintf("%d %s still reference it", count, rel.Child),
					nil,
				)
			}

		case rel.OnDelete == models.SetNull:
			if err := tx.Table(rel.Child).Where(in(rel.ForeignKey, ids)).
				Update(rel.ForeignKey, nil).Error; err != nil {
				return fmt.Errorf("detach %s: %w", rel.Child, err)
			}

		case rel.OnDelete == models.Cascade:
			if !models.HasDependents(rel.Child) {
				if err := tx.Exec("DELETE FROM ? WHERE ? IN ?", clause.Table{Name: rel.Child}, clause.Column{Name: rel.ForeignKey}, ids).Error; err != nil {
					return g.translate(ctx, rel.Child, "delete", err)
				}
				continue
			}
			var childIDs []string
			if err := tx.Table(rel.Child).Where(in(rel.ForeignKey, ids)).Pluck("id", &childIDs).Error; err != nil {
				return fmt.Errorf("collect %s: %w", rel.Child, err)
			}
			if err := g.cascade(ctx, tx, rel.Child, childIDs); err != nil {
				return err
			}
		}
	}

	if err := tx.Exec("DELETE FROM ? WHERE ? IN ?", clause.Table{Name: table}, clause.Column{Name: "id"}, ids).Error; err != nil {
		return g.translate(ctx, table, "delete", err)
	}

	for _, rel := range owned {
		if err := g.cascade(ctx, tx, rel.Child, ownedIDs[rel.Child]); err != nil {
			return err
		}
		delete(ownedIDs, rel.Child)
	}
	return nil
}

func (g *Gateway) exists(tx *gorm.DB, table string, key map[string]any) (bool, error) {
	var count int64
	if err := tx.Table(table).Where(key).Count(&count).Error; err != nil {
		return false, fmt.Errorf("lookup %s: %w", models.EntityName(table), err)
	}
	return count > 0, nil
}

// check runs the validate tags of the record and reports the first failing field
func (g *Gateway) check(ctx context.Context, table string, record models.Record) error {
	err := g.validate.StructCtx(ctx, record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate %s: %w", models.EntityName(table), err)
	}

	first := fieldErrs[0]
	kind := apperrors.ConstraintCheck
	if first.Tag() == "required" {
		kind = apperrors.ConstraintRequired
	}
	detail := fmt.Sprintf("%s failed %s", first.Field(), first.Tag())
	if first.Param() != "" {
		detail += "=" + first.Param()
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"table": table,
		"field": first.Field(),
		"rule":  first.Tag(),
	}).Warn("record rejected by validation")
	return apperrors.NewConstraintViolation(models.EntityName(table), kind, detail, err)
}

// missingKey reports whether any key column still holds its zero value
func missingKey(key map[string]any) bool {
	for _, v := range key {
		if v == nil || reflect.ValueOf(v).IsZero() {
			return true
		}
	}
	return false
}

func in(column string, ids []string) clause.IN {
	values := make([]interface{}, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	return clause.IN{Column: clause.Column{Name: column}, Values: values}
}
