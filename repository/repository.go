// Package repository is the persistence gateway: single-entity lookups and writes
// over gorm, shared by every resource.
package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when no row matches the requested identifier.
var ErrNotFound = errors.New("record not found")

// Repository is the gateway contract for one entity type.
type Repository[T any] interface {
	// FindOne looks an entity up by its external identifier.
	FindOne(ctx context.Context, id string) (*T, error)
	// FindBy returns every entity matching all recognised filters.
	// Unknown filter names are ignored.
	FindBy(ctx context.Context, filters map[string]string) ([]T, error)
	// Save inserts entity, filling in its identifier and timestamps.
	Save(ctx context.Context, entity *T) (*T, error)
	// Update writes the given columns and refreshes updated_at.
	Update(ctx context.Context, entity *T, fields map[string]any) (*T, error)
	// Delete removes entity permanently.
	Delete(ctx context.Context, entity *T) error
	// Exists reports whether an entity with the external identifier is stored.
	Exists(ctx context.Context, id any) (bool, error)
}

// GormRepository implements Repository on top of gorm.
type GormRepository[T any] struct {
	db      *gorm.DB
	key     string
	filters map[string]string
}

// NewGormRepository builds a gateway for T. key is the column holding the external
// identifier; filters maps the filter names accepted by FindBy to columns.
func NewGormRepository[T any](db *gorm.DB, key string, filters map[string]string) *GormRepository[T] {
	return &GormRepository[T]{db: db, key: key, filters: filters}
}

func (r *GormRepository[T]) FindOne(ctx context.Context, id string) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: r.key}, Value: id}).
		First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &entity, nil
}

func (r *GormRepository[T]) FindBy(ctx context.Context, filters map[string]string) ([]T, error) {
	query := r.db.WithContext(ctx).Model(new(T))

	names := lo.Keys(filters)
	sort.Strings(names)
	for _, name := range names {
		column, ok := r.filters[name]
		if !ok {
			continue
		}
		query = query.Where(clause.Eq{Column: clause.Column{Name: column}, Value: filters[name]})
	}

	entities := make([]T, 0)
	if err := query.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return entities, nil
}

func (r *GormRepository[T]) Save(ctx context.Context, entity *T) (*T, error) {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}
	return entity, nil
}

func (r *GormRepository[T]) Update(ctx context.Context, entity *T, fields map[string]any) (*T, error) {
	values := make(map[string]any, len(fields)+1)
	for column, value := range fields {
		values[column] = value
	}
	values["updated_at"] = time.Now()

	tx := r.db.WithContext(ctx)
	if err := tx.Model(entity).Updates(values).Error; err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	if err := tx.First(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to reload record: %w", err)
	}
	return entity, nil
}

// Delete returns ErrNotFound when the row is already gone.
func (r *GormRepository[T]) Delete(ctx context.Context, entity *T) error {
	result := r.db.WithContext(ctx).Delete(entity)
	if result.Error != nil {
		return fmt.Errorf("failed to delete record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository[T]) Exists(ctx context.Context, id any) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).
		Where(clause.Eq{Column: clause.Column{Name: r.key}, Value: id}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("database query failed: %w", err)
	}
	return count > 0, nil
}
