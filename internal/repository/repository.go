// Package repository implements the generic CRUD engine every entity
// endpoint is built on: lookup by id, filtered and paginated listing with a
// mirrored count, create, save, soft delete and the tenant ownership policy.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SibartechCompany/eWash-Backend/internal/apperrors"
)

// Options declares the capabilities of the entity a Repository manages.
type Options struct {
	// Name is used in error messages ("Client not found").
	Name string
	// TenantScoped entities carry their own organization_id column and get
	// the tenant predicate injected into list/count queries. Indirectly
	// owned entities (Vehicle) leave this off and resolve ownership through
	// their parent.
	TenantScoped bool
	// SoftDelete entities have an is_active flag: Remove flips it instead
	// of deleting, and list/count only see active rows.
	SoftDelete bool
}

// Repository is a CRUD primitive over one entity kind.
type Repository[T any] struct {
	db   *gorm.DB
	opts Options
}

// New creates a repository for T.
func New[T any](db *gorm.DB, opts Options) *Repository[T] {
	if opts.Name == "" {
		opts.Name = "Record"
	}
	return &Repository[T]{db: db, opts: opts}
}

type activatable interface {
	ActiveFlag() bool
	Deactivate()
}

// Get fetches a record by id regardless of its active flag, so soft-deleted
// rows stay reachable for audit reads.
func (r *Repository[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	result := r.db.WithContext(ctx).First(&entity, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(r.opts.Name + " not found")
		}
		return nil, apperrors.Internal("failed to fetch "+r.opts.Name, result.Error)
	}
	return &entity, nil
}

// List returns the window of records matching q. The predicate tree is the
// same one Count uses; only the offset/limit window differs.
func (r *Repository[T]) List(ctx context.Context, q Query) ([]T, error) {
	var entities []T
	db := r.scoped(r.db.WithContext(ctx).Model(new(T)), q)
	if q.OrderBy != "" {
		db = db.Order(q.OrderBy)
	}
	result := db.Offset(q.Params.Skip).Limit(q.Params.Limit).Find(&entities)
	if result.Error != nil {
		return nil, apperrors.Internal("failed to list "+r.opts.Name, result.Error)
	}
	return entities, nil
}

// Count mirrors List's filters without the pagination window.
func (r *Repository[T]) Count(ctx context.Context, q Query) (int64, error) {
	var total int64
	result := r.scoped(r.db.WithContext(ctx).Model(new(T)), q).Count(&total)
	if result.Error != nil {
		return 0, apperrors.Internal("failed to count "+r.opts.Name, result.Error)
	}
	return total, nil
}

// Create inserts a fully-resolved entity and commits immediately. Unique
// constraint violations surface as Duplicate.
func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	result := r.db.WithContext(ctx).Create(entity)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperrors.Duplicate(r.opts.Name + " already exists")
		}
		return apperrors.Internal("failed to create "+r.opts.Name, result.Error)
	}
	return nil
}

// Update persists the entity as-is. Callers apply patch fields before the
// call; fields absent from the patch are left untouched in memory and
// therefore rewritten with their current values.
func (r *Repository[T]) Update(ctx context.Context, entity *T) error {
	result := r.db.WithContext(ctx).Save(entity)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperrors.Duplicate(r.opts.Name + " already exists")
		}
		return apperrors.Internal("failed to update "+r.opts.Name, result.Error)
	}
	return nil
}

// Remove soft-deletes the record when the entity supports it and deletes it
// otherwise. Removing an already-inactive record is a no-op that still
// returns the record.
func (r *Repository[T]) Remove(ctx context.Context, id uuid.UUID) (*T, error) {
	entity, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.opts.SoftDelete {
		flag, ok := any(entity).(activatable)
		if !ok {
			return nil, apperrors.Internal(r.opts.Name+" is not soft-deletable", fmt.Errorf("missing active flag"))
		}
		if !flag.ActiveFlag() {
			return entity, nil
		}
		flag.Deactivate()
		if result := r.db.WithContext(ctx).Save(entity); result.Error != nil {
			return nil, apperrors.Internal("failed to delete "+r.opts.Name, result.Error)
		}
		return entity, nil
	}

	if result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id); result.Error != nil {
		return nil, apperrors.Internal("failed to delete "+r.opts.Name, result.Error)
	}
	return entity, nil
}

// HardDelete removes the row outright.
func (r *Repository[T]) HardDelete(ctx context.Context, id uuid.UUID) (*T, error) {
	entity, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id); result.Error != nil {
		return nil, apperrors.Internal("failed to delete "+r.opts.Name, result.Error)
	}
	return entity, nil
}

// ExistsActive reports whether an active record matches the condition. Used
// for duplicate-prevention checks, which ignore soft-deleted rows.
func (r *Repository[T]) ExistsActive(ctx context.Context, cond string, args ...interface{}) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(new(T)).Where(cond, args...)
	if r.opts.SoftDelete {
		db = db.Where("is_active = ?", true)
	}
	if result := db.Limit(1).Count(&count); result.Error != nil {
		return false, apperrors.Internal("failed to query "+r.opts.Name, result.Error)
	}
	return count > 0, nil
}
