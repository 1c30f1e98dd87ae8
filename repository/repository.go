package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// likeEscaper makes user search text match literally under ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type validator interface{ Validate() error }

type defaulter interface{ ApplyDefaults() }

// Kind describes how one table is scoped, ordered and filtered.
type Kind struct {
	Name string
	// ParentColumn scopes every list and mutation, e.g. "wedding_id".
	ParentColumn string
	OrderBy      string
	// Filters maps query parameter names to equality-filtered columns.
	Filters map[string]string
	// Search lists the columns matched case-insensitively by Filter.Search.
	Search []string
	// Live is an extra condition every read and mutation carries, used to
	// hide rows whose owning parent is soft-deleted.
	Live string
}

// Filter narrows ListByParent. Keys of Equals are query parameter names and
// are ignored unless the kind declares them.
type Filter struct {
	Equals map[string]string
	Search string
}

// Repository is typed CRUD access for one entity kind. Rows with a
// DeletedAt column are soft-deleted and hidden from every read; rows
// without one are removed outright.
type Repository[E any] struct {
	db   *gorm.DB
	kind Kind
}

func New[E any](db *gorm.DB, kind Kind) *Repository[E] {
	if kind.OrderBy == "" {
		kind.OrderBy = "created_at ASC, id ASC"
	}
	return &Repository[E]{db: db, kind: kind}
}

func (r *Repository[E]) Kind() Kind { return r.kind }

// WithTx returns a copy bound to tx. A nil tx returns r.
func (r *Repository[E]) WithTx(tx *gorm.DB) *Repository[E] {
	if tx == nil {
		return r
	}
	return &Repository[E]{db: tx, kind: r.kind}
}

func (r *Repository[E]) conn(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// read is conn narrowed to rows the kind considers live.
func (r *Repository[E]) read(ctx context.Context) *gorm.DB {
	q := r.conn(ctx)
	if r.kind.Live != "" {
		q = q.Where(r.kind.Live)
	}
	return q
}

// Create applies defaults, validates and inserts e.
func (r *Repository[E]) Create(ctx context.Context, e *E) error {
	return r.CreateMany(ctx, []*E{e})
}

func (r *Repository[E]) CreateMany(ctx context.Context, rows []*E) error {
	if len(rows) == 0 {
		return nil
	}
	for _, e := range rows {
		if d, ok := any(e).(defaulter); ok {
			d.ApplyDefaults()
		}
		if v, ok := any(e).(validator); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
	}
	if err := r.conn(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("create %s: %w", r.kind.Name, err)
	}
	return nil
}

func (r *Repository[E]) GetByID(ctx context.Context, id uuid.UUID) (*E, error) {
	var e E
	err := r.read(ctx).Where("id = ?", id).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.kind.Name, err)
	}
	return &e, nil
}

// GetScoped is GetByID restricted to one parent.
func (r *Repository[E]) GetScoped(ctx context.Context, parentID, id uuid.UUID) (*E, error) {
	var e E
	err := r.read(ctx).
		Where(r.kind.ParentColumn+" = ? AND id = ?", parentID, id).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.kind.Name, err)
	}
	return &e, nil
}

func (r *Repository[E]) Exists(ctx context.Context, parentID, id uuid.UUID) (bool, error) {
	var e E
	var count int64
	if err := r.read(ctx).Model(&e).
		Where(r.kind.ParentColumn+" = ? AND id = ?", parentID, id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check %s: %w", r.kind.Name, err)
	}
	return count > 0, nil
}

func (r *Repository[E]) ListByParent(ctx context.Context, parentID uuid.UUID, f Filter) ([]E, error) {
	q := r.read(ctx).Where(r.kind.ParentColumn+" = ?", parentID)
	for param, value := range f.Equals {
		column, ok := r.kind.Filters[param]
		if !ok || value == "" {
			continue
		}
		q = q.Where(column+" = ?", value)
	}
	if s := strings.TrimSpace(f.Search); s != "" && len(r.kind.Search) > 0 {
		like := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
		clauses := make([]string, len(r.kind.Search))
		args := make([]any, len(r.kind.Search))
		for i, column := range r.kind.Search {
			clauses[i] = "LOWER(" + column + ") LIKE ? ESCAPE '\\'"
			args[i] = like
		}
		q = q.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}

	results := []E{}
	if err := q.Order(r.kind.OrderBy).Find(&results).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind.Name, err)
	}
	return results, nil
}

// ListBy returns every row whose column equals value. column must come from
// code, never from a request.
func (r *Repository[E]) ListBy(ctx context.Context, column string, value any) ([]E, error) {
	results := []E{}
	if err := r.read(ctx).Where(column+" = ?", value).Order(r.kind.OrderBy).Find(&results).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind.Name, err)
	}
	return results, nil
}

// ListByParents loads the children of many parents with a single IN query.
func (r *Repository[E]) ListByParents(ctx context.Context, parentIDs []uuid.UUID) ([]E, error) {
	return r.ListIn(ctx, r.kind.ParentColumn, parentIDs)
}

// ListIn is ListByParents over an arbitrary foreign key column.
func (r *Repository[E]) ListIn(ctx context.Context, column string, ids []uuid.UUID) ([]E, error) {
	results := []E{}
	if len(ids) == 0 {
		return results, nil
	}
	if err := r.read(ctx).
		Where(column+" IN ?", ids).
		Order(r.kind.OrderBy).
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind.Name, err)
	}
	return results, nil
}

func (r *Repository[E]) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]E, error) {
	results := []E{}
	if len(ids) == 0 {
		return results, nil
	}
	if err := r.read(ctx).Where("id IN ?", ids).Find(&results).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind.Name, err)
	}
	return results, nil
}

// Patch overwrites only the given columns and bumps updated_at. The updated
// row is validated before the change is committed.
func (r *Repository[E]) Patch(ctx context.Context, parentID, id uuid.UUID, fields map[string]any) (*E, error) {
	current, err := r.GetScoped(ctx, parentID, id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return current, nil
	}
	updates := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = time.Now().UTC()

	var updated *E
	err = r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(current).
			Where(r.kind.ParentColumn+" = ?", parentID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("update %s: %w", r.kind.Name, err)
		}
		reloaded, err := r.WithTx(tx).GetScoped(ctx, parentID, id)
		if err != nil {
			return err
		}
		if v, ok := any(reloaded).(validator); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
		updated = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes rows that carry DeletedAt and hard-deletes the rest.
func (r *Repository[E]) Delete(ctx context.Context, parentID, id uuid.UUID) error {
	var e E
	result := r.read(ctx).
		Where(r.kind.ParentColumn+" = ? AND id = ?", parentID, id).
		Delete(&e)
	if result.Error != nil {
		return fmt.Errorf("delete %s: %w", r.kind.Name, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
