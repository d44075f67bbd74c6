package repositories

import (
	"context"

	"storefront/internal/models"

	"github.com/jackc/pgx/v5"
)

type CategoryRepository interface {
	TopLevel(ctx context.Context) ([]*models.Category, error)
	Children(ctx context.Context, parentID int) ([]*models.Category, error)
	Descendants(ctx context.Context, path string) ([]*models.Category, error)
	Breadcrumb(ctx context.Context, path string) ([]models.Breadcrumb, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
}

type categoryRepo struct {
	db Database
}

func NewCategoryRepo(db Database) CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = `id, name, slug, path::text, parent_id, depth, sort_order, is_leaf, group_count`

func (r *categoryRepo) TopLevel(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE depth = 0 AND is_active
		ORDER BY sort_order
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

func (r *categoryRepo) Children(ctx context.Context, parentID int) ([]*models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE parent_id = $1 AND is_active
		ORDER BY sort_order
	`
	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

// Descendants returns every active node under path, the node itself
// included, ordered tree-wise.
func (r *categoryRepo) Descendants(ctx context.Context, path string) ([]*models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE path <@ $1::ltree AND is_active
		ORDER BY depth, sort_order
	`
	rows, err := r.db.Query(ctx, query, path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

func (r *categoryRepo) Breadcrumb(ctx context.Context, path string) ([]models.Breadcrumb, error) {
	query := `
		SELECT id, name, slug
		FROM categories
		WHERE path @> $1::ltree
		ORDER BY depth
	`
	rows, err := r.db.Query(ctx, query, path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trail []models.Breadcrumb
	for rows.Next() {
		var b models.Breadcrumb
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug); err != nil {
			return nil, err
		}
		trail = append(trail, b)
	}
	return trail, rows.Err()
}

func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE slug = $1 AND is_active
	`
	c := &models.Category{}
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Path, &c.ParentID,
		&c.Depth, &c.SortOrder, &c.IsLeaf, &c.GroupCount)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func scanCategories(rows pgx.Rows) ([]*models.Category, error) {
	var categories []*models.Category
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Path, &c.ParentID,
			&c.Depth, &c.SortOrder, &c.IsLeaf, &c.GroupCount); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
