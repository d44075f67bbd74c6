package repositories

import (
	"context"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductGroupRepository interface {
	BrowseByCategory(ctx context.Context, categoryPath string, limit, offset int) ([]models.ProductGroupSummary, error)
	GetBySlug(ctx context.Context, slug string) (*models.ProductGroupDetail, error)
	GroupsByCategory(ctx context.Context, categoryID int) ([]models.ProductGroupSummary, error)
	Search(ctx context.Context, query string, limit, offset int) ([]models.ProductGroupSummary, error)
	SearchCount(ctx context.Context, query string) (int, error)
	SearchDropdown(ctx context.Context, query string, limit int) ([]models.ProductGroupSummary, error)
	SummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.ProductGroupSummary, error)
}

type productGroupRepo struct {
	db Database
}

func NewProductGroupRepo(db Database) ProductGroupRepository {
	return &productGroupRepo{db: db}
}

const groupSummaryColumns = `pg.id, pg.name, pg.subtitle, pg.slug, pg.overview_image_url, pg.sku_count, pg.min_price_usd, pg.any_in_stock`

// Keyword search matches the full-text vector OR a trigram-similar name, so
// short typos still land. Ranking is ts_rank on the vector.
const searchCondition = `(pg.search_vector @@ websearch_to_tsquery('english', $1) OR pg.name % $1) AND pg.is_active`

func (r *productGroupRepo) BrowseByCategory(ctx context.Context, categoryPath string, limit, offset int) ([]models.ProductGroupSummary, error) {
	query := `
		SELECT ` + groupSummaryColumns + `
		FROM product_groups pg
		JOIN categories c ON c.id = pg.category_id
		WHERE c.path <@ $1::ltree AND pg.is_active
		ORDER BY pg.sort_order, pg.name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, categoryPath, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGroupSummaries(rows)
}

func (r *productGroupRepo) GetBySlug(ctx context.Context, slug string) (*models.ProductGroupDetail, error) {
	query := `
		SELECT pg.id, pg.name, pg.subtitle, pg.slug, pg.description, pg.engineering_note,
		       pg.overview_image_url, pg.diagram_image_url, pg.sku_count, pg.min_price_usd,
		       pg.any_in_stock, c.id, c.name, c.path::text
		FROM product_groups pg
		JOIN categories c ON c.id = pg.category_id
		WHERE pg.slug = $1 AND pg.is_active
	`
	d := &models.ProductGroupDetail{}
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&d.ID, &d.Name, &d.Subtitle, &d.Slug, &d.Description, &d.EngineeringNote,
		&d.OverviewImageURL, &d.DiagramImageURL, &d.SkuCount, &d.MinPriceUSD,
		&d.AnyInStock, &d.CategoryID, &d.CategoryName, &d.CategoryPath)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// GroupsByCategory lists the active groups owned directly by one leaf
// category, for leaf-level table assembly.
func (r *productGroupRepo) GroupsByCategory(ctx context.Context, categoryID int) ([]models.ProductGroupSummary, error) {
	query := `
		SELECT ` + groupSummaryColumns + `
		FROM product_groups pg
		WHERE pg.category_id = $1 AND pg.is_active
		ORDER BY pg.sort_order, pg.name
	`
	rows, err := r.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGroupSummaries(rows)
}

func (r *productGroupRepo) Search(ctx context.Context, query string, limit, offset int) ([]models.ProductGroupSummary, error) {
	sql := `
		SELECT ` + groupSummaryColumns + `
		FROM product_groups pg
		WHERE ` + searchCondition + `
		ORDER BY ts_rank(pg.search_vector, websearch_to_tsquery('english', $1)) DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, sql, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGroupSummaries(rows)
}

func (r *productGroupRepo) SearchCount(ctx context.Context, query string) (int, error) {
	sql := `
		SELECT COUNT(*)
		FROM product_groups pg
		WHERE ` + searchCondition + `
	`
	var total int
	if err := r.db.QueryRow(ctx, sql, query).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *productGroupRepo) SearchDropdown(ctx context.Context, query string, limit int) ([]models.ProductGroupSummary, error) {
	sql := `
		SELECT ` + groupSummaryColumns + `
		FROM product_groups pg
		WHERE ` + searchCondition + `
		ORDER BY ts_rank(pg.search_vector, websearch_to_tsquery('english', $1)) DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGroupSummaries(rows)
}

func (r *productGroupRepo) SummariesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.ProductGroupSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + groupSummaryColumns + `
		FROM product_groups pg
		WHERE pg.id = ANY($1) AND pg.is_active
		ORDER BY pg.sort_order, pg.name
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGroupSummaries(rows)
}

func scanGroupSummaries(rows pgx.Rows) ([]models.ProductGroupSummary, error) {
	var groups []models.ProductGroupSummary
	for rows.Next() {
		var g models.ProductGroupSummary
		if err := rows.Scan(&g.ID, &g.Name, &g.Subtitle, &g.Slug, &g.OverviewImageURL,
			&g.SkuCount, &g.MinPriceUSD, &g.AnyInStock); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
