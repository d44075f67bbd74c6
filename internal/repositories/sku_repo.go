package repositories

import (
	"context"
	"encoding/json"
	"strings"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SkuRepository interface {
	MatchingSkuIDs(ctx context.Context, groupID uuid.UUID, filters models.FilterSet) ([]uuid.UUID, error)
	VariantTable(ctx context.Context, groupID uuid.UUID, skuIDs []uuid.UUID) ([]models.SkuRow, error)
	GetByPartNumber(ctx context.Context, partNumber string) (*models.SkuRow, error)
	ExistsAndActive(ctx context.Context, skuID uuid.UUID) (bool, error)
	PriceInfo(ctx context.Context, skuID uuid.UUID, quantity int) (*models.SkuPriceInfo, error)
}

type skuRepo struct {
	db Database
}

func NewSkuRepo(db Database) SkuRepository {
	return &skuRepo{db: db}
}

// priceTiersSubquery aggregates the active USD quantity breaks of a SKU as
// a JSON array ordered by qty_min. NULL when the SKU has no tiers.
const priceTiersSubquery = `(SELECT json_agg(json_build_object('qty_min', pt.qty_min, 'qty_max', pt.qty_max, 'price', pt.unit_price) ORDER BY pt.qty_min)
		FROM sku_price_tiers pt
		WHERE pt.sku_id = s.id AND pt.is_active AND pt.currency = 'USD')`

// MatchingSkuIDs resolves the filter set within one product group. With no
// constraints it degenerates to all active SKUs of the group.
func (r *skuRepo) MatchingSkuIDs(ctx context.Context, groupID uuid.UUID, filters models.FilterSet) ([]uuid.UUID, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT s.id FROM skus s WHERE s.product_group_id = $1 AND s.is_active`)
	args := []interface{}{groupID}
	args = appendFilterConditions(&sb, args, "s.id", filters)
	sb.WriteString(` ORDER BY s.sort_key`)

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// VariantTable loads the display rows for the given SKU ids of a group,
// exactly one row per surviving id. An empty id set returns no rows: callers
// resolve the id set first (MatchingSkuIDs degenerates to the whole group
// when unfiltered), so an empty set means the filters matched nothing. The
// column layout is a display concern resolved separately and performs no
// further filtering here.
func (r *skuRepo) VariantTable(ctx context.Context, groupID uuid.UUID, skuIDs []uuid.UUID) ([]models.SkuRow, error) {
	if len(skuIDs) == 0 {
		return nil, nil
	}
	query := `SELECT s.id, s.part_number, s.specs, s.sell_unit, s.sell_qty, s.in_stock, s.price_1ea, ` +
		priceTiersSubquery + ` AS price_tiers
		FROM skus s
		WHERE s.product_group_id = $1 AND s.is_active AND s.id = ANY($2)
		ORDER BY s.sort_key`

	rows, err := r.db.Query(ctx, query, groupID, skuIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var table []models.SkuRow
	for rows.Next() {
		row, err := scanSkuRowFrom(rows)
		if err != nil {
			return nil, err
		}
		table = append(table, *row)
	}
	return table, rows.Err()
}

func (r *skuRepo) GetByPartNumber(ctx context.Context, partNumber string) (*models.SkuRow, error) {
	query := `SELECT s.id, s.part_number, s.specs, s.sell_unit, s.sell_qty, s.in_stock, s.price_1ea, ` +
		priceTiersSubquery + ` AS price_tiers
		FROM skus s
		WHERE s.part_number = $1 AND s.is_active`
	return scanSkuRowFrom(r.db.QueryRow(ctx, query, partNumber))
}

func (r *skuRepo) ExistsAndActive(ctx context.Context, skuID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM skus WHERE id = $1 AND is_active)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, skuID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// PriceInfo resolves the applicable quantity break: the highest qty_min at
// or below the requested quantity whose qty_max (if any) still covers it.
func (r *skuRepo) PriceInfo(ctx context.Context, skuID uuid.UUID, quantity int) (*models.SkuPriceInfo, error) {
	query := `
		SELECT s.id, s.part_number, pt.unit_price, s.sell_unit
		FROM skus s
		JOIN sku_price_tiers pt ON pt.sku_id = s.id
		WHERE s.id = $1 AND s.is_active
		  AND pt.is_active AND pt.currency = 'USD'
		  AND pt.qty_min <= $2 AND (pt.qty_max IS NULL OR pt.qty_max >= $2)
		ORDER BY pt.qty_min DESC
		LIMIT 1
	`
	info := &models.SkuPriceInfo{}
	err := r.db.QueryRow(ctx, query, skuID, quantity).Scan(
		&info.SkuID, &info.PartNumber, &info.UnitPrice, &info.SellUnit)
	if err != nil {
		return nil, err
	}
	return info, nil
}

func scanSkuRowFrom(row pgx.Row) (*models.SkuRow, error) {
	s := &models.SkuRow{}
	var tiersJSON []byte
	if err := row.Scan(&s.ID, &s.PartNumber, &s.Specs, &s.SellUnit, &s.SellQty,
		&s.InStock, &s.Price1Ea, &tiersJSON); err != nil {
		return nil, err
	}
	if len(tiersJSON) > 0 {
		if err := json.Unmarshal(tiersJSON, &s.PriceTiers); err != nil {
			return nil, err
		}
	}
	return s, nil
}
