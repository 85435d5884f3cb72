package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación de VariantRepository sobre PostgreSQL.
type VariantRepo struct {
	pool *pgxpool.Pool
}

// NewVariantRepository construye el adaptador de variantes.
func NewVariantRepository(pool *pgxpool.Pool) *VariantRepo {
	return &VariantRepo{pool: pool}
}

const variantCols = `id, item_id, sku, name, status, created_at, updated_at`

func scanVariant(row interface{ Scan(...any) error }) (*entity.InventoryVariant, error) {
	var v entity.InventoryVariant
	err := row.Scan(&v.ID, &v.ItemID, &v.SKU, &v.Name, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste la variante y sus valores de atributo en una sola tx.
func (r *VariantRepo) Create(variant *entity.InventoryVariant, valueIDs []string) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO inventory_variants (id, item_id, sku, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		variant.ID, variant.ItemID, variant.SKU, variant.Name,
		variant.Status, variant.CreatedAt, variant.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert variant: %w", mapUnique(err))
	}
	if len(valueIDs) > 0 {
		_, err = tx.Exec(ctx, `
			INSERT INTO inventory_variants_attrs (variant_id, attr_value_id)
			SELECT $1, unnest($2::text[])`,
			variant.ID, valueIDs)
		if err != nil {
			return fmt.Errorf("insert variant attrs: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// GetByID obtiene una variante por ID.
func (r *VariantRepo) GetByID(id string) (*entity.InventoryVariant, error) {
	query := `SELECT ` + variantCols + ` FROM inventory_variants WHERE id = $1`
	v, err := scanVariant(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return v, nil
}

// GetBySKU obtiene una variante por (ítem, sku).
func (r *VariantRepo) GetBySKU(itemID, sku string) (*entity.InventoryVariant, error) {
	query := `SELECT ` + variantCols + ` FROM inventory_variants WHERE item_id = $1 AND sku = $2`
	v, err := scanVariant(r.pool.QueryRow(context.Background(), query, itemID, sku))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant by sku: %w", err)
	}
	return v, nil
}

// Update actualiza una variante (sku inmutable).
func (r *VariantRepo) Update(variant *entity.InventoryVariant) error {
	_, err := r.pool.Exec(context.Background(), `
		UPDATE inventory_variants SET name = $2, status = $3, updated_at = $4 WHERE id = $1`,
		variant.ID, variant.Name, variant.Status, variant.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	return nil
}

// ListByItem variantes de un ítem con paginación.
func (r *VariantRepo) ListByItem(itemID string, limit, offset int) ([]*entity.InventoryVariant, error) {
	query := `SELECT ` + variantCols + ` FROM inventory_variants
		WHERE item_id = $1 ORDER BY sku LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// SetAttrValues reemplazo idempotente de valores de atributo en una tx.
func (r *VariantRepo) SetAttrValues(variantID string, valueIDs []string) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`DELETE FROM inventory_variants_attrs WHERE variant_id = $1 AND attr_value_id != ALL($2)`,
		variantID, valueIDs)
	if err != nil {
		return fmt.Errorf("delete variant attrs: %w", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO inventory_variants_attrs (variant_id, attr_value_id)
		SELECT $1, unnest($2::text[])
		ON CONFLICT (variant_id, attr_value_id) DO NOTHING`,
		variantID, valueIDs)
	if err != nil {
		return fmt.Errorf("insert variant attrs: %w", err)
	}
	return tx.Commit(ctx)
}

// ListAttrValueIDs valores de atributo de la variante.
func (r *VariantRepo) ListAttrValueIDs(variantID string) ([]string, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT attr_value_id FROM inventory_variants_attrs WHERE variant_id = $1`, variantID)
	if err != nil {
		return nil, fmt.Errorf("list variant attrs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan attr value id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
