package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	pool *pgxpool.Pool
}

// NewItemRepository construye el adaptador de ítems.
func NewItemRepository(pool *pgxpool.Pool) *ItemRepo {
	return &ItemRepo{pool: pool}
}

const itemCols = `id, family_id, code, name, description, item_type, has_variants, is_exempt, is_stockable, is_lot_managed, status, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	err := row.Scan(&i.ID, &i.FamilyID, &i.Code, &i.Name, &i.Description, &i.Type,
		&i.HasVariants, &i.IsExempt, &i.IsStockable, &i.IsLotManaged,
		&i.Status, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create persiste el ítem y su asociación de impuestos en una sola tx.
func (r *ItemRepo) Create(item *entity.InventoryItem, taxIDs []string) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO inventory_items (id, family_id, code, name, description, item_type, has_variants, is_exempt, is_stockable, is_lot_managed, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		item.ID, item.FamilyID, item.Code, item.Name, item.Description, item.Type,
		item.HasVariants, item.IsExempt, item.IsStockable, item.IsLotManaged,
		item.Status, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert item: %w", mapUnique(err))
	}
	if len(taxIDs) > 0 {
		_, err = tx.Exec(ctx, `
			INSERT INTO inventory_items_taxes (item_id, tax_id)
			SELECT $1, unnest($2::text[])`,
			item.ID, taxIDs)
		if err != nil {
			return fmt.Errorf("insert item taxes: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemCols + ` FROM inventory_items WHERE id = $1`
	i, err := scanItem(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return i, nil
}

// GetByCode obtiene un ítem por (familia, código).
func (r *ItemRepo) GetByCode(familyID, code string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemCols + ` FROM inventory_items WHERE family_id = $1 AND code = $2`
	i, err := scanItem(r.pool.QueryRow(context.Background(), query, familyID, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by code: %w", err)
	}
	return i, nil
}

// Update actualiza un ítem (code y family_id inmutables).
func (r *ItemRepo) Update(item *entity.InventoryItem) error {
	_, err := r.pool.Exec(context.Background(), `
		UPDATE inventory_items SET name = $2, description = $3, is_exempt = $4,
			status = $5, updated_at = $6
		WHERE id = $1`,
		item.ID, item.Name, item.Description, item.IsExempt, item.Status, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// ListByFamily ítems de la familia con paginación.
func (r *ItemRepo) ListByFamily(familyID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemCols + ` FROM inventory_items
		WHERE family_id = $1 ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, familyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryItem
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// SetTaxes reemplazo idempotente de los impuestos del ítem en una tx.
func (r *ItemRepo) SetTaxes(itemID string, taxIDs []string) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`DELETE FROM inventory_items_taxes WHERE item_id = $1 AND tax_id != ALL($2)`,
		itemID, taxIDs)
	if err != nil {
		return fmt.Errorf("delete item taxes: %w", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO inventory_items_taxes (item_id, tax_id)
		SELECT $1, unnest($2::text[])
		ON CONFLICT (item_id, tax_id) DO NOTHING`,
		itemID, taxIDs)
	if err != nil {
		return fmt.Errorf("insert item taxes: %w", err)
	}
	return tx.Commit(ctx)
}

// ListTaxIDs impuestos asociados al ítem.
func (r *ItemRepo) ListTaxIDs(itemID string) ([]string, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT tax_id FROM inventory_items_taxes WHERE item_id = $1`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list item taxes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan tax id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
