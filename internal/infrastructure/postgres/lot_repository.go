package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL.
type LotRepo struct {
	pool *pgxpool.Pool
}

// NewLotRepository construye el adaptador de lotes.
func NewLotRepository(pool *pgxpool.Pool) *LotRepo {
	return &LotRepo{pool: pool}
}

const lotCols = `id, variant_id, lot_number, lot_origin, manufacture_date, expiration_date,
	unit_cost, ref_unit_cost, COALESCE(currency_id, ''), COALESCE(ref_currency_id, ''),
	status, created_at, updated_at`

func scanLot(row interface{ Scan(...any) error }) (*entity.InventoryLot, error) {
	var l entity.InventoryLot
	err := row.Scan(&l.ID, &l.VariantID, &l.LotNumber, &l.LotOrigin,
		&l.ManufactureDate, &l.ExpirationDate, &l.UnitCost, &l.RefUnitCost,
		&l.CurrencyID, &l.RefCurrencyID, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste un lote.
func (r *LotRepo) Create(lot *entity.InventoryLot) error {
	_, err := r.pool.Exec(context.Background(), `
		INSERT INTO inventory_lots (id, variant_id, lot_number, lot_origin, manufacture_date, expiration_date,
			unit_cost, ref_unit_cost, currency_id, ref_currency_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''), $11, $12, $13)`,
		lot.ID, lot.VariantID, lot.LotNumber, lot.LotOrigin,
		lot.ManufactureDate, lot.ExpirationDate, lot.UnitCost, lot.RefUnitCost,
		lot.CurrencyID, lot.RefCurrencyID, lot.Status, lot.CreatedAt, lot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert lot: %w", mapUnique(err))
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(id string) (*entity.InventoryLot, error) {
	query := `SELECT ` + lotCols + ` FROM inventory_lots WHERE id = $1`
	l, err := scanLot(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return l, nil
}

// GetByNumber obtiene un lote por (variante, número de lote).
func (r *LotRepo) GetByNumber(variantID, lotNumber string) (*entity.InventoryLot, error) {
	query := `SELECT ` + lotCols + ` FROM inventory_lots WHERE variant_id = $1 AND lot_number = $2`
	l, err := scanLot(r.pool.QueryRow(context.Background(), query, variantID, lotNumber))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot by number: %w", err)
	}
	return l, nil
}

// Update actualiza un lote (lot_number inmutable).
func (r *LotRepo) Update(lot *entity.InventoryLot) error {
	_, err := r.pool.Exec(context.Background(), `
		UPDATE inventory_lots SET lot_origin = $2, manufacture_date = $3, expiration_date = $4,
			unit_cost = $5, ref_unit_cost = $6, status = $7, updated_at = $8
		WHERE id = $1`,
		lot.ID, lot.LotOrigin, lot.ManufactureDate, lot.ExpirationDate,
		lot.UnitCost, lot.RefUnitCost, lot.Status, lot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update lot: %w", err)
	}
	return nil
}

// Delete borrado físico del lote.
func (r *LotRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM inventory_lots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lot: %w", err)
	}
	return nil
}

// ListByVariant lotes de la variante con paginación.
func (r *LotRepo) ListByVariant(variantID string, limit, offset int) ([]*entity.InventoryLot, error) {
	query := `SELECT ` + lotCols + ` FROM inventory_lots
		WHERE variant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, variantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryLot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
