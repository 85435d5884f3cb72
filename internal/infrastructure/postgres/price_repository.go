package postgres

import (
	"context"
	"fmt"

	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

// PriceHistoryRepo snapshots de precios por variante (usable con pool o tx).
// ClearCurrent + Insert deben correr en la misma tx; el índice único parcial
// sobre (variant_id, price_type) WHERE is_current respalda el invariante.
type PriceHistoryRepo struct {
	q Querier
}

// NewPriceHistoryRepository construye el adaptador de snapshots de precios.
func NewPriceHistoryRepository(q Querier) *PriceHistoryRepo {
	return &PriceHistoryRepo{q: q}
}

const priceCols = `id, variant_id, price_type, price_local, price_stable, price_ref,
	tax_amount_local, cost_local, cost_stable, cost_ref, profit_local, profit_stable, profit_ref,
	local_currency_id, stable_currency_id, ref_currency_id, is_current, valid_from, user_id, created_at`

func scanPrice(row interface{ Scan(...any) error }) (*entity.InventoryPriceHistory, error) {
	var p entity.InventoryPriceHistory
	err := row.Scan(&p.ID, &p.VariantID, &p.PriceType, &p.PriceLocal, &p.PriceStable, &p.PriceRef,
		&p.TaxAmountLocal, &p.CostLocal, &p.CostStable, &p.CostRef,
		&p.ProfitLocal, &p.ProfitStable, &p.ProfitRef,
		&p.LocalCurrencyID, &p.StableCurrencyID, &p.RefCurrencyID,
		&p.IsCurrent, &p.ValidFrom, &p.UserID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert asienta un snapshot. Las filas nunca se editan.
func (r *PriceHistoryRepo) Insert(snapshot *entity.InventoryPriceHistory) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO inventory_price_history (id, variant_id, price_type, price_local, price_stable, price_ref,
			tax_amount_local, cost_local, cost_stable, cost_ref, profit_local, profit_stable, profit_ref,
			local_currency_id, stable_currency_id, ref_currency_id, is_current, valid_from, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		snapshot.ID, snapshot.VariantID, snapshot.PriceType,
		snapshot.PriceLocal, snapshot.PriceStable, snapshot.PriceRef,
		snapshot.TaxAmountLocal, snapshot.CostLocal, snapshot.CostStable, snapshot.CostRef,
		snapshot.ProfitLocal, snapshot.ProfitStable, snapshot.ProfitRef,
		snapshot.LocalCurrencyID, snapshot.StableCurrencyID, snapshot.RefCurrencyID,
		snapshot.IsCurrent, snapshot.ValidFrom, snapshot.UserID, snapshot.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert price snapshot: %w", mapUnique(err))
	}
	return nil
}

// ClearCurrent desmarca la fila vigente del par (variante, tipo).
func (r *PriceHistoryRepo) ClearCurrent(variantID string, priceType int16) (int64, error) {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE inventory_price_history SET is_current = false
		WHERE variant_id = $1 AND price_type = $2 AND is_current`,
		variantID, priceType)
	if err != nil {
		return 0, fmt.Errorf("clear current price: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetCurrent snapshot vigente del par (variante, tipo); nil si no hay.
func (r *PriceHistoryRepo) GetCurrent(variantID string, priceType int16) (*entity.InventoryPriceHistory, error) {
	query := `SELECT ` + priceCols + ` FROM inventory_price_history
		WHERE variant_id = $1 AND price_type = $2 AND is_current`
	p, err := scanPrice(r.q.QueryRow(context.Background(), query, variantID, priceType))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get current price: %w", err)
	}
	return p, nil
}

// ListByVariant historial completo de la variante, más reciente primero.
func (r *PriceHistoryRepo) ListByVariant(variantID string, limit, offset int) ([]*entity.InventoryPriceHistory, error) {
	query := `SELECT ` + priceCols + ` FROM inventory_price_history
		WHERE variant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, variantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryPriceHistory
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price snapshot: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
