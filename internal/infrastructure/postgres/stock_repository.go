package postgres

import (
	"context"
	"fmt"

	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo saldos denormalizados por variante/almacén y por lote
// (usable con pool o tx; los ForUpdate solo tienen sentido dentro de una tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx.
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

const balanceCols = `variant_id, storage_id, stock, stock_reserved, stock_committed, stock_prev, stock_min, updated_at`

func scanBalance(row interface{ Scan(...any) error }) (*entity.VariantStorage, error) {
	var b entity.VariantStorage
	err := row.Scan(&b.VariantID, &b.StorageID, &b.Stock, &b.StockReserved,
		&b.StockCommitted, &b.StockPrev, &b.StockMin, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetVariant saldo actual; fila en cero si aún no existe el par.
func (r *BalanceRepo) GetVariant(variantID, storageID string) (*entity.VariantStorage, error) {
	query := `SELECT ` + balanceCols + ` FROM inventory_variants_storages
		WHERE variant_id = $1 AND storage_id = $2`
	b, err := scanBalance(r.q.QueryRow(context.Background(), query, variantID, storageID))
	if err != nil {
		if isNoRows(err) {
			return &entity.VariantStorage{VariantID: variantID, StorageID: storageID}, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return b, nil
}

// GetVariantForUpdate saldo con bloqueo de fila (SELECT ... FOR UPDATE).
// Asegura primero la fila en cero: sin ella no habría nada que bloquear y dos
// primeros movimientos concurrentes sobre el mismo par se pisarían entre sí.
func (r *BalanceRepo) GetVariantForUpdate(variantID, storageID string) (*entity.VariantStorage, error) {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_variants_storages (variant_id, storage_id)
		VALUES ($1, $2)
		ON CONFLICT (variant_id, storage_id) DO NOTHING`, variantID, storageID)
	if err != nil {
		return nil, fmt.Errorf("ensure balance row: %w", err)
	}
	query := `SELECT ` + balanceCols + ` FROM inventory_variants_storages
		WHERE variant_id = $1 AND storage_id = $2
		FOR UPDATE`
	b, err := scanBalance(r.q.QueryRow(ctx, query, variantID, storageID))
	if err != nil {
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return b, nil
}

// UpsertVariant inserta o actualiza el saldo del par (variante, almacén).
func (r *BalanceRepo) UpsertVariant(balance *entity.VariantStorage) error {
	query := `
		INSERT INTO inventory_variants_storages (variant_id, storage_id, stock, stock_reserved, stock_committed, stock_prev, stock_min, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (variant_id, storage_id)
		DO UPDATE SET stock = EXCLUDED.stock, stock_reserved = EXCLUDED.stock_reserved,
			stock_committed = EXCLUDED.stock_committed, stock_prev = EXCLUDED.stock_prev,
			stock_min = EXCLUDED.stock_min, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		balance.VariantID, balance.StorageID, balance.Stock, balance.StockReserved,
		balance.StockCommitted, balance.StockPrev, balance.StockMin, balance.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// ListByStorage saldos de un almacén con paginación.
func (r *BalanceRepo) ListByStorage(storageID string, limit, offset int) ([]*entity.VariantStorage, error) {
	query := `SELECT ` + balanceCols + ` FROM inventory_variants_storages
		WHERE storage_id = $1 ORDER BY variant_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storageID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list balances by storage: %w", err)
	}
	defer rows.Close()

	var list []*entity.VariantStorage
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// ListByVariant saldos de una variante en todos los almacenes.
func (r *BalanceRepo) ListByVariant(variantID string) ([]*entity.VariantStorage, error) {
	query := `SELECT ` + balanceCols + ` FROM inventory_variants_storages
		WHERE variant_id = $1 ORDER BY storage_id`
	rows, err := r.q.Query(context.Background(), query, variantID)
	if err != nil {
		return nil, fmt.Errorf("list balances by variant: %w", err)
	}
	defer rows.Close()

	var list []*entity.VariantStorage
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// GetLotForUpdate saldo por lote con bloqueo de fila. Asegura la fila en cero
// antes de bloquear, igual que GetVariantForUpdate.
func (r *BalanceRepo) GetLotForUpdate(variantID, lotID, storageID string) (*entity.LotStorage, error) {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_lots_storages (variant_id, lot_id, storage_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (variant_id, lot_id, storage_id) DO NOTHING`, variantID, lotID, storageID)
	if err != nil {
		return nil, fmt.Errorf("ensure lot balance row: %w", err)
	}
	var b entity.LotStorage
	err = r.q.QueryRow(ctx, `
		SELECT variant_id, lot_id, storage_id, stock, stock_prev, updated_at
		FROM inventory_lots_storages
		WHERE variant_id = $1 AND lot_id = $2 AND storage_id = $3
		FOR UPDATE`, variantID, lotID, storageID).
		Scan(&b.VariantID, &b.LotID, &b.StorageID, &b.Stock, &b.StockPrev, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get lot balance for update: %w", err)
	}
	return &b, nil
}

// UpsertLot inserta o actualiza el saldo por (variante, lote, almacén).
func (r *BalanceRepo) UpsertLot(balance *entity.LotStorage) error {
	query := `
		INSERT INTO inventory_lots_storages (variant_id, lot_id, storage_id, stock, stock_prev, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (variant_id, lot_id, storage_id)
		DO UPDATE SET stock = EXCLUDED.stock, stock_prev = EXCLUDED.stock_prev, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		balance.VariantID, balance.LotID, balance.StorageID,
		balance.Stock, balance.StockPrev, balance.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert lot balance: %w", err)
	}
	return nil
}

// ListLotsByStorage saldos por lote de una variante en un almacén.
func (r *BalanceRepo) ListLotsByStorage(variantID, storageID string) ([]*entity.LotStorage, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT variant_id, lot_id, storage_id, stock, stock_prev, updated_at
		FROM inventory_lots_storages
		WHERE variant_id = $1 AND storage_id = $2 ORDER BY lot_id`, variantID, storageID)
	if err != nil {
		return nil, fmt.Errorf("list lot balances: %w", err)
	}
	defer rows.Close()

	var list []*entity.LotStorage
	for rows.Next() {
		var b entity.LotStorage
		if err := rows.Scan(&b.VariantID, &b.LotID, &b.StorageID, &b.Stock, &b.StockPrev, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lot balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos: solo inserción (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del libro.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementCols = `id, transaction_id, storage_id, variant_id, COALESCE(lot_id, ''), mov_type, quantity, reason, related_doc, user_id, created_at`

func scanMovement(row interface{ Scan(...any) error }) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	err := row.Scan(&m.ID, &m.TransactionID, &m.StorageID, &m.VariantID, &m.LotID,
		&m.Type, &m.Quantity, &m.Reason, &m.RelatedDoc, &m.UserID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create asienta un movimiento. La tabla no admite update ni delete.
func (r *MovementRepo) Create(mov *entity.InventoryMovement) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO inventory_movements (id, transaction_id, storage_id, variant_id, lot_id, mov_type, quantity, reason, related_doc, user_id, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11)`,
		mov.ID, mov.TransactionID, mov.StorageID, mov.VariantID, mov.LotID,
		mov.Type, mov.Quantity, mov.Reason, mov.RelatedDoc, mov.UserID, mov.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	query := `SELECT ` + movementCols + ` FROM inventory_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByVariant movimientos de una variante, más recientes primero.
func (r *MovementRepo) ListByVariant(variantID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementCols + ` FROM inventory_movements
		WHERE variant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.listMovements(query, variantID, limit, offset)
}

// ListByStorage movimientos de un almacén, más recientes primero.
func (r *MovementRepo) ListByStorage(storageID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementCols + ` FROM inventory_movements
		WHERE storage_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.listMovements(query, storageID, limit, offset)
}

func (r *MovementRepo) listMovements(query, id string, limit, offset int) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(context.Background(), query, id, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

var _ repository.StockReportRepository = (*StockReportRepo)(nil)

// StockReportRepo reporte agregado de existencias valorizadas.
type StockReportRepo struct {
	q Querier
}

// NewStockReportRepository construye el adaptador del reporte.
func NewStockReportRepository(q Querier) *StockReportRepo {
	return &StockReportRepo{q: q}
}

// StockByCompany existencias por almacén de la empresa, valorizadas con el
// costo vigente del snapshot de tipo general (cero si la variante no tiene
// snapshot). El join fija el tipo de precio: sin ese predicado, una variante
// con snapshots vigentes de varios tipos duplicaría filas del reporte.
func (r *StockReportRepo) StockByCompany(companyID string) ([]*repository.StockReportRow, error) {
	query := `
		SELECT s.id, s.name, v.id, v.sku, i.name,
			b.stock,
			COALESCE(p.cost_local, 0),
			b.stock * COALESCE(p.cost_local, 0)
		FROM inventory_variants_storages b
		JOIN inventory_storages s ON s.id = b.storage_id
		JOIN inventory_variants v ON v.id = b.variant_id
		JOIN inventory_items i ON i.id = v.item_id
		LEFT JOIN inventory_price_history p
			ON p.variant_id = v.id AND p.price_type = $2 AND p.is_current = true
		WHERE s.company_id = $1
		ORDER BY s.code, v.sku`
	rows, err := r.q.Query(context.Background(), query, companyID, entity.PriceTypeGeneral)
	if err != nil {
		return nil, fmt.Errorf("stock report: %w", err)
	}
	defer rows.Close()

	var list []*repository.StockReportRow
	for rows.Next() {
		var row repository.StockReportRow
		if err := rows.Scan(&row.StorageID, &row.StorageName, &row.VariantID, &row.SKU,
			&row.ItemName, &row.Stock, &row.UnitCost, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("scan stock report row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
