package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvillegas/multierp-api/internal/application/inventory"
	"github.com/dvillegas/multierp-api/internal/application/pricing"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el asiento de movimientos dentro de una transacción
// PostgreSQL, con los repos del libro atados a la tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	balRepo repository.BalanceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMovementRepository(tx), NewBalanceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

var _ pricing.ExchangeTxRunner = (*ExchangeTxRunner)(nil)

// ExchangeTxRunner transacción para actualizar tasa + asentar historial.
type ExchangeTxRunner struct {
	pool *pgxpool.Pool
}

// NewExchangeTxRunner construye el runner de tasas.
func NewExchangeTxRunner(pool *pgxpool.Pool) *ExchangeTxRunner {
	return &ExchangeTxRunner{pool: pool}
}

// Run ejecuta fn con los repos de tasas atados a una misma tx.
func (r *ExchangeTxRunner) Run(ctx context.Context, fn func(
	excRepo repository.ExchangeRepository,
	histRepo repository.ExchangeHistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewExchangeRepository(tx), NewExchangeHistoryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

var _ pricing.PriceTxRunner = (*PriceTxRunner)(nil)

// PriceTxRunner transacción para desmarcar el snapshot vigente e insertar el nuevo.
type PriceTxRunner struct {
	pool *pgxpool.Pool
}

// NewPriceTxRunner construye el runner de precios.
func NewPriceTxRunner(pool *pgxpool.Pool) *PriceTxRunner {
	return &PriceTxRunner{pool: pool}
}

// Run ejecuta fn con el repo de precios atado a una tx.
func (r *PriceTxRunner) Run(ctx context.Context, fn func(
	priceRepo repository.PriceHistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPriceHistoryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
