package inventory

import (
	"context"

	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del libro de inventario:
// el movimiento y el ajuste de saldos se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		balRepo repository.BalanceRepository,
	) error) error
}
