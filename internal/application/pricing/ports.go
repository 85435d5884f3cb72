package pricing

import (
	"context"

	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// ExchangeTxRunner ejecuta la actualización de tasa y el asiento de historial
// en una misma transacción: la tasa anterior nunca se pierde.
type ExchangeTxRunner interface {
	Run(ctx context.Context, fn func(
		excRepo repository.ExchangeRepository,
		histRepo repository.ExchangeHistoryRepository,
	) error) error
}

// PriceTxRunner ejecuta el desmarcado de la fila vigente y la inserción del
// snapshot nuevo en una misma transacción, conservando el invariante de una
// sola fila vigente por (variante, tipo de precio).
type PriceTxRunner interface {
	Run(ctx context.Context, fn func(
		priceRepo repository.PriceHistoryRepository,
	) error) error
}
