package repository

import "github.com/dvillegas/multierp-api/internal/domain/entity"

// PriceHistoryRepository snapshots de precios por variante y tipo de precio.
// Las filas históricas no se editan; solo se desmarca IsCurrent al insertar
// el snapshot que lo reemplaza.
type PriceHistoryRepository interface {
	Insert(snapshot *entity.InventoryPriceHistory) error
	// ClearCurrent desmarca la fila vigente del par (variante, tipo) y devuelve
	// cuántas filas desmarcó. Debe ejecutarse dentro de la misma transacción
	// que el Insert para conservar el invariante de una sola fila vigente.
	ClearCurrent(variantID string, priceType int16) (int64, error)
	GetCurrent(variantID string, priceType int16) (*entity.InventoryPriceHistory, error)
	ListByVariant(variantID string, limit, offset int) ([]*entity.InventoryPriceHistory, error)
}
