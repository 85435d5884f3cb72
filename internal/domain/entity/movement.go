package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario. La cantidad siempre es positiva;
// la dirección la da el tipo, no el signo.
const (
	MovementTypeIn       int16 = 1
	MovementTypeOut      int16 = 2
	MovementTypeTransfer int16 = 3
)

// InventoryMovement asiento inmutable del libro de inventario.
// Un traslado se persiste como dos filas (salida en origen, entrada en destino)
// que comparten TransactionID, porque cada fila referencia un solo almacén.
type InventoryMovement struct {
	ID            string
	TransactionID string // correlación: traslados y operaciones compuestas
	StorageID     string
	VariantID     string
	LotID         string // "" si el ítem no maneja lotes
	Type          int16
	Quantity      decimal.Decimal // > 0, 3 decimales
	Reason        string
	RelatedDoc    string
	UserID        string
	CreatedAt     time.Time
}
