package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryStorage ubicación física de stock (almacén/depósito). Code único por empresa.
type InventoryStorage struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Status    int16
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VariantStorage saldo actual de una variante en un almacén (fila denormalizada,
// una por par variante/almacén, mantenida desde los movimientos).
// StockPrev guarda el saldo inmediatamente anterior al último movimiento aplicado.
type VariantStorage struct {
	VariantID      string
	StorageID      string
	Stock          decimal.Decimal
	StockReserved  decimal.Decimal
	StockCommitted decimal.Decimal
	StockPrev      decimal.Decimal
	StockMin       decimal.Decimal
	UpdatedAt      time.Time
}

// LotStorage saldo por (variante, lote, almacén) cuando el ítem maneja lotes.
type LotStorage struct {
	VariantID string
	LotID     string
	StorageID string
	Stock     decimal.Decimal
	StockPrev decimal.Decimal
	UpdatedAt time.Time
}
