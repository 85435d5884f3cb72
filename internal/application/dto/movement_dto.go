package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/v1/inventory/movements.
// Para entrada/salida: id_inv_storage; para traslado: from/to.
// La cantidad siempre es positiva; la dirección la define inv_mov_type.
type RegisterMovementRequest struct {
	VariantID     string          `json:"inv_var_id" validate:"required"`
	StorageID     string          `json:"id_inv_storage"`
	FromStorageID string          `json:"from_inv_storage"`
	ToStorageID   string          `json:"to_inv_storage"`
	LotID         string          `json:"inv_lot_id"`
	Type          int16           `json:"inv_mov_type" validate:"required,oneof=1 2 3"`
	Quantity      decimal.Decimal `json:"inv_mov_quantity" validate:"required"`
	Reason        string          `json:"inv_mov_reason" validate:"omitempty,max=200"`
	RelatedDoc    string          `json:"inv_mov_related_doc" validate:"omitempty,max=100"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID            string          `json:"inv_mov_id"`
	TransactionID string          `json:"transaction_id"`
	StorageID     string          `json:"id_inv_storage"`
	VariantID     string          `json:"inv_var_id"`
	LotID         string          `json:"inv_lot_id,omitempty"`
	Type          int16           `json:"inv_mov_type"`
	Quantity      decimal.Decimal `json:"inv_mov_quantity"`
	Reason        string          `json:"inv_mov_reason,omitempty"`
	RelatedDoc    string          `json:"inv_mov_related_doc,omitempty"`
	UserID        string          `json:"user_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// StockResponse saldo de una variante en un almacén.
type StockResponse struct {
	VariantID      string          `json:"inv_var_id"`
	StorageID      string          `json:"id_inv_storage"`
	Stock          decimal.Decimal `json:"stock"`
	StockReserved  decimal.Decimal `json:"stock_reserved"`
	StockCommitted decimal.Decimal `json:"stock_committed"`
	StockPrev      decimal.Decimal `json:"stock_prev"`
	StockMin       decimal.Decimal `json:"stock_min"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// StockReportRowResponse fila del reporte de existencias valorizadas.
type StockReportRowResponse struct {
	StorageID   string          `json:"id_inv_storage"`
	StorageName string          `json:"inv_storage_name"`
	VariantID   string          `json:"inv_var_id"`
	SKU         string          `json:"inv_var_sku"`
	ItemName    string          `json:"inv_item_name"`
	Stock       decimal.Decimal `json:"stock"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalValue  decimal.Decimal `json:"total_value"`
}
