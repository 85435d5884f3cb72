package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dvillegas/multierp-api/internal/domain/entity"
)

// BalanceRepository saldos denormalizados por (variante, almacén) y (variante, lote, almacén).
// Los Get* devuelven una fila en cero cuando aún no existe saldo para el par.
// Los *ForUpdate bloquean la fila (SELECT ... FOR UPDATE) para serializar
// movimientos concurrentes sobre el mismo saldo.
type BalanceRepository interface {
	GetVariant(variantID, storageID string) (*entity.VariantStorage, error)
	GetVariantForUpdate(variantID, storageID string) (*entity.VariantStorage, error)
	UpsertVariant(balance *entity.VariantStorage) error
	ListByStorage(storageID string, limit, offset int) ([]*entity.VariantStorage, error)
	ListByVariant(variantID string) ([]*entity.VariantStorage, error)

	GetLotForUpdate(variantID, lotID, storageID string) (*entity.LotStorage, error)
	UpsertLot(balance *entity.LotStorage) error
	ListLotsByStorage(variantID, storageID string) ([]*entity.LotStorage, error)
}

// MovementRepository libro de movimientos: solo inserción, nunca update ni delete.
// Las correcciones se asientan como movimientos compensatorios nuevos.
type MovementRepository interface {
	Create(mov *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	ListByVariant(variantID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByStorage(storageID string, limit, offset int) ([]*entity.InventoryMovement, error)
}

// StockReportRow fila agregada del reporte de stock valorizado por almacén.
type StockReportRow struct {
	StorageID   string
	StorageName string
	VariantID   string
	SKU         string
	ItemName    string
	Stock       decimal.Decimal
	UnitCost    decimal.Decimal
	TotalValue  decimal.Decimal
}

// StockReportRepository consulta agregada de existencias valorizadas de una empresa.
type StockReportRepository interface {
	StockByCompany(companyID string) ([]*StockReportRow, error)
}
