package inventory

import (
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura sobre saldos y movimientos.
// Toda consulta valida que el recurso pertenezca a la empresa de la sesión:
// los almacenes directamente, las variantes vía ítem → familia.
type StockQueryUseCase struct {
	balanceRepo  repository.BalanceRepository
	movementRepo repository.MovementRepository
	storageRepo  repository.StorageRepository
	reportRepo   repository.StockReportRepository
	variantRepo  repository.VariantRepository
	itemRepo     repository.ItemRepository
	familyRepo   repository.FamilyRepository
}

// NewStockQueryUseCase construye el caso de uso de consultas.
func NewStockQueryUseCase(
	balanceRepo repository.BalanceRepository,
	movementRepo repository.MovementRepository,
	storageRepo repository.StorageRepository,
	reportRepo repository.StockReportRepository,
	variantRepo repository.VariantRepository,
	itemRepo repository.ItemRepository,
	familyRepo repository.FamilyRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		balanceRepo:  balanceRepo,
		movementRepo: movementRepo,
		storageRepo:  storageRepo,
		reportRepo:   reportRepo,
		variantRepo:  variantRepo,
		itemRepo:     itemRepo,
		familyRepo:   familyRepo,
	}
}

// GetStock saldo actual de una variante en un almacén (fila en cero si no hay movimientos).
func (uc *StockQueryUseCase) GetStock(companyID, variantID, storageID string) (*entity.VariantStorage, error) {
	if err := uc.checkVariantCompany(companyID, variantID); err != nil {
		return nil, err
	}
	return uc.balanceRepo.GetVariant(variantID, storageID)
}

// ListStockByStorage saldos de un almacén, validando pertenencia a la empresa.
func (uc *StockQueryUseCase) ListStockByStorage(companyID, storageID string, limit, offset int) ([]*entity.VariantStorage, error) {
	if err := uc.checkStorageCompany(companyID, storageID); err != nil {
		return nil, err
	}
	return uc.balanceRepo.ListByStorage(storageID, limit, offset)
}

// ListStockByVariant saldos de una variante en todos los almacenes.
func (uc *StockQueryUseCase) ListStockByVariant(companyID, variantID string) ([]*entity.VariantStorage, error) {
	if err := uc.checkVariantCompany(companyID, variantID); err != nil {
		return nil, err
	}
	return uc.balanceRepo.ListByVariant(variantID)
}

// ListMovementsByVariant movimientos del libro para una variante.
func (uc *StockQueryUseCase) ListMovementsByVariant(companyID, variantID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	if err := uc.checkVariantCompany(companyID, variantID); err != nil {
		return nil, err
	}
	return uc.movementRepo.ListByVariant(variantID, limit, offset)
}

// ListMovementsByStorage movimientos del libro para un almacén.
func (uc *StockQueryUseCase) ListMovementsByStorage(companyID, storageID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	if err := uc.checkStorageCompany(companyID, storageID); err != nil {
		return nil, err
	}
	return uc.movementRepo.ListByStorage(storageID, limit, offset)
}

// StockReport existencias valorizadas por almacén para la empresa.
func (uc *StockQueryUseCase) StockReport(companyID string) ([]*repository.StockReportRow, error) {
	return uc.reportRepo.StockByCompany(companyID)
}

func (uc *StockQueryUseCase) checkStorageCompany(companyID, storageID string) error {
	st, err := uc.storageRepo.GetByID(storageID)
	if err != nil {
		return err
	}
	if st == nil {
		return domain.ErrNotFound
	}
	if st.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}

func (uc *StockQueryUseCase) checkVariantCompany(companyID, variantID string) error {
	variant, err := uc.variantRepo.GetByID(variantID)
	if err != nil {
		return err
	}
	if variant == nil {
		return domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(variant.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	family, err := uc.familyRepo.GetByID(item.FamilyID)
	if err != nil {
		return err
	}
	if family == nil {
		return domain.ErrNotFound
	}
	if family.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}
