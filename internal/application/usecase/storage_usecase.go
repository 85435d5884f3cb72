package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// StorageUseCase almacenes de la empresa.
type StorageUseCase struct {
	storageRepo repository.StorageRepository
}

// NewStorageUseCase construye el caso de uso de almacenes.
func NewStorageUseCase(storageRepo repository.StorageRepository) *StorageUseCase {
	return &StorageUseCase{storageRepo: storageRepo}
}

// Create alta de almacén. Code único por empresa.
func (uc *StorageUseCase) Create(companyID string, req dto.CreateStorageRequest) (*entity.InventoryStorage, error) {
	existing, err := uc.storageRepo.GetByCode(companyID, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	storage := &entity.InventoryStorage{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Code:      req.Code,
		Name:      req.Name,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.storageRepo.Create(storage); err != nil {
		return nil, err
	}
	return storage, nil
}

// GetByID devuelve un almacén validando pertenencia a la empresa.
func (uc *StorageUseCase) GetByID(companyID, id string) (*entity.InventoryStorage, error) {
	storage, err := uc.storageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if storage == nil {
		return nil, domain.ErrNotFound
	}
	if storage.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return storage, nil
}

// Update actualización parcial. Code es inmutable.
func (uc *StorageUseCase) Update(companyID, id string, req dto.UpdateStorageRequest) (*entity.InventoryStorage, error) {
	storage, err := uc.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		storage.Name = *req.Name
	}
	if req.Status != nil {
		storage.Status = *req.Status
	}
	storage.UpdatedAt = time.Now()
	if err := uc.storageRepo.Update(storage); err != nil {
		return nil, err
	}
	return storage, nil
}

// ListByCompany almacenes de la empresa.
func (uc *StorageUseCase) ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryStorage, error) {
	return uc.storageRepo.ListByCompany(companyID, limit, offset)
}
