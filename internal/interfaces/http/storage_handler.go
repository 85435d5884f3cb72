package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/application/usecase"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/pkg/validation"
)

// StorageHandler almacenes de la empresa activa.
type StorageHandler struct {
	uc *usecase.StorageUseCase
}

// NewStorageHandler construye el handler.
func NewStorageHandler(uc *usecase.StorageUseCase) *StorageHandler {
	return &StorageHandler{uc: uc}
}

func toStorageResponse(s *entity.InventoryStorage) dto.StorageResponse {
	return dto.StorageResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		Code:      s.Code,
		Name:      s.Name,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Create alta de almacén (code único por empresa).
func (h *StorageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStorageRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	storage, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "almacén creado", toStorageResponse(storage))
}

// GetByID obtiene un almacén de la empresa activa.
func (h *StorageHandler) GetByID(c *fiber.Ctx) error {
	storage, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "almacén", toStorageResponse(storage))
}

// Update actualiza un almacén (code inmutable).
func (h *StorageHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStorageRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	storage, err := h.uc.Update(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "almacén actualizado", toStorageResponse(storage))
}

// List almacenes de la empresa activa.
func (h *StorageHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	storages, err := h.uc.ListByCompany(GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StorageResponse, 0, len(storages))
	for _, s := range storages {
		out = append(out, toStorageResponse(s))
	}
	return respondOK(c, "almacenes", out)
}
