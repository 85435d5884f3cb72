package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/application/inventory"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/pkg/validation"
)

// MovementHandler libro de movimientos y consultas de stock.
type MovementHandler struct {
	register *inventory.RegisterMovementUseCase
	query    *inventory.StockQueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(register *inventory.RegisterMovementUseCase, query *inventory.StockQueryUseCase) *MovementHandler {
	return &MovementHandler{register: register, query: query}
}

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		StorageID:     m.StorageID,
		VariantID:     m.VariantID,
		LotID:         m.LotID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		Reason:        m.Reason,
		RelatedDoc:    m.RelatedDoc,
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
	}
}

func toStockResponse(b *entity.VariantStorage) dto.StockResponse {
	return dto.StockResponse{
		VariantID:      b.VariantID,
		StorageID:      b.StorageID,
		Stock:          b.Stock,
		StockReserved:  b.StockReserved,
		StockCommitted: b.StockCommitted,
		StockPrev:      b.StockPrev,
		StockMin:       b.StockMin,
		UpdatedAt:      b.UpdatedAt,
	}
}

// Register godoc
// @Summary      Registrar movimiento de inventario
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Entrada (1), salida (2) o traslado (3)"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Failure      409   {object}  dto.Response
// @Router       /api/v1/inventory/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	txID, err := h.register.RegisterMovement(c.Context(), inventory.MovementInput{
		CompanyID:     GetCompanyID(c),
		UserID:        GetUserID(c),
		VariantID:     in.VariantID,
		StorageID:     in.StorageID,
		FromStorageID: in.FromStorageID,
		ToStorageID:   in.ToStorageID,
		LotID:         in.LotID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		Reason:        in.Reason,
		RelatedDoc:    in.RelatedDoc,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "movimiento registrado", fiber.Map{"transaction_id": txID})
}

// ListByVariant movimientos del libro para una variante, más recientes primero.
func (h *MovementHandler) ListByVariant(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	movements, err := h.query.ListMovementsByVariant(GetCompanyID(c), c.Params("variantId"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return respondOK(c, "movimientos", out)
}

// ListByStorage movimientos del libro para un almacén de la empresa activa.
func (h *MovementHandler) ListByStorage(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	movements, err := h.query.ListMovementsByStorage(GetCompanyID(c), c.Params("storageId"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return respondOK(c, "movimientos", out)
}

// GetStock saldo de una variante en un almacén (cero si nunca hubo movimientos).
func (h *MovementHandler) GetStock(c *fiber.Ctx) error {
	balance, err := h.query.GetStock(GetCompanyID(c), c.Params("variantId"), c.Params("storageId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "saldo", toStockResponse(balance))
}

// ListStockByStorage saldos de todas las variantes de un almacén.
func (h *MovementHandler) ListStockByStorage(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	balances, err := h.query.ListStockByStorage(GetCompanyID(c), c.Params("storageId"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, toStockResponse(b))
	}
	return respondOK(c, "saldos del almacén", out)
}

// ListStockByVariant saldos de una variante en todos los almacenes.
func (h *MovementHandler) ListStockByVariant(c *fiber.Ctx) error {
	balances, err := h.query.ListStockByVariant(GetCompanyID(c), c.Params("variantId"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, toStockResponse(b))
	}
	return respondOK(c, "saldos de la variante", out)
}

// StockReport existencias valorizadas por almacén de la empresa activa.
func (h *MovementHandler) StockReport(c *fiber.Ctx) error {
	rows, err := h.query.StockReport(GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockReportRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockReportRowResponse{
			StorageID:   r.StorageID,
			StorageName: r.StorageName,
			VariantID:   r.VariantID,
			SKU:         r.SKU,
			ItemName:    r.ItemName,
			Stock:       r.Stock,
			UnitCost:    r.UnitCost,
			TotalValue:  r.TotalValue,
		})
	}
	return respondOK(c, "reporte de existencias", out)
}
