package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/pricing"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (entrada, salida, traslado) con bloqueo de fila (SELECT FOR UPDATE) sobre los
// saldos y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	variantRepo repository.VariantRepository
	itemRepo    repository.ItemRepository
	familyRepo  repository.FamilyRepository
	lotRepo     repository.LotRepository
	storageRepo repository.StorageRepository

	// allowNegative permite saldos negativos en salidas (política explícita de
	// configuración; por defecto la salida falla con stock insuficiente).
	allowNegative bool
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	variantRepo repository.VariantRepository,
	itemRepo repository.ItemRepository,
	familyRepo repository.FamilyRepository,
	lotRepo repository.LotRepository,
	storageRepo repository.StorageRepository,
	allowNegative bool,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		variantRepo:   variantRepo,
		itemRepo:      itemRepo,
		familyRepo:    familyRepo,
		lotRepo:       lotRepo,
		storageRepo:   storageRepo,
		allowNegative: allowNegative,
	}
}

// MovementInput entrada para registrar un movimiento.
// Entrada/salida: StorageID. Traslado: FromStorageID y ToStorageID.
// Quantity siempre positiva; la dirección la define Type.
type MovementInput struct {
	CompanyID     string
	UserID        string
	VariantID     string
	StorageID     string
	FromStorageID string
	ToStorageID   string
	LotID         string
	Type          int16
	Quantity      decimal.Decimal
	Reason        string
	RelatedDoc    string
}

// RegisterMovement valida la entrada, abre una transacción, bloquea los saldos
// afectados y asienta el movimiento. Devuelve el transaction_id de correlación
// (un traslado produce dos filas que lo comparten).
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (string, error) {
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return "", domain.ErrInvalidInput
	}

	switch input.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut:
		if input.VariantID == "" || input.StorageID == "" {
			return "", domain.ErrInvalidInput
		}
	case entity.MovementTypeTransfer:
		if input.VariantID == "" || input.FromStorageID == "" || input.ToStorageID == "" {
			return "", domain.ErrInvalidInput
		}
		if input.FromStorageID == input.ToStorageID {
			return "", domain.ErrInvalidInput
		}
	default:
		return "", domain.ErrInvalidInput
	}

	variant, err := uc.variantRepo.GetByID(input.VariantID)
	if err != nil {
		return "", err
	}
	if variant == nil {
		return "", domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(variant.ItemID)
	if err != nil {
		return "", err
	}
	// La variante debe pertenecer a un ítem activo y almacenable
	if item == nil || item.Status != entity.StatusActive || !item.IsStockable {
		return "", domain.ErrInvalidInput
	}

	family, err := uc.familyRepo.GetByID(item.FamilyID)
	if err != nil {
		return "", err
	}
	if family == nil {
		return "", domain.ErrNotFound
	}
	if family.CompanyID != input.CompanyID {
		return "", domain.ErrForbidden
	}

	if err := uc.checkStorages(input); err != nil {
		return "", err
	}

	if item.IsLotManaged && input.LotID == "" {
		return "", domain.ErrLotRequired
	}
	if input.LotID != "" {
		lot, err := uc.lotRepo.GetByID(input.LotID)
		if err != nil {
			return "", err
		}
		if lot == nil {
			return "", domain.ErrNotFound
		}
		if lot.VariantID != input.VariantID {
			return "", domain.ErrInvalidInput
		}
	}

	input.Quantity = input.Quantity.Round(pricing.AmountScale)
	now := time.Now()
	txID := uuid.New().String()

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balRepo repository.BalanceRepository,
	) error {
		switch input.Type {
		case entity.MovementTypeIn:
			return uc.doIn(movRepo, balRepo, input, input.StorageID, now, txID)
		case entity.MovementTypeOut:
			return uc.doOut(movRepo, balRepo, input, input.StorageID, now, txID)
		case entity.MovementTypeTransfer:
			return uc.doTransfer(movRepo, balRepo, input, now, txID)
		}
		return domain.ErrInvalidInput
	})
	if err != nil {
		return "", err
	}
	return txID, nil
}

// checkStorages valida que los almacenes existan, estén activos y sean de la empresa.
func (uc *RegisterMovementUseCase) checkStorages(input MovementInput) error {
	ids := []string{input.StorageID}
	if input.Type == entity.MovementTypeTransfer {
		ids = []string{input.FromStorageID, input.ToStorageID}
	}
	for _, id := range ids {
		st, err := uc.storageRepo.GetByID(id)
		if err != nil {
			return err
		}
		if st == nil || st.Status != entity.StatusActive {
			return domain.ErrNotFound
		}
		if st.CompanyID != input.CompanyID {
			return domain.ErrNotFound
		}
	}
	return nil
}

// doIn bloquea el saldo, captura stock_prev, suma la cantidad y asienta el movimiento.
func (uc *RegisterMovementUseCase) doIn(
	movRepo repository.MovementRepository,
	balRepo repository.BalanceRepository,
	input MovementInput,
	storageID string,
	now time.Time, txID string,
) error {
	bal, err := balRepo.GetVariantForUpdate(input.VariantID, storageID)
	if err != nil {
		return err
	}
	bal.StockPrev = bal.Stock
	bal.Stock = bal.Stock.Add(input.Quantity)
	bal.UpdatedAt = now
	if err := balRepo.UpsertVariant(bal); err != nil {
		return err
	}

	if input.LotID != "" {
		lotBal, err := balRepo.GetLotForUpdate(input.VariantID, input.LotID, storageID)
		if err != nil {
			return err
		}
		lotBal.StockPrev = lotBal.Stock
		lotBal.Stock = lotBal.Stock.Add(input.Quantity)
		lotBal.UpdatedAt = now
		if err := balRepo.UpsertLot(lotBal); err != nil {
			return err
		}
	}

	return movRepo.Create(uc.newMovement(input, storageID, entity.MovementTypeIn, now, txID))
}

// doOut bloquea el saldo, verifica la política de stock negativo, resta y asienta.
func (uc *RegisterMovementUseCase) doOut(
	movRepo repository.MovementRepository,
	balRepo repository.BalanceRepository,
	input MovementInput,
	storageID string,
	now time.Time, txID string,
) error {
	bal, err := balRepo.GetVariantForUpdate(input.VariantID, storageID)
	if err != nil {
		return err
	}
	if bal.Stock.LessThan(input.Quantity) && !uc.allowNegative {
		return domain.ErrInsufficientStock
	}
	bal.StockPrev = bal.Stock
	bal.Stock = bal.Stock.Sub(input.Quantity)
	bal.UpdatedAt = now
	if err := balRepo.UpsertVariant(bal); err != nil {
		return err
	}

	if input.LotID != "" {
		lotBal, err := balRepo.GetLotForUpdate(input.VariantID, input.LotID, storageID)
		if err != nil {
			return err
		}
		if lotBal.Stock.LessThan(input.Quantity) && !uc.allowNegative {
			return domain.ErrInsufficientStock
		}
		lotBal.StockPrev = lotBal.Stock
		lotBal.Stock = lotBal.Stock.Sub(input.Quantity)
		lotBal.UpdatedAt = now
		if err := balRepo.UpsertLot(lotBal); err != nil {
			return err
		}
	}

	return movRepo.Create(uc.newMovement(input, storageID, entity.MovementTypeOut, now, txID))
}

// doTransfer asienta el traslado como dos filas correlacionadas: salida en el
// almacén origen y entrada en el destino, todo en la misma transacción.
func (uc *RegisterMovementUseCase) doTransfer(
	movRepo repository.MovementRepository,
	balRepo repository.BalanceRepository,
	input MovementInput,
	now time.Time, txID string,
) error {
	if input.Reason == "" {
		input.Reason = "TRANSFER"
	}
	if err := uc.doOut(movRepo, balRepo, input, input.FromStorageID, now, txID); err != nil {
		return err
	}
	return uc.doIn(movRepo, balRepo, input, input.ToStorageID, now, txID)
}

func (uc *RegisterMovementUseCase) newMovement(
	input MovementInput, storageID string, movType int16, now time.Time, txID string,
) *entity.InventoryMovement {
	return &entity.InventoryMovement{
		ID:            uuid.New().String(),
		TransactionID: txID,
		StorageID:     storageID,
		VariantID:     input.VariantID,
		LotID:         input.LotID,
		Type:          movType,
		Quantity:      input.Quantity,
		Reason:        input.Reason,
		RelatedDoc:    input.RelatedDoc,
		UserID:        input.UserID,
		CreatedAt:     now,
	}
}
