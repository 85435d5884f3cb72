package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	domainpricing "github.com/dvillegas/multierp-api/internal/domain/pricing"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// PriceUseCase snapshots de precios por variante. Los montos entran en moneda
// local y se derivan las vistas estable y referencia con las tasas activas de
// la empresa. Cada snapshot desmarca al vigente anterior en la misma tx.
type PriceUseCase struct {
	txRunner     PriceTxRunner
	priceRepo    repository.PriceHistoryRepository
	exchangeRepo repository.ExchangeRepository
	variantRepo  repository.VariantRepository
	itemRepo     repository.ItemRepository
	familyRepo   repository.FamilyRepository
}

// NewPriceUseCase construye el caso de uso de precios.
func NewPriceUseCase(
	txRunner PriceTxRunner,
	priceRepo repository.PriceHistoryRepository,
	exchangeRepo repository.ExchangeRepository,
	variantRepo repository.VariantRepository,
	itemRepo repository.ItemRepository,
	familyRepo repository.FamilyRepository,
) *PriceUseCase {
	return &PriceUseCase{
		txRunner:     txRunner,
		priceRepo:    priceRepo,
		exchangeRepo: exchangeRepo,
		variantRepo:  variantRepo,
		itemRepo:     itemRepo,
		familyRepo:   familyRepo,
	}
}

// SnapshotPrice inserta un snapshot vigente para (variante, tipo de precio).
// Requiere las tres configuraciones cambiarias activas de la empresa.
func (uc *PriceUseCase) SnapshotPrice(ctx context.Context, companyID, userID string, req dto.SnapshotPriceRequest) (*entity.InventoryPriceHistory, error) {
	if req.PriceLocal.IsNegative() || req.CostLocal.IsNegative() || req.TaxAmountLocal.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	if err := uc.checkVariantCompany(req.VariantID, companyID); err != nil {
		return nil, err
	}

	local, err := uc.activeExchange(companyID, entity.ExchangeTypeLocal)
	if err != nil {
		return nil, err
	}
	stable, err := uc.activeExchange(companyID, entity.ExchangeTypeStable)
	if err != nil {
		return nil, err
	}
	ref, err := uc.activeExchange(companyID, entity.ExchangeTypeRef)
	if err != nil {
		return nil, err
	}

	priceLocal := req.PriceLocal.Round(domainpricing.AmountScale)
	costLocal := req.CostLocal.Round(domainpricing.AmountScale)
	taxLocal := req.TaxAmountLocal.Round(domainpricing.AmountScale)

	priceStable, err := domainpricing.ConvertWith(priceLocal, stable)
	if err != nil {
		return nil, err
	}
	priceRef, err := domainpricing.ConvertWith(priceLocal, ref)
	if err != nil {
		return nil, err
	}
	costStable, err := domainpricing.ConvertWith(costLocal, stable)
	if err != nil {
		return nil, err
	}
	costRef, err := domainpricing.ConvertWith(costLocal, ref)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	snapshot := &entity.InventoryPriceHistory{
		ID:               uuid.New().String(),
		VariantID:        req.VariantID,
		PriceType:        req.PriceType,
		PriceLocal:       priceLocal,
		PriceStable:      priceStable,
		PriceRef:         priceRef,
		TaxAmountLocal:   taxLocal,
		CostLocal:        costLocal,
		CostStable:       costStable,
		CostRef:          costRef,
		ProfitLocal:      priceLocal.Sub(costLocal),
		ProfitStable:     priceStable.Sub(costStable),
		ProfitRef:        priceRef.Sub(costRef),
		LocalCurrencyID:  local.CurrencyID,
		StableCurrencyID: stable.CurrencyID,
		RefCurrencyID:    ref.CurrencyID,
		IsCurrent:        true,
		ValidFrom:        now,
		UserID:           userID,
		CreatedAt:        now,
	}

	err = uc.txRunner.Run(ctx, func(priceRepo repository.PriceHistoryRepository) error {
		if _, err := priceRepo.ClearCurrent(req.VariantID, req.PriceType); err != nil {
			return err
		}
		return priceRepo.Insert(snapshot)
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// GetCurrent snapshot vigente para (variante, tipo de precio).
func (uc *PriceUseCase) GetCurrent(companyID, variantID string, priceType int16) (*entity.InventoryPriceHistory, error) {
	if err := uc.checkVariantCompany(variantID, companyID); err != nil {
		return nil, err
	}
	snap, err := uc.priceRepo.GetCurrent(variantID, priceType)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, domain.ErrNotFound
	}
	return snap, nil
}

// ListByVariant historial completo de snapshots de la variante.
func (uc *PriceUseCase) ListByVariant(companyID, variantID string, limit, offset int) ([]*entity.InventoryPriceHistory, error) {
	if err := uc.checkVariantCompany(variantID, companyID); err != nil {
		return nil, err
	}
	return uc.priceRepo.ListByVariant(variantID, limit, offset)
}

// Quote convierte un monto local a la vista del tipo de cambio pedido.
func (uc *PriceUseCase) Quote(companyID string, amount decimal.Decimal, excType int16) (decimal.Decimal, error) {
	exc, err := uc.activeExchange(companyID, excType)
	if err != nil {
		return decimal.Zero, err
	}
	return domainpricing.ConvertWith(amount.Round(domainpricing.AmountScale), exc)
}

func (uc *PriceUseCase) activeExchange(companyID string, excType int16) (*entity.CurrencyExchange, error) {
	exc, err := uc.exchangeRepo.GetActiveByType(companyID, excType)
	if err != nil {
		return nil, err
	}
	if exc == nil {
		return nil, domain.ErrExchangeNotConfigured
	}
	return exc, nil
}

// checkVariantCompany resuelve variante → ítem → familia y valida la empresa.
func (uc *PriceUseCase) checkVariantCompany(variantID, companyID string) error {
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
