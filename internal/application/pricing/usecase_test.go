package pricing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	apppricing "github.com/dvillegas/multierp-api/internal/application/pricing"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeExchangeRepo struct {
	rows map[string]*entity.CurrencyExchange
}

func newFakeExchangeRepo() *fakeExchangeRepo {
	return &fakeExchangeRepo{rows: map[string]*entity.CurrencyExchange{}}
}

func (r *fakeExchangeRepo) Create(exc *entity.CurrencyExchange) error {
	cp := *exc
	r.rows[exc.ID] = &cp
	return nil
}

func (r *fakeExchangeRepo) GetByID(id string) (*entity.CurrencyExchange, error) {
	if exc, ok := r.rows[id]; ok {
		cp := *exc
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeExchangeRepo) GetActive(companyID, currencyID string, excType int16) (*entity.CurrencyExchange, error) {
	for _, exc := range r.rows {
		if exc.CompanyID == companyID && exc.CurrencyID == currencyID &&
			exc.Type == excType && exc.Status == entity.StatusActive {
			cp := *exc
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeExchangeRepo) GetActiveByType(companyID string, excType int16) (*entity.CurrencyExchange, error) {
	for _, exc := range r.rows {
		if exc.CompanyID == companyID && exc.Type == excType && exc.Status == entity.StatusActive {
			cp := *exc
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeExchangeRepo) Update(exc *entity.CurrencyExchange) error {
	cp := *exc
	r.rows[exc.ID] = &cp
	return nil
}

func (r *fakeExchangeRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.CurrencyExchange, error) {
	var out []*entity.CurrencyExchange
	for _, exc := range r.rows {
		if exc.CompanyID == companyID {
			cp := *exc
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeHistoryRepo struct {
	rows []*entity.CurrencyExchangeHistory
}

func (r *fakeHistoryRepo) Append(h *entity.CurrencyExchangeHistory) error {
	cp := *h
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeHistoryRepo) ListByExchange(exchangeID string, limit, offset int) ([]*entity.CurrencyExchangeHistory, error) {
	var out []*entity.CurrencyExchangeHistory
	for _, h := range r.rows {
		if h.ExchangeID == exchangeID {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeCurrencyRepo struct {
	rows map[string]*entity.Currency
}

func (r *fakeCurrencyRepo) Create(*entity.Currency) error { return nil }
func (r *fakeCurrencyRepo) GetByID(id string) (*entity.Currency, error) {
	return r.rows[id], nil
}
func (r *fakeCurrencyRepo) GetByISOCode(string) (*entity.Currency, error) { return nil, nil }
func (r *fakeCurrencyRepo) Update(*entity.Currency) error                 { return nil }
func (r *fakeCurrencyRepo) List(int, int) ([]*entity.Currency, error)     { return nil, nil }

type fakeExchangeTx struct {
	excRepo  repository.ExchangeRepository
	histRepo repository.ExchangeHistoryRepository
}

func (t *fakeExchangeTx) Run(_ context.Context, fn func(
	excRepo repository.ExchangeRepository,
	histRepo repository.ExchangeHistoryRepository,
) error) error {
	return fn(t.excRepo, t.histRepo)
}

type fakePriceRepo struct {
	rows []*entity.InventoryPriceHistory
}

func (r *fakePriceRepo) Insert(s *entity.InventoryPriceHistory) error {
	cp := *s
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakePriceRepo) ClearCurrent(variantID string, priceType int16) (int64, error) {
	var n int64
	for _, s := range r.rows {
		if s.VariantID == variantID && s.PriceType == priceType && s.IsCurrent {
			s.IsCurrent = false
			n++
		}
	}
	return n, nil
}

func (r *fakePriceRepo) GetCurrent(variantID string, priceType int16) (*entity.InventoryPriceHistory, error) {
	for _, s := range r.rows {
		if s.VariantID == variantID && s.PriceType == priceType && s.IsCurrent {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePriceRepo) ListByVariant(variantID string, limit, offset int) ([]*entity.InventoryPriceHistory, error) {
	var out []*entity.InventoryPriceHistory
	for _, s := range r.rows {
		if s.VariantID == variantID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakePriceTx struct{ priceRepo repository.PriceHistoryRepository }

func (t *fakePriceTx) Run(_ context.Context, fn func(repository.PriceHistoryRepository) error) error {
	return fn(t.priceRepo)
}

type fakeVariantRepo struct{ variants map[string]*entity.InventoryVariant }

func (r *fakeVariantRepo) Create(*entity.InventoryVariant, []string) error { return nil }
func (r *fakeVariantRepo) GetByID(id string) (*entity.InventoryVariant, error) {
	return r.variants[id], nil
}
func (r *fakeVariantRepo) GetBySKU(string, string) (*entity.InventoryVariant, error) {
	return nil, nil
}
func (r *fakeVariantRepo) Update(*entity.InventoryVariant) error { return nil }
func (r *fakeVariantRepo) ListByItem(string, int, int) ([]*entity.InventoryVariant, error) {
	return nil, nil
}
func (r *fakeVariantRepo) SetAttrValues(string, []string) error      { return nil }
func (r *fakeVariantRepo) ListAttrValueIDs(string) ([]string, error) { return nil, nil }

type fakeItemRepo struct{ items map[string]*entity.InventoryItem }

func (r *fakeItemRepo) Create(*entity.InventoryItem, []string) error { return nil }
func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	return r.items[id], nil
}
func (r *fakeItemRepo) GetByCode(string, string) (*entity.InventoryItem, error) { return nil, nil }
func (r *fakeItemRepo) Update(*entity.InventoryItem) error                      { return nil }
func (r *fakeItemRepo) ListByFamily(string, int, int) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) SetTaxes(string, []string) error     { return nil }
func (r *fakeItemRepo) ListTaxIDs(string) ([]string, error) { return nil, nil }

type fakeFamilyRepo struct{ families map[string]*entity.InventoryFamily }

func (r *fakeFamilyRepo) Create(*entity.InventoryFamily) error { return nil }
func (r *fakeFamilyRepo) GetByID(id string) (*entity.InventoryFamily, error) {
	return r.families[id], nil
}
func (r *fakeFamilyRepo) GetByCode(string, string) (*entity.InventoryFamily, error) {
	return nil, nil
}
func (r *fakeFamilyRepo) Update(*entity.InventoryFamily) error { return nil }
func (r *fakeFamilyRepo) ListByCompany(string, int, int) ([]*entity.InventoryFamily, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const (
	coID   = "co-1"
	userID = "user-1"
	varID  = "var-1"
	vesID  = "cur-ves"
	usdID  = "cur-usd"
	eurID  = "cur-eur"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newExchangeFixture() (*apppricing.ExchangeUseCase, *fakeExchangeRepo, *fakeHistoryRepo) {
	excRepo := newFakeExchangeRepo()
	histRepo := &fakeHistoryRepo{}
	curRepo := &fakeCurrencyRepo{rows: map[string]*entity.Currency{
		vesID: {ID: vesID, ISOCode: "VES", Status: entity.StatusActive},
		usdID: {ID: usdID, ISOCode: "USD", Status: entity.StatusActive},
		eurID: {ID: eurID, ISOCode: "EUR", Status: entity.StatusActive},
	}}
	uc := apppricing.NewExchangeUseCase(&fakeExchangeTx{excRepo, histRepo}, excRepo, histRepo, curRepo)
	return uc, excRepo, histRepo
}

func newPriceFixture(t *testing.T, excRepo *fakeExchangeRepo) (*apppricing.PriceUseCase, *fakePriceRepo) {
	t.Helper()
	priceRepo := &fakePriceRepo{}
	uc := apppricing.NewPriceUseCase(
		&fakePriceTx{priceRepo},
		priceRepo,
		excRepo,
		&fakeVariantRepo{variants: map[string]*entity.InventoryVariant{
			varID: {ID: varID, ItemID: "item-1", SKU: "VAR001", Status: entity.StatusActive},
		}},
		&fakeItemRepo{items: map[string]*entity.InventoryItem{
			"item-1": {ID: "item-1", FamilyID: "fam-1", Status: entity.StatusActive},
		}},
		&fakeFamilyRepo{families: map[string]*entity.InventoryFamily{
			"fam-1": {ID: "fam-1", CompanyID: coID, Status: entity.StatusActive},
		}},
	)
	return uc, priceRepo
}

// configura local VES (tasa 1 MULTIPLY), estable USD (36.5 DIVIDE), ref EUR (40 DIVIDE)
func seedExchanges(t *testing.T, uc *apppricing.ExchangeUseCase) {
	t.Helper()
	ctx := context.Background()
	_, err := uc.Create(ctx, coID, dto.CreateExchangeRequest{
		CurrencyID: vesID, Type: entity.ExchangeTypeLocal,
		Rate: dec("1"), Method: entity.ExchangeMethodMultiply,
	})
	require.NoError(t, err)
	_, err = uc.Create(ctx, coID, dto.CreateExchangeRequest{
		CurrencyID: usdID, Type: entity.ExchangeTypeStable,
		Rate: dec("36.5"), Method: entity.ExchangeMethodDivide,
	})
	require.NoError(t, err)
	_, err = uc.Create(ctx, coID, dto.CreateExchangeRequest{
		CurrencyID: eurID, Type: entity.ExchangeTypeRef,
		Rate: dec("40"), Method: entity.ExchangeMethodDivide,
	})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tasas de cambio
// ──────────────────────────────────────────────────────────────────────────────

func TestExchange_CrearDuplicadoActivoFalla(t *testing.T) {
	uc, _, _ := newExchangeFixture()
	ctx := context.Background()

	req := dto.CreateExchangeRequest{
		CurrencyID: usdID, Type: entity.ExchangeTypeStable,
		Rate: dec("36.5"), Method: entity.ExchangeMethodDivide,
	}
	_, err := uc.Create(ctx, coID, req)
	require.NoError(t, err)

	_, err = uc.Create(ctx, coID, req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// otra empresa sí puede configurar el mismo par
	_, err = uc.Create(ctx, "co-2", req)
	assert.NoError(t, err)
}

func TestExchange_TasaConservaOchoDecimales(t *testing.T) {
	uc, _, _ := newExchangeFixture()

	exc, err := uc.Create(context.Background(), coID, dto.CreateExchangeRequest{
		CurrencyID: usdID, Type: entity.ExchangeTypeStable,
		Rate: dec("100.12345678"), Method: entity.ExchangeMethodDivide,
	})
	require.NoError(t, err)
	assert.Equal(t, "100.12345678", exc.Rate.String())
}

func TestExchange_UpdateDejaTasaAnteriorEnHistorial(t *testing.T) {
	uc, _, histRepo := newExchangeFixture()
	ctx := context.Background()

	exc, err := uc.Create(ctx, coID, dto.CreateExchangeRequest{
		CurrencyID: usdID, Type: entity.ExchangeTypeStable,
		Rate: dec("36.5"), Method: entity.ExchangeMethodDivide,
	})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, exc.ID, coID, userID, dto.UpdateExchangeRequest{
		Rate: dec("37.25"), Method: entity.ExchangeMethodDivide,
	})
	require.NoError(t, err)
	assert.Equal(t, "37.25", updated.Rate.String())

	require.Len(t, histRepo.rows, 1)
	assert.Equal(t, exc.ID, histRepo.rows[0].ExchangeID)
	assert.Equal(t, "36.5", histRepo.rows[0].OldRate.String())
	assert.Equal(t, entity.ExchangeMethodDivide, histRepo.rows[0].OldMethod)
	assert.Equal(t, userID, histRepo.rows[0].UserID)
}

func TestExchange_UpdateDeOtraEmpresaProhibido(t *testing.T) {
	uc, _, _ := newExchangeFixture()
	ctx := context.Background()

	exc, err := uc.Create(ctx, coID, dto.CreateExchangeRequest{
		CurrencyID: usdID, Type: entity.ExchangeTypeStable,
		Rate: dec("36.5"), Method: entity.ExchangeMethodDivide,
	})
	require.NoError(t, err)

	_, err = uc.Update(ctx, exc.ID, "co-2", userID, dto.UpdateExchangeRequest{
		Rate: dec("40"), Method: entity.ExchangeMethodDivide,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestExchange_TasaNoPositivaInvalida(t *testing.T) {
	uc, _, _ := newExchangeFixture()

	_, err := uc.Create(context.Background(), coID, dto.CreateExchangeRequest{
		CurrencyID: usdID, Type: entity.ExchangeTypeStable,
		Rate: dec("0"), Method: entity.ExchangeMethodDivide,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Snapshots de precios
// ──────────────────────────────────────────────────────────────────────────────

func TestPrice_SnapshotConvierteYCalculaMargen(t *testing.T) {
	excUC, excRepo, _ := newExchangeFixture()
	seedExchanges(t, excUC)
	uc, _ := newPriceFixture(t, excRepo)

	snap, err := uc.SnapshotPrice(context.Background(), coID, userID, dto.SnapshotPriceRequest{
		VariantID:  varID,
		PriceType:  1,
		PriceLocal: dec("730"),
		CostLocal:  dec("365"),
	})
	require.NoError(t, err)

	// 730 ÷ 36.5 = 20 USD; 730 ÷ 40 = 18.25 EUR
	assert.Equal(t, "20", snap.PriceStable.String())
	assert.Equal(t, "18.25", snap.PriceRef.String())
	assert.Equal(t, "10", snap.CostStable.String())
	// margen por moneda: precio − costo
	assert.Equal(t, "365", snap.ProfitLocal.String())
	assert.Equal(t, "10", snap.ProfitStable.String())
	assert.Equal(t, usdID, snap.StableCurrencyID)
	assert.Equal(t, eurID, snap.RefCurrencyID)
	assert.True(t, snap.IsCurrent)
}

func TestPrice_UnSoloVigentePorVarianteYTipo(t *testing.T) {
	excUC, excRepo, _ := newExchangeFixture()
	seedExchanges(t, excUC)
	uc, priceRepo := newPriceFixture(t, excRepo)
	ctx := context.Background()

	for _, p := range []string{"100", "150", "200"} {
		_, err := uc.SnapshotPrice(ctx, coID, userID, dto.SnapshotPriceRequest{
			VariantID: varID, PriceType: 1, PriceLocal: dec(p),
		})
		require.NoError(t, err)
	}

	var current int
	for _, s := range priceRepo.rows {
		if s.IsCurrent {
			current++
			assert.Equal(t, "200", s.PriceLocal.String())
		}
	}
	assert.Equal(t, 1, current)
	assert.Len(t, priceRepo.rows, 3) // el historial nunca se borra

	// tipos de precio distintos mantienen vigentes independientes
	_, err := uc.SnapshotPrice(ctx, coID, userID, dto.SnapshotPriceRequest{
		VariantID: varID, PriceType: 2, PriceLocal: dec("500"),
	})
	require.NoError(t, err)
	cur2, err := uc.GetCurrent(coID, varID, 2)
	require.NoError(t, err)
	assert.Equal(t, "500", cur2.PriceLocal.String())
	cur1, err := uc.GetCurrent(coID, varID, 1)
	require.NoError(t, err)
	assert.Equal(t, "200", cur1.PriceLocal.String())
}

func TestPrice_SinTasaConfiguradaFalla(t *testing.T) {
	excUC, excRepo, _ := newExchangeFixture()
	// solo local: faltan estable y referencia
	_, err := excUC.Create(context.Background(), coID, dto.CreateExchangeRequest{
		CurrencyID: vesID, Type: entity.ExchangeTypeLocal,
		Rate: dec("1"), Method: entity.ExchangeMethodMultiply,
	})
	require.NoError(t, err)
	uc, priceRepo := newPriceFixture(t, excRepo)

	_, err = uc.SnapshotPrice(context.Background(), coID, userID, dto.SnapshotPriceRequest{
		VariantID: varID, PriceType: 1, PriceLocal: dec("100"),
	})
	assert.ErrorIs(t, err, domain.ErrExchangeNotConfigured)
	assert.Empty(t, priceRepo.rows)
}

func TestPrice_MontoNegativoInvalido(t *testing.T) {
	excUC, excRepo, _ := newExchangeFixture()
	seedExchanges(t, excUC)
	uc, _ := newPriceFixture(t, excRepo)

	_, err := uc.SnapshotPrice(context.Background(), coID, userID, dto.SnapshotPriceRequest{
		VariantID: varID, PriceType: 1, PriceLocal: dec("-5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
