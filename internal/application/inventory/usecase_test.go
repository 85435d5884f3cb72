package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/dvillegas/multierp-api/internal/application/inventory"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El fakeTxRunner emula el rollback: si fn falla, el estado
// queda exactamente como antes (propiedad de atomicidad del libro).
// ──────────────────────────────────────────────────────────────────────────────

type ledgerState struct {
	balances    map[string]*entity.VariantStorage // variante|almacén
	lotBalances map[string]*entity.LotStorage     // variante|lote|almacén
	movements   []*entity.InventoryMovement
}

func newLedgerState() *ledgerState {
	return &ledgerState{
		balances:    map[string]*entity.VariantStorage{},
		lotBalances: map[string]*entity.LotStorage{},
	}
}

func (s *ledgerState) clone() *ledgerState {
	c := newLedgerState()
	for k, v := range s.balances {
		cp := *v
		c.balances[k] = &cp
	}
	for k, v := range s.lotBalances {
		cp := *v
		c.lotBalances[k] = &cp
	}
	c.movements = append(c.movements, s.movements...)
	return c
}

type fakeBalanceRepo struct{ s *ledgerState }

func (r *fakeBalanceRepo) GetVariant(variantID, storageID string) (*entity.VariantStorage, error) {
	return r.GetVariantForUpdate(variantID, storageID)
}

func (r *fakeBalanceRepo) GetVariantForUpdate(variantID, storageID string) (*entity.VariantStorage, error) {
	if b, ok := r.s.balances[variantID+"|"+storageID]; ok {
		cp := *b
		return &cp, nil
	}
	return &entity.VariantStorage{VariantID: variantID, StorageID: storageID}, nil
}

func (r *fakeBalanceRepo) UpsertVariant(b *entity.VariantStorage) error {
	cp := *b
	r.s.balances[b.VariantID+"|"+b.StorageID] = &cp
	return nil
}

func (r *fakeBalanceRepo) ListByStorage(string, int, int) ([]*entity.VariantStorage, error) {
	return nil, nil
}
func (r *fakeBalanceRepo) ListByVariant(string) ([]*entity.VariantStorage, error) { return nil, nil }

func (r *fakeBalanceRepo) GetLotForUpdate(variantID, lotID, storageID string) (*entity.LotStorage, error) {
	if b, ok := r.s.lotBalances[variantID+"|"+lotID+"|"+storageID]; ok {
		cp := *b
		return &cp, nil
	}
	return &entity.LotStorage{VariantID: variantID, LotID: lotID, StorageID: storageID}, nil
}

func (r *fakeBalanceRepo) UpsertLot(b *entity.LotStorage) error {
	cp := *b
	r.s.lotBalances[b.VariantID+"|"+b.LotID+"|"+b.StorageID] = &cp
	return nil
}

func (r *fakeBalanceRepo) ListLotsByStorage(string, string) ([]*entity.LotStorage, error) {
	return nil, nil
}

type fakeMovementRepo struct{ s *ledgerState }

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}
func (r *fakeMovementRepo) GetByID(string) (*entity.InventoryMovement, error) { return nil, nil }
func (r *fakeMovementRepo) ListByVariant(string, int, int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) ListByStorage(string, int, int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

type fakeTxRunner struct{ s *ledgerState }

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	balRepo repository.BalanceRepository,
) error) error {
	work := t.s.clone()
	if err := fn(&fakeMovementRepo{work}, &fakeBalanceRepo{work}); err != nil {
		return err // rollback: t.s queda intacto
	}
	*t.s = *work
	return nil
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
func (r *fakeItemRepo) SetTaxes(string, []string) error      { return nil }
func (r *fakeItemRepo) ListTaxIDs(string) ([]string, error)  { return nil, nil }

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

type fakeLotRepo struct{ lots map[string]*entity.InventoryLot }

func (r *fakeLotRepo) Create(*entity.InventoryLot) error { return nil }
func (r *fakeLotRepo) GetByID(id string) (*entity.InventoryLot, error) {
	return r.lots[id], nil
}
func (r *fakeLotRepo) GetByNumber(string, string) (*entity.InventoryLot, error) { return nil, nil }
func (r *fakeLotRepo) Update(*entity.InventoryLot) error                        { return nil }
func (r *fakeLotRepo) Delete(string) error                                      { return nil }
func (r *fakeLotRepo) ListByVariant(string, int, int) ([]*entity.InventoryLot, error) {
	return nil, nil
}

type fakeStorageRepo struct{ storages map[string]*entity.InventoryStorage }

func (r *fakeStorageRepo) Create(*entity.InventoryStorage) error { return nil }
func (r *fakeStorageRepo) GetByID(id string) (*entity.InventoryStorage, error) {
	return r.storages[id], nil
}
func (r *fakeStorageRepo) GetByCode(string, string) (*entity.InventoryStorage, error) {
	return nil, nil
}
func (r *fakeStorageRepo) Update(*entity.InventoryStorage) error { return nil }
func (r *fakeStorageRepo) ListByCompany(string, int, int) ([]*entity.InventoryStorage, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	coID    = "co-1"
	varID   = "var-1"
	itemID  = "item-1"
	famID   = "fam-1"
	lotID   = "lot-1"
	stoA    = "sto-a"
	stoB    = "sto-b"
	actorID = "user-1"
)

type fixture struct {
	state *ledgerState
	uc    *appinv.RegisterMovementUseCase
}

func newFixture(t *testing.T, lotManaged, allowNegative bool) *fixture {
	t.Helper()
	state := newLedgerState()
	uc := appinv.NewRegisterMovementUseCase(
		&fakeTxRunner{state},
		&fakeVariantRepo{variants: map[string]*entity.InventoryVariant{
			varID: {ID: varID, ItemID: itemID, SKU: "VAR001", Status: entity.StatusActive},
		}},
		&fakeItemRepo{items: map[string]*entity.InventoryItem{
			itemID: {
				ID: itemID, FamilyID: famID, Code: "INV001",
				Type: entity.ItemTypeProduct, IsStockable: true,
				IsLotManaged: lotManaged, Status: entity.StatusActive,
			},
		}},
		&fakeFamilyRepo{families: map[string]*entity.InventoryFamily{
			famID: {ID: famID, CompanyID: coID, Code: "01", Name: "Shoes", Status: entity.StatusActive},
		}},
		&fakeLotRepo{lots: map[string]*entity.InventoryLot{
			lotID: {ID: lotID, VariantID: varID, LotNumber: "L-001", Status: entity.StatusActive},
		}},
		&fakeStorageRepo{storages: map[string]*entity.InventoryStorage{
			stoA: {ID: stoA, CompanyID: coID, Code: "A", Status: entity.StatusActive},
			stoB: {ID: stoB, CompanyID: coID, Code: "B", Status: entity.StatusActive},
		}},
		allowNegative,
	)
	return &fixture{state: state, uc: uc}
}

func (f *fixture) balance(variantID, storageID string) decimal.Decimal {
	if b, ok := f.state.balances[variantID+"|"+storageID]; ok {
		return b.Stock
	}
	return decimal.Zero
}

func qty(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func movIn(q string) appinv.MovementInput {
	return appinv.MovementInput{
		CompanyID: coID, UserID: actorID, VariantID: varID, StorageID: stoA,
		Type: entity.MovementTypeIn, Quantity: qty(q),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaYSalidaRestauranSaldo(t *testing.T) {
	f := newFixture(t, false, false)
	ctx := context.Background()

	// saldo previo de 5.000
	_, err := f.uc.RegisterMovement(ctx, movIn("5.000"))
	require.NoError(t, err)
	before := f.balance(varID, stoA)

	in := movIn("3.250")
	_, err = f.uc.RegisterMovement(ctx, in)
	require.NoError(t, err)

	out := in
	out.Type = entity.MovementTypeOut
	_, err = f.uc.RegisterMovement(ctx, out)
	require.NoError(t, err)

	// round-trip: entrada seguida de salida igual deja el saldo como estaba
	assert.True(t, f.balance(varID, stoA).Equal(before),
		"esperado %s, obtenido %s", before, f.balance(varID, stoA))
	assert.Len(t, f.state.movements, 3)
}

func TestRegisterMovement_StockPrevGuardaSaldoAnterior(t *testing.T) {
	f := newFixture(t, false, false)
	ctx := context.Background()

	_, err := f.uc.RegisterMovement(ctx, movIn("10.000"))
	require.NoError(t, err)
	_, err = f.uc.RegisterMovement(ctx, movIn("2.500"))
	require.NoError(t, err)

	bal := f.state.balances[varID+"|"+stoA]
	require.NotNil(t, bal)
	assert.True(t, bal.StockPrev.Equal(qty("10.000")))
	assert.True(t, bal.Stock.Equal(qty("12.500")))
}

func TestRegisterMovement_SalidaSinStockFalla(t *testing.T) {
	f := newFixture(t, false, false)
	ctx := context.Background()

	_, err := f.uc.RegisterMovement(ctx, movIn("1.000"))
	require.NoError(t, err)

	out := movIn("5.000")
	out.Type = entity.MovementTypeOut
	_, err = f.uc.RegisterMovement(ctx, out)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// sin movimiento persistido ni saldo alterado (rollback completo)
	assert.Len(t, f.state.movements, 1)
	assert.True(t, f.balance(varID, stoA).Equal(qty("1.000")))
}

func TestRegisterMovement_PoliticaStockNegativo(t *testing.T) {
	f := newFixture(t, false, true)
	ctx := context.Background()

	out := movIn("4.000")
	out.Type = entity.MovementTypeOut
	_, err := f.uc.RegisterMovement(ctx, out)
	require.NoError(t, err)

	assert.True(t, f.balance(varID, stoA).Equal(qty("-4.000")))
}

func TestRegisterMovement_TrasladoGeneraDosFilasCorrelacionadas(t *testing.T) {
	f := newFixture(t, false, false)
	ctx := context.Background()

	_, err := f.uc.RegisterMovement(ctx, movIn("8.000"))
	require.NoError(t, err)

	txID, err := f.uc.RegisterMovement(ctx, appinv.MovementInput{
		CompanyID: coID, UserID: actorID, VariantID: varID,
		FromStorageID: stoA, ToStorageID: stoB,
		Type: entity.MovementTypeTransfer, Quantity: qty("3.000"),
	})
	require.NoError(t, err)

	assert.True(t, f.balance(varID, stoA).Equal(qty("5.000")))
	assert.True(t, f.balance(varID, stoB).Equal(qty("3.000")))

	// dos filas: salida en origen y entrada en destino, mismo transaction_id
	var paired []*entity.InventoryMovement
	for _, m := range f.state.movements {
		if m.TransactionID == txID {
			paired = append(paired, m)
		}
	}
	require.Len(t, paired, 2)
	assert.Equal(t, entity.MovementTypeOut, paired[0].Type)
	assert.Equal(t, stoA, paired[0].StorageID)
	assert.Equal(t, entity.MovementTypeIn, paired[1].Type)
	assert.Equal(t, stoB, paired[1].StorageID)
}

func TestRegisterMovement_TrasladoSinStockNoDejaRastro(t *testing.T) {
	f := newFixture(t, false, false)
	ctx := context.Background()

	_, err := f.uc.RegisterMovement(ctx, appinv.MovementInput{
		CompanyID: coID, UserID: actorID, VariantID: varID,
		FromStorageID: stoA, ToStorageID: stoB,
		Type: entity.MovementTypeTransfer, Quantity: qty("1.000"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.state.movements)
	assert.True(t, f.balance(varID, stoB).IsZero())
}

func TestRegisterMovement_CantidadInvalida(t *testing.T) {
	f := newFixture(t, false, false)

	in := movIn("0")
	_, err := f.uc.RegisterMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = movIn("-2.000")
	_, err = f.uc.RegisterMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_LoteRequeridoEnItemLoteado(t *testing.T) {
	f := newFixture(t, true, false)
	ctx := context.Background()

	_, err := f.uc.RegisterMovement(ctx, movIn("1.000"))
	assert.ErrorIs(t, err, domain.ErrLotRequired)

	in := movIn("1.000")
	in.LotID = lotID
	_, err = f.uc.RegisterMovement(ctx, in)
	require.NoError(t, err)

	// el saldo por lote también se mantiene
	lotBal := f.state.lotBalances[varID+"|"+lotID+"|"+stoA]
	require.NotNil(t, lotBal)
	assert.True(t, lotBal.Stock.Equal(qty("1.000")))
}

func TestRegisterMovement_TrasladoMismoAlmacenInvalido(t *testing.T) {
	f := newFixture(t, false, false)
	_, err := f.uc.RegisterMovement(context.Background(), appinv.MovementInput{
		CompanyID: coID, UserID: actorID, VariantID: varID,
		FromStorageID: stoA, ToStorageID: stoA,
		Type: entity.MovementTypeTransfer, Quantity: qty("1.000"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_AlmacenDeOtraEmpresa(t *testing.T) {
	f := newFixture(t, false, false)
	in := movIn("1.000")
	in.CompanyID = "otra-empresa"
	_, err := f.uc.RegisterMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas de stock: aislamiento por empresa
// ──────────────────────────────────────────────────────────────────────────────

type fakeReportRepo struct{}

func (fakeReportRepo) StockByCompany(string) ([]*repository.StockReportRow, error) {
	return nil, nil
}

func newQueryUseCase() *appinv.StockQueryUseCase {
	state := newLedgerState()
	return appinv.NewStockQueryUseCase(
		&fakeBalanceRepo{state},
		&fakeMovementRepo{state},
		&fakeStorageRepo{storages: map[string]*entity.InventoryStorage{
			stoA: {ID: stoA, CompanyID: coID, Code: "A", Status: entity.StatusActive},
		}},
		fakeReportRepo{},
		&fakeVariantRepo{variants: map[string]*entity.InventoryVariant{
			varID: {ID: varID, ItemID: itemID, SKU: "VAR001", Status: entity.StatusActive},
		}},
		&fakeItemRepo{items: map[string]*entity.InventoryItem{
			itemID: {ID: itemID, FamilyID: famID, Status: entity.StatusActive},
		}},
		&fakeFamilyRepo{families: map[string]*entity.InventoryFamily{
			famID: {ID: famID, CompanyID: coID, Status: entity.StatusActive},
		}},
	)
}

func TestStockQuery_VarianteDeOtraEmpresaProhibida(t *testing.T) {
	uc := newQueryUseCase()

	_, err := uc.GetStock("otra-empresa", varID, stoA)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ListStockByVariant("otra-empresa", varID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ListMovementsByVariant("otra-empresa", varID, 50, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestStockQuery_VarianteDeLaEmpresaAccesible(t *testing.T) {
	uc := newQueryUseCase()

	b, err := uc.GetStock(coID, varID, stoA)
	require.NoError(t, err)
	assert.True(t, b.Stock.IsZero())

	_, err = uc.ListStockByVariant(coID, varID)
	assert.NoError(t, err)

	_, err = uc.ListMovementsByVariant(coID, varID, 50, 0)
	assert.NoError(t, err)
}

func TestStockQuery_VarianteInexistente(t *testing.T) {
	uc := newQueryUseCase()
	_, err := uc.GetStock(coID, "var-fantasma", stoA)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
