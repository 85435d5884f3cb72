package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/application/usecase"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeFamilyRepo struct{ rows map[string]*entity.InventoryFamily }

func newFakeFamilyRepo() *fakeFamilyRepo {
	return &fakeFamilyRepo{rows: map[string]*entity.InventoryFamily{}}
}

func (r *fakeFamilyRepo) Create(f *entity.InventoryFamily) error {
	cp := *f
	r.rows[f.ID] = &cp
	return nil
}
func (r *fakeFamilyRepo) GetByID(id string) (*entity.InventoryFamily, error) {
	return r.rows[id], nil
}
func (r *fakeFamilyRepo) GetByCode(companyID, code string) (*entity.InventoryFamily, error) {
	for _, f := range r.rows {
		if f.CompanyID == companyID && f.Code == code {
			return f, nil
		}
	}
	return nil, nil
}
func (r *fakeFamilyRepo) Update(f *entity.InventoryFamily) error {
	cp := *f
	r.rows[f.ID] = &cp
	return nil
}
func (r *fakeFamilyRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryFamily, error) {
	var out []*entity.InventoryFamily
	for _, f := range r.rows {
		if f.CompanyID == companyID {
			out = append(out, f)
		}
	}
	return out, nil
}

type fakeTaxRepo struct{ rows map[string]*entity.Tax }

func newFakeTaxRepo() *fakeTaxRepo { return &fakeTaxRepo{rows: map[string]*entity.Tax{}} }

func (r *fakeTaxRepo) Create(t *entity.Tax) error {
	cp := *t
	r.rows[t.ID] = &cp
	return nil
}
func (r *fakeTaxRepo) GetByID(id string) (*entity.Tax, error) { return r.rows[id], nil }
func (r *fakeTaxRepo) GetByCode(companyID, code string) (*entity.Tax, error) {
	for _, t := range r.rows {
		if t.CompanyID == companyID && t.Code == code {
			return t, nil
		}
	}
	return nil, nil
}
func (r *fakeTaxRepo) Update(t *entity.Tax) error {
	cp := *t
	r.rows[t.ID] = &cp
	return nil
}
func (r *fakeTaxRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Tax, error) {
	var out []*entity.Tax
	for _, t := range r.rows {
		if t.CompanyID == companyID {
			out = append(out, t)
		}
	}
	return out, nil
}
func (r *fakeTaxRepo) ExistAll(companyID string, ids []string) (bool, error) {
	for _, id := range ids {
		t, ok := r.rows[id]
		if !ok || t.CompanyID != companyID {
			return false, nil
		}
	}
	return true, nil
}

type fakeUserRepo struct{ rows map[string]*entity.User }

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{rows: map[string]*entity.User{}} }

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.rows[u.ID] = &cp
	return nil
}
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) { return r.rows[id], nil }
func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.rows {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.rows {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.rows[u.ID] = &cp
	return nil
}
func (r *fakeUserRepo) List(int, int) ([]*entity.User, error) { return nil, nil }

type fakeUserCompanyRepo struct{ rows []*entity.UserCompany }

func (r *fakeUserCompanyRepo) Assign(m *entity.UserCompany) error {
	r.rows = append(r.rows, m)
	return nil
}
func (r *fakeUserCompanyRepo) Remove(string, string) error { return nil }
func (r *fakeUserCompanyRepo) Get(userID, companyID string) (*entity.UserCompany, error) {
	for _, m := range r.rows {
		if m.UserID == userID && m.CompanyID == companyID {
			return m, nil
		}
	}
	return nil, nil
}
func (r *fakeUserCompanyRepo) ListByUser(string) ([]*entity.UserCompany, error) { return nil, nil }

type fakeAuditRepo struct{ rows []*entity.UserAudit }

func (r *fakeAuditRepo) Append(a *entity.UserAudit) error {
	r.rows = append(r.rows, a)
	return nil
}
func (r *fakeAuditRepo) ListByUser(string, int, int) ([]*entity.UserAudit, error) { return nil, nil }

type fakeCompanyRepo struct{ rows map[string]*entity.Company }

func (r *fakeCompanyRepo) Create(c *entity.Company) error {
	r.rows[c.ID] = c
	return nil
}
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) { return r.rows[id], nil }
func (r *fakeCompanyRepo) GetByFiscalID(string) (*entity.Company, error) {
	return nil, nil
}
func (r *fakeCompanyRepo) Update(*entity.Company) error                 { return nil }
func (r *fakeCompanyRepo) List(int, int) ([]*entity.Company, error)     { return nil, nil }
func (r *fakeCompanyRepo) ReplaceCurrencies(string, []string) error     { return nil }
func (r *fakeCompanyRepo) ListCurrencyIDs(string) ([]string, error)     { return nil, nil }

// Los fakes de ítems y variantes emulan la transacción del adaptador real:
// si Create falla, ni la entidad ni sus asociaciones quedan persistidas.

type fakeItemRepo struct {
	rows       map[string]*entity.InventoryItem
	taxes      map[string][]string
	failCreate bool
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{rows: map[string]*entity.InventoryItem{}, taxes: map[string][]string{}}
}

func (r *fakeItemRepo) Create(i *entity.InventoryItem, taxIDs []string) error {
	if r.failCreate {
		return assert.AnError
	}
	cp := *i
	r.rows[i.ID] = &cp
	if len(taxIDs) > 0 {
		r.taxes[i.ID] = append([]string(nil), taxIDs...)
	}
	return nil
}
func (r *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) { return r.rows[id], nil }
func (r *fakeItemRepo) GetByCode(familyID, code string) (*entity.InventoryItem, error) {
	for _, i := range r.rows {
		if i.FamilyID == familyID && i.Code == code {
			return i, nil
		}
	}
	return nil, nil
}
func (r *fakeItemRepo) Update(i *entity.InventoryItem) error {
	cp := *i
	r.rows[i.ID] = &cp
	return nil
}
func (r *fakeItemRepo) ListByFamily(string, int, int) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) SetTaxes(itemID string, taxIDs []string) error {
	r.taxes[itemID] = append([]string(nil), taxIDs...)
	return nil
}
func (r *fakeItemRepo) ListTaxIDs(itemID string) ([]string, error) { return r.taxes[itemID], nil }

type fakeVariantRepo struct {
	rows       map[string]*entity.InventoryVariant
	attrValues map[string][]string
	failCreate bool
}

func newFakeVariantRepo() *fakeVariantRepo {
	return &fakeVariantRepo{rows: map[string]*entity.InventoryVariant{}, attrValues: map[string][]string{}}
}

func (r *fakeVariantRepo) Create(v *entity.InventoryVariant, valueIDs []string) error {
	if r.failCreate {
		return assert.AnError
	}
	cp := *v
	r.rows[v.ID] = &cp
	if len(valueIDs) > 0 {
		r.attrValues[v.ID] = append([]string(nil), valueIDs...)
	}
	return nil
}
func (r *fakeVariantRepo) GetByID(id string) (*entity.InventoryVariant, error) {
	return r.rows[id], nil
}
func (r *fakeVariantRepo) GetBySKU(itemID, sku string) (*entity.InventoryVariant, error) {
	for _, v := range r.rows {
		if v.ItemID == itemID && v.SKU == sku {
			return v, nil
		}
	}
	return nil, nil
}
func (r *fakeVariantRepo) Update(v *entity.InventoryVariant) error {
	cp := *v
	r.rows[v.ID] = &cp
	return nil
}
func (r *fakeVariantRepo) ListByItem(string, int, int) ([]*entity.InventoryVariant, error) {
	return nil, nil
}
func (r *fakeVariantRepo) SetAttrValues(variantID string, valueIDs []string) error {
	r.attrValues[variantID] = append([]string(nil), valueIDs...)
	return nil
}
func (r *fakeVariantRepo) ListAttrValueIDs(variantID string) ([]string, error) {
	return r.attrValues[variantID], nil
}

type fakeAttrRepo struct {
	// valueID → empresa dueña, para ExistAllValues
	owners map[string]string
}

func (r *fakeAttrRepo) CreateAttr(*entity.InventoryAttr) error { return nil }
func (r *fakeAttrRepo) GetAttrByID(string) (*entity.InventoryAttr, error) {
	return nil, nil
}
func (r *fakeAttrRepo) GetAttrByName(string, string) (*entity.InventoryAttr, error) {
	return nil, nil
}
func (r *fakeAttrRepo) ListAttrsByCompany(string, int, int) ([]*entity.InventoryAttr, error) {
	return nil, nil
}
func (r *fakeAttrRepo) CreateValue(*entity.InventoryAttrValue) error { return nil }
func (r *fakeAttrRepo) GetValueByID(string) (*entity.InventoryAttrValue, error) {
	return nil, nil
}
func (r *fakeAttrRepo) GetValue(string, string) (*entity.InventoryAttrValue, error) {
	return nil, nil
}
func (r *fakeAttrRepo) ListValuesByAttr(string) ([]*entity.InventoryAttrValue, error) {
	return nil, nil
}
func (r *fakeAttrRepo) ExistAllValues(companyID string, valueIDs []string) (bool, error) {
	for _, id := range valueIDs {
		if r.owners[id] != companyID {
			return false, nil
		}
	}
	return true, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Familias
// ──────────────────────────────────────────────────────────────────────────────

func TestFamily_CrearYListar(t *testing.T) {
	uc := usecase.NewFamilyUseCase(newFakeFamilyRepo(), newFakeTaxRepo())

	family, err := uc.Create("co-1", dto.CreateFamilyRequest{
		Code: "01", Name: "Shoes", IsStockable: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Shoes", family.Name)
	assert.Equal(t, entity.StatusActive, family.Status)

	// el código se repite en otra empresa sin conflicto
	_, err = uc.Create("co-2", dto.CreateFamilyRequest{Code: "01", Name: "Zapatos"})
	require.NoError(t, err)

	// duplicado dentro de la misma empresa
	_, err = uc.Create("co-1", dto.CreateFamilyRequest{Code: "01", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := uc.ListByCompany("co-1", 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Shoes", list[0].Name)
}

func TestFamily_ImpuestoPorDefectoDeOtraEmpresa(t *testing.T) {
	taxRepo := newFakeTaxRepo()
	taxRepo.rows["tax-ajeno"] = &entity.Tax{ID: "tax-ajeno", CompanyID: "co-2"}
	uc := usecase.NewFamilyUseCase(newFakeFamilyRepo(), taxRepo)

	_, err := uc.Create("co-1", dto.CreateFamilyRequest{
		Code: "01", Name: "Shoes", DefaultTaxID: "tax-ajeno",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFamily_AccesoCruzadoProhibido(t *testing.T) {
	uc := usecase.NewFamilyUseCase(newFakeFamilyRepo(), newFakeTaxRepo())

	family, err := uc.Create("co-1", dto.CreateFamilyRequest{Code: "01", Name: "Shoes"})
	require.NoError(t, err)

	_, err = uc.GetByID("co-2", family.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Impuestos
// ──────────────────────────────────────────────────────────────────────────────

func TestTax_ExentoConPorcentajeInvalido(t *testing.T) {
	uc := usecase.NewTaxUseCase(newFakeTaxRepo())

	_, err := uc.Create("co-1", dto.CreateTaxRequest{
		Code: "EX", Name: "Exento", Type: entity.TaxTypeExempt,
		Percentage: decimal.NewFromInt(16),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tax, err := uc.Create("co-1", dto.CreateTaxRequest{
		Code: "EX", Name: "Exento", Type: entity.TaxTypeExempt,
	})
	require.NoError(t, err)
	assert.True(t, tax.Percentage.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func newUserUseCase() (*usecase.UserUseCase, *fakeUserRepo, *fakeAuditRepo) {
	userRepo := newFakeUserRepo()
	audit := &fakeAuditRepo{}
	uc := usecase.NewUserUseCase(userRepo, &fakeUserCompanyRepo{}, audit,
		&fakeCompanyRepo{rows: map[string]*entity.Company{}})
	return uc, userRepo, audit
}

func TestUser_CrearHasheaYAudita(t *testing.T) {
	uc, _, audit := newUserUseCase()

	user, err := uc.Create("admin-1", dto.CreateUserRequest{
		Username: "jperez", Email: "jperez@acme.com", Password: "secreta123",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secreta123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secreta123")))

	require.Len(t, audit.rows, 1)
	assert.Equal(t, entity.AuditActionCreate, audit.rows[0].Action)
	assert.Equal(t, "admin-1", audit.rows[0].ActorID)
	// el hash nunca aparece en la bitácora
	assert.NotContains(t, string(audit.rows[0].After), user.PasswordHash)
}

func TestUser_UsernameDuplicado(t *testing.T) {
	uc, _, _ := newUserUseCase()

	_, err := uc.Create("admin-1", dto.CreateUserRequest{
		Username: "jperez", Email: "jperez@acme.com", Password: "secreta123",
	})
	require.NoError(t, err)

	_, err = uc.Create("admin-1", dto.CreateUserRequest{
		Username: "jperez", Email: "otro@acme.com", Password: "secreta123",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUser_DesactivarDosVecesFalla(t *testing.T) {
	uc, _, audit := newUserUseCase()

	user, err := uc.Create("admin-1", dto.CreateUserRequest{
		Username: "jperez", Email: "jperez@acme.com", Password: "secreta123",
	})
	require.NoError(t, err)

	deactivated, err := uc.Deactivate("admin-1", user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInactive, deactivated.Status)

	_, err = uc.Deactivate("admin-1", user.ID)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyInactive)
	assert.EqualError(t, domain.ErrUserAlreadyInactive, "user already inactive")

	// reactivar vuelve a habilitar y queda auditado
	_, err = uc.Activate("admin-1", user.ID)
	require.NoError(t, err)
	actions := []string{}
	for _, a := range audit.rows {
		actions = append(actions, a.Action)
	}
	assert.Equal(t, []string{
		entity.AuditActionCreate,
		entity.AuditActionDeactivate,
		entity.AuditActionActivate,
	}, actions)
}

func TestUser_CambioDePasswordExigeLaVigente(t *testing.T) {
	uc, _, _ := newUserUseCase()

	user, err := uc.Create("admin-1", dto.CreateUserRequest{
		Username: "jperez", Email: "jperez@acme.com", Password: "secreta123",
	})
	require.NoError(t, err)

	err = uc.ChangePassword(user.ID, dto.ChangePasswordRequest{
		CurrentPassword: "incorrecta", NewPassword: "nueva-clave-123",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = uc.ChangePassword(user.ID, dto.ChangePasswordRequest{
		CurrentPassword: "secreta123", NewPassword: "nueva-clave-123",
	})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ítems y variantes: alta con asociaciones
// ──────────────────────────────────────────────────────────────────────────────

func newItemUseCase() (*usecase.ItemUseCase, *fakeItemRepo) {
	familyRepo := newFakeFamilyRepo()
	familyRepo.rows["fam-1"] = &entity.InventoryFamily{
		ID: "fam-1", CompanyID: "co-1", Code: "01", Status: entity.StatusActive,
	}
	taxRepo := newFakeTaxRepo()
	taxRepo.rows["tax-1"] = &entity.Tax{ID: "tax-1", CompanyID: "co-1"}
	itemRepo := newFakeItemRepo()
	return usecase.NewItemUseCase(itemRepo, familyRepo, taxRepo), itemRepo
}

func TestItem_CrearConImpuestosEnUnaSolaEscritura(t *testing.T) {
	uc, itemRepo := newItemUseCase()

	item, err := uc.Create("co-1", dto.CreateItemRequest{
		FamilyID: "fam-1", Code: "INV001", Name: "Zapato",
		Type: entity.ItemTypeProduct, IsStockable: true,
		Taxes: []string{"tax-1"},
	})
	require.NoError(t, err)
	// los impuestos viajan en el mismo alta, no en una escritura posterior
	assert.Equal(t, []string{"tax-1"}, itemRepo.taxes[item.ID])
}

func TestItem_AltaFallidaNoDejaItemNiImpuestos(t *testing.T) {
	uc, itemRepo := newItemUseCase()
	itemRepo.failCreate = true

	_, err := uc.Create("co-1", dto.CreateItemRequest{
		FamilyID: "fam-1", Code: "INV001", Name: "Zapato",
		Type: entity.ItemTypeProduct, IsStockable: true,
		Taxes: []string{"tax-1"},
	})
	require.Error(t, err)
	assert.Empty(t, itemRepo.rows)
	assert.Empty(t, itemRepo.taxes)
}

func newVariantUseCase() (*usecase.VariantUseCase, *fakeVariantRepo) {
	familyRepo := newFakeFamilyRepo()
	familyRepo.rows["fam-1"] = &entity.InventoryFamily{
		ID: "fam-1", CompanyID: "co-1", Code: "01", Status: entity.StatusActive,
	}
	itemRepo := newFakeItemRepo()
	itemRepo.rows["item-1"] = &entity.InventoryItem{
		ID: "item-1", FamilyID: "fam-1", Code: "INV001",
		Type: entity.ItemTypeProduct, Status: entity.StatusActive,
	}
	variantRepo := newFakeVariantRepo()
	attrRepo := &fakeAttrRepo{owners: map[string]string{"val-1": "co-1"}}
	return usecase.NewVariantUseCase(variantRepo, itemRepo, familyRepo, attrRepo), variantRepo
}

func TestVariant_CrearConValoresEnUnaSolaEscritura(t *testing.T) {
	uc, variantRepo := newVariantUseCase()

	variant, err := uc.Create("co-1", dto.CreateVariantRequest{
		ItemID: "item-1", SKU: "VAR001", AttrValues: []string{"val-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"val-1"}, variantRepo.attrValues[variant.ID])
}

func TestVariant_AltaFallidaNoDejaVarianteNiValores(t *testing.T) {
	uc, variantRepo := newVariantUseCase()
	variantRepo.failCreate = true

	_, err := uc.Create("co-1", dto.CreateVariantRequest{
		ItemID: "item-1", SKU: "VAR001", AttrValues: []string{"val-1"},
	})
	require.Error(t, err)
	assert.Empty(t, variantRepo.rows)
	assert.Empty(t, variantRepo.attrValues)
}
