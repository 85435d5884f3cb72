package repository

import "github.com/dvillegas/multierp-api/internal/domain/entity"

// CompanyRepository puerto de persistencia para empresas.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByFiscalID(fiscalID string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(limit, offset int) ([]*entity.Company, error)
	// ReplaceCurrencies reemplaza idempotentemente las monedas asociadas a la empresa:
	// inserta las faltantes y elimina las omitidas (diferencia de conjuntos, una transacción).
	ReplaceCurrencies(companyID string, currencyIDs []string) error
	ListCurrencyIDs(companyID string) ([]string, error)
}

// CompanyGroupRepository puerto de persistencia para grupos de empresas.
type CompanyGroupRepository interface {
	Create(group *entity.CompanyGroup) error
	GetByID(id string) (*entity.CompanyGroup, error)
	Update(group *entity.CompanyGroup) error
	List(limit, offset int) ([]*entity.CompanyGroup, error)
}

// SucursalRepository puerto de persistencia para sucursales.
type SucursalRepository interface {
	Create(sucursal *entity.Sucursal) error
	GetByID(id string) (*entity.Sucursal, error)
	GetByCode(companyID, code string) (*entity.Sucursal, error)
	Update(sucursal *entity.Sucursal) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Sucursal, error)
	// ReplaceTaxes reemplazo idempotente de impuestos asociados a la sucursal.
	ReplaceTaxes(sucursalID string, taxIDs []string) error
	ListTaxIDs(sucursalID string) ([]string, error)
}
