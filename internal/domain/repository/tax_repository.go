package repository

import "github.com/dvillegas/multierp-api/internal/domain/entity"

// TaxRepository puerto de persistencia para impuestos por empresa.
type TaxRepository interface {
	Create(tax *entity.Tax) error
	GetByID(id string) (*entity.Tax, error)
	GetByCode(companyID, code string) (*entity.Tax, error)
	Update(tax *entity.Tax) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Tax, error)
	// ExistAll informa si todos los ids existen y pertenecen a la empresa
	// (validación todo-o-nada antes de asociar impuestos a un ítem).
	ExistAll(companyID string, ids []string) (bool, error)
}
