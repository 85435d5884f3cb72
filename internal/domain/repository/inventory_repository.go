package repository

import "github.com/dvillegas/multierp-api/internal/domain/entity"

// FamilyRepository puerto para familias de inventario.
type FamilyRepository interface {
	Create(family *entity.InventoryFamily) error
	GetByID(id string) (*entity.InventoryFamily, error)
	GetByCode(companyID, code string) (*entity.InventoryFamily, error)
	Update(family *entity.InventoryFamily) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryFamily, error)
}

// ItemRepository puerto para ítems de inventario y su join con impuestos.
// Create asocia los impuestos en la misma transacción que el alta: si la
// asociación falla, el ítem no queda persistido.
type ItemRepository interface {
	Create(item *entity.InventoryItem, taxIDs []string) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetByCode(familyID, code string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	ListByFamily(familyID string, limit, offset int) ([]*entity.InventoryItem, error)
	SetTaxes(itemID string, taxIDs []string) error
	ListTaxIDs(itemID string) ([]string, error)
}

// AttrRepository puerto para atributos y sus valores.
type AttrRepository interface {
	CreateAttr(attr *entity.InventoryAttr) error
	GetAttrByID(id string) (*entity.InventoryAttr, error)
	GetAttrByName(companyID, name string) (*entity.InventoryAttr, error)
	ListAttrsByCompany(companyID string, limit, offset int) ([]*entity.InventoryAttr, error)
	CreateValue(value *entity.InventoryAttrValue) error
	GetValueByID(id string) (*entity.InventoryAttrValue, error)
	GetValue(attrID, value string) (*entity.InventoryAttrValue, error)
	ListValuesByAttr(attrID string) ([]*entity.InventoryAttrValue, error)
	// ExistAllValues valida todo-o-nada que los valores existan y sean de la empresa.
	ExistAllValues(companyID string, valueIDs []string) (bool, error)
}

// VariantRepository puerto para variantes y su join con valores de atributo.
// Create asocia los valores de atributo en la misma transacción que el alta.
type VariantRepository interface {
	Create(variant *entity.InventoryVariant, valueIDs []string) error
	GetByID(id string) (*entity.InventoryVariant, error)
	GetBySKU(itemID, sku string) (*entity.InventoryVariant, error)
	Update(variant *entity.InventoryVariant) error
	ListByItem(itemID string, limit, offset int) ([]*entity.InventoryVariant, error)
	SetAttrValues(variantID string, valueIDs []string) error
	ListAttrValueIDs(variantID string) ([]string, error)
}

// LotRepository puerto para lotes. Delete es físico: los lotes son la única
// entidad del inventario con borrado real permitido.
type LotRepository interface {
	Create(lot *entity.InventoryLot) error
	GetByID(id string) (*entity.InventoryLot, error)
	GetByNumber(variantID, lotNumber string) (*entity.InventoryLot, error)
	Update(lot *entity.InventoryLot) error
	Delete(id string) error
	ListByVariant(variantID string, limit, offset int) ([]*entity.InventoryLot, error)
}

// StorageRepository puerto para almacenes.
type StorageRepository interface {
	Create(storage *entity.InventoryStorage) error
	GetByID(id string) (*entity.InventoryStorage, error)
	GetByCode(companyID, code string) (*entity.InventoryStorage, error)
	Update(storage *entity.InventoryStorage) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryStorage, error)
}
