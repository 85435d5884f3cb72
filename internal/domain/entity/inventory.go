package entity

import "time"

// Tipos de ítem de inventario.
const (
	ItemTypeProduct int16 = 1
	ItemTypeService int16 = 2
)

// InventoryFamily familia de inventario de una empresa. Code único por empresa.
// Las banderas de stock/lote se heredan como valor por defecto a los ítems.
type InventoryFamily struct {
	ID           string
	CompanyID    string
	Code         string
	Name         string
	DefaultTaxID string // opcional
	IsStockable  bool
	IsLotManaged bool
	Status       int16
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InventoryItem ítem (producto o servicio) dentro de una familia. Code único por familia.
type InventoryItem struct {
	ID           string
	FamilyID     string
	Code         string
	Name         string
	Description  string
	Type         int16 // ItemTypeProduct | ItemTypeService
	HasVariants  bool
	IsExempt     bool
	IsStockable  bool
	IsLotManaged bool
	Status       int16
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InventoryAttr atributo nombrado (ej. "Color"), único por empresa.
type InventoryAttr struct {
	ID        string
	CompanyID string
	Name      string
	Status    int16
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InventoryAttrValue valor permitido de un atributo, único por atributo.
type InventoryAttrValue struct {
	ID        string
	AttrID    string
	Value     string
	Status    int16
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InventoryVariant variante vendible de un ítem. SKU único por ítem.
// La asociación variante↔valores de atributo vive en inventory_variants_attrs.
type InventoryVariant struct {
	ID        string
	ItemID    string
	SKU       string
	Name      string
	Status    int16
	CreatedAt time.Time
	UpdatedAt time.Time
}
