package dto

import "time"

// CreateFamilyRequest alta de familia de inventario.
type CreateFamilyRequest struct {
	Code         string `json:"inv_family_code" validate:"required,min=1,max=20"`
	Name         string `json:"inv_family_name" validate:"required,min=1,max=200"`
	DefaultTaxID string `json:"default_tax_id"`
	IsStockable  bool   `json:"inv_family_is_stockable"`
	IsLotManaged bool   `json:"inv_family_is_lot_managed"`
}

// UpdateFamilyRequest actualización de familia.
type UpdateFamilyRequest struct {
	Name         *string `json:"inv_family_name" validate:"omitempty,min=1,max=200"`
	DefaultTaxID *string `json:"default_tax_id"`
	IsStockable  *bool   `json:"inv_family_is_stockable"`
	IsLotManaged *bool   `json:"inv_family_is_lot_managed"`
	Status       *int16  `json:"inv_family_status" validate:"omitempty,oneof=0 1"`
}

// FamilyResponse salida de una familia.
type FamilyResponse struct {
	ID           string    `json:"inv_family_id"`
	CompanyID    string    `json:"company_id"`
	Code         string    `json:"inv_family_code"`
	Name         string    `json:"inv_family_name"`
	DefaultTaxID string    `json:"default_tax_id,omitempty"`
	IsStockable  bool      `json:"inv_family_is_stockable"`
	IsLotManaged bool      `json:"inv_family_is_lot_managed"`
	Status       int16     `json:"inv_family_status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateItemRequest alta de ítem. Taxes se valida todo-o-nada antes de asociar.
type CreateItemRequest struct {
	FamilyID     string   `json:"inv_family_id" validate:"required"`
	Code         string   `json:"inv_item_code" validate:"required,min=1,max=20"`
	Name         string   `json:"inv_item_name" validate:"required,min=1,max=200"`
	Description  string   `json:"inv_item_description"`
	Type         int16    `json:"inv_item_type" validate:"required,oneof=1 2"`
	HasVariants  bool     `json:"inv_has_variants"`
	IsExempt     bool     `json:"inv_is_exempt"`
	IsStockable  bool     `json:"inv_is_stockable"`
	IsLotManaged bool     `json:"inv_is_lot_managed"`
	Taxes        []string `json:"taxes"`
}

// UpdateItemRequest actualización de ítem.
type UpdateItemRequest struct {
	Name        *string  `json:"inv_item_name" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"inv_item_description"`
	IsExempt    *bool    `json:"inv_is_exempt"`
	Status      *int16   `json:"inv_item_status" validate:"omitempty,oneof=0 1"`
	Taxes       []string `json:"taxes"`
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID           string    `json:"inv_item_id"`
	FamilyID     string    `json:"inv_family_id"`
	Code         string    `json:"inv_item_code"`
	Name         string    `json:"inv_item_name"`
	Description  string    `json:"inv_item_description"`
	Type         int16     `json:"inv_item_type"`
	HasVariants  bool      `json:"inv_has_variants"`
	IsExempt     bool      `json:"inv_is_exempt"`
	IsStockable  bool      `json:"inv_is_stockable"`
	IsLotManaged bool      `json:"inv_is_lot_managed"`
	Status       int16     `json:"inv_item_status"`
	Taxes        []string  `json:"taxes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateAttrRequest alta de atributo.
type CreateAttrRequest struct {
	Name string `json:"inv_attr_name" validate:"required,min=1,max=100"`
}

// AttrResponse salida de un atributo.
type AttrResponse struct {
	ID        string    `json:"inv_attr_id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"inv_attr_name"`
	Status    int16     `json:"inv_attr_status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateAttrValueRequest alta de valor de atributo.
type CreateAttrValueRequest struct {
	AttrID string `json:"inv_attr_id" validate:"required"`
	Value  string `json:"inv_attr_value" validate:"required,min=1,max=100"`
}

// AttrValueResponse salida de un valor de atributo.
type AttrValueResponse struct {
	ID        string    `json:"inv_attr_value_id"`
	AttrID    string    `json:"inv_attr_id"`
	Value     string    `json:"inv_attr_value"`
	Status    int16     `json:"inv_attr_value_status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateVariantRequest alta de variante. AttrValues se valida todo-o-nada.
type CreateVariantRequest struct {
	ItemID     string   `json:"inv_item_id" validate:"required"`
	SKU        string   `json:"inv_var_sku" validate:"required,min=1,max=50"`
	Name       string   `json:"inv_var_name" validate:"omitempty,max=200"`
	AttrValues []string `json:"attr_values"`
}

// UpdateVariantRequest actualización de variante.
type UpdateVariantRequest struct {
	Name       *string  `json:"inv_var_name" validate:"omitempty,max=200"`
	Status     *int16   `json:"inv_var_status" validate:"omitempty,oneof=0 1"`
	AttrValues []string `json:"attr_values"`
}

// VariantResponse salida de una variante.
type VariantResponse struct {
	ID         string    `json:"inv_var_id"`
	ItemID     string    `json:"inv_item_id"`
	SKU        string    `json:"inv_var_sku"`
	Name       string    `json:"inv_var_name"`
	Status     int16     `json:"inv_var_status"`
	AttrValues []string  `json:"attr_values,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateStorageRequest alta de almacén.
type CreateStorageRequest struct {
	Code string `json:"inv_storage_code" validate:"required,min=1,max=20"`
	Name string `json:"inv_storage_name" validate:"required,min=1,max=200"`
}

// UpdateStorageRequest actualización de almacén.
type UpdateStorageRequest struct {
	Name   *string `json:"inv_storage_name" validate:"omitempty,min=1,max=200"`
	Status *int16  `json:"inv_storage_status" validate:"omitempty,oneof=0 1"`
}

// StorageResponse salida de un almacén.
type StorageResponse struct {
	ID        string    `json:"inv_storage_id"`
	CompanyID string    `json:"company_id"`
	Code      string    `json:"inv_storage_code"`
	Name      string    `json:"inv_storage_name"`
	Status    int16     `json:"inv_storage_status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
