package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/auth"
	"github.com/dvillegas/multierp-api/internal/application/inventory"
	"github.com/dvillegas/multierp-api/internal/application/pricing"
	"github.com/dvillegas/multierp-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	UserUC     *usecase.UserUseCase
	CompanyUC  *usecase.CompanyUseCase
	SucursalUC *usecase.SucursalUseCase
	TaxUC      *usecase.TaxUseCase
	CurrencyUC *usecase.CurrencyUseCase
	ExchangeUC *pricing.ExchangeUseCase
	PriceUC    *pricing.PriceUseCase
	FamilyUC   *usecase.FamilyUseCase
	ItemUC     *usecase.ItemUseCase
	AttrUC     *usecase.AttrUseCase
	VariantUC  *usecase.VariantUseCase
	LotUC      *usecase.LotUseCase
	StorageUC  *usecase.StorageUseCase

	RegisterMovement *inventory.RegisterMovementUseCase
	StockQuery       *inventory.StockQueryUseCase

	JWTSecret string
}

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/password-reset", authHandler.RequestPasswordReset)
	authGroup.Post("/password-reset/confirm", authHandler.ConfirmPasswordReset)

	// Rutas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios: administración solo admin global; el cambio de contraseña es propio
	userHandler := NewUserHandler(deps.UserUC)
	protected.Put("/users/me/password", userHandler.ChangePassword)
	users := protected.Group("/users", RequireAdmin())
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Post("/:id/deactivate", userHandler.Deactivate)
	users.Post("/:id/activate", userHandler.Activate)
	users.Post("/:id/companies", userHandler.AssignCompany)
	users.Delete("/:id/companies/:companyId", userHandler.RemoveCompany)
	users.Get("/:id/companies", userHandler.ListCompanies)
	users.Get("/:id/audit", userHandler.ListAudit)

	// Empresas y grupos (admin global)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	groups := protected.Group("/company-groups", RequireAdmin())
	groups.Post("/", companyHandler.CreateGroup)
	groups.Get("/", companyHandler.ListGroups)
	groups.Get("/:id", companyHandler.GetGroup)

	companies := protected.Group("/companies", RequireAdmin())
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Put("/:id/currencies", companyHandler.ReplaceCurrencies)
	companies.Get("/:id/currencies", companyHandler.ListCurrencies)

	// Catálogo global de monedas (lectura autenticada, alta admin global)
	currencyHandler := NewCurrencyHandler(deps.CurrencyUC)
	currencies := protected.Group("/currencies")
	currencies.Post("/", RequireAdmin(), currencyHandler.Create)
	currencies.Get("/", currencyHandler.List)
	currencies.Get("/:id", currencyHandler.GetByID)

	// Todo lo que sigue opera sobre la empresa activa de la sesión
	company := protected.Group("/", RequireCompany())

	// Sucursales
	sucursalHandler := NewSucursalHandler(deps.SucursalUC)
	sucursales := company.Group("/sucursales")
	sucursales.Post("/", RequireCompanyAdmin(), sucursalHandler.Create)
	sucursales.Get("/", sucursalHandler.List)
	sucursales.Get("/:id", sucursalHandler.GetByID)
	sucursales.Put("/:id", RequireCompanyAdmin(), sucursalHandler.Update)
	sucursales.Put("/:id/taxes", RequireCompanyAdmin(), sucursalHandler.ReplaceTaxes)
	sucursales.Get("/:id/taxes", sucursalHandler.ListTaxes)

	// Impuestos
	taxHandler := NewTaxHandler(deps.TaxUC)
	taxes := company.Group("/taxes")
	taxes.Post("/", RequireCompanyAdmin(), taxHandler.Create)
	taxes.Get("/", taxHandler.List)
	taxes.Get("/:id", taxHandler.GetByID)
	taxes.Put("/:id", RequireCompanyAdmin(), taxHandler.Update)

	// Configuración cambiaria
	exchangeHandler := NewExchangeHandler(deps.ExchangeUC)
	exchanges := company.Group("/exchanges")
	exchanges.Post("/", RequireCompanyAdmin(), exchangeHandler.Create)
	exchanges.Get("/", exchangeHandler.List)
	exchanges.Get("/:id", exchangeHandler.GetByID)
	exchanges.Put("/:id", RequireCompanyAdmin(), exchangeHandler.Update)
	exchanges.Get("/:id/history", exchangeHandler.ListHistory)

	// Inventario
	inv := company.Group("/inventory")

	familyHandler := NewFamilyHandler(deps.FamilyUC)
	inv.Post("/families", familyHandler.Create)
	inv.Get("/families", familyHandler.List)
	inv.Get("/families/:id", familyHandler.GetByID)
	inv.Put("/families/:id", familyHandler.Update)

	itemHandler := NewItemHandler(deps.ItemUC)
	inv.Post("/items", itemHandler.Create)
	inv.Get("/items/:id", itemHandler.GetByID)
	inv.Put("/items/:id", itemHandler.Update)
	inv.Get("/families/:familyId/items", itemHandler.ListByFamily)

	attrHandler := NewAttrHandler(deps.AttrUC)
	inv.Post("/attrs", attrHandler.CreateAttr)
	inv.Get("/attrs", attrHandler.ListAttrs)
	inv.Get("/attrs/:id", attrHandler.GetAttr)
	inv.Post("/attr-values", attrHandler.CreateValue)
	inv.Get("/attrs/:id/values", attrHandler.ListValues)

	variantHandler := NewVariantHandler(deps.VariantUC)
	inv.Post("/variants", variantHandler.Create)
	inv.Get("/variants/:id", variantHandler.GetByID)
	inv.Put("/variants/:id", variantHandler.Update)
	inv.Get("/items/:itemId/variants", variantHandler.ListByItem)

	lotHandler := NewLotHandler(deps.LotUC)
	inv.Post("/lots", lotHandler.Create)
	inv.Get("/lots/:id", lotHandler.GetByID)
	inv.Put("/lots/:id", lotHandler.Update)
	inv.Delete("/lots/:id", lotHandler.Delete)
	inv.Get("/variants/:variantId/lots", lotHandler.ListByVariant)

	storageHandler := NewStorageHandler(deps.StorageUC)
	inv.Post("/storages", storageHandler.Create)
	inv.Get("/storages", storageHandler.List)
	inv.Get("/storages/:id", storageHandler.GetByID)
	inv.Put("/storages/:id", storageHandler.Update)

	// Libro de movimientos y saldos
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.StockQuery)
	inv.Post("/movements", movementHandler.Register)
	inv.Get("/variants/:variantId/movements", movementHandler.ListByVariant)
	inv.Get("/storages/:storageId/movements", movementHandler.ListByStorage)
	inv.Get("/stock/:variantId/:storageId", movementHandler.GetStock)
	inv.Get("/storages/:storageId/stock", movementHandler.ListStockByStorage)
	inv.Get("/variants/:variantId/stock", movementHandler.ListStockByVariant)
	inv.Get("/stock-report", movementHandler.StockReport)

	// Precios
	priceHandler := NewPriceHandler(deps.PriceUC)
	inv.Post("/prices", priceHandler.Snapshot)
	inv.Get("/variants/:variantId/prices", priceHandler.ListByVariant)
	inv.Get("/variants/:variantId/prices/current", priceHandler.GetCurrent)
	inv.Get("/prices/quote", priceHandler.Quote)
}
