package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dvillegas/multierp-api/internal/application/auth"
	"github.com/dvillegas/multierp-api/internal/application/inventory"
	"github.com/dvillegas/multierp-api/internal/application/pricing"
	"github.com/dvillegas/multierp-api/internal/application/usecase"
	"github.com/dvillegas/multierp-api/internal/infrastructure/mail"
	"github.com/dvillegas/multierp-api/internal/infrastructure/postgres"
	infraredis "github.com/dvillegas/multierp-api/internal/infrastructure/redis"
	httpRouter "github.com/dvillegas/multierp-api/internal/interfaces/http"
	"github.com/dvillegas/multierp-api/pkg/config"
	"github.com/dvillegas/multierp-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	redisClient, err := infraredis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	// Repositorios
	companyRepo := postgres.NewCompanyRepository(pool)
	groupRepo := postgres.NewCompanyGroupRepository(pool)
	sucursalRepo := postgres.NewSucursalRepository(pool)
	currencyRepo := postgres.NewCurrencyRepository(pool)
	exchangeRepo := postgres.NewExchangeRepository(pool)
	taxRepo := postgres.NewTaxRepository(pool)
	familyRepo := postgres.NewFamilyRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	attrRepo := postgres.NewAttrRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	storageRepo := postgres.NewStorageRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	reportRepo := postgres.NewStockReportRepository(pool)
	priceRepo := postgres.NewPriceHistoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	userCompanyRepo := postgres.NewUserCompanyRepository(pool)
	auditRepo := postgres.NewUserAuditRepository(pool)

	// Infraestructura auxiliar
	tokenStore := infraredis.NewTokenStore(redisClient)
	mailer := mail.New(cfg.Mail, log.Zerolog())

	// Casos de uso
	authUC := auth.NewUseCase(userRepo, userCompanyRepo, auditRepo, tokenStore, mailer, cfg.JWT)
	userUC := usecase.NewUserUseCase(userRepo, userCompanyRepo, auditRepo, companyRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo, groupRepo, currencyRepo)
	sucursalUC := usecase.NewSucursalUseCase(sucursalRepo, companyRepo, taxRepo)
	taxUC := usecase.NewTaxUseCase(taxRepo)
	currencyUC := usecase.NewCurrencyUseCase(currencyRepo)
	familyUC := usecase.NewFamilyUseCase(familyRepo, taxRepo)
	itemUC := usecase.NewItemUseCase(itemRepo, familyRepo, taxRepo)
	attrUC := usecase.NewAttrUseCase(attrRepo)
	variantUC := usecase.NewVariantUseCase(variantRepo, itemRepo, familyRepo, attrRepo)
	lotUC := usecase.NewLotUseCase(lotRepo, variantRepo, itemRepo, familyRepo)
	storageUC := usecase.NewStorageUseCase(storageRepo)

	exchangeUC := pricing.NewExchangeUseCase(
		postgres.NewExchangeTxRunner(pool), exchangeRepo, postgres.NewExchangeHistoryRepository(pool), currencyRepo,
	)
	priceUC := pricing.NewPriceUseCase(
		postgres.NewPriceTxRunner(pool), priceRepo, exchangeRepo, variantRepo, itemRepo, familyRepo,
	)

	registerMovementUC := inventory.NewRegisterMovementUseCase(
		postgres.NewTxRunner(pool), variantRepo, itemRepo, familyRepo, lotRepo, storageRepo,
		cfg.Inventory.AllowNegativeStock,
	)
	stockQueryUC := inventory.NewStockQueryUseCase(
		balanceRepo, movementRepo, storageRepo, reportRepo, variantRepo, itemRepo, familyRepo,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MultiERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           userUC,
		CompanyUC:        companyUC,
		SucursalUC:       sucursalUC,
		TaxUC:            taxUC,
		CurrencyUC:       currencyUC,
		ExchangeUC:       exchangeUC,
		PriceUC:          priceUC,
		FamilyUC:         familyUC,
		ItemUC:           itemUC,
		AttrUC:           attrUC,
		VariantUC:        variantUC,
		LotUC:            lotUC,
		StorageUC:        storageUC,
		RegisterMovement: registerMovementUC,
		StockQuery:       stockQueryUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
