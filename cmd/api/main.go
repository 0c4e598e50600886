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

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	appnotif "github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/infrastructure/delivery"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	// Repositorios
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	manufacturerRepo := postgres.NewManufacturerRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	stockTxRepo := postgres.NewStockTransactionRepository(pool)
	ruleRepo := postgres.NewNotificationRuleRepository(pool)
	preferenceRepo := postgres.NewNotificationPreferenceRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Canales de entrega: in-app siempre; email solo si SMTP está configurado; push stub.
	var emailChannel delivery.Channel
	if ch := delivery.NewEmailChannel(cfg.SMTP, userRepo); ch != nil {
		emailChannel = ch
	} else {
		log.Warn().Msg("SMTP no configurado: canal de email deshabilitado")
	}
	dispatcher := delivery.NewDispatcher(
		delivery.NewInAppChannel(notificationRepo),
		emailChannel,
		delivery.NewPushChannel(log),
		log,
	)

	// Motor de notificaciones
	engine := appnotif.NewEngine(ruleRepo, preferenceRepo, dispatcher, log)

	// Casos de uso
	registerTransactionUC := inventory.NewRegisterTransactionUseCase(productRepo, warehouseRepo, txRunner, engine, log)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	userUC := usecase.NewUserUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	productUC := usecase.NewProductUseCase(productRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, userRepo)
	manufacturerUC := usecase.NewManufacturerUseCase(manufacturerRepo)
	ruleUC := usecase.NewNotificationRuleUseCase(ruleRepo)
	preferenceUC := usecase.NewNotificationPreferenceUseCase(preferenceRepo)
	inboxUC := usecase.NewNotificationInboxUseCase(notificationRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo)

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
		Title:    "Almacén Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:           companyUC,
		UserUC:              userUC,
		ProductUC:           productUC,
		CategoryUC:          categoryUC,
		WarehouseUC:         warehouseUC,
		ManufacturerUC:      manufacturerUC,
		RegisterTransaction: registerTransactionUC,
		RuleUC:              ruleUC,
		PreferenceUC:        preferenceUC,
		InboxUC:             inboxUC,
		AuditUC:             auditUC,
		StockTxRepo:         stockTxRepo,
		CompanyRepo:         companyRepo,
		StockRepo:           stockRepo,
		AuditRepo:           auditRepo,
		LowStockPDF:         infrapdf.NewLowStockReportGenerator(),
		JWTSecret:           cfg.JWT.Secret,
		Log:                 log,
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
