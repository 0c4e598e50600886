package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC           *usecase.CompanyUseCase
	UserUC              *usecase.UserUseCase
	ProductUC           *usecase.ProductUseCase
	CategoryUC          *usecase.CategoryUseCase
	WarehouseUC         *usecase.WarehouseUseCase
	ManufacturerUC      *usecase.ManufacturerUseCase
	RegisterTransaction *inventory.RegisterTransactionUseCase
	RuleUC              *usecase.NotificationRuleUseCase
	PreferenceUC        *usecase.NotificationPreferenceUseCase
	InboxUC             *usecase.NotificationInboxUseCase
	AuditUC             *usecase.AuditUseCase

	StockTxRepo  repository.StockTransactionRepository
	CompanyRepo  repository.CompanyRepository
	StockRepo    repository.StockRepository
	AuditRepo    repository.AuditLogRepository
	LowStockPDF  LowStockReportGenerator
	JWTSecret    string
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.UserUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies: creación pública (bootstrap del tenant), lectura protegida
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token); las mutaciones quedan auditadas
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), AuditMiddleware(deps.AuditRepo, deps.Log))

	companies := protected.Group("/companies")
	companies.Get("/", RequireRole(entity.RoleAdmin), companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", RequireRole(entity.RoleAdmin), categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Get("/:id/children", categoryHandler.ListChildren)
	categories.Put("/:id", RequireRole(entity.RoleAdmin), categoryHandler.Update)
	categories.Delete("/:id", RequireRole(entity.RoleAdmin), categoryHandler.Delete)

	// Manufacturers
	manufacturers := protected.Group("/manufacturers")
	manufacturerHandler := NewManufacturerHandler(deps.ManufacturerUC)
	manufacturers.Post("/", RequireRole(entity.RoleAdmin), manufacturerHandler.Create)
	manufacturers.Get("/", manufacturerHandler.List)
	manufacturers.Get("/:id", manufacturerHandler.GetByID)
	manufacturers.Put("/:id", RequireRole(entity.RoleAdmin), manufacturerHandler.Update)
	manufacturers.Delete("/:id", RequireRole(entity.RoleAdmin), manufacturerHandler.Delete)

	// Warehouses (creación y asignaciones: solo admin)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole(entity.RoleAdmin), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/mine", warehouseHandler.ListMine)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", RequireRole(entity.RoleAdmin), warehouseHandler.Update)
	warehouses.Delete("/:id", RequireRole(entity.RoleAdmin), warehouseHandler.Delete)
	warehouses.Post("/:id/users", RequireRole(entity.RoleAdmin), warehouseHandler.AssignUser)
	warehouses.Get("/:id/users", RequireRole(entity.RoleAdmin), warehouseHandler.ListAssignedUsers)
	warehouses.Delete("/:id/users/:userId", RequireRole(entity.RoleAdmin), warehouseHandler.UnassignUser)

	// Inventory (admin y bodeguero mueven stock)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterTransaction, deps.StockTxRepo)
	invGroup.Post("/transactions", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.RegisterTransaction)
	invGroup.Get("/products/:id/transactions", inventoryHandler.ListByProduct)
	invGroup.Get("/warehouses/:id/transactions", inventoryHandler.ListByWarehouse)

	// Notification rules (solo admin)
	rules := protected.Group("/notification-rules", RequireRole(entity.RoleAdmin))
	ruleHandler := NewNotificationRuleHandler(deps.RuleUC)
	rules.Post("/", ruleHandler.Create)
	rules.Get("/", ruleHandler.List)
	rules.Get("/:id", ruleHandler.GetByID)
	rules.Put("/:id", ruleHandler.Update)
	rules.Delete("/:id", ruleHandler.Delete)

	// Notifications (buzón y preferencias del usuario autenticado)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.InboxUC, deps.PreferenceUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/read-all", notificationHandler.MarkAllRead)
	notifications.Put("/preferences", notificationHandler.UpsertPreference)
	notifications.Get("/preferences", notificationHandler.ListPreferences)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.CompanyRepo, deps.StockRepo, deps.LowStockPDF)
	reports.Get("/low-stock", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), reportHandler.LowStockPDF)
	reports.Get("/low-stock.json", reportHandler.LowStockJSON)

	// Audit trail (solo admin)
	audit := protected.Group("/audit-logs", RequireRole(entity.RoleAdmin))
	auditHandler := NewAuditHandler(deps.AuditUC)
	audit.Get("/", auditHandler.List)
}
