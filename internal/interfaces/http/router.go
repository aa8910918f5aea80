package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/agrogest-api/internal/application/auth"
	appinv "github.com/jhoicas/agrogest-api/internal/application/inventory"
	"github.com/jhoicas/agrogest-api/internal/application/media"
	"github.com/jhoicas/agrogest-api/internal/application/settings"
	"github.com/jhoicas/agrogest-api/internal/application/usecase"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UOW           repository.UnitOfWork
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *appinv.ProductUseCase
	AdjustStock   *appinv.AdjustStockUseCase
	Reports       *appinv.ReportUseCase
	BulkImport    *appinv.BulkImportUseCase
	Replenishment *appinv.ReplenishmentUseCase
	Applications  *usecase.FieldApplicationUseCase
	Attachments   *usecase.PropertyAttachmentUseCase
	MediaUC       *media.EditUseCase
	SettingsUC    *settings.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.AdjustStock)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/movements", productHandler.Movements)
	products.Post("/:id/adjust", productHandler.Adjust)

	// Inventory: reportes, exportación e importación en lote
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Reports, deps.BulkImport, deps.Replenishment)
	invGroup.Get("/movements", inventoryHandler.Movements)
	invGroup.Get("/stats", inventoryHandler.Stats)
	invGroup.Get("/audit", inventoryHandler.Audit)
	invGroup.Get("/reconciliation", inventoryHandler.Reconciliation)
	invGroup.Get("/replenishment", inventoryHandler.Replenishment)
	invGroup.Get("/export.:format", inventoryHandler.Export)
	invGroup.Post("/bulk/preview", inventoryHandler.BulkPreview)
	invGroup.Post("/bulk/commit", inventoryHandler.BulkCommit)
	protected.Get("/activities", inventoryHandler.Activities)

	// Registros
	mountRecords(protected, deps.UOW)
	NewFieldApplicationHandler(deps.Applications).Mount(protected.Group("/field-applications"))

	attachmentHandler := NewAttachmentHandler(deps.Attachments)
	protected.Post("/properties/:id/attachments", attachmentHandler.Add)
	protected.Delete("/properties/:id/attachments/:attID", attachmentHandler.Remove)
	protected.Post("/attachments/edit", NewMediaHandler(deps.MediaUC).Edit)

	// Settings, backup y reset
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	protected.Get("/settings", settingsHandler.Get)
	protected.Put("/settings", settingsHandler.Save)
	protected.Get("/backup", settingsHandler.ExportBackup)
	protected.Post("/backup", settingsHandler.ImportBackup)
	protected.Delete("/data", settingsHandler.Reset)
}

// mountRecords registra el CRUD de las colecciones simples.
func mountRecords(g fiber.Router, uow repository.UnitOfWork) {
	NewRecordHandler(usecase.NewRecordUseCase[entity.Client](uow, "cliente",
		func(r *repository.Repos) repository.RecordRepository[entity.Client] { return r.Clients })).
		Mount(g.Group("/clients"))
	NewRecordHandler(usecase.NewRecordUseCase[entity.Supplier](uow, "fornecedor",
		func(r *repository.Repos) repository.RecordRepository[entity.Supplier] { return r.Suppliers })).
		Mount(g.Group("/suppliers"))
	NewRecordHandler(usecase.NewRecordUseCase[entity.Collaborator](uow, "colaborador",
		func(r *repository.Repos) repository.RecordRepository[entity.Collaborator] { return r.Collaborators })).
		Mount(g.Group("/collaborators"))
	NewRecordHandler(usecase.NewRecordUseCase[entity.Property](uow, "propriedade",
		func(r *repository.Repos) repository.RecordRepository[entity.Property] { return r.Properties })).
		Mount(g.Group("/properties"))
	NewRecordHandler(usecase.NewRecordUseCase[entity.Plot](uow, "talhão",
		func(r *repository.Repos) repository.RecordRepository[entity.Plot] { return r.Plots })).
		Mount(g.Group("/plots"))
	NewRecordHandler(usecase.NewRecordUseCase[entity.Task](uow, "tarefa",
		func(r *repository.Repos) repository.RecordRepository[entity.Task] { return r.Tasks })).
		Mount(g.Group("/tasks"))
	NewRecordHandler(usecase.NewRecordUseCase[entity.Transaction](uow, "transação",
		func(r *repository.Repos) repository.RecordRepository[entity.Transaction] { return r.Transactions })).
		Mount(g.Group("/transactions"))
}
