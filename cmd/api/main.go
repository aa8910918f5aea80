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
	_ "github.com/jhoicas/agrogest-api/docs"
	"github.com/jhoicas/agrogest-api/internal/application/auth"
	"github.com/jhoicas/agrogest-api/internal/application/inventory"
	"github.com/jhoicas/agrogest-api/internal/application/media"
	"github.com/jhoicas/agrogest-api/internal/application/settings"
	"github.com/jhoicas/agrogest-api/internal/application/usecase"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/imaging"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/memory"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/nfe"
	infrapdf "github.com/jhoicas/agrogest-api/internal/infrastructure/pdf"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/agrogest-api/internal/infrastructure/redis"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/agrogest-api/internal/interfaces/http"
	"github.com/jhoicas/agrogest-api/pkg/config"
	"github.com/jhoicas/agrogest-api/pkg/logger"
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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET vacío")
	}

	ctx := context.Background()

	// Almacén clave-valor según STORE_DRIVER. Solo postgres suma el libro en SQL.
	var (
		store  repository.Store
		summer repository.LedgerSummer
	)
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		pg := postgres.NewStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("esquema PostgreSQL")
		}
		store, summer = pg, pg
	case config.DriverRedis:
		client, err := infraredis.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		store = infraredis.NewStore(client)
	default:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		store = memory.NewStore()
	}

	defaults := entity.SettingsDefaults{FarmName: cfg.Farm.Name, Currency: cfg.Farm.Currency}
	uow := kvstore.NewRunner(store, nil, log)
	userRepo := kvstore.NewUserRepository(store)
	sheets := spreadsheet.Codec{}

	authUC := auth.NewAuthUseCase(userRepo, uow, defaults, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AgroGest API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		UOW:           uow,
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(userRepo),
		ProductUC:     inventory.NewProductUseCase(uow, log),
		AdjustStock:   inventory.NewAdjustStockUseCase(uow, log),
		Reports:       inventory.NewReportUseCase(uow, summer, sheets, infrapdf.NewMarotoPDFGenerator(), defaults),
		BulkImport:    inventory.NewBulkImportUseCase(uow, nfe.NewParser(), sheets, log),
		Replenishment: inventory.NewReplenishmentUseCase(uow),
		Applications:  usecase.NewFieldApplicationUseCase(uow, log),
		Attachments:   usecase.NewPropertyAttachmentUseCase(uow),
		MediaUC:       media.NewEditUseCase(imaging.NewEditor(), log),
		SettingsUC:    settings.NewUseCase(uow, defaults, cfg.Farm.BackupVersion, log),
		JWTSecret:     cfg.JWT.Secret,
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
