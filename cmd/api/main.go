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

	"github.com/ellaliza/stockley/internal/application/auth"
	"github.com/ellaliza/stockley/internal/application/inventory"
	"github.com/ellaliza/stockley/internal/application/membership"
	"github.com/ellaliza/stockley/internal/application/usecase"
	"github.com/ellaliza/stockley/internal/infrastructure/postgres"
	httpRouter "github.com/ellaliza/stockley/internal/interfaces/http"
	"github.com/ellaliza/stockley/pkg/config"
	"github.com/ellaliza/stockley/pkg/logger"
)

// swaggerSpecPath spec OpenAPI estático servido por la UI de /docs.
const swaggerSpecPath = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	memberRepo := postgres.NewStoreMemberRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	membershipUC := membership.NewMembershipUseCase(memberRepo, userRepo, storeRepo)
	movementUC := inventory.NewMovementUseCase(txRunner)
	storeUC := usecase.NewStoreUseCase(txRunner, storeRepo, memberRepo, productRepo, membershipUC)
	productUC := usecase.NewProductUseCase(txRunner, movementUC, membershipUC, productRepo, movementRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	// El middleware entra en pánico si el archivo no existe, así que solo se
	// monta cuando el spec está presente.
	if _, err := os.Stat(swaggerSpecPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpecPath,
			Path:     "docs",
			Title:    "Stockley API",
		}))
	} else {
		log.Warn().Str("path", swaggerSpecPath).Msg("spec swagger no encontrado, UI /docs deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		StoreUC:      storeUC,
		ProductUC:    productUC,
		MembershipUC: membershipUC,
		JWTSecret:    cfg.JWT.Secret,
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
