package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ellaliza/stockley/internal/application/auth"
	"github.com/ellaliza/stockley/internal/application/membership"
	"github.com/ellaliza/stockley/internal/application/usecase"
	"github.com/ellaliza/stockley/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	StoreUC      *usecase.StoreUseCase
	ProductUC    *usecase.ProductUseCase
	MembershipUC *membership.MembershipUseCase
	JWTSecret    string
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

	// Perfil y usuarios (protegido; el listado es solo para admins de plataforma)
	authGroup.Get("/users/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)
	authGroup.Put("/users/me", AuthMiddleware(deps.JWTSecret), authHandler.UpdateMe)
	authGroup.Get("/users", AuthMiddleware(deps.JWTSecret), RequirePlatformRole(entity.PlatformRoleAdmin), authHandler.ListUsers)

	// Stores (protegido)
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC, deps.MembershipUC)
	stores.Post("/", storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Post("/add-member", storeHandler.AddMember)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Delete("/:id", storeHandler.Delete)

	// Products y movimientos de stock (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Post("/bulk-create", productHandler.BulkCreate)
	products.Post("/stock-out/:storeID/:productID", productHandler.StockOut)
	products.Post("/stock-in/:storeID/:productID", productHandler.StockIn)
	products.Post("/reserve/:storeID/:productID", productHandler.Reserve)
	products.Get("/:storeID", productHandler.List)
	products.Get("/:storeID/:productID", productHandler.Get)
	products.Put("/:storeID/:productID", productHandler.Update)
	products.Get("/:storeID/:productID/movements", productHandler.Movements)
}
