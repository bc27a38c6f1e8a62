package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ellaliza/stockley/internal/application/dto"
	"github.com/ellaliza/stockley/internal/application/usecase"
	"github.com/ellaliza/stockley/internal/domain"
)

// ProductHandler maneja las peticiones HTTP para productos y movimientos de stock.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto (requiere membresía en la tienda)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto; SKU opcional"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return productError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// BulkCreate godoc
// @Summary      Crear varios productos de una tienda en una sola transacción
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkCreateProductRequest  true  "Lote de productos"
// @Success      201   {array}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/products/bulk-create [post]
func (h *ProductHandler) BulkCreate(c *fiber.Ctx) error {
	var in dto.BulkCreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.BulkCreate(c.Context(), GetUserID(c), in)
	if err != nil {
		return productError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos de una tienda (requiere membresía)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        storeID  path  string  true  "ID de la tienda"
// @Success      200      {object}  dto.ProductListResponse
// @Failure      401      {object}  dto.ErrorResponse
// @Router       /api/products/{storeID} [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetUserID(c), c.Params("storeID"))
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener un producto de una tienda
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        storeID    path  string  true  "ID de la tienda"
// @Param        productID  path  string  true  "ID del producto"
// @Success      200        {object}  dto.ProductResponse
// @Failure      401        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/products/{storeID}/{productID} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUserID(c), c.Params("storeID"), c.Params("productID"))
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar nombre o nivel mínimo de stock de un producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        storeID    path  string                   true  "ID de la tienda"
// @Param        productID  path  string                   true  "ID del producto"
// @Param        body       body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200        {object}  dto.ProductResponse
// @Failure      401        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/products/{storeID}/{productID} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetUserID(c), c.Params("storeID"), c.Params("productID"), in)
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(out)
}

// StockOut godoc
// @Summary      Registrar una salida de stock (venta)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        storeID    path   string  true   "ID de la tienda"
// @Param        productID  path   string  true   "ID del producto"
// @Param        quantity   query  int     false  "Cantidad"  default(1)
// @Param        note       query  string  false  "Nota del movimiento"
// @Success      200        {object}  dto.ProductResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      401        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/products/stock-out/{storeID}/{productID} [post]
func (h *ProductHandler) StockOut(c *fiber.Ctx) error {
	out, err := h.uc.Sell(c.Context(), GetUserID(c), c.Params("storeID"), c.Params("productID"), movementFromQuery(c))
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(out)
}

// StockIn godoc
// @Summary      Registrar una entrada de stock (reposición)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        storeID    path   string  true   "ID de la tienda"
// @Param        productID  path   string  true   "ID del producto"
// @Param        quantity   query  int     false  "Cantidad"  default(1)
// @Param        note       query  string  false  "Nota del movimiento"
// @Success      200        {object}  dto.ProductResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      401        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/products/stock-in/{storeID}/{productID} [post]
func (h *ProductHandler) StockIn(c *fiber.Ctx) error {
	out, err := h.uc.Restock(c.Context(), GetUserID(c), c.Params("storeID"), c.Params("productID"), movementFromQuery(c))
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(out)
}

// Reserve godoc
// @Summary      Reservar stock de un producto (no descuenta current_stock)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        storeID    path   string  true   "ID de la tienda"
// @Param        productID  path   string  true   "ID del producto"
// @Param        quantity   query  int     false  "Cantidad"  default(1)
// @Param        note       query  string  false  "Nota del movimiento"
// @Success      200        {object}  dto.ProductResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      401        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/products/reserve/{storeID}/{productID} [post]
func (h *ProductHandler) Reserve(c *fiber.Ctx) error {
	out, err := h.uc.Reserve(c.Context(), GetUserID(c), c.Params("storeID"), c.Params("productID"), movementFromQuery(c))
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos de un producto (más reciente primero)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        storeID    path   string  true   "ID de la tienda"
// @Param        productID  path   string  true   "ID del producto"
// @Param        limit      query  int     false  "Límite"   default(50)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200        {object}  dto.MovementListResponse
// @Failure      401        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/products/{storeID}/{productID}/movements [get]
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.Movements(GetUserID(c), c.Params("storeID"), c.Params("productID"), limit, offset)
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(out)
}

// movementFromQuery arma la entrada de movimiento desde query params,
// con cantidad 1 por defecto.
func movementFromQuery(c *fiber.Ctx) dto.MovementRequest {
	return dto.MovementRequest{
		Quantity: c.QueryInt("quantity", 1),
		Note:     c.Query("note"),
	}
}

// productError mapea los errores de dominio de productos a HTTP.
func productError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para la operación"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado para esta tienda"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_SKU", Message: "ya existe un producto con ese SKU en la tienda"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintenta la operación"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
