package dto

import "time"

// CreateProductRequest entrada para crear un producto. Si SKU va vacío se genera uno.
type CreateProductRequest struct {
	StoreID           string `json:"store_id" validate:"required,uuid"`
	SKU               string `json:"sku" validate:"omitempty,max=100"`
	Name              string `json:"name" validate:"required,min=1,max=200"`
	InitialStock      int    `json:"initial_stock" validate:"min=0"`
	MinimumStockLevel *int   `json:"minimum_stock_level" validate:"omitempty,min=0"`
}

// BulkCreateProductRequest entrada para crear varios productos de una tienda en una sola petición.
type BulkCreateProductRequest struct {
	StoreID  string                 `json:"store_id" validate:"required,uuid"`
	Products []CreateProductRequest `json:"products" validate:"required,min=1,dive"`
}

// UpdateProductRequest entrada para actualizar un producto (sin tocar contadores de stock;
// esos se manejan vía movimientos).
type UpdateProductRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=1,max=200"`
	MinimumStockLevel *int    `json:"minimum_stock_level" validate:"omitempty,min=0"`
}

// MovementRequest entrada para una venta, reposición o reserva.
type MovementRequest struct {
	Quantity int    `json:"quantity" query:"quantity" validate:"required,min=1"`
	Note     string `json:"note" validate:"omitempty,max=500"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string    `json:"id"`
	StoreID           string    `json:"store_id"`
	SKU               string    `json:"sku"`
	Name              string    `json:"name"`
	InitialStock      int       `json:"initial_stock"`
	CurrentStock      int       `json:"current_stock"`
	MinimumStockLevel int       `json:"minimum_stock_level"`
	ReservedStock     int       `json:"reserved_stock"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProductListResponse lista de productos de una tienda.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}

// StockMovementResponse salida de un movimiento del ledger.
type StockMovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

// MovementListResponse historial de movimientos de un producto.
type MovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
