package entity

import "time"

// Valores por defecto para campos de stock de Product.
const (
	DefaultMinimumStockLevel = 5
)

// Product representa un producto del inventario, propiedad de exactamente una Store.
// CurrentStock es un valor derivado: initial_stock + Σ(IN) − Σ(OUT) sobre sus movimientos;
// el ledger de movimientos es la fuente de verdad y CurrentStock se mantiene en la misma
// transacción que cada movimiento. Nunca se sobreescribe fuera del motor de movimientos.
type Product struct {
	ID                string
	StoreID           string
	SKU               string
	Name              string
	InitialStock      int
	CurrentStock      int
	MinimumStockLevel int // umbral de stock bajo
	ReservedStock     int // apartado para pedidos pendientes; no descuenta disponibilidad
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
