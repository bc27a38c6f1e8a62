package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN      = "stock_in"      // entrada (compra, reposición)
	MovementTypeOUT     = "stock_out"     // salida (venta, merma)
	MovementTypeRESERVE = "reserve_stock" // apartado para pedido pendiente
)

// StockMovement es el registro de auditoría de un cambio de stock. Append-only:
// nunca se actualiza ni se borra; las correcciones se hacen con un movimiento
// compensatorio (ej. un IN que contrarresta un OUT erróneo).
type StockMovement struct {
	ID        string
	ProductID string
	Type      string // stock_in, stock_out, reserve_stock
	Quantity  int    // siempre > 0; el signo lo da el tipo
	Note      string
	CreatedAt time.Time
	CreatedBy string // UserID
}
