package repository

import "github.com/ellaliza/stockley/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia para movimientos de stock (DIP).
// El ledger es append-only: no hay Update ni Delete individual; DeleteByStore existe
// únicamente para el borrado en cascada de una tienda completa.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	DeleteByStore(storeID string) error
}
