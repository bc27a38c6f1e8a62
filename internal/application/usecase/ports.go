package usecase

import (
	"context"

	"github.com/ellaliza/stockley/internal/domain/repository"
)

// StoreTxRunner ejecuta una función con los repositorios de tienda atados a una
// transacción. Lo usan crear tienda (tienda + membresía OWNER en una sola unidad)
// y borrar tienda (cascada movimientos, productos, membresías, tienda).
type StoreTxRunner interface {
	RunStore(ctx context.Context, fn func(
		storeRepo repository.StoreRepository,
		memberRepo repository.StoreMemberRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
