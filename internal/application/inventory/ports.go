package inventory

import (
	"context"

	"github.com/ellaliza/stockley/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad entre el update del producto y el insert del
// movimiento, y deja la verificación de membresía dentro de la misma transacción
// (sin hueco entre verificar y actuar).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		memberRepo repository.StoreMemberRepository,
	) error) error
}
