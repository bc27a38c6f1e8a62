package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ellaliza/stockley/internal/domain"
	"github.com/ellaliza/stockley/internal/domain/entity"
	"github.com/ellaliza/stockley/internal/domain/repository"
)

// MovementUseCase es el único camino por el que cambia el stock de un producto.
// Registra movimientos (IN, OUT, RESERVE) de forma transaccional con bloqueo de
// fila (SELECT FOR UPDATE) y Commit/Rollback, de modo que el log de movimientos
// y el contador cacheado nunca divergen.
type MovementUseCase struct {
	txRunner TxRunner
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner}
}

// MovementInput entrada para registrar un movimiento de stock.
// Quantity siempre positivo; el tipo determina el signo del efecto.
type MovementInput struct {
	UserID    string
	StoreID   string
	ProductID string
	Type      string
	Quantity  int
	Note      string
}

// Apply inicia una transacción, verifica la membresía del actor, bloquea la fila
// del producto, aplica el efecto según tipo y guarda el movimiento. Si algo falla
// toda la operación se revierte: nunca queda un update sin su movimiento.
//
//   - IN:      current_stock += quantity
//   - OUT:     current_stock -= quantity; falla con ErrInsufficientStock si quedaría < 0
//   - RESERVE: reserved_stock += quantity (no toca current_stock; la reserva es
//     informativa, no descuenta disponibilidad)
//
// No existe "deshacer": una corrección se hace con un movimiento compensatorio.
func (uc *MovementUseCase) Apply(ctx context.Context, input MovementInput) (*entity.Product, *entity.StockMovement, error) {
	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeRESERVE:
	default:
		return nil, nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	if input.ProductID == "" || input.StoreID == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	var product *entity.Product
	var movement *entity.StockMovement

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		memberRepo repository.StoreMemberRepository,
	) error {
		// Membresía dentro de la misma transacción que la mutación
		member, err := memberRepo.GetByStoreAndUser(input.StoreID, input.UserID)
		if err != nil {
			return err
		}
		if member == nil {
			return domain.ErrUnauthorized
		}

		// Bloquea la fila del producto (SELECT FOR UPDATE): dos ventas concurrentes
		// se serializan aquí y la segunda revalida contra el stock ya actualizado
		p, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if p == nil || p.StoreID != input.StoreID {
			return domain.ErrNotFound
		}

		switch input.Type {
		case entity.MovementTypeIN:
			p.CurrentStock += input.Quantity
		case entity.MovementTypeOUT:
			if p.CurrentStock < input.Quantity {
				return domain.ErrInsufficientStock
			}
			p.CurrentStock -= input.Quantity
		case entity.MovementTypeRESERVE:
			p.ReservedStock += input.Quantity
		}
		p.UpdatedAt = time.Now()
		if err := productRepo.UpdateStock(p); err != nil {
			return err
		}

		m := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			Type:      input.Type,
			Quantity:  input.Quantity,
			Note:      input.Note,
			CreatedAt: time.Now(),
			CreatedBy: input.UserID,
		}
		if err := movRepo.Create(m); err != nil {
			return err
		}

		product = p
		movement = m
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return product, movement, nil
}

// RecordInitialStockInTx registra el stock inicial de un producto recién creado
// como un movimiento IN, usando el repo de la transacción del caller (la creación
// del producto y su movimiento inicial son una sola unidad atómica).
func (uc *MovementUseCase) RecordInitialStockInTx(
	movRepo repository.StockMovementRepository,
	product *entity.Product,
	userID string,
) error {
	if product.InitialStock <= 0 {
		return nil
	}
	m := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Type:      entity.MovementTypeIN,
		Quantity:  product.InitialStock,
		Note:      fmt.Sprintf("Initial Stock of %s", product.Name),
		CreatedAt: time.Now(),
		CreatedBy: userID,
	}
	return movRepo.Create(m)
}
