package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ellaliza/stockley/internal/application/inventory"
	"github.com/ellaliza/stockley/internal/application/usecase"
	"github.com/ellaliza/stockley/internal/domain"
	"github.com/ellaliza/stockley/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and usecase.StoreTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ usecase.StoreTxRunner = (*TxRunner)(nil)

// maxTxRetries reintentos ante fallos de serialización o deadlock antes de
// rendirse con ErrConflict.
const maxTxRetries = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos de inventario atados a la tx
// y hace Commit o Rollback. Reintenta (acotado) ante conflictos de serialización.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	memberRepo repository.StoreMemberRepository,
) error) error {
	return r.withRetry(ctx, func(ctx context.Context) error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback(ctx) }()

		productRepo := NewProductRepository(tx)
		movRepo := NewStockMovementRepository(tx)
		memberRepo := NewStoreMemberRepository(tx)

		if err := fn(productRepo, movRepo, memberRepo); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}

// RunStore inicia una transacción con los repos del ciclo de vida de tiendas
// (crear tienda + membresía OWNER; borrado en cascada).
func (r *TxRunner) RunStore(ctx context.Context, fn func(
	storeRepo repository.StoreRepository,
	memberRepo repository.StoreMemberRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.withRetry(ctx, func(ctx context.Context) error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback(ctx) }()

		storeRepo := NewStoreRepository(tx)
		memberRepo := NewStoreMemberRepository(tx)
		productRepo := NewProductRepository(tx)
		movRepo := NewStockMovementRepository(tx)

		if err := fn(storeRepo, memberRepo, productRepo, movRepo); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}

// withRetry ejecuta attempt hasta maxTxRetries veces mientras el fallo sea de
// serialización/deadlock; cualquier otro error se propaga tal cual.
func (r *TxRunner) withRetry(ctx context.Context, attempt func(ctx context.Context) error) error {
	var err error
	for i := 0; i < maxTxRetries; i++ {
		err = attempt(ctx)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrConflict, err)
}
