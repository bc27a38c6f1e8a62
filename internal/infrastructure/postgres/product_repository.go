package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ellaliza/stockley/internal/domain"
	"github.com/ellaliza/stockley/internal/domain/entity"
	"github.com/ellaliza/stockley/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, store_id, sku, name, initial_stock, current_stock, minimum_stock_level, reserved_stock, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, store_id, sku, name, initial_stock, current_stock, minimum_stock_level, reserved_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.StoreID, product.SKU, product.Name,
		product.InitialStock, product.CurrentStock, product.MinimumStockLevel, product.ReservedStock,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByStoreAndID obtiene un producto verificando que pertenezca a la tienda.
func (r *ProductRepo) GetByStoreAndID(storeID, productID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1 AND id = $2`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, storeID, productID).Scan(
		&p.ID, &p.StoreID, &p.SKU, &p.Name, &p.InitialStock, &p.CurrentStock,
		&p.MinimumStockLevel, &p.ReservedStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by store: %w", err)
	}
	return &p, nil
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE) durante
// la secuencia verificar-y-actuar del motor de movimientos.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.StoreID, &p.SKU, &p.Name, &p.InitialStock, &p.CurrentStock,
		&p.MinimumStockLevel, &p.ReservedStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListByStore lista todos los productos de una tienda.
func (r *ProductRepo) ListByStore(storeID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.SKU, &p.Name, &p.InitialStock, &p.CurrentStock,
			&p.MinimumStockLevel, &p.ReservedStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza nombre y umbral mínimo. No toca los contadores de stock
// (esos cambian solo vía movimientos, con UpdateStock).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, minimum_stock_level = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.MinimumStockLevel, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock actualiza solo los contadores de stock (usado por el motor de movimientos).
func (r *ProductRepo) UpdateStock(product *entity.Product) error {
	query := `
		UPDATE products SET current_stock = $2, reserved_stock = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CurrentStock, product.ReservedStock, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// DeleteByStore elimina todos los productos de una tienda (cascada de borrado).
func (r *ProductRepo) DeleteByStore(storeID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE store_id = $1`, storeID)
	if err != nil {
		return fmt.Errorf("delete products: %w", err)
	}
	return nil
}
