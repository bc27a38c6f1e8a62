package repository

import "github.com/ellaliza/stockley/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByStoreAndID(storeID, productID string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE)
	// durante la secuencia verificar-y-actuar del motor de movimientos.
	GetForUpdate(id string) (*entity.Product, error)
	ListByStore(storeID string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock actualiza solo los contadores de stock (usado por el motor de movimientos).
	UpdateStock(product *entity.Product) error
	DeleteByStore(storeID string) error
}
