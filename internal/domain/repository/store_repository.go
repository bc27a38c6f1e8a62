package repository

import "github.com/ellaliza/stockley/internal/domain/entity"

// StoreRepository define el puerto de persistencia para Store (DIP).
// GetByID devuelve (nil, nil) si la tienda no existe.
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	List(limit, offset int) ([]*entity.Store, error)
	Delete(id string) error
}
