package repository

import "github.com/ellaliza/stockley/internal/domain/entity"

// StoreMemberRepository define el puerto de persistencia para StoreMember (DIP).
// GetByStoreAndUser devuelve (nil, nil) si no existe la membresía.
type StoreMemberRepository interface {
	Create(member *entity.StoreMember) error
	GetByStoreAndUser(storeID, userID string) (*entity.StoreMember, error)
	ListByStore(storeID string) ([]*entity.StoreMember, error)
	// ListWithUsers materializa membresías con sus usuarios en una sola consulta
	// (join explícito). Con storeID vacío devuelve todas las membresías.
	ListWithUsers(storeID string) ([]*entity.MemberWithUser, error)
	DeleteByStore(storeID string) error
}
