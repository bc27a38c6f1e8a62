package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ellaliza/stockley/internal/application/dto"
	"github.com/ellaliza/stockley/internal/application/membership"
	"github.com/ellaliza/stockley/internal/domain"
	"github.com/ellaliza/stockley/internal/domain/entity"
	"github.com/ellaliza/stockley/internal/domain/repository"
)

// StoreUseCase orquesta el ciclo de vida de las tiendas, delegando la
// autorización en el predicado de membresía.
type StoreUseCase struct {
	txRunner     StoreTxRunner
	storeRepo    repository.StoreRepository
	memberRepo   repository.StoreMemberRepository
	productRepo  repository.ProductRepository
	membershipUC *membership.MembershipUseCase
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(
	txRunner StoreTxRunner,
	storeRepo repository.StoreRepository,
	memberRepo repository.StoreMemberRepository,
	productRepo repository.ProductRepository,
	membershipUC *membership.MembershipUseCase,
) *StoreUseCase {
	return &StoreUseCase{
		txRunner:     txRunner,
		storeRepo:    storeRepo,
		memberRepo:   memberRepo,
		productRepo:  productRepo,
		membershipUC: membershipUC,
	}
}

// Create crea una tienda y la membresía OWNER de su creador en la misma
// transacción: si el insert de la membresía falla, la tienda se revierte.
func (uc *StoreUseCase) Create(ctx context.Context, ownerUserID string, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	store := &entity.Store{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.txRunner.RunStore(ctx, func(
		storeRepo repository.StoreRepository,
		memberRepo repository.StoreMemberRepository,
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
	) error {
		if err := storeRepo.Create(store); err != nil {
			return err
		}
		_, err := uc.membershipUC.CreateOwnerMembership(memberRepo, ownerUserID, store.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	members, err := uc.memberRepo.ListWithUsers(store.ID)
	if err != nil {
		return nil, err
	}
	return toStoreResponse(store, members), nil
}

// List devuelve todas las tiendas con sus miembros materializados
// (una consulta para tiendas, una para membresías; agrupación en memoria).
func (uc *StoreUseCase) List(limit, offset int) (*dto.StoreListResponse, error) {
	stores, err := uc.storeRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	all, err := uc.memberRepo.ListWithUsers("")
	if err != nil {
		return nil, err
	}
	byStore := make(map[string][]*entity.MemberWithUser, len(stores))
	for _, m := range all {
		byStore[m.StoreID] = append(byStore[m.StoreID], m)
	}
	items := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		items = append(items, *toStoreResponse(s, byStore[s.ID]))
	}
	return &dto.StoreListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetWithProducts devuelve una tienda con sus productos. Requiere membresía
// (cualquier rol); un no-miembro recibe ErrUnauthorized.
func (uc *StoreUseCase) GetWithProducts(actingUserID, storeID string) (*dto.StoreWithProductsResponse, error) {
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.membershipUC.RequireMember(actingUserID, storeID); err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.StoreWithProductsResponse{
		ID:          store.ID,
		Name:        store.Name,
		Description: store.Description,
		Location:    store.Location,
		Products:    items,
	}, nil
}

// Delete borra una tienda en cascada (movimientos, productos, membresías y la
// tienda) como operación todo-o-nada. Solo un OWNER puede hacerlo.
func (uc *StoreUseCase) Delete(ctx context.Context, actingUserID, storeID string) error {
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	if err := uc.membershipUC.RequireOwner(actingUserID, storeID); err != nil {
		return err
	}
	return uc.txRunner.RunStore(ctx, func(
		storeRepo repository.StoreRepository,
		memberRepo repository.StoreMemberRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		if err := movRepo.DeleteByStore(storeID); err != nil {
			return err
		}
		if err := productRepo.DeleteByStore(storeID); err != nil {
			return err
		}
		if err := memberRepo.DeleteByStore(storeID); err != nil {
			return err
		}
		return storeRepo.Delete(storeID)
	})
}

func toStoreResponse(s *entity.Store, members []*entity.MemberWithUser) *dto.StoreResponse {
	if s == nil {
		return nil
	}
	ms := make([]dto.StoreMemberResponse, 0, len(members))
	for _, m := range members {
		u := m.User
		ms = append(ms, *membership.ToMemberResponse(&m.StoreMember, &u))
	}
	return &dto.StoreResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Location:    s.Location,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Members:     ms,
	}
}
