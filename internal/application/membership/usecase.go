package membership

import (
	"time"

	"github.com/google/uuid"

	"github.com/ellaliza/stockley/internal/application/auth"
	"github.com/ellaliza/stockley/internal/application/dto"
	"github.com/ellaliza/stockley/internal/domain"
	"github.com/ellaliza/stockley/internal/domain/entity"
	"github.com/ellaliza/stockley/internal/domain/repository"
)

// MembershipUseCase centraliza el predicado de autorización por tienda.
// Toda mutación de tienda o producto pasa por IsMember/RoleOf en lugar de
// re-derivar la lógica de membresía en cada endpoint.
type MembershipUseCase struct {
	memberRepo repository.StoreMemberRepository
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
}

// NewMembershipUseCase construye el caso de uso.
func NewMembershipUseCase(
	memberRepo repository.StoreMemberRepository,
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
) *MembershipUseCase {
	return &MembershipUseCase{memberRepo: memberRepo, userRepo: userRepo, storeRepo: storeRepo}
}

// IsMember indica si existe una membresía (cualquier rol) para el par usuario/tienda.
func (uc *MembershipUseCase) IsMember(userID, storeID string) (bool, error) {
	m, err := uc.memberRepo.GetByStoreAndUser(storeID, userID)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// RoleOf devuelve el rol del usuario en la tienda, o "" si no es miembro.
func (uc *MembershipUseCase) RoleOf(userID, storeID string) (string, error) {
	m, err := uc.memberRepo.GetByStoreAndUser(storeID, userID)
	if err != nil {
		return "", err
	}
	if m == nil {
		return "", nil
	}
	return m.Role, nil
}

// RequireMember falla con ErrUnauthorized si el usuario no es miembro de la tienda.
func (uc *MembershipUseCase) RequireMember(userID, storeID string) error {
	ok, err := uc.IsMember(userID, storeID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnauthorized
	}
	return nil
}

// RequireOwner falla con ErrUnauthorized si el usuario no es OWNER de la tienda.
// Solo agregar miembros y borrar la tienda exigen ownership; el resto de
// operaciones de producto requieren únicamente membresía.
func (uc *MembershipUseCase) RequireOwner(userID, storeID string) error {
	role, err := uc.RoleOf(userID, storeID)
	if err != nil {
		return err
	}
	if role != entity.StoreRoleOwner {
		return domain.ErrUnauthorized
	}
	return nil
}

// AddMember agrega un miembro a una tienda existente. El actor debe ser OWNER;
// el nuevo miembro se identifica por username o email y no debe ser ya miembro.
func (uc *MembershipUseCase) AddMember(actingUserID string, in dto.AddMemberRequest) (*dto.StoreMemberResponse, error) {
	if in.Username == "" && in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.StoreRoleStaff
	}
	if role != entity.StoreRoleOwner && role != entity.StoreRoleStaff {
		return nil, domain.ErrInvalidInput
	}

	store, err := uc.storeRepo.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.RequireOwner(actingUserID, in.StoreID); err != nil {
		return nil, err
	}

	var target *entity.User
	if in.Username != "" {
		target, err = uc.userRepo.GetByUsername(in.Username)
	} else {
		target, err = uc.userRepo.GetByEmail(in.Email)
	}
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}

	already, err := uc.IsMember(target.ID, in.StoreID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, domain.ErrAlreadyMember
	}

	member := &entity.StoreMember{
		ID:        uuid.New().String(),
		StoreID:   in.StoreID,
		UserID:    target.ID,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := uc.memberRepo.Create(member); err != nil {
		return nil, err
	}
	return ToMemberResponse(member, target), nil
}

// CreateOwnerMembership crea la membresía OWNER al crear una tienda. Se usa
// únicamente en ese punto (no hay owner previo que autorice) y recibe el repo
// atado a la transacción del caller para que tienda y membresía sean atómicas.
func (uc *MembershipUseCase) CreateOwnerMembership(
	memberRepo repository.StoreMemberRepository,
	userID, storeID string,
) (*entity.StoreMember, error) {
	member := &entity.StoreMember{
		ID:        uuid.New().String(),
		StoreID:   storeID,
		UserID:    userID,
		Role:      entity.StoreRoleOwner,
		CreatedAt: time.Now(),
	}
	if err := memberRepo.Create(member); err != nil {
		return nil, err
	}
	return member, nil
}

// ToMemberResponse convierte membresía + usuario a DTO de salida.
func ToMemberResponse(m *entity.StoreMember, u *entity.User) *dto.StoreMemberResponse {
	if m == nil {
		return nil
	}
	resp := &dto.StoreMemberResponse{
		ID:        m.ID,
		StoreID:   m.StoreID,
		UserID:    m.UserID,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
	if u != nil {
		resp.User = *auth.ToUserResponse(u)
	}
	return resp
}
