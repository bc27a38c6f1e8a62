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

var _ repository.StoreMemberRepository = (*StoreMemberRepo)(nil)

// StoreMemberRepo implementación del puerto StoreMemberRepository sobre PostgreSQL
// (usable con pool o tx).
type StoreMemberRepo struct {
	q Querier
}

// NewStoreMemberRepository construye el adaptador de membresías. Pasar pool o tx (Querier).
func NewStoreMemberRepository(q Querier) *StoreMemberRepo {
	return &StoreMemberRepo{q: q}
}

// Create persiste una membresía. El constraint único sobre (store_id, user_id)
// respalda en BD el chequeo de duplicado del caso de uso.
func (r *StoreMemberRepo) Create(member *entity.StoreMember) error {
	query := `
		INSERT INTO store_members (id, store_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		member.ID, member.StoreID, member.UserID, member.Role, member.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyMember
		}
		return fmt.Errorf("insert store member: %w", err)
	}
	return nil
}

// GetByStoreAndUser obtiene la membresía de un usuario en una tienda.
// Devuelve (nil, nil) si no existe.
func (r *StoreMemberRepo) GetByStoreAndUser(storeID, userID string) (*entity.StoreMember, error) {
	query := `
		SELECT id, store_id, user_id, role, created_at
		FROM store_members WHERE store_id = $1 AND user_id = $2`
	var m entity.StoreMember
	err := r.q.QueryRow(context.Background(), query, storeID, userID).Scan(
		&m.ID, &m.StoreID, &m.UserID, &m.Role, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store member: %w", err)
	}
	return &m, nil
}

// ListByStore lista las membresías de una tienda.
func (r *StoreMemberRepo) ListByStore(storeID string) ([]*entity.StoreMember, error) {
	query := `
		SELECT id, store_id, user_id, role, created_at
		FROM store_members WHERE store_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list store members: %w", err)
	}
	defer rows.Close()
	var list []*entity.StoreMember
	for rows.Next() {
		var m entity.StoreMember
		if err := rows.Scan(&m.ID, &m.StoreID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan store member: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListWithUsers materializa membresías con sus usuarios en una sola consulta
// (join explícito, sin N+1). Con storeID vacío devuelve todas.
func (r *StoreMemberRepo) ListWithUsers(storeID string) ([]*entity.MemberWithUser, error) {
	query := `
		SELECT m.id, m.store_id, m.user_id, m.role, m.created_at,
		       u.id, u.username, u.email, u.full_name, u.password_hash, u.platform_role, u.created_at, u.updated_at
		FROM store_members m
		JOIN users u ON u.id = m.user_id
		WHERE ($1 = '' OR m.store_id = $1)
		ORDER BY m.created_at`
	rows, err := r.q.Query(context.Background(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list members with users: %w", err)
	}
	defer rows.Close()
	var list []*entity.MemberWithUser
	for rows.Next() {
		var mw entity.MemberWithUser
		if err := rows.Scan(
			&mw.ID, &mw.StoreID, &mw.UserID, &mw.Role, &mw.CreatedAt,
			&mw.User.ID, &mw.User.Username, &mw.User.Email, &mw.User.FullName,
			&mw.User.PasswordHash, &mw.User.PlatformRole, &mw.User.CreatedAt, &mw.User.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan member with user: %w", err)
		}
		list = append(list, &mw)
	}
	return list, rows.Err()
}

// DeleteByStore elimina todas las membresías de una tienda (cascada de borrado).
func (r *StoreMemberRepo) DeleteByStore(storeID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM store_members WHERE store_id = $1`, storeID)
	if err != nil {
		return fmt.Errorf("delete store members: %w", err)
	}
	return nil
}
