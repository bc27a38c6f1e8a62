package entity

import "time"

// Roles válidos dentro de una tienda.
const (
	StoreRoleOwner = "owner"
	StoreRoleStaff = "staff"
)

// StoreMember relaciona exactamente un User con exactamente una Store.
// Invariante: el par (store_id, user_id) aparece a lo sumo una vez.
type StoreMember struct {
	ID        string
	StoreID   string
	UserID    string
	Role      string // owner, staff
	CreatedAt time.Time
}

// MemberWithUser membresía con los datos del usuario materializados
// (join explícito, evita cargas perezosas N+1).
type MemberWithUser struct {
	StoreMember
	User User
}
