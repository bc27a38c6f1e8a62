package dto

import "time"

// CreateStoreRequest entrada para crear una tienda.
type CreateStoreRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// AddMemberRequest entrada para agregar un miembro a una tienda. El nuevo miembro
// se identifica por username o por email (al menos uno requerido). Role por defecto: staff.
type AddMemberRequest struct {
	StoreID  string `json:"store_id" validate:"required,uuid"`
	Username string `json:"username" validate:"omitempty"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"omitempty,oneof=owner staff"`
}

// StoreMemberResponse salida de una membresía con su usuario.
type StoreMemberResponse struct {
	ID        string       `json:"id"`
	StoreID   string       `json:"store_id"`
	UserID    string       `json:"user_id"`
	Role      string       `json:"role"`
	CreatedAt time.Time    `json:"created_at"`
	User      UserResponse `json:"user"`
}

// StoreResponse salida de una tienda con sus miembros.
type StoreResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Location    string                `json:"location"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
	Members     []StoreMemberResponse `json:"members"`
}

// StoreWithProductsResponse salida de una tienda con sus productos.
type StoreWithProductsResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Location    string            `json:"location"`
	Products    []ProductResponse `json:"products"`
}

// StoreListResponse lista de tiendas con miembros.
type StoreListResponse struct {
	Items []StoreResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
