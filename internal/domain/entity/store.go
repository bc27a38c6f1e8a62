package entity

import "time"

// Store representa una tienda o bodega: el tenant que agrupa productos y membresías.
// El usuario que la crea se convierte automáticamente en su primer OWNER.
type Store struct {
	ID          string
	Name        string
	Description string
	Location    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
