package dto

import "time"

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name       string `json:"name"`
	Type       string `json:"type"` // house, room, container, shelf
	ParentID   string `json:"parent_id,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
}

// UpdateLocationRequest body para PUT /api/locations/:id (campos nil no cambian).
type UpdateLocationRequest struct {
	Name       *string `json:"name,omitempty"`
	ParentID   *string `json:"parent_id,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
}

// LocationResponse representación de una ubicación.
type LocationResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	ParentID   string    `json:"parent_id,omitempty"`
	CategoryID string    `json:"category_id,omitempty"`
	FullPath   string    `json:"full_path"`
	Depth      int       `json:"depth"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LocationListResponse listado paginado de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
