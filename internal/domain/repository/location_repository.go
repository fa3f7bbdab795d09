package repository

import "github.com/jhoicas/Inventario-hogar/internal/domain/entity"

// LocationRepository define el puerto de persistencia para ubicaciones del hogar.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	Update(location *entity.Location) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Location, error)
	ListChildren(parentID string) ([]*entity.Location, error)
	// NamesByIDs devuelve nombre por ID para las ubicaciones dadas (descripciones del historial).
	NamesByIDs(ids []string) (map[string]string, error)
}
