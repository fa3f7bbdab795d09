package repository

import "github.com/jhoicas/Inventario-hogar/internal/domain/entity"

// ItemRepository define el puerto de persistencia para artículos.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	ListByIDs(ids []string) ([]*entity.Item, error)
	Update(item *entity.Item) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Item, error)
}
