package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-hogar/internal/application/dto"
	"github.com/jhoicas/Inventario-hogar/internal/domain"
	"github.com/jhoicas/Inventario-hogar/internal/domain/entity"
	"github.com/jhoicas/Inventario-hogar/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones del hogar.
// Hace cumplir la jerarquía estricta house → room → container → shelf:
// la raíz debe ser house, cada hijo debe ser el tipo inmediato siguiente
// y no se permiten ciclos en la cadena de padres.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una ubicación validando tipo, padre y derivando full_path y depth.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" || !entity.IsValidLocationType(in.Type) {
		return nil, domain.ErrInvalidInput
	}

	location := &entity.Location{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Type:       in.Type,
		ParentID:   in.ParentID,
		CategoryID: in.CategoryID,
	}
	if err := uc.derivePath(location); err != nil {
		return nil, err
	}

	now := time.Now()
	location.CreatedAt = now
	location.UpdatedAt = now
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(location), nil
}

// Update actualiza nombre/padre/categoría; al renombrar o reubicar se recalculan
// los full_path del nodo y de todo su subárbol.
func (uc *LocationUseCase) Update(id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		location.Name = *in.Name
	}
	if in.CategoryID != nil {
		location.CategoryID = *in.CategoryID
	}
	if in.ParentID != nil {
		if err := uc.checkNoCycle(id, *in.ParentID); err != nil {
			return nil, err
		}
		location.ParentID = *in.ParentID
	}
	if err := uc.derivePath(location); err != nil {
		return nil, err
	}
	location.UpdatedAt = time.Now()
	if err := uc.repo.Update(location); err != nil {
		return nil, err
	}
	if err := uc.repathChildren(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// List lista ubicaciones con paginación.
func (uc *LocationUseCase) List(limit, offset int) (*dto.LocationListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una ubicación por ID.
func (uc *LocationUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// derivePath valida la relación de tipos con el padre y materializa full_path y depth.
func (uc *LocationUseCase) derivePath(location *entity.Location) error {
	if location.ParentID == "" {
		// Un nodo raíz siempre es de tipo house
		if location.Type != entity.LocationTypeHouse {
			return domain.ErrInvalidOperation
		}
		location.FullPath = location.Name
		location.Depth = 0
		return nil
	}
	parent, err := uc.repo.GetByID(location.ParentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return domain.ErrNotFound
	}
	if !entity.IsValidChildOf(location.Type, parent.Type) {
		return domain.ErrInvalidOperation
	}
	location.FullPath = parent.FullPath + "/" + location.Name
	location.Depth = parent.Depth + 1
	return nil
}

// checkNoCycle rechaza reubicar un nodo bajo sí mismo o bajo uno de sus descendientes.
func (uc *LocationUseCase) checkNoCycle(id, newParentID string) error {
	current := newParentID
	for current != "" {
		if current == id {
			return domain.ErrInvalidOperation
		}
		parent, err := uc.repo.GetByID(current)
		if err != nil {
			return err
		}
		if parent == nil {
			return domain.ErrNotFound
		}
		current = parent.ParentID
	}
	return nil
}

// repathChildren recalcula full_path/depth del subárbol tras renombrar o reubicar.
func (uc *LocationUseCase) repathChildren(parent *entity.Location) error {
	children, err := uc.repo.ListChildren(parent.ID)
	if err != nil {
		return err
	}
	for _, child := range children {
		child.FullPath = parent.FullPath + "/" + child.Name
		child.Depth = parent.Depth + 1
		child.UpdatedAt = time.Now()
		if err := uc.repo.Update(child); err != nil {
			return err
		}
		if err := uc.repathChildren(child); err != nil {
			return err
		}
	}
	return nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{
		ID:         l.ID,
		Name:       l.Name,
		Type:       l.Type,
		ParentID:   l.ParentID,
		CategoryID: l.CategoryID,
		FullPath:   l.FullPath,
		Depth:      l.Depth,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}
