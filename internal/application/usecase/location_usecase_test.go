package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-hogar/internal/application/dto"
	"github.com/jhoicas/Inventario-hogar/internal/application/usecase"
	"github.com/jhoicas/Inventario-hogar/internal/domain"
	"github.com/jhoicas/Inventario-hogar/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de ubicaciones con resolución de hijos por ParentID.
// ──────────────────────────────────────────────────────────────────────────────

type memLocationRepo struct {
	locations map[string]*entity.Location
}

func newMemLocationRepo() *memLocationRepo {
	return &memLocationRepo{locations: make(map[string]*entity.Location)}
}

func (r *memLocationRepo) Create(l *entity.Location) error {
	cp := *l
	r.locations[l.ID] = &cp
	return nil
}

func (r *memLocationRepo) GetByID(id string) (*entity.Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *memLocationRepo) Update(l *entity.Location) error {
	if _, ok := r.locations[l.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *l
	r.locations[l.ID] = &cp
	return nil
}

func (r *memLocationRepo) Delete(id string) error {
	if _, ok := r.locations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.locations, id)
	return nil
}

func (r *memLocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.locations {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memLocationRepo) ListChildren(parentID string) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.locations {
		if l.ParentID == parentID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memLocationRepo) NamesByIDs(ids []string) (map[string]string, error) {
	names := make(map[string]string)
	for _, id := range ids {
		if l, ok := r.locations[id]; ok {
			names[id] = l.Name
		}
	}
	return names, nil
}

// mustCreate encadena creaciones para armar árboles de prueba.
func mustCreate(t *testing.T, uc *usecase.LocationUseCase, name, locType, parentID string) *dto.LocationResponse {
	t.Helper()
	resp, err := uc.Create(dto.CreateLocationRequest{Name: name, Type: locType, ParentID: parentID})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: jerarquía estricta y derivación de full_path/depth
// ──────────────────────────────────────────────────────────────────────────────

func TestLocationCreate_DerivaPathYDepth(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())

	house := mustCreate(t, uc, "Casa", entity.LocationTypeHouse, "")
	assert.Equal(t, "Casa", house.FullPath)
	assert.Equal(t, 0, house.Depth)

	room := mustCreate(t, uc, "Cocina", entity.LocationTypeRoom, house.ID)
	assert.Equal(t, "Casa/Cocina", room.FullPath)
	assert.Equal(t, 1, room.Depth)

	container := mustCreate(t, uc, "Alacena", entity.LocationTypeContainer, room.ID)
	shelf := mustCreate(t, uc, "Estante 2", entity.LocationTypeShelf, container.ID)
	assert.Equal(t, "Casa/Cocina/Alacena/Estante 2", shelf.FullPath)
	assert.Equal(t, 3, shelf.Depth)
}

func TestLocationCreate_RaizDebeSerHouse(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())

	_, err := uc.Create(dto.CreateLocationRequest{Name: "Cocina", Type: entity.LocationTypeRoom})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestLocationCreate_SaltoDeNivelInvalido(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())
	house := mustCreate(t, uc, "Casa", entity.LocationTypeHouse, "")

	// Un shelf no puede colgar directo de la casa
	_, err := uc.Create(dto.CreateLocationRequest{
		Name: "Estante", Type: entity.LocationTypeShelf, ParentID: house.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestLocationCreate_PadreInexistente(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())

	_, err := uc.Create(dto.CreateLocationRequest{
		Name: "Cocina", Type: entity.LocationTypeRoom, ParentID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocationCreate_EntradaInvalida(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())

	_, err := uc.Create(dto.CreateLocationRequest{Name: "", Type: entity.LocationTypeHouse})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateLocationRequest{Name: "Garaje", Type: "garage"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update: renombrado con recálculo del subárbol y detección de ciclos
// ──────────────────────────────────────────────────────────────────────────────

func TestLocationUpdate_RenombrarRecalculaSubarbol(t *testing.T) {
	repo := newMemLocationRepo()
	uc := usecase.NewLocationUseCase(repo)

	house := mustCreate(t, uc, "Casa", entity.LocationTypeHouse, "")
	room := mustCreate(t, uc, "Cocina", entity.LocationTypeRoom, house.ID)
	container := mustCreate(t, uc, "Alacena", entity.LocationTypeContainer, room.ID)

	newName := "Cocina Grande"
	updated, err := uc.Update(room.ID, dto.UpdateLocationRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Casa/Cocina Grande", updated.FullPath)

	// El hijo debe reflejar el nuevo path del padre
	child, err := repo.GetByID(container.ID)
	require.NoError(t, err)
	assert.Equal(t, "Casa/Cocina Grande/Alacena", child.FullPath)
	assert.Equal(t, 2, child.Depth)
}

func TestLocationUpdate_RechazaCiclos(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())

	house := mustCreate(t, uc, "Casa", entity.LocationTypeHouse, "")
	room := mustCreate(t, uc, "Cocina", entity.LocationTypeRoom, house.ID)
	container := mustCreate(t, uc, "Alacena", entity.LocationTypeContainer, room.ID)

	// Reubicar la habitación bajo su propio descendiente crearía un ciclo
	_, err := uc.Update(room.ID, dto.UpdateLocationRequest{ParentID: &container.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)

	// Reubicar un nodo bajo sí mismo también
	_, err = uc.Update(room.ID, dto.UpdateLocationRequest{ParentID: &room.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestLocationUpdate_Inexistente(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())
	name := "x"
	_, err := uc.Update("no-existe", dto.UpdateLocationRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
