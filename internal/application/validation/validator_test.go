package validation_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-hogar/internal/application/dto"
	"github.com/jhoicas/Inventario-hogar/internal/application/validation"
	"github.com/jhoicas/Inventario-hogar/internal/domain/entity"
	"github.com/jhoicas/Inventario-hogar/internal/domain/repository"
	"github.com/jhoicas/Inventario-hogar/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes configurables: cada escenario ajusta los campos que necesita.
// ──────────────────────────────────────────────────────────────────────────────

type stubItemRepo struct {
	item      *entity.Item
	panicMode bool // simula un fallo catastrófico del repositorio
}

func (r *stubItemRepo) GetByID(string) (*entity.Item, error) {
	if r.panicMode {
		panic("conexión perdida")
	}
	return r.item, nil
}
func (r *stubItemRepo) Create(*entity.Item) error                  { return nil }
func (r *stubItemRepo) ListByIDs([]string) ([]*entity.Item, error) { return nil, nil }
func (r *stubItemRepo) Update(*entity.Item) error                  { return nil }
func (r *stubItemRepo) Delete(string) error                        { return nil }
func (r *stubItemRepo) List(int, int) ([]*entity.Item, error)      { return nil, nil }

type stubLocationRepo struct {
	locations map[string]*entity.Location
}

func (r *stubLocationRepo) GetByID(id string) (*entity.Location, error) {
	return r.locations[id], nil
}
func (r *stubLocationRepo) Create(*entity.Location) error                   { return nil }
func (r *stubLocationRepo) Update(*entity.Location) error                   { return nil }
func (r *stubLocationRepo) Delete(string) error                             { return nil }
func (r *stubLocationRepo) List(int, int) ([]*entity.Location, error)       { return nil, nil }
func (r *stubLocationRepo) ListChildren(string) ([]*entity.Location, error) { return nil, nil }
func (r *stubLocationRepo) NamesByIDs([]string) (map[string]string, error)  { return nil, nil }

type stubEntryRepo struct {
	entry   *entity.InventoryEntry // devuelto por Get para cualquier par
	entries []*entity.InventoryEntry
}

func (r *stubEntryRepo) Get(string, string) (*entity.InventoryEntry, error) { return r.entry, nil }
func (r *stubEntryRepo) GetForUpdate(string, string) (*entity.InventoryEntry, error) {
	return r.entry, nil
}
func (r *stubEntryRepo) Create(*entity.InventoryEntry) error { return nil }
func (r *stubEntryRepo) Upsert(*entity.InventoryEntry) error { return nil }
func (r *stubEntryRepo) Delete(string, string) error         { return nil }
func (r *stubEntryRepo) ListByItem(string) ([]*entity.InventoryEntry, error) {
	return r.entries, nil
}
func (r *stubEntryRepo) ListByLocation(string) ([]*entity.InventoryEntry, error) {
	return nil, nil
}

type stubHistoryRepo struct {
	recentCount int
	countErr    error
	duplicate   bool
}

func (r *stubHistoryRepo) Create(*entity.MovementHistoryRecord) error { return nil }
func (r *stubHistoryRepo) List(repository.HistoryFilter) ([]*entity.MovementHistoryRecord, error) {
	return nil, nil
}
func (r *stubHistoryRepo) ListByItem(string, int, int) ([]*entity.MovementHistoryRecord, error) {
	return nil, nil
}
func (r *stubHistoryRepo) CountByItemSince(string, time.Time) (int, error) {
	return r.recentCount, r.countErr
}
func (r *stubHistoryRepo) CountSince(time.Time) (int, error) { return 0, nil }
func (r *stubHistoryRepo) ExistsDuplicateSince(string, string, *string, *string, int64, time.Time) (bool, error) {
	return r.duplicate, nil
}
func (r *stubHistoryRepo) CountByType(string, *time.Time, *time.Time) (map[string]int, error) {
	return nil, nil
}
func (r *stubHistoryRepo) LocationPairStats(*time.Time, *time.Time) ([]*repository.LocationPairStat, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

type validatorEnv struct {
	validator *validation.Validator
	items     *stubItemRepo
	entries   *stubEntryRepo
	history   *stubHistoryRepo
}

func newValidatorEnv(t *testing.T) *validatorEnv {
	t.Helper()
	items := &stubItemRepo{item: &entity.Item{
		ID: "item-1", Name: "Taladro", Status: entity.ItemStatusActive,
		CurrentValue: decimal.NewFromInt(80),
	}}
	locations := &stubLocationRepo{locations: map[string]*entity.Location{
		"loc-a": {ID: "loc-a", Name: "Cocina", Type: entity.LocationTypeRoom, FullPath: "Casa/Cocina", Depth: 1},
		"loc-b": {ID: "loc-b", Name: "Garaje", Type: entity.LocationTypeRoom, FullPath: "Casa/Garaje", Depth: 1},
	}}
	entries := &stubEntryRepo{entry: &entity.InventoryEntry{
		ItemID: "item-1", LocationID: "loc-a", Quantity: 50,
	}}
	history := &stubHistoryRepo{}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	v := validation.NewValidator(validation.NewRegistry(), items, locations, entries, history, log)
	return &validatorEnv{validator: v, items: items, entries: entries, history: history}
}

func ptr[T any](v T) *T { return &v }

func validMove() validation.ProposedMovement {
	return validation.ProposedMovement{
		ItemID:         "item-1",
		Type:           entity.MovementTypeMove,
		FromLocationID: ptr("loc-a"),
		ToLocationID:   ptr("loc-b"),
		Quantity:       5,
		Actor:          "ana",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateMovement_MovimientoValido(t *testing.T) {
	env := newValidatorEnv(t)

	res := env.validator.ValidateMovement(validMove(), false)
	require.True(t, res.IsValid, "errores: %v", res.Errors)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "Taladro", res.Metadata["item_name"])

	// Las seis reglas por defecto están habilitadas y deben figurar todas
	assert.Len(t, res.RulesApplied, 6)
}

func TestValidateMovement_TipoDesconocido(t *testing.T) {
	env := newValidatorEnv(t)
	p := validMove()
	p.Type = "teleport"

	res := env.validator.ValidateMovement(p, false)
	assert.False(t, res.IsValid)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "tipo de movimiento desconocido")
}

func TestValidateMovement_MismaUbicacion(t *testing.T) {
	env := newValidatorEnv(t)
	p := validMove()
	p.ToLocationID = ptr("loc-a")

	res := env.validator.ValidateMovement(p, false)
	assert.False(t, res.IsValid)
}

func TestValidateMovement_CantidadesInconsistentes(t *testing.T) {
	env := newValidatorEnv(t)
	p := validMove()
	p.QuantityBefore = ptr(int64(10))
	p.QuantityAfter = ptr(int64(3)) // delta -7, pero Quantity = 5

	res := env.validator.ValidateMovement(p, false)
	assert.False(t, res.IsValid)
}

func TestValidateMovement_EstadoBloqueado(t *testing.T) {
	env := newValidatorEnv(t)
	env.items.item.Status = entity.ItemStatusDisposed

	res := env.validator.ValidateMovement(validMove(), false)
	assert.False(t, res.IsValid)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "estado bloqueado")
}

func TestValidateMovement_ExistenciasInsuficientes(t *testing.T) {
	env := newValidatorEnv(t)
	env.entries.entry.Quantity = 2

	p := validMove() // pide 5
	res := env.validator.ValidateMovement(p, false)
	assert.False(t, res.IsValid)
}

func TestValidateMovement_LimiteConcurrente(t *testing.T) {
	env := newValidatorEnv(t)
	env.history.recentCount = 100 // alcanza el límite por defecto

	res := env.validator.ValidateMovement(validMove(), false)
	assert.False(t, res.IsValid)
}

func TestValidateMovement_DuplicadoSoloAdvierte(t *testing.T) {
	env := newValidatorEnv(t)
	env.history.duplicate = true

	res := env.validator.ValidateMovement(validMove(), false)
	assert.True(t, res.IsValid, "el duplicado reciente nunca bloquea")
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "movimiento idéntico")
}

func TestValidateMovement_EstrictoConvierteAdvertencias(t *testing.T) {
	env := newValidatorEnv(t)
	env.history.duplicate = true

	res := env.validator.ValidateMovement(validMove(), true)
	assert.False(t, res.IsValid, "en modo estricto las advertencias invalidan")
	assert.Empty(t, res.Errors, "la advertencia no se promueve a error")
	assert.Len(t, res.Warnings, 1)
}

func TestValidateMovement_ArticuloDeAltoValor(t *testing.T) {
	env := newValidatorEnv(t)
	env.items.item.CurrentValue = decimal.NewFromInt(2500)

	res := env.validator.ValidateMovement(validMove(), false)
	assert.True(t, res.IsValid)
	assert.Equal(t, true, res.Metadata["high_value_item"])
}

func TestValidateMovement_ReglaDeshabilitadaNoFigura(t *testing.T) {
	env := newValidatorEnv(t)
	env.validator.ApplyOverrides(map[string]dto.RuleOverride{
		validation.RuleValueTracking: {Enabled: ptr(false)},
	})

	res := env.validator.ValidateMovement(validMove(), false)
	assert.NotContains(t, res.RulesApplied, validation.RuleValueTracking)
	assert.Len(t, res.RulesApplied, 5)
}

func TestValidateMovement_NuncaEntraEnPanico(t *testing.T) {
	env := newValidatorEnv(t)
	env.items.panicMode = true

	var res *validation.Result
	require.NotPanics(t, func() {
		res = env.validator.ValidateMovement(validMove(), false)
	})
	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "error interno del validador")
}

func TestValidateMovement_FalloDeRepoNoEsPanico(t *testing.T) {
	env := newValidatorEnv(t)
	env.history.countErr = errors.New("timeout")

	res := env.validator.ValidateMovement(validMove(), false)
	assert.False(t, res.IsValid)
}

func TestValidateMovement_RafagaAdvierte(t *testing.T) {
	env := newValidatorEnv(t)
	env.history.recentCount = 25 // sobre la guardia de 20/min, bajo el límite de 100/h

	res := env.validator.ValidateMovement(validMove(), false)
	assert.True(t, res.IsValid)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[len(res.Warnings)-1], "ráfaga de movimientos")
}

func TestValidateMovement_CreateConInventarioPrevio(t *testing.T) {
	env := newValidatorEnv(t)
	env.entries.entries = []*entity.InventoryEntry{
		{ItemID: "item-1", LocationID: "loc-a", Quantity: 3},
	}

	p := validation.ProposedMovement{
		ItemID:       "item-1",
		Type:         entity.MovementTypeCreate,
		ToLocationID: ptr("loc-b"),
		Quantity:     2,
	}
	res := env.validator.ValidateMovement(p, false)
	assert.True(t, res.IsValid)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "posible duplicado")
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateBulk
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateBulk_AtomicoInvalidaElLote(t *testing.T) {
	env := newValidatorEnv(t)

	bad := validMove()
	bad.Type = "teleport"
	third := validMove()
	third.FromLocationID = ptr("loc-b")
	third.ToLocationID = ptr("loc-a")
	movements := []validation.ProposedMovement{validMove(), bad, third}

	overall, individual := env.validator.ValidateBulk(movements, true)
	require.Len(t, individual, 3)
	assert.True(t, individual[0].IsValid)
	assert.False(t, individual[1].IsValid)
	assert.True(t, individual[2].IsValid)

	assert.False(t, overall.IsValid, "con atomic=true un inválido hunde el lote")
	require.NotEmpty(t, overall.Errors)
	assert.Contains(t, overall.Errors[0], "movimiento 2:")
}

func TestValidateBulk_NoAtomicoSoloAcumula(t *testing.T) {
	env := newValidatorEnv(t)

	bad := validMove()
	bad.Type = "teleport"
	movements := []validation.ProposedMovement{validMove(), bad}

	overall, individual := env.validator.ValidateBulk(movements, false)
	require.Len(t, individual, 2)
	assert.True(t, overall.IsValid, "sin atomic el lote no se invalida")
	assert.NotEmpty(t, overall.Errors, "pero los errores individuales sí se acumulan")
}

func TestValidateBulk_ConflictoCruzado(t *testing.T) {
	env := newValidatorEnv(t)

	// Dos movimientos sobre la misma tupla (item, origen, destino)
	movements := []validation.ProposedMovement{validMove(), validMove()}

	overall, _ := env.validator.ValidateBulk(movements, true)
	require.NotEmpty(t, overall.Warnings)
	found := false
	for _, w := range overall.Warnings {
		if strings.Contains(w, "conflicto en lote") && strings.Contains(w, "cantidad total 10") {
			found = true
		}
	}
	assert.True(t, found, "debe advertir el conflicto cruzado con la suma de cantidades: %v", overall.Warnings)
}
