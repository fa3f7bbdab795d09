package history_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-hogar/internal/application/history"
	"github.com/jhoicas/Inventario-hogar/internal/domain/entity"
	"github.com/jhoicas/Inventario-hogar/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes: el historial fake captura el filtro recibido para verificar defaults.
// ──────────────────────────────────────────────────────────────────────────────

type recordedHistoryRepo struct {
	records    []*entity.MovementHistoryRecord
	lastFilter repository.HistoryFilter
	counts     map[string]int
	pairStats  []*repository.LocationPairStat
}

func (r *recordedHistoryRepo) Create(rec *entity.MovementHistoryRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func (r *recordedHistoryRepo) List(f repository.HistoryFilter) ([]*entity.MovementHistoryRecord, error) {
	r.lastFilter = f
	return r.records, nil
}

func (r *recordedHistoryRepo) ListByItem(itemID string, limit, offset int) ([]*entity.MovementHistoryRecord, error) {
	var out []*entity.MovementHistoryRecord
	for _, rec := range r.records {
		if rec.ItemID == itemID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *recordedHistoryRepo) CountByItemSince(string, time.Time) (int, error) { return 0, nil }
func (r *recordedHistoryRepo) CountSince(time.Time) (int, error)               { return 0, nil }
func (r *recordedHistoryRepo) ExistsDuplicateSince(string, string, *string, *string, int64, time.Time) (bool, error) {
	return false, nil
}
func (r *recordedHistoryRepo) CountByType(string, *time.Time, *time.Time) (map[string]int, error) {
	return r.counts, nil
}
func (r *recordedHistoryRepo) LocationPairStats(*time.Time, *time.Time) ([]*repository.LocationPairStat, error) {
	return r.pairStats, nil
}

type namedLocationRepo struct {
	names map[string]string
}

func (r *namedLocationRepo) NamesByIDs([]string) (map[string]string, error) { return r.names, nil }
func (r *namedLocationRepo) Create(*entity.Location) error                  { return nil }
func (r *namedLocationRepo) GetByID(string) (*entity.Location, error)       { return nil, nil }
func (r *namedLocationRepo) Update(*entity.Location) error                  { return nil }
func (r *namedLocationRepo) Delete(string) error                            { return nil }
func (r *namedLocationRepo) List(int, int) ([]*entity.Location, error)      { return nil, nil }
func (r *namedLocationRepo) ListChildren(string) ([]*entity.Location, error) {
	return nil, nil
}

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Describe: una descripción legible por cada tipo de movimiento.
// ──────────────────────────────────────────────────────────────────────────────

func TestDescribe_PorTipoDeMovimiento(t *testing.T) {
	names := map[string]string{"loc-a": "Cocina", "loc-b": "Garaje"}

	cases := []struct {
		name     string
		record   entity.MovementHistoryRecord
		expected string
	}{
		{
			name: "alta",
			record: entity.MovementHistoryRecord{
				Type: entity.MovementTypeCreate, QuantityMoved: 3,
				ToLocationID: strPtr("loc-a"),
			},
			expected: "Alta de 3 unidad(es) en Cocina",
		},
		{
			name: "traslado",
			record: entity.MovementHistoryRecord{
				Type: entity.MovementTypeMove, QuantityMoved: 5,
				FromLocationID: strPtr("loc-a"), ToLocationID: strPtr("loc-b"),
			},
			expected: "Movidas 5 unidad(es) de Cocina a Garaje",
		},
		{
			name: "división",
			record: entity.MovementHistoryRecord{
				Type: entity.MovementTypeSplit, QuantityMoved: 2,
				FromLocationID: strPtr("loc-a"), ToLocationID: strPtr("loc-b"),
			},
			expected: "Divididas 2 unidad(es) de Cocina hacia Garaje",
		},
		{
			name: "consolidación",
			record: entity.MovementHistoryRecord{
				Type: entity.MovementTypeMerge, QuantityMoved: 4,
				FromLocationID: strPtr("loc-b"), ToLocationID: strPtr("loc-a"),
			},
			expected: "Consolidadas 4 unidad(es) de Garaje en Cocina",
		},
		{
			name: "recuento",
			record: entity.MovementHistoryRecord{
				Type: entity.MovementTypeAdjust, QuantityMoved: 3,
				ToLocationID:     strPtr("loc-a"),
				QuantityBeforeTo: i64Ptr(2), QuantityAfterTo: i64Ptr(5),
			},
			expected: "Recuento en Cocina: 2 → 5",
		},
		{
			name: "baja",
			record: entity.MovementHistoryRecord{
				Type: entity.MovementTypeRemove, QuantityMoved: 7,
				FromLocationID: strPtr("loc-a"),
			},
			expected: "Baja de 7 unidad(es) en Cocina",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, history.Describe(&tc.record, names))
		})
	}
}

func TestDescribe_UbicacionSinNombreUsaElID(t *testing.T) {
	rec := entity.MovementHistoryRecord{
		Type: entity.MovementTypeCreate, QuantityMoved: 1,
		ToLocationID: strPtr("loc-eliminada"),
	}
	// La ubicación ya no existe: la descripción cae al ID en lugar de fallar
	assert.Equal(t, "Alta de 1 unidad(es) en loc-eliminada", history.Describe(&rec, map[string]string{}))
}

// ──────────────────────────────────────────────────────────────────────────────
// List / Summary
// ──────────────────────────────────────────────────────────────────────────────

func TestList_LimiteDefault(t *testing.T) {
	repo := &recordedHistoryRepo{}
	svc := history.NewService(repo, &namedLocationRepo{names: map[string]string{}})

	_, err := svc.List(repository.HistoryFilter{ItemID: "item-1"})
	require.NoError(t, err)
	assert.Equal(t, 50, repo.lastFilter.Limit, "sin límite explícito se aplica 50")

	_, err = svc.List(repository.HistoryFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastFilter.Limit)
}

func TestList_ResuelveDescripciones(t *testing.T) {
	repo := &recordedHistoryRepo{records: []*entity.MovementHistoryRecord{{
		ID: "rec-1", ItemID: "item-1", Type: entity.MovementTypeMove,
		FromLocationID: strPtr("loc-a"), ToLocationID: strPtr("loc-b"),
		QuantityMoved: 2, CreatedAt: time.Now(),
	}}}
	svc := history.NewService(repo, &namedLocationRepo{names: map[string]string{
		"loc-a": "Cocina", "loc-b": "Garaje",
	}})

	records, err := svc.List(repository.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Movidas 2 unidad(es) de Cocina a Garaje", records[0].Description)
}

func TestSummary_PorcentajesEnOrdenEstable(t *testing.T) {
	repo := &recordedHistoryRepo{counts: map[string]int{
		entity.MovementTypeMove:   6,
		entity.MovementTypeCreate: 3,
		entity.MovementTypeRemove: 1,
	}}
	svc := history.NewService(repo, &namedLocationRepo{})

	summary, err := svc.Summary(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Total)

	// Los tipos salen en el orden estable del registro, no el del mapa
	require.Len(t, summary.ByType, 3)
	assert.Equal(t, entity.MovementTypeCreate, summary.ByType[0].Type)
	assert.Equal(t, entity.MovementTypeMove, summary.ByType[1].Type)
	assert.Equal(t, entity.MovementTypeRemove, summary.ByType[2].Type)

	assert.InDelta(t, 30.0, summary.ByType[0].Percentage, 0.001)
	assert.InDelta(t, 60.0, summary.ByType[1].Percentage, 0.001)
	assert.InDelta(t, 10.0, summary.ByType[2].Percentage, 0.001)
}

func TestSummary_SinMovimientos(t *testing.T) {
	svc := history.NewService(&recordedHistoryRepo{counts: map[string]int{}}, &namedLocationRepo{})

	summary, err := svc.Summary(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Empty(t, summary.ByType)
}

func TestLocationPairStats_ResuelveNombres(t *testing.T) {
	repo := &recordedHistoryRepo{pairStats: []*repository.LocationPairStat{{
		FromLocationID: "loc-a", ToLocationID: "loc-b", Movements: 4, TotalQuantity: 12,
	}}}
	svc := history.NewService(repo, &namedLocationRepo{names: map[string]string{
		"loc-a": "Cocina", "loc-b": "Garaje",
	}})

	stats, err := svc.LocationPairStats(nil, nil)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Cocina", stats[0].FromName)
	assert.Equal(t, "Garaje", stats[0].ToName)
	assert.Equal(t, 4, stats[0].Movements)
	assert.Equal(t, int64(12), stats[0].TotalQuantity)
}
