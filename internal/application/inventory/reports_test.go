package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-hogar/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Consultas de solo lectura: ubicaciones de un artículo, contenido de una
// ubicación y reporte valorizado.
// ──────────────────────────────────────────────────────────────────────────────

func TestLocationsForItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreate(t, testCocina, 5)
	_, err := env.svc.Split(ctx, testItem, testCocina, testGaraje, 2, "", "")
	require.NoError(t, err)

	locations, err := env.svc.LocationsForItem(testItem)
	require.NoError(t, err)
	require.Len(t, locations, 2)

	byID := make(map[string]int64)
	for _, l := range locations {
		byID[l.LocationID] = l.Quantity
		assert.NotEmpty(t, l.LocationName, "el nombre de la ubicación debe resolverse")
	}
	assert.Equal(t, int64(3), byID[testCocina])
	assert.Equal(t, int64(2), byID[testGaraje])
}

func TestLocationsForItem_ArticuloInexistente(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.LocationsForItem("item-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemsInLocation_Valorizado(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreate(t, testCocina, 3) // valor unitario 80 en el fake

	items, err := env.svc.ItemsInLocation(testCocina)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Taladro", items[0].ItemName)
	assert.True(t, items[0].UnitValue.Equal(decimal.NewFromInt(80)))
	assert.True(t, items[0].TotalValue.Equal(decimal.NewFromInt(240)), "total = unitario × cantidad")
}

func TestLocationReport_Agregados(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreate(t, testCocina, 4)

	report, err := env.svc.LocationReport(testCocina)
	require.NoError(t, err)
	assert.Equal(t, testCocina, report.LocationID)
	assert.Equal(t, "Casa/Cocina", report.FullPath)
	assert.Equal(t, 1, report.ItemCount)
	assert.Equal(t, int64(4), report.TotalQuantity)
	assert.True(t, report.TotalValue.Equal(decimal.NewFromInt(320)))
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestLocationReport_UbicacionVacia(t *testing.T) {
	env := newTestEnv(t)

	report, err := env.svc.LocationReport(testGaraje)
	require.NoError(t, err)
	assert.Equal(t, 0, report.ItemCount)
	assert.Equal(t, int64(0), report.TotalQuantity)
	assert.True(t, report.TotalValue.IsZero())
}

func TestLocationReport_UbicacionInexistente(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.LocationReport("loc-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
