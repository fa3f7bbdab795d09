package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-hogar/internal/application/analytics"
	"github.com/jhoicas/Inventario-hogar/internal/domain/repository"
	"github.com/jhoicas/Inventario-hogar/pkg/cache"
	"github.com/jhoicas/Inventario-hogar/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes: repo de analítica con contador de consultas y cache en memoria.
// ──────────────────────────────────────────────────────────────────────────────

type countingAnalyticsRepo struct {
	summary *repository.InventorySummary
	calls   int
	err     error
}

func (r *countingAnalyticsRepo) InventorySummary() (*repository.InventorySummary, error) {
	r.calls++
	return r.summary, r.err
}

type memCache struct {
	values  map[string]string
	getErr  error
	setErr  error
	deletes []string
}

func newMemCache() *memCache { return &memCache{values: make(map[string]string)} }

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	v, ok := c.values[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	switch v := value.(type) {
	case string:
		c.values[key] = v
	case []byte:
		c.values[key] = string(v)
	}
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.deletes = append(c.deletes, key)
	delete(c.values, key)
	return nil
}

func testSummary() *repository.InventorySummary {
	return &repository.InventorySummary{
		DistinctItems:     3,
		TotalQuantity:     12,
		DistinctLocations: 2,
		TotalValue:        decimal.NewFromInt(450),
		ByLocation: []repository.LocationBreakdown{{
			LocationID: "loc-a", Name: "Cocina", FullPath: "Casa/Cocina",
			Items: 2, Quantity: 7, Value: decimal.NewFromInt(300),
		}},
		ByCategory: []repository.CategoryBreakdown{{
			CategoryID: "", Name: "Sin categoría",
			Items: 3, Quantity: 12, Value: decimal.NewFromInt(450),
		}},
	}
}

func newDashboard(repo *countingAnalyticsRepo, c cache.Client) *analytics.DashboardUseCase {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return analytics.NewDashboardUseCase(repo, c, time.Minute, log)
}

// ──────────────────────────────────────────────────────────────────────────────
// InventorySummary
// ──────────────────────────────────────────────────────────────────────────────

func TestInventorySummary_SinCache(t *testing.T) {
	repo := &countingAnalyticsRepo{summary: testSummary()}
	uc := newDashboard(repo, nil)

	result, err := uc.InventorySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.DistinctItems)
	assert.Equal(t, int64(12), result.TotalQuantity)
	require.Len(t, result.ByLocation, 1)
	assert.Equal(t, "Casa/Cocina", result.ByLocation[0].FullPath)

	// Sin cache cada llamada consulta la BD
	_, err = uc.InventorySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestInventorySummary_CacheAside(t *testing.T) {
	repo := &countingAnalyticsRepo{summary: testSummary()}
	c := newMemCache()
	uc := newDashboard(repo, c)

	first, err := uc.InventorySummary(context.Background())
	require.NoError(t, err)
	second, err := uc.InventorySummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls, "la segunda lectura sale del cache")
	assert.Equal(t, first.TotalQuantity, second.TotalQuantity)
	assert.True(t, first.TotalValue.Equal(second.TotalValue))
}

func TestInventorySummary_CacheCaidoNoEsFatal(t *testing.T) {
	repo := &countingAnalyticsRepo{summary: testSummary()}
	c := newMemCache()
	c.getErr = errors.New("conexión rechazada")
	c.setErr = errors.New("conexión rechazada")
	uc := newDashboard(repo, c)

	result, err := uc.InventorySummary(context.Background())
	require.NoError(t, err, "un fallo de Redis nunca tumba la consulta")
	assert.Equal(t, 3, result.DistinctItems)
	assert.Equal(t, 1, repo.calls)
}

func TestInventorySummary_ErrorDeBD(t *testing.T) {
	repo := &countingAnalyticsRepo{err: errors.New("sin conexión")}
	uc := newDashboard(repo, nil)

	_, err := uc.InventorySummary(context.Background())
	assert.Error(t, err)
}

func TestInvalidateSummary_BorraLaClave(t *testing.T) {
	repo := &countingAnalyticsRepo{summary: testSummary()}
	c := newMemCache()
	uc := newDashboard(repo, c)

	_, err := uc.InventorySummary(context.Background())
	require.NoError(t, err)

	uc.InvalidateSummary(context.Background())
	require.NotEmpty(t, c.deletes)

	// Tras invalidar, la siguiente lectura vuelve a la BD
	_, err = uc.InventorySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestInvalidateSummary_SinCacheEsNoOp(t *testing.T) {
	uc := newDashboard(&countingAnalyticsRepo{summary: testSummary()}, nil)
	assert.NotPanics(t, func() { uc.InvalidateSummary(context.Background()) })
}
