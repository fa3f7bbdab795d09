package entity_test

import (
	"testing"

	"github.com/jhoicas/Inventario-hogar/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la jerarquía de ubicaciones: house → room → container → shelf.
// El orden es cerrado y estricto; cualquier salto de nivel es inválido.
// ──────────────────────────────────────────────────────────────────────────────

func TestLocationTypeLevel_OrdenFijo(t *testing.T) {
	assert.Equal(t, 0, entity.LocationTypeLevel(entity.LocationTypeHouse))
	assert.Equal(t, 1, entity.LocationTypeLevel(entity.LocationTypeRoom))
	assert.Equal(t, 2, entity.LocationTypeLevel(entity.LocationTypeContainer))
	assert.Equal(t, 3, entity.LocationTypeLevel(entity.LocationTypeShelf))
	assert.Equal(t, -1, entity.LocationTypeLevel("garage"), "tipo desconocido debe dar -1")
}

func TestChildLocationType_HijoInmediato(t *testing.T) {
	child, ok := entity.ChildLocationType(entity.LocationTypeHouse)
	assert.True(t, ok)
	assert.Equal(t, entity.LocationTypeRoom, child)

	child, ok = entity.ChildLocationType(entity.LocationTypeContainer)
	assert.True(t, ok)
	assert.Equal(t, entity.LocationTypeShelf, child)

	// shelf es hoja: no admite hijos
	_, ok = entity.ChildLocationType(entity.LocationTypeShelf)
	assert.False(t, ok)

	_, ok = entity.ChildLocationType("desconocido")
	assert.False(t, ok)
}

func TestIsValidChildOf_NoPermiteSaltos(t *testing.T) {
	assert.True(t, entity.IsValidChildOf(entity.LocationTypeRoom, entity.LocationTypeHouse))
	assert.True(t, entity.IsValidChildOf(entity.LocationTypeContainer, entity.LocationTypeRoom))
	assert.True(t, entity.IsValidChildOf(entity.LocationTypeShelf, entity.LocationTypeContainer))

	// Saltos de nivel e inversiones son inválidos
	assert.False(t, entity.IsValidChildOf(entity.LocationTypeContainer, entity.LocationTypeHouse))
	assert.False(t, entity.IsValidChildOf(entity.LocationTypeShelf, entity.LocationTypeRoom))
	assert.False(t, entity.IsValidChildOf(entity.LocationTypeHouse, entity.LocationTypeShelf))
	assert.False(t, entity.IsValidChildOf(entity.LocationTypeRoom, entity.LocationTypeRoom))
}

func TestIsValidMovementType_RegistroCerrado(t *testing.T) {
	for _, mt := range entity.MovementTypes {
		assert.True(t, entity.IsValidMovementType(mt), mt)
	}
	assert.False(t, entity.IsValidMovementType("teleport"))
	assert.False(t, entity.IsValidMovementType(""))
}
