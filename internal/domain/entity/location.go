package entity

import "time"

// Tipos de ubicación: jerarquía estricta de 4 niveles.
const (
	LocationTypeHouse     = "house"     // casa (raíz)
	LocationTypeRoom      = "room"      // habitación
	LocationTypeContainer = "container" // mueble o contenedor
	LocationTypeShelf     = "shelf"     // estante o cajón
)

// locationOrder define el orden fijo casa → habitación → contenedor → estante.
var locationOrder = []string{
	LocationTypeHouse,
	LocationTypeRoom,
	LocationTypeContainer,
	LocationTypeShelf,
}

// Location representa un nodo del árbol de ubicaciones del hogar.
// FullPath y Depth son derivados de la cadena de ancestros; se materializan al crear/mover el nodo.
type Location struct {
	ID         string
	Name       string
	Type       string
	ParentID   string // vacío si es raíz (tipo house)
	CategoryID string // opcional
	FullPath   string // nombres desde la raíz unidos con "/"
	Depth      int    // distancia a la raíz (house = 0)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsValidLocationType indica si el tipo pertenece a la jerarquía conocida.
func IsValidLocationType(t string) bool {
	for _, lt := range locationOrder {
		if lt == t {
			return true
		}
	}
	return false
}

// LocationTypeLevel devuelve el nivel del tipo en la jerarquía (house=0 … shelf=3), -1 si es desconocido.
func LocationTypeLevel(t string) int {
	for i, lt := range locationOrder {
		if lt == t {
			return i
		}
	}
	return -1
}

// ChildLocationType devuelve el tipo hijo inmediato en el orden fijo (room para house, etc.).
// ok=false si el tipo no admite hijos (shelf) o es desconocido.
func ChildLocationType(parent string) (string, bool) {
	level := LocationTypeLevel(parent)
	if level < 0 || level >= len(locationOrder)-1 {
		return "", false
	}
	return locationOrder[level+1], true
}

// IsValidChildOf verifica que child sea el tipo hijo inmediato de parent.
func IsValidChildOf(child, parent string) bool {
	expected, ok := ChildLocationType(parent)
	return ok && expected == child
}
