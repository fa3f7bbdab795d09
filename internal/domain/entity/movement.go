package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeCreate = "create" // alta inicial en una ubicación
	MovementTypeMove   = "move"   // traslado entre ubicaciones
	MovementTypeAdjust = "adjust" // recuento / corrección
	MovementTypeSplit  = "split"  // división de cantidad hacia otra ubicación
	MovementTypeMerge  = "merge"  // consolidación de varias ubicaciones en una
	MovementTypeRemove = "remove" // baja total de una ubicación
)

// MovementTypes lista los tipos conocidos en orden estable (para reportes).
var MovementTypes = []string{
	MovementTypeCreate,
	MovementTypeMove,
	MovementTypeAdjust,
	MovementTypeSplit,
	MovementTypeMerge,
	MovementTypeRemove,
}

// IsValidMovementType indica si el tipo de movimiento es uno de los seis conocidos.
func IsValidMovementType(t string) bool {
	for _, mt := range MovementTypes {
		if mt == t {
			return true
		}
	}
	return false
}

// MovementHistoryRecord es una fila inmutable del libro de auditoría de movimientos.
// Una vez escrita nunca se actualiza ni se elimina; registra lo que pasó, no lo que debería pasar.
// QuantityMoved es con signo solo en adjust (delta del recuento); en el resto es positivo.
type MovementHistoryRecord struct {
	ID                 string
	ItemID             string
	Type               string
	FromLocationID     *string
	ToLocationID       *string
	QuantityMoved      int64
	QuantityBeforeFrom *int64
	QuantityAfterFrom  *int64
	QuantityBeforeTo   *int64
	QuantityAfterTo    *int64
	Reason             string
	Actor              string
	CreatedAt          time.Time
}
