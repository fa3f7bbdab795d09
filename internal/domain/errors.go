package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInvalidOperation     = errors.New("operación inválida")
	ErrInsufficientQuantity = errors.New("cantidad insuficiente")
)

// InsufficientQuantityError indica que la cantidad solicitada supera la disponible en la
// ubicación origen. Lleva ambos valores para que el caller pueda mostrarlos.
type InsufficientQuantityError struct {
	Available int64
	Requested int64
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("cantidad insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

// Unwrap permite errors.Is(err, ErrInsufficientQuantity).
func (e *InsufficientQuantityError) Unwrap() error {
	return ErrInsufficientQuantity
}
