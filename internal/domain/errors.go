package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Cada operación del ledger, de los motores y de la máquina de estados devuelve uno de estos
// (posiblemente envuelto con fmt.Errorf("...: %w")); los callers los distinguen con errors.Is.
var (
	ErrNotFound                 = errors.New("recurso no encontrado")
	ErrInvalidInput             = errors.New("entrada inválida")
	ErrInvalidQuantity          = errors.New("la cantidad debe ser mayor que cero")
	ErrInsufficientBalance      = errors.New("saldo insuficiente")
	ErrCapacityExceeded         = errors.New("la capacidad informada supera la capacidad nominal del camión")
	ErrInvalidTransition        = errors.New("transición de estado no permitida")
	ErrMissingRequiredField     = errors.New("campo obligatorio sin informar")
	ErrFefoConfirmationRequired = errors.New("el lote elegido no es el de vencimiento más próximo; se requiere confirmación")
)
