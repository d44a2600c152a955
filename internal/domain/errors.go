package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	// ErrOrderCodeExhausted se devuelve cuando todos los intentos de generar un order_code único colisionaron.
	ErrOrderCodeExhausted = fmt.Errorf("no se pudo generar un código de orden único: %w", ErrConflict)
)

// ScopeReason motivo por el que no se puede resolver el tenant del caller.
type ScopeReason string

const (
	ScopeNoSuperiorAssigned ScopeReason = "no_superior_assigned"
	ScopeInvalidSuperior    ScopeReason = "invalid_superior"
)

// ScopeError el tenant del caller no se puede resolver. Error de cliente, sin efectos secundarios.
type ScopeError struct {
	Reason ScopeReason
}

func (e *ScopeError) Error() string {
	switch e.Reason {
	case ScopeNoSuperiorAssigned:
		return "no hay superior asignado, contacte al administrador"
	case ScopeInvalidSuperior:
		return "superior asignado inválido, contacte al administrador"
	}
	return "alcance inválido"
}

// Is permite errors.Is(err, ErrNoSuperiorAssigned). Un target sin Reason coincide con cualquier ScopeError.
func (e *ScopeError) Is(target error) bool {
	t, ok := target.(*ScopeError)
	if !ok {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

var (
	ErrNoSuperiorAssigned = &ScopeError{Reason: ScopeNoSuperiorAssigned}
	ErrInvalidSuperior    = &ScopeError{Reason: ScopeInvalidSuperior}
)

// ValidationKind clase de error de validación de una orden.
type ValidationKind string

const (
	ValidationEmptyOrder    ValidationKind = "empty_order"
	ValidationInvalidClient ValidationKind = "invalid_client"
	ValidationLineItem      ValidationKind = "line_item"
)

// LineReason motivo de rechazo de una línea de la orden.
type LineReason string

const (
	ReasonNotFound             LineReason = "not_found"
	ReasonUnavailable          LineReason = "unavailable"
	ReasonInsufficientQuantity LineReason = "insufficient_quantity"
	ReasonInvalidQuantity      LineReason = "invalid_quantity"
)

// ValidationError contenido de la orden inválido. Se aborta antes de persistir.
// Para Kind == ValidationLineItem, LineIndex/ItemID/Reason identifican la primera línea fallida.
type ValidationError struct {
	Kind      ValidationKind
	LineIndex int
	ItemID    string
	Reason    LineReason
	Message   string
}

func (e *ValidationError) Error() string {
	if e.Kind == ValidationLineItem {
		return fmt.Sprintf("línea %d (item %s): %s", e.LineIndex, e.ItemID, e.Message)
	}
	return e.Message
}

// Is compara por Kind (y Reason si el target la define).
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// ErrEmptyOrder la orden no trae líneas.
var ErrEmptyOrder = &ValidationError{Kind: ValidationEmptyOrder, LineIndex: -1, Message: "la orden requiere al menos un item"}

// NewLineError construye el error de validación de una línea.
func NewLineError(index int, itemID string, reason LineReason) *ValidationError {
	var msg string
	switch reason {
	case ReasonNotFound:
		msg = "item no encontrado"
	case ReasonUnavailable:
		msg = "item no disponible"
	case ReasonInsufficientQuantity:
		msg = "cantidad insuficiente en inventario"
	case ReasonInvalidQuantity:
		msg = "la cantidad debe ser al menos 1"
	default:
		msg = string(reason)
	}
	return &ValidationError{Kind: ValidationLineItem, LineIndex: index, ItemID: itemID, Reason: reason, Message: msg}
}

// NewClientError error de validación de los datos del cliente.
func NewClientError(msg string) *ValidationError {
	return &ValidationError{Kind: ValidationInvalidClient, LineIndex: -1, Message: msg}
}

// StockConsistencyWarning un decremento condicional no se aplicó después de persistir la orden.
// No es fatal: la orden queda persistida y el inventario no se toca.
type StockConsistencyWarning struct {
	LineIndex int
	ItemID    string
	Requested int
	Err       error // error de infraestructura, nil si simplemente no había stock
}
