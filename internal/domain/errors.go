package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// StockInsuficienteError detalla por qué no alcanza el stock: qué artículo,
// cuánto se pidió, cuánto hay realmente disponible y, para combos, el
// componente que limita la capacidad. Nunca un booleano pelado: el caller
// necesita armar un mensaje accionable.
type StockInsuficienteError struct {
	ArticuloID            string
	Descripcion           string
	CantidadSolicitada    decimal.Decimal
	CantidadDisponible    decimal.Decimal
	ComponenteLimitanteID string
	ComponenteLimitante   string // descripción del componente limitante (vacío si no es combo)
}

func (e *StockInsuficienteError) Error() string {
	if e.ComponenteLimitante != "" {
		return fmt.Sprintf("stock insuficiente de %q: el componente %q limita la capacidad a %s (solicitado %s)",
			e.Descripcion, e.ComponenteLimitante, e.CantidadDisponible, e.CantidadSolicitada)
	}
	return fmt.Sprintf("stock insuficiente de %q: disponible %s, solicitado %s",
		e.Descripcion, e.CantidadDisponible, e.CantidadSolicitada)
}

// Is permite errors.Is(err, domain.ErrInsufficientStock) sobre el error tipado.
func (e *StockInsuficienteError) Is(target error) bool {
	return target == ErrInsufficientStock
}
