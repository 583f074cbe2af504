package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmorales/barpos-api/internal/domain/stock"
)

func componente(id string, stockQty, cantidad string) stock.ComponenteStock {
	return stock.ComponenteStock{
		ArticuloID:  id,
		Descripcion: "componente " + id,
		Stock:       decimal.RequireFromString(stockQty),
		Cantidad:    decimal.RequireFromString(cantidad),
	}
}

// La capacidad es el mínimo de floor(stock/cantidad) entre los componentes.
func TestCapacidadCombo_MinimoEntreComponentes(t *testing.T) {
	componentes := []stock.ComponenteStock{
		componente("a", "10", "2"), // floor(10/2) = 5
		componente("b", "3", "1"),  // floor(3/1) = 3
	}
	assert.Equal(t, int64(3), stock.CapacidadCombo(componentes))
}

// Receta vacía: el combo no puede armarse.
func TestCapacidadCombo_RecetaVacia(t *testing.T) {
	assert.Equal(t, int64(0), stock.CapacidadCombo(nil))
	assert.Equal(t, int64(0), stock.CapacidadCombo([]stock.ComponenteStock{}))
}

// Nunca negativo, incluso con componentes en cero.
func TestCapacidadCombo_NuncaNegativo(t *testing.T) {
	componentes := []stock.ComponenteStock{
		componente("a", "0", "2"),
		componente("b", "100", "1"),
	}
	assert.Equal(t, int64(0), stock.CapacidadCombo(componentes))
}

// Stock negativo (drift en la base) se trata como cero.
func TestCapacidadCombo_StockNegativoComoCero(t *testing.T) {
	componentes := []stock.ComponenteStock{
		componente("a", "-4", "1"),
		componente("b", "10", "1"),
	}
	assert.Equal(t, int64(0), stock.CapacidadCombo(componentes))
}

// Cantidad <= 0 es un dato corrupto: se ignora en lugar de dividir por cero.
func TestCapacidadCombo_CantidadInvalidaSeIgnora(t *testing.T) {
	componentes := []stock.ComponenteStock{
		componente("a", "10", "0"),
		componente("b", "10", "-1"),
		componente("c", "8", "2"),
	}
	assert.Equal(t, int64(4), stock.CapacidadCombo(componentes))

	// Si todos son inválidos no hay receta con la que armar nada.
	soloInvalidos := []stock.ComponenteStock{componente("a", "10", "0")}
	assert.Equal(t, int64(0), stock.CapacidadCombo(soloInvalidos))
}

// Cantidades fraccionarias (artículos pesables): la división decimal es exacta.
func TestCapacidadCombo_CantidadesFraccionarias(t *testing.T) {
	componentes := []stock.ComponenteStock{
		componente("cafe", "0.3", "0.1"), // floor(0.3/0.1) = 3 exacto, sin ruido binario
		componente("leche", "1.5", "0.25"),
	}
	assert.Equal(t, int64(3), stock.CapacidadCombo(componentes))
}

// Función pura: dos llamadas con la misma entrada devuelven lo mismo y no
// modifican los componentes.
func TestCapacidadCombo_Idempotente(t *testing.T) {
	componentes := []stock.ComponenteStock{
		componente("a", "10", "2"),
		componente("b", "3", "1"),
	}
	primera := stock.CapacidadCombo(componentes)
	segunda := stock.CapacidadCombo(componentes)
	assert.Equal(t, primera, segunda)
	assert.True(t, componentes[0].Stock.Equal(decimal.RequireFromString("10")))
}

func TestComponenteLimitante(t *testing.T) {
	componentes := []stock.ComponenteStock{
		componente("a", "10", "2"),
		componente("b", "3", "1"),
	}
	limitante, capacidad := stock.ComponenteLimitante(componentes)
	require.NotNil(t, limitante)
	assert.Equal(t, "b", limitante.ArticuloID)
	assert.Equal(t, int64(3), capacidad)
}

func TestComponenteLimitante_SinComponentesValidos(t *testing.T) {
	limitante, capacidad := stock.ComponenteLimitante(nil)
	assert.Nil(t, limitante)
	assert.Equal(t, int64(0), capacidad)

	limitante, capacidad = stock.ComponenteLimitante([]stock.ComponenteStock{
		componente("a", "10", "0"),
	})
	assert.Nil(t, limitante)
	assert.Equal(t, int64(0), capacidad)
}
