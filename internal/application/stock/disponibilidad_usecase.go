package stock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/nmorales/barpos-api/internal/domain"
	"github.com/nmorales/barpos-api/internal/domain/repository"
	stockdom "github.com/nmorales/barpos-api/internal/domain/stock"
)

// Motivos de no disponibilidad.
const (
	MotivoSinReceta              = "combo_sin_receta"
	MotivoStockInsuficiente      = "stock_insuficiente"
	MotivoComponenteInsuficiente = "componente_insuficiente"
)

// ComponenteInfo describe el componente que limita la capacidad de un combo.
type ComponenteInfo struct {
	ArticuloID       string
	Descripcion      string
	Stock            decimal.Decimal
	CantidadPorCombo decimal.Decimal
}

// ResultadoDisponibilidad es la respuesta estructurada del chequeo pre-venta:
// siempre incluye cuánto hay realmente disponible y, si no alcanza, qué
// restricción falló, para que el caller muestre un mensaje accionable.
type ResultadoDisponibilidad struct {
	ArticuloID          string
	Descripcion         string
	EsCombo             bool
	Disponible          bool
	CantidadSolicitada  decimal.Decimal
	CantidadDisponible  decimal.Decimal
	Motivo              string // vacío cuando Disponible
	ComponenteLimitante *ComponenteInfo
}

// DisponibilidadUseCase verifica stock disponible antes de una venta.
// Solo lecturas: seguro de llamar repetidamente para previews en caja.
type DisponibilidadUseCase struct {
	articuloRepo   repository.ArticuloRepository
	componenteRepo repository.ComboComponenteRepository
}

// NewDisponibilidadUseCase construye el caso de uso.
func NewDisponibilidadUseCase(
	articuloRepo repository.ArticuloRepository,
	componenteRepo repository.ComboComponenteRepository,
) *DisponibilidadUseCase {
	return &DisponibilidadUseCase{articuloRepo: articuloRepo, componenteRepo: componenteRepo}
}

// Verificar comprueba si se pueden vender cantidad unidades del artículo.
// Artículo simple: comparación directa stock >= cantidad. Combo: capacidad
// derivada de la receta, acotada además por el stock propio del combo.
func (uc *DisponibilidadUseCase) Verificar(ctx context.Context, articuloID string, cantidad decimal.Decimal) (*ResultadoDisponibilidad, error) {
	if articuloID == "" || !cantidad.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	articulo, err := uc.articuloRepo.GetByID(articuloID)
	if err != nil {
		return nil, err
	}
	if articulo == nil {
		return nil, domain.ErrNotFound
	}

	res := &ResultadoDisponibilidad{
		ArticuloID:         articulo.ID,
		Descripcion:        articulo.Descripcion,
		EsCombo:            articulo.EsCombo,
		CantidadSolicitada: cantidad,
	}

	if !articulo.EsCombo {
		disponible := articulo.Stock
		if disponible.IsNegative() {
			disponible = decimal.Zero
		}
		res.CantidadDisponible = disponible
		res.Disponible = disponible.GreaterThanOrEqual(cantidad)
		if !res.Disponible {
			res.Motivo = MotivoStockInsuficiente
		}
		return res, nil
	}

	componentes, err := cargarComponentes(uc.articuloRepo, uc.componenteRepo, articulo.ID)
	if err != nil {
		return nil, err
	}
	if len(componentes) == 0 {
		// Un combo sin receta no puede armarse, sin importar su stock propio.
		res.CantidadDisponible = decimal.Zero
		res.Motivo = MotivoSinReceta
		return res, nil
	}

	limitante, capacidad := stockdom.ComponenteLimitante(componentes)
	disponible := decimal.NewFromInt(capacidad)

	// El stock propio del combo actúa como tope secundario.
	topePropio := articulo.Stock.Floor()
	if topePropio.IsNegative() {
		topePropio = decimal.Zero
	}
	motivo := MotivoComponenteInsuficiente
	if topePropio.LessThan(disponible) {
		disponible = topePropio
		motivo = MotivoStockInsuficiente
	}

	res.CantidadDisponible = disponible
	res.Disponible = disponible.GreaterThanOrEqual(cantidad)
	if limitante != nil {
		res.ComponenteLimitante = &ComponenteInfo{
			ArticuloID:       limitante.ArticuloID,
			Descripcion:      limitante.Descripcion,
			Stock:            limitante.Stock,
			CantidadPorCombo: limitante.Cantidad,
		}
	}
	if !res.Disponible {
		res.Motivo = motivo
	}
	return res, nil
}

// cargarComponentes arma la vista de cálculo de la receta de un combo.
// Un componente cuyo artículo ya no existe cuenta como stock 0: una receta
// rota no debe reportar capacidad.
func cargarComponentes(
	articuloRepo repository.ArticuloRepository,
	componenteRepo repository.ComboComponenteRepository,
	comboID string,
) ([]stockdom.ComponenteStock, error) {
	edges, err := componenteRepo.ListByCombo(comboID)
	if err != nil {
		return nil, err
	}
	componentes := make([]stockdom.ComponenteStock, 0, len(edges))
	for _, edge := range edges {
		cs := stockdom.ComponenteStock{
			ArticuloID: edge.ArticuloComponenteID,
			Cantidad:   edge.Cantidad,
			Stock:      decimal.Zero,
		}
		articulo, err := articuloRepo.GetByID(edge.ArticuloComponenteID)
		if err != nil {
			return nil, err
		}
		if articulo != nil {
			cs.Descripcion = articulo.Descripcion
			cs.Stock = articulo.Stock
		}
		componentes = append(componentes, cs)
	}
	return componentes, nil
}

// errorStockInsuficiente arma el error tipado a partir de un resultado negativo.
func errorStockInsuficiente(res *ResultadoDisponibilidad) *domain.StockInsuficienteError {
	e := &domain.StockInsuficienteError{
		ArticuloID:         res.ArticuloID,
		Descripcion:        res.Descripcion,
		CantidadSolicitada: res.CantidadSolicitada,
		CantidadDisponible: res.CantidadDisponible,
	}
	if res.Motivo == MotivoComponenteInsuficiente && res.ComponenteLimitante != nil {
		e.ComponenteLimitanteID = res.ComponenteLimitante.ArticuloID
		e.ComponenteLimitante = res.ComponenteLimitante.Descripcion
	}
	return e
}
