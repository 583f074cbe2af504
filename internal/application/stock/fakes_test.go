package stock_test

import (
	"context"

	"github.com/shopspring/decimal"

	appstock "github.com/nmorales/barpos-api/internal/application/stock"
	"github.com/nmorales/barpos-api/internal/domain/entity"
	"github.com/nmorales/barpos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

// memoria simula la base: artículos, recetas y movimientos compartidos por
// los tres repos, como lo harían las tablas reales.
type memoria struct {
	articulos   map[string]*entity.Articulo
	recetas     map[string][]*entity.ComboComponente
	movimientos []*entity.MovimientoStock

	// inyección de fallos por artículo (simula un UPDATE que falla a mitad de lote)
	errUpdateStock map[string]error
}

func nuevaMemoria() *memoria {
	return &memoria{
		articulos:      make(map[string]*entity.Articulo),
		recetas:        make(map[string][]*entity.ComboComponente),
		errUpdateStock: make(map[string]error),
	}
}

func (m *memoria) agregarArticulo(a *entity.Articulo) {
	copia := *a
	m.articulos[a.ID] = &copia
}

func (m *memoria) stockDe(id string) decimal.Decimal {
	return m.articulos[id].Stock
}

func (m *memoria) movimientosDe(articuloID string) []*entity.MovimientoStock {
	var out []*entity.MovimientoStock
	for _, mov := range m.movimientos {
		if mov.ArticuloID == articuloID {
			out = append(out, mov)
		}
	}
	return out
}

type articuloRepoMem struct{ m *memoria }

var _ repository.ArticuloRepository = (*articuloRepoMem)(nil)

func (r *articuloRepoMem) Create(a *entity.Articulo) error {
	if _, ok := r.m.articulos[a.ID]; ok {
		return nil
	}
	r.m.agregarArticulo(a)
	return nil
}

func (r *articuloRepoMem) GetByID(id string) (*entity.Articulo, error) {
	a, ok := r.m.articulos[id]
	if !ok {
		return nil, nil
	}
	copia := *a
	return &copia, nil
}

func (r *articuloRepoMem) GetForUpdate(id string) (*entity.Articulo, error) {
	return r.GetByID(id)
}

func (r *articuloRepoMem) List(limit, offset int) ([]*entity.Articulo, error) {
	var out []*entity.Articulo
	for _, a := range r.m.articulos {
		copia := *a
		out = append(out, &copia)
	}
	return out, nil
}

func (r *articuloRepoMem) ListCombos() ([]*entity.Articulo, error) {
	var out []*entity.Articulo
	for _, a := range r.m.articulos {
		if a.EsCombo {
			copia := *a
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r *articuloRepoMem) Update(a *entity.Articulo) error {
	r.m.agregarArticulo(a)
	return nil
}

func (r *articuloRepoMem) UpdateStock(id string, stock decimal.Decimal) error {
	if err := r.m.errUpdateStock[id]; err != nil {
		return err
	}
	a, ok := r.m.articulos[id]
	if !ok {
		return nil
	}
	a.Stock = stock
	return nil
}

func (r *articuloRepoMem) Delete(id string) error {
	delete(r.m.articulos, id)
	return nil
}

type componenteRepoMem struct{ m *memoria }

var _ repository.ComboComponenteRepository = (*componenteRepoMem)(nil)

func (r *componenteRepoMem) ListByCombo(comboID string) ([]*entity.ComboComponente, error) {
	return r.m.recetas[comboID], nil
}

func (r *componenteRepoMem) ReplaceForCombo(comboID string, componentes []*entity.ComboComponente) error {
	r.m.recetas[comboID] = componentes
	return nil
}

type movimientoRepoMem struct{ m *memoria }

var _ repository.MovimientoStockRepository = (*movimientoRepoMem)(nil)

func (r *movimientoRepoMem) Create(mov *entity.MovimientoStock) error {
	copia := *mov
	r.m.movimientos = append(r.m.movimientos, &copia)
	return nil
}

func (r *movimientoRepoMem) ListByArticulo(articuloID string, limit, offset int) ([]*entity.MovimientoStock, error) {
	return r.m.movimientosDe(articuloID), nil
}

func (r *movimientoRepoMem) ListByPedido(pedidoID string) ([]*entity.MovimientoStock, error) {
	var out []*entity.MovimientoStock
	for _, mov := range r.m.movimientos {
		if mov.PedidoID == pedidoID {
			out = append(out, mov)
		}
	}
	return out, nil
}

// txRunnerMem ejecuta el callback directo sobre los repos en memoria.
type txRunnerMem struct{ m *memoria }

var _ appstock.TxRunner = (*txRunnerMem)(nil)

func (t *txRunnerMem) Run(_ context.Context, fn func(
	articuloRepo repository.ArticuloRepository,
	componenteRepo repository.ComboComponenteRepository,
	movimientoRepo repository.MovimientoStockRepository,
) error) error {
	return fn(&articuloRepoMem{t.m}, &componenteRepoMem{t.m}, &movimientoRepoMem{t.m})
}

// hookRegistro registra las invocaciones post-venta y puede fallar a pedido.
type hookRegistro struct {
	llamadas int
	fallo    error
}

var _ appstock.PostVentaHook = (*hookRegistro)(nil)

func (h *hookRegistro) DespuesDeVenta(_ context.Context, _ *entity.Articulo, _ decimal.Decimal, _ string) error {
	h.llamadas++
	return h.fallo
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado de escenarios
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func articuloSimple(id, descripcion, stock string) *entity.Articulo {
	return &entity.Articulo{
		ID:             id,
		Descripcion:    descripcion,
		PrecioUnitario: dec("100"),
		Stock:          dec(stock),
	}
}

func articuloCombo(id, descripcion, stock string) *entity.Articulo {
	a := articuloSimple(id, descripcion, stock)
	a.EsCombo = true
	return a
}

func conReceta(m *memoria, comboID string, edges ...*entity.ComboComponente) {
	m.recetas[comboID] = edges
}

func edge(comboID, componenteID, cantidad string) *entity.ComboComponente {
	return &entity.ComboComponente{
		ArticuloComboID:      comboID,
		ArticuloComponenteID: componenteID,
		Cantidad:             dec(cantidad),
	}
}

func armarUseCases(m *memoria, hooks ...appstock.PostVentaHook) (
	*appstock.DisponibilidadUseCase,
	*appstock.DescuentoStockUseCase,
	*appstock.ResyncUseCase,
) {
	artRepo := &articuloRepoMem{m}
	compRepo := &componenteRepoMem{m}
	tx := &txRunnerMem{m}
	disponibilidad := appstock.NewDisponibilidadUseCase(artRepo, compRepo)
	descuento := appstock.NewDescuentoStockUseCase(tx, artRepo, disponibilidad, hooks...)
	resync := appstock.NewResyncUseCase(tx, artRepo)
	return disponibilidad, descuento, resync
}
