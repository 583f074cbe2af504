package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmorales/barpos-api/internal/application/dto"
	appstock "github.com/nmorales/barpos-api/internal/application/stock"
	"github.com/nmorales/barpos-api/internal/application/usecase"
	"github.com/nmorales/barpos-api/internal/domain/entity"
	"github.com/nmorales/barpos-api/internal/domain/repository"
	apphttp "github.com/nmorales/barpos-api/internal/interfaces/http"
	pkgjwt "github.com/nmorales/barpos-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "barpos-test"
	testExpMin    = 60
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Fakes en memoria, compartidos entre los repos como lo harían las tablas.
type catalogo struct {
	articulos   map[string]*entity.Articulo
	recetas     map[string][]*entity.ComboComponente
	movimientos []*entity.MovimientoStock
}

func nuevoCatalogo() *catalogo {
	return &catalogo{
		articulos: make(map[string]*entity.Articulo),
		recetas:   make(map[string][]*entity.ComboComponente),
	}
}

type articuloRepoFake struct{ c *catalogo }

var _ repository.ArticuloRepository = (*articuloRepoFake)(nil)

func (r *articuloRepoFake) Create(a *entity.Articulo) error {
	copia := *a
	r.c.articulos[a.ID] = &copia
	return nil
}

func (r *articuloRepoFake) GetByID(id string) (*entity.Articulo, error) {
	a, ok := r.c.articulos[id]
	if !ok {
		return nil, nil
	}
	copia := *a
	return &copia, nil
}

func (r *articuloRepoFake) GetForUpdate(id string) (*entity.Articulo, error) {
	return r.GetByID(id)
}

func (r *articuloRepoFake) List(limit, offset int) ([]*entity.Articulo, error) {
	var out []*entity.Articulo
	for _, a := range r.c.articulos {
		copia := *a
		out = append(out, &copia)
	}
	return out, nil
}

func (r *articuloRepoFake) ListCombos() ([]*entity.Articulo, error) {
	var out []*entity.Articulo
	for _, a := range r.c.articulos {
		if a.EsCombo {
			copia := *a
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r *articuloRepoFake) Update(a *entity.Articulo) error { return r.Create(a) }

func (r *articuloRepoFake) UpdateStock(id string, stock decimal.Decimal) error {
	if a, ok := r.c.articulos[id]; ok {
		a.Stock = stock
	}
	return nil
}

func (r *articuloRepoFake) Delete(id string) error {
	delete(r.c.articulos, id)
	return nil
}

type componenteRepoFake struct{ c *catalogo }

var _ repository.ComboComponenteRepository = (*componenteRepoFake)(nil)

func (r *componenteRepoFake) ListByCombo(comboID string) ([]*entity.ComboComponente, error) {
	return r.c.recetas[comboID], nil
}

func (r *componenteRepoFake) ReplaceForCombo(comboID string, componentes []*entity.ComboComponente) error {
	r.c.recetas[comboID] = componentes
	return nil
}

type movimientoRepoFake struct{ c *catalogo }

var _ repository.MovimientoStockRepository = (*movimientoRepoFake)(nil)

func (r *movimientoRepoFake) Create(mov *entity.MovimientoStock) error {
	copia := *mov
	r.c.movimientos = append(r.c.movimientos, &copia)
	return nil
}

func (r *movimientoRepoFake) ListByArticulo(articuloID string, limit, offset int) ([]*entity.MovimientoStock, error) {
	var out []*entity.MovimientoStock
	for _, mov := range r.c.movimientos {
		if mov.ArticuloID == articuloID {
			out = append(out, mov)
		}
	}
	return out, nil
}

func (r *movimientoRepoFake) ListByPedido(pedidoID string) ([]*entity.MovimientoStock, error) {
	var out []*entity.MovimientoStock
	for _, mov := range r.c.movimientos {
		if mov.PedidoID == pedidoID {
			out = append(out, mov)
		}
	}
	return out, nil
}

type txRunnerFake struct{ c *catalogo }

var _ appstock.TxRunner = (*txRunnerFake)(nil)

func (t *txRunnerFake) Run(_ context.Context, fn func(
	articuloRepo repository.ArticuloRepository,
	componenteRepo repository.ComboComponenteRepository,
	movimientoRepo repository.MovimientoStockRepository,
) error) error {
	return fn(&articuloRepoFake{t.c}, &componenteRepoFake{t.c}, &movimientoRepoFake{t.c})
}

// buildTestApp levanta la app Fiber completa con el router real y repos en
// memoria: los tests ejercitan auth, rutas, handlers y casos de uso juntos.
func buildTestApp(c *catalogo) *fiber.App {
	artRepo := &articuloRepoFake{c}
	compRepo := &componenteRepoFake{c}
	movRepo := &movimientoRepoFake{c}
	tx := &txRunnerFake{c}

	disponibilidadUC := appstock.NewDisponibilidadUseCase(artRepo, compRepo)
	descuentoUC := appstock.NewDescuentoStockUseCase(tx, artRepo, disponibilidadUC)
	resyncUC := appstock.NewResyncUseCase(tx, artRepo)
	articuloUC := usecase.NewArticuloUseCase(artRepo, compRepo)
	movimientoUC := usecase.NewMovimientoUseCase(movRepo)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ArticuloUC:     articuloUC,
		MovimientoUC:   movimientoUC,
		Disponibilidad: disponibilidadUC,
		Descuento:      descuentoUC,
		Resync:         resyncUC,
		JWTSecret:      testJWTSecret,
	})
	return app
}

func testToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "cajero", testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, authHeader string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func catalogoConCombo() *catalogo {
	c := nuevoCatalogo()
	c.articulos["picada"] = &entity.Articulo{
		ID: "picada", Descripcion: "Picada doble", PrecioUnitario: dec("500"),
		Stock: dec("3"), EsCombo: true,
	}
	c.articulos["queso"] = &entity.Articulo{
		ID: "queso", Descripcion: "Queso", PrecioUnitario: dec("100"), Stock: dec("10"),
	}
	c.articulos["fiambre"] = &entity.Articulo{
		ID: "fiambre", Descripcion: "Fiambre", PrecioUnitario: dec("120"), Stock: dec("3"),
	}
	c.recetas["picada"] = []*entity.ComboComponente{
		{ArticuloComboID: "picada", ArticuloComponenteID: "queso", Cantidad: dec("2")},
		{ArticuloComboID: "picada", ArticuloComponenteID: "fiambre", Cantidad: dec("1")},
	}
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_SinToken_Retorna401(t *testing.T) {
	app := buildTestApp(nuevoCatalogo())
	resp := doJSON(t, app, http.MethodGet, "/api/articulos/x/disponibilidad", nil, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(nuevoCatalogo())
	resp := doJSON(t, app, http.MethodGet, "/api/articulos/x/disponibilidad", nil, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Disponibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestDisponibilidad_Combo(t *testing.T) {
	app := buildTestApp(catalogoConCombo())

	resp := doJSON(t, app, http.MethodGet, "/api/articulos/picada/disponibilidad?cantidad=4", nil, testToken(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.DisponibilidadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Disponible)
	assert.True(t, body.CantidadDisponible.Equal(dec("3")))
	assert.Equal(t, appstock.MotivoComponenteInsuficiente, body.Motivo)
	require.NotNil(t, body.ComponenteLimitante)
	assert.Equal(t, "fiambre", body.ComponenteLimitante.ArticuloID)
}

func TestDisponibilidad_CantidadPorDefecto(t *testing.T) {
	app := buildTestApp(catalogoConCombo())

	// Sin query param: cantidad = 1.
	resp := doJSON(t, app, http.MethodGet, "/api/articulos/queso/disponibilidad", nil, testToken(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.DisponibilidadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Disponible)
	assert.True(t, body.CantidadSolicitada.Equal(dec("1")))
}

func TestDisponibilidad_ArticuloInexistente_Retorna404(t *testing.T) {
	app := buildTestApp(nuevoCatalogo())
	resp := doJSON(t, app, http.MethodGet, "/api/articulos/no-existe/disponibilidad", nil, testToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Descuento
// ──────────────────────────────────────────────────────────────────────────────

func TestDescuento_Exitoso(t *testing.T) {
	c := catalogoConCombo()
	app := buildTestApp(c)

	resp := doJSON(t, app, http.MethodPost, "/api/stock/descuento", dto.DescuentoRequest{
		ArticuloID: "picada",
		Cantidad:   dec("2"),
		PedidoID:   "pedido-7",
	}, testToken(t))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.True(t, c.articulos["queso"].Stock.Equal(dec("6")))
	assert.True(t, c.articulos["fiambre"].Stock.Equal(dec("1")))
	assert.True(t, c.articulos["picada"].Stock.Equal(dec("1")))
	// Dos movimientos de componentes más el del propio combo.
	assert.Len(t, c.movimientos, 3)
}

func TestDescuento_Insuficiente_Retorna409Estructurado(t *testing.T) {
	app := buildTestApp(catalogoConCombo())

	resp := doJSON(t, app, http.MethodPost, "/api/stock/descuento", dto.DescuentoRequest{
		ArticuloID: "picada",
		Cantidad:   dec("4"),
		PedidoID:   "pedido-7",
	}, testToken(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body dto.StockInsuficienteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, "picada", body.ArticuloID)
	assert.True(t, body.CantidadSolicitada.Equal(dec("4")))
	assert.True(t, body.CantidadDisponible.Equal(dec("3")))
	require.NotNil(t, body.ComponenteLimitante)
	assert.Equal(t, "fiambre", body.ComponenteLimitante.ArticuloID)
}

func TestDescuento_CuerpoInvalido_Retorna400(t *testing.T) {
	app := buildTestApp(nuevoCatalogo())

	req := httptest.NewRequest(http.MethodPost, "/api/stock/descuento", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", testToken(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reposición y resync
// ──────────────────────────────────────────────────────────────────────────────

func TestReposicion_Exitosa(t *testing.T) {
	c := catalogoConCombo()
	app := buildTestApp(c)

	resp := doJSON(t, app, http.MethodPost, "/api/stock/reposicion", dto.DescuentoRequest{
		ArticuloID: "queso",
		Cantidad:   dec("5"),
		PedidoID:   "pedido-anulado",
	}, testToken(t))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, c.articulos["queso"].Stock.Equal(dec("15")))
}

func TestSyncCombo(t *testing.T) {
	c := catalogoConCombo()
	c.articulos["picada"].Stock = dec("99") // drift
	app := buildTestApp(c)

	resp := doJSON(t, app, http.MethodPost, "/api/combos/picada/resync", nil, testToken(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.SyncComboResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Actualizado)
	assert.True(t, body.StockAnterior.Equal(dec("99")))
	assert.True(t, body.StockNuevo.Equal(dec("3")))
	assert.True(t, c.articulos["picada"].Stock.Equal(dec("3")))
}

func TestSyncCombo_NoCombo_Retorna400(t *testing.T) {
	app := buildTestApp(catalogoConCombo())
	resp := doJSON(t, app, http.MethodPost, "/api/combos/queso/resync", nil, testToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResyncTodos(t *testing.T) {
	c := catalogoConCombo()
	c.articulos["picada"].Stock = dec("99")
	app := buildTestApp(c)

	resp := doJSON(t, app, http.MethodPost, "/api/combos/resync", nil, testToken(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ResyncResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, 1, body.Actualizados)
	assert.Empty(t, body.Errores)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestMovimientosPorPedido(t *testing.T) {
	c := catalogoConCombo()
	app := buildTestApp(c)
	tok := testToken(t)

	resp := doJSON(t, app, http.MethodPost, "/api/stock/descuento", dto.DescuentoRequest{
		ArticuloID: "picada",
		Cantidad:   dec("1"),
		PedidoID:   "pedido-7",
	}, tok)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/pedidos/pedido-7/movimientos", nil, tok)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var movs []dto.MovimientoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&movs))
	assert.Len(t, movs, 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// JWT pkg
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "cajero", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, rol, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "cajero", rol)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err)
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}
