package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/nmorales/barpos-api/internal/domain"
	"github.com/nmorales/barpos-api/internal/domain/entity"
	"github.com/nmorales/barpos-api/internal/domain/repository"
)

var _ repository.ArticuloRepository = (*ArticuloRepo)(nil)

// ArticuloRepo implementación de ArticuloRepository sobre PostgreSQL (usable con pool o tx).
type ArticuloRepo struct {
	q Querier
}

// NewArticuloRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticuloRepository(q Querier) *ArticuloRepo {
	return &ArticuloRepo{q: q}
}

const articuloColumns = `id, descripcion, precio_unitario, stock, es_combo, equivalencia, created_at, updated_at`

func scanArticulo(row pgx.Row) (*entity.Articulo, error) {
	var a entity.Articulo
	err := row.Scan(
		&a.ID, &a.Descripcion, &a.PrecioUnitario, &a.Stock, &a.EsCombo,
		&a.Equivalencia, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste un nuevo artículo.
func (r *ArticuloRepo) Create(articulo *entity.Articulo) error {
	query := `
		INSERT INTO articulos (id, descripcion, precio_unitario, stock, es_combo, equivalencia, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		articulo.ID, articulo.Descripcion, articulo.PrecioUnitario, articulo.Stock,
		articulo.EsCombo, articulo.Equivalencia, articulo.CreatedAt, articulo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert articulo: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID. Devuelve nil si no existe.
func (r *ArticuloRepo) GetByID(id string) (*entity.Articulo, error) {
	query := `SELECT ` + articuloColumns + ` FROM articulos WHERE id = $1`
	a, err := scanArticulo(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get articulo: %w", err)
	}
	return a, nil
}

// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE).
// Devuelve nil si no existe. Usar dentro de una transacción.
func (r *ArticuloRepo) GetForUpdate(id string) (*entity.Articulo, error) {
	query := `SELECT ` + articuloColumns + ` FROM articulos WHERE id = $1 FOR UPDATE`
	a, err := scanArticulo(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get articulo for update: %w", err)
	}
	return a, nil
}

// List lista artículos con paginación.
func (r *ArticuloRepo) List(limit, offset int) ([]*entity.Articulo, error) {
	query := `SELECT ` + articuloColumns + ` FROM articulos ORDER BY descripcion LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articulos: %w", err)
	}
	defer rows.Close()
	return collectArticulos(rows)
}

// ListCombos devuelve todos los artículos marcados como combo (para el resync masivo).
func (r *ArticuloRepo) ListCombos() ([]*entity.Articulo, error) {
	query := `SELECT ` + articuloColumns + ` FROM articulos WHERE es_combo ORDER BY descripcion`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list combos: %w", err)
	}
	defer rows.Close()
	return collectArticulos(rows)
}

func collectArticulos(rows pgx.Rows) ([]*entity.Articulo, error) {
	var list []*entity.Articulo
	for rows.Next() {
		var a entity.Articulo
		if err := rows.Scan(&a.ID, &a.Descripcion, &a.PrecioUnitario, &a.Stock, &a.EsCombo,
			&a.Equivalencia, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan articulo: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update actualiza descripción, precio y equivalencia. El stock se maneja vía UpdateStock.
func (r *ArticuloRepo) Update(articulo *entity.Articulo) error {
	query := `
		UPDATE articulos SET descripcion = $2, precio_unitario = $3, equivalencia = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		articulo.ID, articulo.Descripcion, articulo.PrecioUnitario, articulo.Equivalencia, articulo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update articulo: %w", err)
	}
	return nil
}

// UpdateStock sobreescribe solo el stock del artículo (motor de stock y resync).
func (r *ArticuloRepo) UpdateStock(id string, stock decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE articulos SET stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update stock articulo: %w", err)
	}
	return nil
}

// Delete elimina un artículo por ID.
func (r *ArticuloRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM articulos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete articulo: %w", err)
	}
	return nil
}
