package postgres

import (
	"context"
	"fmt"

	"github.com/nmorales/barpos-api/internal/domain/entity"
	"github.com/nmorales/barpos-api/internal/domain/repository"
)

var _ repository.ComboComponenteRepository = (*ComboComponenteRepo)(nil)

// ComboComponenteRepo implementación sobre PostgreSQL (usable con pool o tx).
type ComboComponenteRepo struct {
	q Querier
}

// NewComboComponenteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComboComponenteRepository(q Querier) *ComboComponenteRepo {
	return &ComboComponenteRepo{q: q}
}

// ListByCombo devuelve la receta del combo.
func (r *ComboComponenteRepo) ListByCombo(comboID string) ([]*entity.ComboComponente, error) {
	query := `
		SELECT fk_articulo_combo, fk_articulo_componente, cantidad
		FROM combo_componentes WHERE fk_articulo_combo = $1`
	rows, err := r.q.Query(context.Background(), query, comboID)
	if err != nil {
		return nil, fmt.Errorf("list combo componentes: %w", err)
	}
	defer rows.Close()
	var list []*entity.ComboComponente
	for rows.Next() {
		var c entity.ComboComponente
		if err := rows.Scan(&c.ArticuloComboID, &c.ArticuloComponenteID, &c.Cantidad); err != nil {
			return nil, fmt.Errorf("scan combo componente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ReplaceForCombo reemplaza la receta completa del combo.
func (r *ComboComponenteRepo) ReplaceForCombo(comboID string, componentes []*entity.ComboComponente) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM combo_componentes WHERE fk_articulo_combo = $1`, comboID); err != nil {
		return fmt.Errorf("delete combo componentes: %w", err)
	}
	for _, c := range componentes {
		_, err := r.q.Exec(ctx, `
			INSERT INTO combo_componentes (fk_articulo_combo, fk_articulo_componente, cantidad)
			VALUES ($1, $2, $3)`,
			comboID, c.ArticuloComponenteID, c.Cantidad,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("componente duplicado en la receta: %w", err)
			}
			return fmt.Errorf("insert combo componente: %w", err)
		}
	}
	return nil
}
