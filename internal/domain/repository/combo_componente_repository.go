package repository

import "github.com/nmorales/barpos-api/internal/domain/entity"

// ComboComponenteRepository define el puerto para la receta (bill of materials) de combos.
type ComboComponenteRepository interface {
	ListByCombo(comboID string) ([]*entity.ComboComponente, error)
	// ReplaceForCombo reemplaza la receta completa del combo.
	ReplaceForCombo(comboID string, componentes []*entity.ComboComponente) error
}
