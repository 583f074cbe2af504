package repository

import (
	"github.com/shopspring/decimal"
	"github.com/nmorales/barpos-api/internal/domain/entity"
)

// ArticuloRepository define el puerto de persistencia para Articulo (DIP).
type ArticuloRepository interface {
	Create(articulo *entity.Articulo) error
	GetByID(id string) (*entity.Articulo, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Usar dentro de transacciones.
	GetForUpdate(id string) (*entity.Articulo, error)
	List(limit, offset int) ([]*entity.Articulo, error)
	ListCombos() ([]*entity.Articulo, error)
	Update(articulo *entity.Articulo) error
	// UpdateStock sobreescribe solo el stock (usado por el motor de stock).
	UpdateStock(id string, stock decimal.Decimal) error
	Delete(id string) error
}
