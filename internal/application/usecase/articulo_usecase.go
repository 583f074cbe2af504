package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/nmorales/barpos-api/internal/application/dto"
	"github.com/nmorales/barpos-api/internal/domain"
	"github.com/nmorales/barpos-api/internal/domain/entity"
	"github.com/nmorales/barpos-api/internal/domain/repository"
)

// ArticuloUseCase casos de uso CRUD para artículos y su receta de combo.
// El stock no se edita por acá: se maneja vía el motor de descuentos y resync.
type ArticuloUseCase struct {
	articuloRepo   repository.ArticuloRepository
	componenteRepo repository.ComboComponenteRepository
}

// NewArticuloUseCase construye el caso de uso.
func NewArticuloUseCase(
	articuloRepo repository.ArticuloRepository,
	componenteRepo repository.ComboComponenteRepository,
) *ArticuloUseCase {
	return &ArticuloUseCase{articuloRepo: articuloRepo, componenteRepo: componenteRepo}
}

// Create da de alta un artículo simple o un combo (la receta se carga aparte).
func (uc *ArticuloUseCase) Create(in dto.CreateArticuloRequest) (*dto.ArticuloResponse, error) {
	if in.Descripcion == "" || in.PrecioUnitario.IsNegative() || in.Stock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	articulo := &entity.Articulo{
		ID:             uuid.New().String(),
		Descripcion:    in.Descripcion,
		PrecioUnitario: in.PrecioUnitario,
		Stock:          in.Stock,
		EsCombo:        in.EsCombo,
		Equivalencia:   in.Equivalencia,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.articuloRepo.Create(articulo); err != nil {
		return nil, err
	}
	return toArticuloResponse(articulo, nil), nil
}

// GetByID obtiene un artículo; si es combo incluye su receta con el stock
// vivo de cada componente.
func (uc *ArticuloUseCase) GetByID(id string) (*dto.ArticuloResponse, error) {
	articulo, err := uc.articuloRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if articulo == nil {
		return nil, domain.ErrNotFound
	}
	var componentes []dto.ComponenteResponse
	if articulo.EsCombo {
		componentes, err = uc.cargarReceta(articulo.ID)
		if err != nil {
			return nil, err
		}
	}
	return toArticuloResponse(articulo, componentes), nil
}

// List lista artículos con paginación.
func (uc *ArticuloUseCase) List(page dto.PageRequest) ([]*dto.ArticuloResponse, error) {
	page.DefaultPage()
	articulos, err := uc.articuloRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ArticuloResponse, 0, len(articulos))
	for _, a := range articulos {
		out = append(out, toArticuloResponse(a, nil))
	}
	return out, nil
}

// Update modifica descripción, precio o equivalencia. No toca Stock ni EsCombo.
func (uc *ArticuloUseCase) Update(id string, in dto.UpdateArticuloRequest) (*dto.ArticuloResponse, error) {
	articulo, err := uc.articuloRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if articulo == nil {
		return nil, domain.ErrNotFound
	}
	if in.Descripcion != nil {
		if *in.Descripcion == "" {
			return nil, domain.ErrInvalidInput
		}
		articulo.Descripcion = *in.Descripcion
	}
	if in.PrecioUnitario != nil {
		if in.PrecioUnitario.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		articulo.PrecioUnitario = *in.PrecioUnitario
	}
	if in.Equivalencia != nil {
		articulo.Equivalencia = in.Equivalencia
	}
	articulo.UpdatedAt = time.Now()
	if err := uc.articuloRepo.Update(articulo); err != nil {
		return nil, err
	}
	return toArticuloResponse(articulo, nil), nil
}

// SetComponentes reemplaza la receta completa de un combo. Cada cantidad debe
// ser > 0 y los componentes deben existir y no ser combos a su vez (la receta
// es de un solo nivel, como en la caja).
func (uc *ArticuloUseCase) SetComponentes(comboID string, in dto.SetComponentesRequest) error {
	combo, err := uc.articuloRepo.GetByID(comboID)
	if err != nil {
		return err
	}
	if combo == nil {
		return domain.ErrNotFound
	}
	if !combo.EsCombo {
		return domain.ErrInvalidInput
	}
	componentes := make([]*entity.ComboComponente, 0, len(in.Componentes))
	for _, c := range in.Componentes {
		if c.ArticuloComponenteID == "" || !c.Cantidad.IsPositive() {
			return domain.ErrInvalidInput
		}
		articulo, err := uc.articuloRepo.GetByID(c.ArticuloComponenteID)
		if err != nil {
			return err
		}
		if articulo == nil {
			return domain.ErrNotFound
		}
		if articulo.EsCombo {
			return domain.ErrInvalidInput
		}
		componentes = append(componentes, &entity.ComboComponente{
			ArticuloComboID:      comboID,
			ArticuloComponenteID: c.ArticuloComponenteID,
			Cantidad:             c.Cantidad,
		})
	}
	return uc.componenteRepo.ReplaceForCombo(comboID, componentes)
}

func (uc *ArticuloUseCase) cargarReceta(comboID string) ([]dto.ComponenteResponse, error) {
	edges, err := uc.componenteRepo.ListByCombo(comboID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ComponenteResponse, 0, len(edges))
	for _, edge := range edges {
		comp := dto.ComponenteResponse{
			ArticuloComponenteID: edge.ArticuloComponenteID,
			Cantidad:             edge.Cantidad,
			Stock:                decimal.Zero,
		}
		articulo, err := uc.articuloRepo.GetByID(edge.ArticuloComponenteID)
		if err != nil {
			return nil, err
		}
		if articulo != nil {
			comp.Descripcion = articulo.Descripcion
			comp.Stock = articulo.Stock
		}
		out = append(out, comp)
	}
	return out, nil
}

func toArticuloResponse(a *entity.Articulo, componentes []dto.ComponenteResponse) *dto.ArticuloResponse {
	return &dto.ArticuloResponse{
		ID:             a.ID,
		Descripcion:    a.Descripcion,
		PrecioUnitario: a.PrecioUnitario,
		Stock:          a.Stock,
		EsCombo:        a.EsCombo,
		Equivalencia:   a.Equivalencia,
		Componentes:    componentes,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
