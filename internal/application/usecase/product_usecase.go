package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/violett-api/internal/application/dto"
	"github.com/jhoicas/violett-api/internal/domain"
	"github.com/jhoicas/violett-api/internal/domain/entity"
	"github.com/jhoicas/violett-api/internal/domain/repository"
)

// Umbral y tope por defecto del catálogo para "bajo stock".
const (
	DefaultLowStockThreshold = 5
	DefaultLowStockLimit     = 5
)

// ProductUseCase catálogo de productos: CRUD y consulta de bajo stock.
// El stock también lo descuenta el motor de transacciones, no sólo este servicio.
type ProductUseCase struct {
	store repository.Store
	repo  repository.ProductRepository
}

// NewProductUseCase construye el caso de uso sobre el store compartido con el motor.
func NewProductUseCase(store repository.Store) *ProductUseCase {
	return &ProductUseCase{store: store, repo: store.Repos().Products}
}

// Create crea un producto. Codigo duplicado (comparación exacta) devuelve ConflictError.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := &entity.Product{
		Code:        strings.TrimSpace(in.Code),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Type:        in.Type,
		Price:       in.Price,
		Stock:       in.Stock,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCode(ctx, product.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicateCode(product.Code)
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product), nil
}

// GetByID obtiene un producto; NotFoundError si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("producto", id)
	}
	return dto.NewProductResponse(product), nil
}

// List devuelve todos los productos en orden de alta.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Update aplica los campos presentes. Si cambia el codigo se revalida su unicidad.
// Lectura y escritura van en una sola transacción con el producto bloqueado, así un
// descuento de stock concurrente no se pierde al reescribir la fila.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var updated *entity.Product
	err := uc.store.RunInTx(ctx, func(r repository.Repos) error {
		product, err := r.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NewNotFound("producto", id)
		}
		codeChanged := applyProductChanges(product, in)
		if err := validateProduct(product); err != nil {
			return err
		}
		if codeChanged {
			other, err := r.Products.GetByCode(ctx, product.Code)
			if err != nil {
				return err
			}
			if other != nil && other.ID != product.ID {
				return duplicateCode(product.Code)
			}
		}
		if err := r.Products.Update(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(updated), nil
}

// applyProductChanges copia los campos presentes; devuelve true si cambió el codigo.
func applyProductChanges(product *entity.Product, in dto.UpdateProductRequest) bool {
	codeChanged := false
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		codeChanged = code != product.Code
		product.Code = code
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Type != nil {
		product.Type = *in.Type
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	return codeChanged
}

// Delete elimina sin revisar transacciones que lo referencien. false si no existía.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) (bool, error) {
	return uc.repo.Delete(ctx, id)
}

// LowStock productos con stock < threshold, de menor a mayor stock.
// Empates conservan el orden de alta. limit <= 0 no recorta.
func (uc *ProductUseCase) LowStock(ctx context.Context, threshold, limit int) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(FilterLowStock(list, threshold, limit)), nil
}

// FilterLowStock es la regla de bajo stock compartida con el dashboard.
func FilterLowStock(products []*entity.Product, threshold, limit int) []*entity.Product {
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p.Stock < threshold {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func validateProduct(p *entity.Product) error {
	var v domain.Validator
	v.Check(p.Code != "", "codigo", "es requerido")
	v.Check(p.Name != "", "nombre", "es requerido")
	v.Check(entity.ValidType(p.Type), "tipo", "debe ser renta o venta")
	v.Check(!p.Price.LessThan(decimal.Zero), "precio", "no puede ser negativo")
	v.Check(p.Stock >= 0, "stock", "no puede ser negativo")
	return v.Err("datos de producto inválidos")
}

func duplicateCode(code string) error {
	return domain.NewConflict(fmt.Sprintf("ya existe un producto con código %q", code))
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.NewProductResponse(p))
	}
	return items
}
