package repository

import (
	"context"

	"github.com/jhoicas/violett-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID/GetByCode devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// AdjustStock suma delta al stock; no valida que el resultado sea >= 0.
	AdjustStock(ctx context.Context, id int64, delta int) error
	List(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
