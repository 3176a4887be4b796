package repository

import (
	"context"

	"github.com/jhoicas/violett-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para Transaction.
// No hay borrado: las transacciones sólo cambian de estado.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id int64) (*entity.Transaction, error)
	GetByFolio(ctx context.Context, folio string) (*entity.Transaction, error)
	List(ctx context.Context) ([]*entity.Transaction, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}
