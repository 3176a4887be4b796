package repository

import (
	"context"

	"github.com/jhoicas/violett-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	// FindByNameAndPhone coincidencia exacta (sensible a mayúsculas); primer registro por orden de alta.
	FindByNameAndPhone(ctx context.Context, name, phone string) (*entity.Customer, error)
	List(ctx context.Context) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// LockIdentity serializa, dentro de una transacción, el buscar-o-crear de un
	// mismo par (nombre, teléfono) para no duplicar clientes.
	LockIdentity(ctx context.Context, name, phone string) error
}
