package repository

import "context"

// Repos agrupa los repositorios atados a una misma unidad de trabajo.
type Repos struct {
	Users        UserRepository
	Products     ProductRepository
	Customers    CustomerRepository
	Transactions TransactionRepository
}

// Store es el Entity Store: dueño exclusivo de las copias canónicas de las cuatro entidades.
type Store interface {
	Repos() Repos
	// RunInTx ejecuta fn de forma atómica: o se aplican todas sus escrituras o ninguna,
	// y ningún lector observa un estado intermedio.
	RunInTx(ctx context.Context, fn func(r Repos) error) error
}
