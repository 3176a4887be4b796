package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/violett-api/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store Entity Store sobre PostgreSQL. Repos() trabaja contra el pool; RunInTx ata
// los cuatro repositorios a una misma pgx.Tx.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore construye el store con el pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Repos devuelve repositorios fuera de transacción.
func (s *Store) Repos() repository.Repos {
	return reposFor(s.pool)
}

// RunInTx inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (s *Store) RunInTx(ctx context.Context, fn func(r repository.Repos) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(reposFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func reposFor(q Querier) repository.Repos {
	return repository.Repos{
		Users:        NewUserRepository(q),
		Products:     NewProductRepository(q),
		Customers:    NewCustomerRepository(q),
		Transactions: NewTransactionRepository(q),
	}
}
