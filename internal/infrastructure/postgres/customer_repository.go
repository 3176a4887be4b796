package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/violett-api/internal/domain"
	"github.com/jhoicas/violett-api/internal/domain/entity"
	"github.com/jhoicas/violett-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente y asigna su ID.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `INSERT INTO clientes (nombre, domicilio, telefono) VALUES ($1, $2, $3) RETURNING id`
	if err := r.q.QueryRow(ctx, query, c.Name, c.Address, c.Phone).Scan(&c.ID); err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	query := `SELECT id, nombre, domicilio, telefono FROM clientes WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// FindByNameAndPhone coincidencia exacta; si hubiera varios, el de menor ID.
func (r *CustomerRepo) FindByNameAndPhone(ctx context.Context, name, phone string) (*entity.Customer, error) {
	query := `
		SELECT id, nombre, domicilio, telefono FROM clientes
		WHERE nombre = $1 AND telefono = $2
		ORDER BY id
		LIMIT 1`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, name, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return c, nil
}

// List devuelve los clientes en orden de alta.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, domicilio, telefono FROM clientes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update reemplaza nombre, domicilio y teléfono.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE clientes SET nombre = $2, domicilio = $3, telefono = $4 WHERE id = $1`,
		c.ID, c.Name, c.Address, c.Phone,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("cliente", c.ID)
	}
	return nil
}

// LockIdentity toma un advisory lock de transacción sobre (nombre, teléfono).
// Se libera en el Commit/Rollback; fuera de tx se libera al terminar la sentencia.
func (r *CustomerRepo) LockIdentity(ctx context.Context, name, phone string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1 || '|' || $2))`, name, phone); err != nil {
		return fmt.Errorf("lock customer identity: %w", err)
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Phone); err != nil {
		return nil, err
	}
	return &c, nil
}
