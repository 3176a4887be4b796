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

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, folio, id_producto, id_cliente, tipo, fecha_creacion, fecha_entrega,
	fecha_devolucion, abono, total, estado`

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste la transacción. Folio repetido devuelve domain.ErrDuplicate.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transacciones (folio, id_producto, id_cliente, tipo, fecha_creacion, fecha_entrega,
			fecha_devolucion, abono, total, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (folio) DO NOTHING
		RETURNING id`
	// Folio repetido: sin fila en lugar de error, así el BEGIN en curso sigue usable.
	err := r.q.QueryRow(ctx, query,
		t.Folio, t.ProductID, t.CustomerID, t.Type, t.CreatedOn, t.DeliveryDate,
		t.ReturnDate, t.Deposit, t.Total, t.Status,
	).Scan(&t.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID.
func (r *TransactionRepo) GetByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	return r.getOne(ctx, `SELECT `+transactionColumns+` FROM transacciones WHERE id = $1`, id)
}

// GetByFolio obtiene una transacción por folio (coincidencia exacta).
func (r *TransactionRepo) GetByFolio(ctx context.Context, folio string) (*entity.Transaction, error) {
	return r.getOne(ctx, `SELECT `+transactionColumns+` FROM transacciones WHERE folio = $1`, folio)
}

func (r *TransactionRepo) getOne(ctx context.Context, query string, arg any) (*entity.Transaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// List devuelve todas las transacciones en orden de alta.
func (r *TransactionRepo) List(ctx context.Context) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, `SELECT `+transactionColumns+` FROM transacciones ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la transacción.
func (r *TransactionRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE transacciones SET estado = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("transacción", id)
	}
	return nil
}

// scanTransaction: fecha_devolucion y abono admiten NULL (se escanean a puntero nil).
func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(
		&t.ID, &t.Folio, &t.ProductID, &t.CustomerID, &t.Type, &t.CreatedOn, &t.DeliveryDate,
		&t.ReturnDate, &t.Deposit, &t.Total, &t.Status,
	)
	if err != nil {
		return nil, err
	}
	t.CreatedOn = t.CreatedOn.UTC()
	t.DeliveryDate = t.DeliveryDate.UTC()
	if t.ReturnDate != nil {
		d := t.ReturnDate.UTC()
		t.ReturnDate = &d
	}
	return &t, nil
}
