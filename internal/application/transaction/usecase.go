package transaction

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/violett-api/internal/application/dto"
	"github.com/jhoicas/violett-api/internal/clock"
	"github.com/jhoicas/violett-api/internal/domain"
	"github.com/jhoicas/violett-api/internal/domain/entity"
	"github.com/jhoicas/violett-api/internal/domain/repository"
)

// Valores por defecto de las vistas derivadas.
const (
	DefaultRecentLimit = 5
	DefaultReturnDays  = 7
)

// UpdateStatus sobrescribe el estado sin restringir la transición. No toca el stock.
func (e *Engine) UpdateStatus(ctx context.Context, id int64, status string) (*dto.TransactionResponse, error) {
	if !entity.ValidStatus(status) {
		var v domain.Validator
		v.Add("estado", "debe ser pendiente, entregado, devuelto o completado")
		return nil, v.Err("estado inválido")
	}
	var updated *entity.Transaction
	err := e.store.RunInTx(ctx, func(r repository.Repos) error {
		if err := r.Transactions.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		t, err := r.Transactions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewTransactionResponse(updated), nil
}

// Get transacción enriquecida con producto y cliente; NotFoundError si no existe.
func (e *Engine) Get(ctx context.Context, id int64) (*dto.TransactionDetailResponse, error) {
	r := e.store.Repos()
	t, err := r.Transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NewNotFound("transacción", id)
	}
	return newJoiner(r).detail(ctx, t)
}

// GetByFolio busca por folio exacto; NotFoundError si no existe.
func (e *Engine) GetByFolio(ctx context.Context, code string) (*dto.TransactionDetailResponse, error) {
	r := e.store.Repos()
	t, err := r.Transactions.GetByFolio(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NewNotFound("transacción", code)
	}
	return newJoiner(r).detail(ctx, t)
}

// List todas las transacciones, más recientes primero, filtradas por tipo, estado y
// texto (folio, nombre de cliente o de producto, sin distinguir mayúsculas).
func (e *Engine) List(ctx context.Context, filter dto.TransactionFilter) ([]dto.TransactionDetailResponse, error) {
	r := e.store.Repos()
	all, err := r.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(all)

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	j := newJoiner(r)
	out := make([]dto.TransactionDetailResponse, 0, len(all))
	for _, t := range all {
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		d, err := j.detail(ctx, t)
		if err != nil {
			return nil, err
		}
		if query != "" && !matches(d, query) {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

// RecentSales las limit transacciones con fecha_creacion más reciente (de cualquier tipo).
func (e *Engine) RecentSales(ctx context.Context, limit int) ([]dto.TransactionDetailResponse, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	r := e.store.Repos()
	all, err := r.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(all)
	if len(all) > limit {
		all = all[:limit]
	}
	return newJoiner(r).details(ctx, all)
}

// UpcomingReturns rentas no devueltas con fecha_devolucion en [hoy, hoy+days], ascendente.
func (e *Engine) UpcomingReturns(ctx context.Context, days int) ([]dto.TransactionDetailResponse, error) {
	if days < 0 {
		var v domain.Validator
		v.Add("dias", "no puede ser negativo")
		return nil, v.Err("parámetro inválido")
	}
	today := clock.Today(e.clock)
	until := today.AddDate(0, 0, days)

	r := e.store.Repos()
	all, err := r.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	due := make([]*entity.Transaction, 0)
	for _, t := range all {
		if t.Type != entity.TypeRental || t.Status == entity.StatusReturned || t.ReturnDate == nil {
			continue
		}
		if t.ReturnDate.Before(today) || t.ReturnDate.After(until) {
			continue
		}
		due = append(due, t)
	}
	sort.SliceStable(due, func(i, k int) bool { return due[i].ReturnDate.Before(*due[k].ReturnDate) })
	return newJoiner(r).details(ctx, due)
}

func sortNewestFirst(list []*entity.Transaction) {
	sort.SliceStable(list, func(i, k int) bool { return list[i].CreatedOn.After(list[k].CreatedOn) })
}

func matches(d *dto.TransactionDetailResponse, query string) bool {
	if strings.Contains(strings.ToLower(d.Folio), query) {
		return true
	}
	if d.Customer != nil && strings.Contains(strings.ToLower(d.Customer.Name), query) {
		return true
	}
	return d.Product != nil && strings.Contains(strings.ToLower(d.Product.Name), query)
}

// joiner resuelve producto y cliente por id, con caché por consulta.
// Referencias inexistentes producen null, no error.
type joiner struct {
	repos     repository.Repos
	products  map[int64]*entity.Product
	customers map[int64]*entity.Customer
}

func newJoiner(r repository.Repos) *joiner {
	return &joiner{
		repos:     r,
		products:  make(map[int64]*entity.Product),
		customers: make(map[int64]*entity.Customer),
	}
}

func (j *joiner) detail(ctx context.Context, t *entity.Transaction) (*dto.TransactionDetailResponse, error) {
	p, ok := j.products[t.ProductID]
	if !ok {
		var err error
		if p, err = j.repos.Products.GetByID(ctx, t.ProductID); err != nil {
			return nil, err
		}
		j.products[t.ProductID] = p
	}
	c, ok := j.customers[t.CustomerID]
	if !ok {
		var err error
		if c, err = j.repos.Customers.GetByID(ctx, t.CustomerID); err != nil {
			return nil, err
		}
		j.customers[t.CustomerID] = c
	}
	return &dto.TransactionDetailResponse{
		TransactionResponse: *dto.NewTransactionResponse(t),
		Product:             dto.NewProductResponse(p),
		Customer:            dto.NewCustomerResponse(c),
	}, nil
}

func (j *joiner) details(ctx context.Context, list []*entity.Transaction) ([]dto.TransactionDetailResponse, error) {
	out := make([]dto.TransactionDetailResponse, 0, len(list))
	for _, t := range list {
		d, err := j.detail(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}
