package memory

import (
	"context"

	"github.com/jhoicas/violett-api/internal/domain"
	"github.com/jhoicas/violett-api/internal/domain/entity"
)

// ── Usuarios ──────────────────────────────────────────────────────────────────

type userRepo struct{ v view }

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	return r.v.write(func(st *state) error {
		dup := false
		st.users.each(func(u *entity.User) bool {
			dup = u.Username == user.Username
			return !dup
		})
		if dup {
			return domain.ErrDuplicate
		}
		user.ID = st.users.nextID()
		st.users.insert(user.ID, copyUser(user))
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(st *state) {
		if u, ok := st.users.rows[id]; ok {
			out = copyUser(u)
		}
	})
	return out, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(st *state) {
		st.users.each(func(u *entity.User) bool {
			if u.Username == username {
				out = copyUser(u)
				return false
			}
			return true
		})
	})
	return out, nil
}

// ── Productos ─────────────────────────────────────────────────────────────────

type productRepo struct{ v view }

func codeTaken(st *state, code string, exceptID int64) bool {
	taken := false
	st.products.each(func(p *entity.Product) bool {
		taken = p.Code == code && p.ID != exceptID
		return !taken
	})
	return taken
}

func (r *productRepo) Create(_ context.Context, product *entity.Product) error {
	return r.v.write(func(st *state) error {
		if codeTaken(st, product.Code, 0) {
			return domain.ErrDuplicate
		}
		product.ID = st.products.nextID()
		st.products.insert(product.ID, copyProduct(product))
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(st *state) {
		if p, ok := st.products.rows[id]; ok {
			out = copyProduct(p)
		}
	})
	return out, nil
}

// GetForUpdate en memoria equivale a GetByID: dentro de RunInTx ya se tiene el candado exclusivo.
func (r *productRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(st *state) {
		st.products.each(func(p *entity.Product) bool {
			if p.Code == code {
				out = copyProduct(p)
				return false
			}
			return true
		})
	})
	return out, nil
}

func (r *productRepo) Update(_ context.Context, product *entity.Product) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products.rows[product.ID]; !ok {
			return domain.NewNotFound("producto", product.ID)
		}
		if codeTaken(st, product.Code, product.ID) {
			return domain.ErrDuplicate
		}
		st.products.rows[product.ID] = copyProduct(product)
		return nil
	})
}

func (r *productRepo) AdjustStock(_ context.Context, id int64, delta int) error {
	return r.v.write(func(st *state) error {
		p, ok := st.products.rows[id]
		if !ok {
			return domain.NewNotFound("producto", id)
		}
		p.Stock += delta
		return nil
	})
}

func (r *productRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	r.v.read(func(st *state) {
		out = make([]*entity.Product, 0, len(st.products.order))
		st.products.each(func(p *entity.Product) bool {
			out = append(out, copyProduct(p))
			return true
		})
	})
	return out, nil
}

func (r *productRepo) Delete(_ context.Context, id int64) (bool, error) {
	var removed bool
	_ = r.v.write(func(st *state) error {
		removed = st.products.remove(id)
		return nil
	})
	return removed, nil
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type customerRepo struct{ v view }

func (r *customerRepo) Create(_ context.Context, customer *entity.Customer) error {
	return r.v.write(func(st *state) error {
		customer.ID = st.customers.nextID()
		st.customers.insert(customer.ID, copyCustomer(customer))
		return nil
	})
}

func (r *customerRepo) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	var out *entity.Customer
	r.v.read(func(st *state) {
		if c, ok := st.customers.rows[id]; ok {
			out = copyCustomer(c)
		}
	})
	return out, nil
}

func (r *customerRepo) FindByNameAndPhone(_ context.Context, name, phone string) (*entity.Customer, error) {
	var out *entity.Customer
	r.v.read(func(st *state) {
		st.customers.each(func(c *entity.Customer) bool {
			if c.Name == name && c.Phone == phone {
				out = copyCustomer(c)
				return false
			}
			return true
		})
	})
	return out, nil
}

func (r *customerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	var out []*entity.Customer
	r.v.read(func(st *state) {
		out = make([]*entity.Customer, 0, len(st.customers.order))
		st.customers.each(func(c *entity.Customer) bool {
			out = append(out, copyCustomer(c))
			return true
		})
	})
	return out, nil
}

func (r *customerRepo) Update(_ context.Context, customer *entity.Customer) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.customers.rows[customer.ID]; !ok {
			return domain.NewNotFound("cliente", customer.ID)
		}
		st.customers.rows[customer.ID] = copyCustomer(customer)
		return nil
	})
}

// LockIdentity no hace nada: RunInTx ya serializa a todos los escritores.
func (r *customerRepo) LockIdentity(context.Context, string, string) error {
	return nil
}

// ── Transacciones ─────────────────────────────────────────────────────────────

type transactionRepo struct{ v view }

func (r *transactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	return r.v.write(func(st *state) error {
		dup := false
		st.txs.each(func(t *entity.Transaction) bool {
			dup = t.Folio == tx.Folio
			return !dup
		})
		if dup {
			return domain.ErrDuplicate
		}
		tx.ID = st.txs.nextID()
		st.txs.insert(tx.ID, copyTransaction(tx))
		return nil
	})
}

func (r *transactionRepo) GetByID(_ context.Context, id int64) (*entity.Transaction, error) {
	var out *entity.Transaction
	r.v.read(func(st *state) {
		if t, ok := st.txs.rows[id]; ok {
			out = copyTransaction(t)
		}
	})
	return out, nil
}

func (r *transactionRepo) GetByFolio(_ context.Context, folio string) (*entity.Transaction, error) {
	var out *entity.Transaction
	r.v.read(func(st *state) {
		st.txs.each(func(t *entity.Transaction) bool {
			if t.Folio == folio {
				out = copyTransaction(t)
				return false
			}
			return true
		})
	})
	return out, nil
}

func (r *transactionRepo) List(_ context.Context) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	r.v.read(func(st *state) {
		out = make([]*entity.Transaction, 0, len(st.txs.order))
		st.txs.each(func(t *entity.Transaction) bool {
			out = append(out, copyTransaction(t))
			return true
		})
	})
	return out, nil
}

func (r *transactionRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	return r.v.write(func(st *state) error {
		t, ok := st.txs.rows[id]
		if !ok {
			return domain.NewNotFound("transacción", id)
		}
		t.Status = status
		return nil
	})
}
