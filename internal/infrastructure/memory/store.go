// Package memory implementa el Entity Store en memoria (driver por defecto).
//
// Un único escritor a la vez: RunInTx toma el candado exclusivo durante todo el callback,
// de modo que resolver cliente, crear transacción y descontar stock se ven como un solo paso.
// Si el callback falla se restaura la instantánea tomada al inicio.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/violett-api/internal/domain/entity"
	"github.com/jhoicas/violett-api/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// state contiene las tablas y sus secuencias. Los IDs nunca se reutilizan.
type state struct {
	users     table[entity.User]
	products  table[entity.Product]
	customers table[entity.Customer]
	txs       table[entity.Transaction]
}

func newState() *state {
	return &state{
		users:     newTable[entity.User](),
		products:  newTable[entity.Product](),
		customers: newTable[entity.Customer](),
		txs:       newTable[entity.Transaction](),
	}
}

func (s *state) clone() *state {
	return &state{
		users:     s.users.clone(copyUser),
		products:  s.products.clone(copyProduct),
		customers: s.customers.clone(copyCustomer),
		txs:       s.txs.clone(copyTransaction),
	}
}

// Store Entity Store en memoria.
type Store struct {
	mu sync.RWMutex
	st *state
}

// New crea un store vacío con todas las secuencias en 1.
func New() *Store {
	return &Store{st: newState()}
}

// Reset descarta todos los datos y reinicia las secuencias.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = newState()
}

// Repos devuelve repositorios que toman el candado en cada operación.
func (s *Store) Repos() repository.Repos {
	return reposFor(view{store: s})
}

// RunInTx ejecuta fn con el candado exclusivo. Si fn falla o entra en pánico, revierte
// todas sus escrituras; el pánico se propaga después de revertir.
func (s *Store) RunInTx(ctx context.Context, fn func(r repository.Repos) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	defer func() {
		if p := recover(); p != nil {
			s.st = snapshot
			panic(p)
		}
		if err != nil {
			s.st = snapshot
		}
	}()
	return fn(reposFor(view{store: s, tx: s.st}))
}

// view decide si cada operación toma el candado (fuera de tx) o no (dentro de RunInTx).
type view struct {
	store *Store
	tx    *state
}

func (v view) read(fn func(st *state)) {
	if v.tx != nil {
		fn(v.tx)
		return
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	fn(v.store.st)
}

func (v view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

func reposFor(v view) repository.Repos {
	return repository.Repos{
		Users:        &userRepo{v: v},
		Products:     &productRepo{v: v},
		Customers:    &customerRepo{v: v},
		Transactions: &transactionRepo{v: v},
	}
}

// table guarda filas por ID y el orden de inserción.
type table[T any] struct {
	rows  map[int64]*T
	order []int64
	seq   int64
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[int64]*T)}
}

func (t *table[T]) nextID() int64 {
	t.seq++
	return t.seq
}

func (t *table[T]) insert(id int64, row *T) {
	t.rows[id] = row
	t.order = append(t.order, id)
}

func (t *table[T]) remove(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// each recorre en orden de inserción; se detiene si fn devuelve false.
func (t *table[T]) each(fn func(row *T) bool) {
	for _, id := range t.order {
		if !fn(t.rows[id]) {
			return
		}
	}
}

func (t table[T]) clone(cp func(*T) *T) table[T] {
	out := table[T]{
		rows:  make(map[int64]*T, len(t.rows)),
		order: append([]int64(nil), t.order...),
		seq:   t.seq,
	}
	for id, row := range t.rows {
		out.rows[id] = cp(row)
	}
	return out
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func copyCustomer(c *entity.Customer) *entity.Customer {
	out := *c
	return &out
}

func copyTransaction(t *entity.Transaction) *entity.Transaction {
	c := *t
	if t.ReturnDate != nil {
		d := *t.ReturnDate
		c.ReturnDate = &d
	}
	if t.Deposit != nil {
		d := *t.Deposit
		c.Deposit = &d
	}
	return &c
}
