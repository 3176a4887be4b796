package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/violett-api/internal/domain"
	"github.com/jhoicas/violett-api/internal/domain/entity"
	"github.com/jhoicas/violett-api/internal/domain/repository"
	"github.com/jhoicas/violett-api/internal/infrastructure/memory"
)

func newProduct(code string, stock int) *entity.Product {
	return &entity.Product{
		Code:  code,
		Name:  "Vestido " + code,
		Type:  entity.TypeRental,
		Price: decimal.NewFromInt(1000),
		Stock: stock,
	}
}

func TestStore_IDsMonotonicosYNoReutilizados(t *testing.T) {
	ctx := context.Background()
	r := memory.New().Repos()

	a := newProduct("VD-1", 1)
	b := newProduct("VD-2", 1)
	require.NoError(t, r.Products.Create(ctx, a))
	require.NoError(t, r.Products.Create(ctx, b))
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	ok, err := r.Products.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	c := newProduct("VD-3", 1)
	require.NoError(t, r.Products.Create(ctx, c))
	assert.Equal(t, int64(3), c.ID, "el id 2 borrado no debe reutilizarse")

	// Cada tipo lleva su propia secuencia.
	cust := &entity.Customer{Name: "Ana", Address: "Centro", Phone: "4521234567"}
	require.NoError(t, r.Customers.Create(ctx, cust))
	assert.Equal(t, int64(1), cust.ID)
}

func TestStore_ResetReiniciaSecuencias(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Repos().Products.Create(ctx, newProduct("VD-1", 1)))
	s.Reset()

	list, err := s.Repos().Products.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	p := newProduct("VD-1", 1)
	require.NoError(t, s.Repos().Products.Create(ctx, p))
	assert.Equal(t, int64(1), p.ID)
}

func TestStore_ListaEnOrdenDeInsercion(t *testing.T) {
	ctx := context.Background()
	r := memory.New().Repos()
	for _, code := range []string{"VD-3", "VD-1", "VD-2"} {
		require.NoError(t, r.Products.Create(ctx, newProduct(code, 1)))
	}
	list, err := r.Products.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "VD-3", list[0].Code)
	assert.Equal(t, "VD-1", list[1].Code)
	assert.Equal(t, "VD-2", list[2].Code)
}

func TestStore_CopiasDefensivas(t *testing.T) {
	ctx := context.Background()
	r := memory.New().Repos()
	p := newProduct("VD-1", 5)
	require.NoError(t, r.Products.Create(ctx, p))

	p.Stock = 99
	got, err := r.Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock, "mutar la entidad del caller no debe tocar la copia canónica")

	got.Stock = 42
	again, _ := r.Products.GetByID(ctx, p.ID)
	assert.Equal(t, 5, again.Stock)
}

func TestStore_UpdateInexistente(t *testing.T) {
	ctx := context.Background()
	r := memory.New().Repos()

	err := r.Products.Update(ctx, &entity.Product{ID: 7, Code: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = r.Customers.Update(ctx, &entity.Customer{ID: 7})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = r.Transactions.UpdateStatus(ctx, 7, entity.StatusDelivered)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ok, err := r.Products.Delete(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := r.Products.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_CodigoYFolioUnicos(t *testing.T) {
	ctx := context.Background()
	r := memory.New().Repos()

	require.NoError(t, r.Products.Create(ctx, newProduct("VD-1", 1)))
	assert.ErrorIs(t, r.Products.Create(ctx, newProduct("VD-1", 1)), domain.ErrDuplicate)

	other := newProduct("VD-2", 1)
	require.NoError(t, r.Products.Create(ctx, other))
	other.Code = "VD-1"
	assert.ErrorIs(t, r.Products.Update(ctx, other), domain.ErrDuplicate)

	tx := &entity.Transaction{Folio: "VIO-00000001", Type: entity.TypeSale, Status: entity.StatusPending}
	require.NoError(t, r.Transactions.Create(ctx, tx))
	dup := &entity.Transaction{Folio: "VIO-00000001", Type: entity.TypeSale, Status: entity.StatusPending}
	assert.ErrorIs(t, r.Transactions.Create(ctx, dup), domain.ErrDuplicate)
}

func TestStore_FindByNameAndPhone_PrimeroPorInsercion(t *testing.T) {
	ctx := context.Background()
	r := memory.New().Repos()
	first := &entity.Customer{Name: "Laura", Address: "A", Phone: "4529876543"}
	second := &entity.Customer{Name: "Laura", Address: "B", Phone: "4529876543"}
	require.NoError(t, r.Customers.Create(ctx, first))
	require.NoError(t, r.Customers.Create(ctx, second))

	got, err := r.Customers.FindByNameAndPhone(ctx, "Laura", "4529876543")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)

	got, err = r.Customers.FindByNameAndPhone(ctx, "laura", "4529876543")
	require.NoError(t, err)
	assert.Nil(t, got, "la búsqueda es sensible a mayúsculas")
}

func TestStore_RunInTx_RevierteSiFalla(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	p := newProduct("VD-1", 3)
	require.NoError(t, s.Repos().Products.Create(ctx, p))

	boom := errors.New("boom")
	err := s.RunInTx(ctx, func(r repository.Repos) error {
		require.NoError(t, r.Products.AdjustStock(ctx, p.ID, -1))
		require.NoError(t, r.Customers.Create(ctx, &entity.Customer{Name: "X", Address: "Y", Phone: "12345678"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := s.Repos().Products.GetByID(ctx, p.ID)
	assert.Equal(t, 3, got.Stock)
	customers, _ := s.Repos().Customers.List(ctx)
	assert.Empty(t, customers)

	// La secuencia también se revierte junto con la instantánea.
	c := &entity.Customer{Name: "Z", Address: "Y", Phone: "12345678"}
	require.NoError(t, s.Repos().Customers.Create(ctx, c))
	assert.Equal(t, int64(1), c.ID)
}

func TestStore_RunInTx_RevierteYPropagaPanico(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	p := newProduct("VD-1", 3)
	require.NoError(t, s.Repos().Products.Create(ctx, p))

	assert.PanicsWithValue(t, "boom", func() {
		_ = s.RunInTx(ctx, func(r repository.Repos) error {
			require.NoError(t, r.Products.AdjustStock(ctx, p.ID, -1))
			panic("boom")
		})
	})

	got, err := s.Repos().Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)

	// El candado quedó libre tras el pánico.
	require.NoError(t, s.RunInTx(ctx, func(r repository.Repos) error {
		return r.Products.AdjustStock(ctx, p.ID, -1)
	}))
	got, err = s.Repos().Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)
}

func TestStore_RunInTx_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := memory.New().RunInTx(ctx, func(repository.Repos) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStore_RunInTx_SinDescuentosPerdidos(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	p := newProduct("VD-1", 100)
	require.NoError(t, s.Repos().Products.Create(ctx, p))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.RunInTx(ctx, func(r repository.Repos) error {
				cur, err := r.Products.GetForUpdate(ctx, p.ID)
				if err != nil {
					return err
				}
				cur.Stock--
				return r.Products.Update(ctx, cur)
			})
		}()
	}
	wg.Wait()

	got, _ := s.Repos().Products.GetByID(ctx, p.ID)
	assert.Equal(t, 50, got.Stock)
}
