package transaction_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/violett-api/internal/application/dto"
	"github.com/jhoicas/violett-api/internal/application/transaction"
	"github.com/jhoicas/violett-api/internal/clock"
	"github.com/jhoicas/violett-api/internal/domain"
	"github.com/jhoicas/violett-api/internal/domain/entity"
	"github.com/jhoicas/violett-api/internal/domain/folio"
	"github.com/jhoicas/violett-api/internal/infrastructure/memory"
)

var now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

// seqFolios devuelve los folios dados en orden y luego repite el último.
type seqFolios struct {
	mu    sync.Mutex
	codes []string
	n     int
}

func (s *seqFolios) Next() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.n
	if i >= len(s.codes) {
		i = len(s.codes) - 1
	}
	s.n++
	return s.codes[i], nil
}

type countingRecorder struct {
	mu      sync.Mutex
	created map[string]int
	reused  int
	newCust int
	applied int
	skipped int
}

func (r *countingRecorder) TransactionCreated(tipo string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.created == nil {
		r.created = map[string]int{}
	}
	r.created[tipo]++
}

func (r *countingRecorder) CustomerResolved(reused bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reused {
		r.reused++
	} else {
		r.newCust++
	}
}

func (r *countingRecorder) StockDecrement(applied bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if applied {
		r.applied++
	} else {
		r.skipped++
	}
}

type fixture struct {
	store  *memory.Store
	engine *transaction.Engine
	clock  *clock.FakeClock
	rec    *countingRecorder
}

func newFixture(t *testing.T, cfg transaction.Config, gen folio.Generator) *fixture {
	t.Helper()
	if gen == nil {
		gen = folio.NewRandomGenerator()
	}
	s := memory.New()
	clk := clock.NewFakeClock(now)
	rec := &countingRecorder{}
	return &fixture{
		store:  s,
		engine: transaction.NewEngine(s, clk, gen, cfg, rec),
		clock:  clk,
		rec:    rec,
	}
}

func (f *fixture) product(t *testing.T, code string, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{Code: code, Name: "Vestido " + code, Type: entity.TypeRental, Price: decimal.NewFromInt(500), Stock: stock}
	require.NoError(t, f.store.Repos().Products.Create(context.Background(), p))
	return p
}

func money(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func str(s string) *string { return &s }

func rentalForm(productID int64, name, address, phone string) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		CustomerName:    name,
		CustomerAddress: address,
		CustomerPhone:   phone,
		ProductID:       productID,
		Type:            entity.TypeRental,
		DeliveryDate:    "2026-10-17",
		ReturnDate:      str("2026-10-19"),
		Deposit:         money(200),
		Total:           money(500),
	}
}

func TestCreate_FlujoCompleto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, transaction.Config{AllowMissingProduct: true}, nil)
	p := f.product(t, "VD-999", 1)

	got, err := f.engine.Create(ctx, rentalForm(p.ID, "Ana López", "Calle 1", "4521234567"))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPending, got.Status)
	assert.True(t, folio.Valid(got.Folio), got.Folio)
	assert.Equal(t, "2026-10-16", got.CreatedOn, "fecha_creacion por defecto es hoy")

	stored, _ := f.store.Repos().Products.GetByID(ctx, p.ID)
	assert.Equal(t, 0, stored.Stock)

	customers, _ := f.store.Repos().Customers.List(ctx)
	require.Len(t, customers, 1)
	assert.Equal(t, customers[0].ID, got.CustomerID)

	txs, _ := f.store.Repos().Transactions.List(ctx)
	assert.Len(t, txs, 1)

	assert.Equal(t, 1, f.rec.created[entity.TypeRental])
	assert.Equal(t, 1, f.rec.newCust)
	assert.Equal(t, 1, f.rec.applied)
}

func TestCreate_DeduplicaClienteConservandoPrimerDomicilio(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, transaction.Config{AllowMissingProduct: true}, nil)
	p := f.product(t, "VD-1", 5)

	a, err := f.engine.Create(ctx, rentalForm(p.ID, "Laura", "Domicilio A", "4529876543"))
	require.NoError(t, err)
	b, err := f.engine.Create(ctx, rentalForm(p.ID, "Laura", "Domicilio B", "4529876543"))
	require.NoError(t, err)

	customers, _ := f.store.Repos().Customers.List(ctx)
	require.Len(t, customers, 1)
	assert.Equal(t, "Domicilio A", customers[0].Address)
	assert.Equal(t, a.CustomerID, b.CustomerID)
	assert.Equal(t, 1, f.rec.reused)
}

func TestCreate_StockPuedeQuedarNegativo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, transaction.Config{AllowMissingProduct: true}, nil)
	p := f.product(t, "VD-1", 2)

	for i := 0; i < 5; i++ {
		_, err := f.engine.Create(ctx, rentalForm(p.ID, "Ana", "Centro", "4521234567"))
		require.NoError(t, err)
	}
	stored, _ := f.store.Repos().Products.GetByID(ctx, p.ID)
	assert.Equal(t, 2-5, stored.Stock)
}

func TestCreate_ValidacionListaTodasLasViolaciones(t *testing.T) {
	f := newFixture(t, transaction.Config{AllowMissingProduct: true}, nil)

	_, err := f.engine.Create(context.Background(), dto.CreateTransactionRequest{
		CustomerPhone: "12ab",
		Type:          "prestamo",
		Deposit:       money(900),
		Total:         money(500),
	})
	require.Error(t, err)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	fields := map[string]bool{}
	for _, fe := range ve.Fields {
		fields[fe.Field] = true
	}
	for _, name := range []string{"cliente_nombre", "cliente_domicilio", "cliente_telefono", "id_producto", "tipo", "fecha_entrega", "abono"} {
		assert.True(t, fields[name], "falta la violación de %s", name)
	}
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	txs, _ := f.store.Repos().Transactions.List(context.Background())
	assert.Empty(t, txs)
}

func TestCreate_ValidacionFechasYMontos(t *testing.T) {
	f := newFixture(t, transaction.Config{AllowMissingProduct: true}, nil)
	p := f.product(t, "VD-1", 1)

	in := rentalForm(p.ID, "Ana", "Centro", "4521234567")
	in.ReturnDate = str("2026-10-10")
	in.Total = money(-1)
	in.Deposit = money(-5)
	in.CreatedOn = "16/10/2026"

	_, err := f.engine.Create(context.Background(), in)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	fields := map[string]bool{}
	for _, fe := range ve.Fields {
		fields[fe.Field] = true
	}
	assert.True(t, fields["fecha_devolucion"])
	assert.True(t, fields["total"])
	assert.True(t, fields["abono"])
	assert.True(t, fields["fecha_creacion"])

	in = rentalForm(p.ID, "Ana", "Centro", "4521234567")
	in.Total = nil
	_, err = f.engine.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ProductoInexistente_PoliticaPermisiva(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, transaction.Config{AllowMissingProduct: true}, nil)

	got, err := f.engine.Create(ctx, rentalForm(404, "Ana", "Centro", "4521234567"))
	require.NoError(t, err)
	assert.Equal(t, int64(404), got.ProductID)
	assert.Equal(t, 1, f.rec.skipped)

	detail, err := f.engine.Get(ctx, got.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Product)
	assert.NotNil(t, detail.Customer)
}

func TestCreate_ProductoInexistente_PoliticaEstricta(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, transaction.Config{AllowMissingProduct: false}, nil)

	_, err := f.engine.Create(ctx, rentalForm(404, "Ana", "Centro", "4521234567"))
	require.Error(t, err)
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "producto", nf.Resource)

	customers, _ := f.store.Repos().Customers.List(ctx)
	assert.Empty(t, customers, "no debe quedar un cliente huérfano")
	assert.Empty(t, f.rec.created)
}

func TestCreate_ReintentaFolioDuplicado(t *testing.T) {
	ctx := context.Background()
	gen := &seqFolios{codes: []string{"VIO-00000001", "VIO-00000001", "VIO-0000000A"}}
	f := newFixture(t, transaction.Config{AllowMissingProduct: true}, gen)
	p := f.product(t, "VD-1", 5)

	first, err := f.engine.Create(ctx, rentalForm(p.ID, "Ana", "Centro", "4521234567"))
	require.NoError(t, err)
	assert.Equal(t, "VIO-00000001", first.Folio)

	second, err := f.engine.Create(ctx, rentalForm(p.ID, "Ana", "Centro", "4521234567"))
	require.NoError(t, err)
	assert.Equal(t, "VIO-0000000A", second.Folio)
}

func TestCreate_FolioAgotadoDevuelveConflicto(t *testing.T) {
	ctx := context.Background()
	gen := &seqFolios{codes: []string{"VIO-00000001"}}
	f := newFixture(t, transaction.Config{AllowMissingProduct: true}, gen)
	p := f.product(t, "VD-1", 5)

	_, err := f.engine.Create(ctx, rentalForm(p.ID, "Ana", "Centro", "4521234567"))
	require.NoError(t, err)
	_, err = f.engine.Create(ctx, rentalForm(p.ID, "Ana", "Centro", "4521234567"))
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	stored, _ := f.store.Repos().Products.GetByID(ctx, p.ID)
	assert.Equal(t, 4, stored.Stock, "el intento fallido no descuenta stock")
}

func TestCreate_ConcurrenteSinPerderDescuentosNiDuplicarClientes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, transaction.Config{AllowMissingProduct: true}, nil)
	p := f.product(t, "VD-1", 20)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.Create(ctx, rentalForm(p.ID, "Ana", "Centro", "4521234567"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, _ := f.store.Repos().Products.GetByID(ctx, p.ID)
	assert.Equal(t, 0, stored.Stock)
	customers, _ := f.store.Repos().Customers.List(ctx)
	assert.Len(t, customers, 1)
}

func TestUpdateStatus_Idempotente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, transaction.Config{AllowMissingProduct: true}, nil)
	p := f.product(t, "VD-1", 3)
	created, err := f.engine.Create(ctx, rentalForm(p.ID, "Ana", "Centro", "4521234567"))
	require.NoError(t, err)

	first, err := f.engine.UpdateStatus(ctx, created.ID, entity.StatusDelivered)
	require.NoError(t, err)
	second, err := f.engine.UpdateStatus(ctx, created.ID, entity.StatusDelivered)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusDelivered, second.Status)
	assert.Equal(t, first, second)

	expected := *created
	expected.Status = entity.StatusDelivered
	assert.Equal(t, &expected, second, "sólo cambia el estado")

	stored, _ := f.store.Repos().Products.GetByID(ctx, p.ID)
	assert.Equal(t, 2, stored.Stock, "cambiar estado no toca el stock")
}

func TestUpdateStatus_PermisivoYErrores(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, transaction.Config{AllowMissingProduct: true}, nil)
	p := f.product(t, "VD-1", 3)
	in := rentalForm(p.ID, "Ana", "Centro", "4521234567")
	in.Type = entity.TypeSale
	in.ReturnDate = nil
	sale, err := f.engine.Create(ctx, in)
	require.NoError(t, err)

	// El motor no restringe: una venta puede pasar a devuelto y volver a pendiente.
	_, err = f.engine.UpdateStatus(ctx, sale.ID, entity.StatusReturned)
	require.NoError(t, err)
	got, err := f.engine.UpdateStatus(ctx, sale.ID, entity.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, got.Status)

	_, err = f.engine.UpdateStatus(ctx, sale.ID, "perdido")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.engine.UpdateStatus(ctx, 999, entity.StatusDelivered)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStrictStatusUpdater(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, transaction.Config{AllowMissingProduct: true}, nil)
	p := f.product(t, "VD-1", 3)
	strict := transaction.NewStrictStatusUpdater(f.engine, f.store.Repos().Transactions)

	in := rentalForm(p.ID, "Ana", "Centro", "4521234567")
	in.Type = entity.TypeSale
	sale, err := f.engine.Create(ctx, in)
	require.NoError(t, err)
	rental, err := f.engine.Create(ctx, rentalForm(p.ID, "Ana", "Centro", "4521234567"))
	require.NoError(t, err)

	_, err = strict.UpdateStatus(ctx, sale.ID, entity.StatusReturned)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = strict.UpdateStatus(ctx, rental.ID, entity.StatusReturned)
	require.NoError(t, err)
	_, err = strict.UpdateStatus(ctx, rental.ID, entity.StatusReturned)
	assert.NoError(t, err, "repetir el mismo estado siempre se permite")
	_, err = strict.UpdateStatus(ctx, rental.ID, entity.StatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = strict.UpdateStatus(ctx, 999, entity.StatusPending)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpcomingReturns(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, transaction.Config{AllowMissingProduct: true}, nil)
	p := f.product(t, "VD-1", 10)

	create := func(returnOffset int, tipo string) *dto.TransactionResponse {
		in := rentalForm(p.ID, "Ana", "Centro", "4521234567")
		in.Type = tipo
		in.DeliveryDate = "2026-10-01"
		in.ReturnDate = str(now.AddDate(0, 0, returnOffset).Format(entity.DateLayout))
		got, err := f.engine.Create(ctx, in)
		require.NoError(t, err)
		return got
	}
	plus10 := create(10, entity.TypeRental)
	plus1 := create(1, entity.TypeRental)
	today := create(0, entity.TypeRental)
	plus7 := create(7, entity.TypeRental)
	past := create(-1, entity.TypeRental)
	returned := create(2, entity.TypeRental)
	sale := create(3, entity.TypeSale)
	_, err := f.engine.UpdateStatus(ctx, returned.ID, entity.StatusReturned)
	require.NoError(t, err)

	got, err := f.engine.UpcomingReturns(ctx, 7)
	require.NoError(t, err)
	ids := make([]int64, 0, len(got))
	for _, d := range got {
		ids = append(ids, d.ID)
		require.NotNil(t, d.Product)
		require.NotNil(t, d.Customer)
	}
	assert.Equal(t, []int64{today.ID, plus1.ID, plus7.ID}, ids)
	assert.NotContains(t, ids, plus10.ID)
	assert.NotContains(t, ids, past.ID)
	assert.NotContains(t, ids, sale.ID)

	_, err = f.engine.UpcomingReturns(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecentSales_OrdenYJoinsNulos(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, transaction.Config{AllowMissingProduct: true}, nil)
	p := f.product(t, "VD-1", 10)

	var ids []int64
	for i := 1; i <= 7; i++ {
		in := rentalForm(p.ID, "Ana", "Centro", "4521234567")
		in.CreatedOn = fmt.Sprintf("2026-10-%02d", i)
		got, err := f.engine.Create(ctx, in)
		require.NoError(t, err)
		ids = append(ids, got.ID)
	}
	_, err := f.store.Repos().Products.Delete(ctx, p.ID)
	require.NoError(t, err)

	got, err := f.engine.RecentSales(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, transaction.DefaultRecentLimit)
	assert.Equal(t, ids[6], got[0].ID)
	assert.Equal(t, ids[2], got[4].ID)
	assert.Nil(t, got[0].Product, "producto borrado produce join nulo")
	assert.NotNil(t, got[0].Customer)

	got, err = f.engine.RecentSales(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestList_FiltrosYBusqueda(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, transaction.Config{AllowMissingProduct: true}, nil)
	p := f.product(t, "VD-1", 10)

	a, err := f.engine.Create(ctx, rentalForm(p.ID, "María Fernanda", "Centro", "4521234567"))
	require.NoError(t, err)
	in := rentalForm(p.ID, "Laura", "Norte", "4529876543")
	in.Type = entity.TypeSale
	in.CreatedOn = "2026-10-20"
	b, err := f.engine.Create(ctx, in)
	require.NoError(t, err)

	all, err := f.engine.List(ctx, dto.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, b.ID, all[0].ID, "más recientes primero")

	byType, _ := f.engine.List(ctx, dto.TransactionFilter{Type: entity.TypeRental})
	require.Len(t, byType, 1)
	assert.Equal(t, a.ID, byType[0].ID)

	byName, _ := f.engine.List(ctx, dto.TransactionFilter{Query: "maría"})
	require.Len(t, byName, 1)
	assert.Equal(t, a.ID, byName[0].ID)

	byProduct, _ := f.engine.List(ctx, dto.TransactionFilter{Query: "vestido vd-1"})
	assert.Len(t, byProduct, 2)

	byFolio, _ := f.engine.List(ctx, dto.TransactionFilter{Query: b.Folio[4:]})
	require.Len(t, byFolio, 1)
	assert.Equal(t, b.ID, byFolio[0].ID)

	byStatus, _ := f.engine.List(ctx, dto.TransactionFilter{Status: entity.StatusDelivered})
	assert.Empty(t, byStatus)
}

func TestGetByFolio(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, transaction.Config{AllowMissingProduct: true}, nil)
	p := f.product(t, "VD-1", 1)
	created, err := f.engine.Create(ctx, rentalForm(p.ID, "Ana", "Centro", "4521234567"))
	require.NoError(t, err)

	got, err := f.engine.GetByFolio(ctx, created.Folio)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "VD-1", got.Product.Code)

	_, err = f.engine.GetByFolio(ctx, "VIO-FFFFFFFF")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.engine.Get(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
