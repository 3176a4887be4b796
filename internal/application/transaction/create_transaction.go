package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/violett-api/internal/application/dto"
	"github.com/jhoicas/violett-api/internal/clock"
	"github.com/jhoicas/violett-api/internal/domain"
	"github.com/jhoicas/violett-api/internal/domain/entity"
	"github.com/jhoicas/violett-api/internal/domain/folio"
	"github.com/jhoicas/violett-api/internal/domain/repository"
)

// MaxFolioAttempts intentos de generar un folio libre antes de rendirse.
const MaxFolioAttempts = 5

// Engine motor de transacciones. Todas las escrituras pasan por Store.RunInTx.
type Engine struct {
	store   repository.Store
	clock   clock.Clock
	folios  folio.Generator
	metrics Recorder
	cfg     Config
}

// NewEngine construye el motor. metrics puede ser nil.
func NewEngine(store repository.Store, clk clock.Clock, folios folio.Generator, cfg Config, metrics Recorder) *Engine {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Engine{store: store, clock: clk, folios: folios, metrics: metrics, cfg: cfg}
}

// form formulario ya validado y con fechas interpretadas.
type form struct {
	customer     entity.Customer
	productID    int64
	tipo         string
	createdOn    time.Time
	deliveryDate time.Time
	returnDate   *time.Time
	deposit      *decimal.Decimal
	total        decimal.Decimal
}

// Create registra una transacción de forma atómica:
//  1. valida el formulario (todas las violaciones a la vez)
//  2. bloquea el producto (SELECT FOR UPDATE)
//  3. resuelve o crea el cliente por (nombre, teléfono)
//  4. genera un folio libre y persiste la transacción en estado pendiente
//  5. descuenta exactamente 1 al stock del producto
func (e *Engine) Create(ctx context.Context, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	f, err := e.validate(in)
	if err != nil {
		return nil, err
	}

	var (
		created        *entity.Transaction
		customerReused bool
		stockApplied   bool
	)
	err = e.store.RunInTx(ctx, func(r repository.Repos) error {
		product, err := r.Products.GetForUpdate(ctx, f.productID)
		if err != nil {
			return fmt.Errorf("transacción: bloquear producto: %w", err)
		}
		if product == nil && !e.cfg.AllowMissingProduct {
			return domain.NewNotFound("producto", f.productID)
		}

		customerID, reused, err := ResolveCustomer(ctx, r.Customers, f.customer)
		if err != nil {
			return err
		}
		customerReused = reused

		created, err = e.insert(ctx, r.Transactions, f, customerID)
		if err != nil {
			return err
		}

		if product != nil {
			if err := r.Products.AdjustStock(ctx, product.ID, -1); err != nil {
				return fmt.Errorf("transacción: descontar stock: %w", err)
			}
			stockApplied = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.metrics.CustomerResolved(customerReused)
	e.metrics.StockDecrement(stockApplied)
	e.metrics.TransactionCreated(created.Type)
	return dto.NewTransactionResponse(created), nil
}

// ResolveCustomer reutiliza el primer cliente con el mismo (nombre, teléfono) o crea uno nuevo
// con los datos del formulario. El domicilio de un cliente existente no se modifica.
// Debe llamarse dentro de RunInTx para que LockIdentity serialice altas concurrentes.
func ResolveCustomer(ctx context.Context, repo repository.CustomerRepository, c entity.Customer) (id int64, reused bool, err error) {
	if err := repo.LockIdentity(ctx, c.Name, c.Phone); err != nil {
		return 0, false, fmt.Errorf("transacción: bloquear cliente: %w", err)
	}
	existing, err := repo.FindByNameAndPhone(ctx, c.Name, c.Phone)
	if err != nil {
		return 0, false, err
	}
	if existing != nil {
		return existing.ID, true, nil
	}
	c.ID = 0
	if err := repo.Create(ctx, &c); err != nil {
		return 0, false, fmt.Errorf("transacción: crear cliente: %w", err)
	}
	return c.ID, false, nil
}

// insert genera folio (verificando que no exista) y persiste la transacción.
func (e *Engine) insert(ctx context.Context, repo repository.TransactionRepository, f *form, customerID int64) (*entity.Transaction, error) {
	for attempt := 0; attempt < MaxFolioAttempts; attempt++ {
		code, err := e.folios.Next()
		if err != nil {
			return nil, err
		}
		taken, err := repo.GetByFolio(ctx, code)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			continue
		}
		t := &entity.Transaction{
			Folio:        code,
			ProductID:    f.productID,
			CustomerID:   customerID,
			Type:         f.tipo,
			CreatedOn:    f.createdOn,
			DeliveryDate: f.deliveryDate,
			ReturnDate:   f.returnDate,
			Deposit:      f.deposit,
			Total:        f.total,
			Status:       entity.StatusPending,
		}
		err = repo.Create(ctx, t)
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, domain.NewConflict(fmt.Sprintf("no se pudo generar un folio único tras %d intentos", MaxFolioAttempts))
}

func (e *Engine) validate(in dto.CreateTransactionRequest) (*form, error) {
	var v domain.Validator
	f := &form{
		customer: entity.Customer{
			Name:    strings.TrimSpace(in.CustomerName),
			Address: strings.TrimSpace(in.CustomerAddress),
			Phone:   strings.TrimSpace(in.CustomerPhone),
		},
		productID: in.ProductID,
		tipo:      in.Type,
	}

	v.Check(f.customer.Name != "", "cliente_nombre", "es requerido")
	v.Check(f.customer.Address != "", "cliente_domicilio", "es requerido")
	v.Check(entity.ValidPhone(f.customer.Phone), "cliente_telefono", "debe tener entre 8 y 15 dígitos")
	v.Check(f.productID > 0, "id_producto", "es requerido")
	v.Check(entity.ValidType(f.tipo), "tipo", "debe ser renta o venta")

	if s := strings.TrimSpace(in.CreatedOn); s == "" {
		f.createdOn = clock.Today(e.clock)
	} else if d, err := entity.ParseDate(s); err != nil {
		v.Add("fecha_creacion", "formato inválido, use AAAA-MM-DD")
	} else {
		f.createdOn = d
	}

	deliveryOK := false
	if s := strings.TrimSpace(in.DeliveryDate); s == "" {
		v.Add("fecha_entrega", "es requerida")
	} else if d, err := entity.ParseDate(s); err != nil {
		v.Add("fecha_entrega", "formato inválido, use AAAA-MM-DD")
	} else {
		f.deliveryDate = d
		deliveryOK = true
	}

	if in.ReturnDate != nil && strings.TrimSpace(*in.ReturnDate) != "" {
		d, err := entity.ParseDate(strings.TrimSpace(*in.ReturnDate))
		if err != nil {
			v.Add("fecha_devolucion", "formato inválido, use AAAA-MM-DD")
		} else {
			f.returnDate = &d
			if f.tipo == entity.TypeRental && deliveryOK && d.Before(f.deliveryDate) {
				v.Add("fecha_devolucion", "no puede ser anterior a la fecha de entrega")
			}
		}
	}

	if in.Total == nil {
		v.Add("total", "es requerido")
	} else {
		f.total = *in.Total
		v.Check(!f.total.IsNegative(), "total", "no puede ser negativo")
	}
	if in.Deposit != nil {
		dep := *in.Deposit
		f.deposit = &dep
		v.Check(!dep.IsNegative(), "abono", "no puede ser negativo")
		if in.Total != nil && dep.GreaterThan(f.total) {
			v.Add("abono", "no puede ser mayor que el total")
		}
	}

	if err := v.Err("datos de transacción inválidos"); err != nil {
		return nil, err
	}
	return f, nil
}
