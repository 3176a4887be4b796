// Package seed carga el catálogo, los clientes y las transacciones de desarrollo.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/violett-api/internal/clock"
	"github.com/jhoicas/violett-api/internal/domain/entity"
	"github.com/jhoicas/violett-api/internal/domain/repository"
)

// Result resume lo insertado. Skipped indica que el store ya tenía productos.
type Result struct {
	Products     int
	Customers    int
	Transactions int
	Skipped      bool
}

var products = []entity.Product{
	{Code: "VD-101", Name: "Vestido Noche Elegante", Description: "Vestido largo de noche con detalles en pedrería", Type: entity.TypeRental, Price: decimal.NewFromInt(1200), Stock: 2},
	{Code: "VD-245", Name: "Vestido Cocktail Rosa", Description: "Vestido corto para cocktail color rosa pastel", Type: entity.TypeSale, Price: decimal.NewFromInt(3500), Stock: 3},
	{Code: "VD-189", Name: "Vestido Largo Sirena", Description: "Vestido estilo sirena en color azul marino", Type: entity.TypeRental, Price: decimal.NewFromInt(950), Stock: 4},
	{Code: "VD-322", Name: "Vestido Fiesta Brillante", Description: "Vestido con lentejuelas para fiestas especiales", Type: entity.TypeRental, Price: decimal.NewFromInt(1500), Stock: 4},
	{Code: "VD-456", Name: "Vestido Gala Dorado", Description: "Vestido largo de gala con detalles dorados", Type: entity.TypeRental, Price: decimal.NewFromInt(2000), Stock: 6},
}

var customers = []entity.Customer{
	{Name: "María González", Address: "Calle Pinos 123, Col. Bellavista, Uruapan", Phone: "4521234567"},
	{Name: "Laura Pérez", Address: "Av. Juárez 456, Col. Centro, Uruapan", Phone: "4529876543"},
	{Name: "Claudia Hernández", Address: "Callejón de las Flores 78, Col. Jardines, Uruapan", Phone: "4523456789"},
}

// seedTx referencia producto y cliente por posición en las listas de arriba;
// los días son relativos a hoy.
type seedTx struct {
	folio            string
	product          int
	customer         int
	tipo             string
	created, deliver int
	returnIn         *int
	deposit          *int64
	total            int64
	status           string
}

func days(n int) *int       { return &n }
func amount(n int64) *int64 { return &n }

var transactions = []seedTx{
	{folio: "VIO-63F4AB12", product: 1, customer: 0, tipo: entity.TypeSale, created: -2, deliver: -1, total: 3500, status: entity.StatusCompleted},
	{folio: "VIO-63F4CD34", product: 0, customer: 1, tipo: entity.TypeRental, created: -1, deliver: 0, returnIn: days(1), deposit: amount(400), total: 1200, status: entity.StatusDelivered},
	{folio: "VIO-63F4EF56", product: 2, customer: 2, tipo: entity.TypeRental, created: -2, deliver: -1, returnIn: days(2), deposit: amount(300), total: 950, status: entity.StatusDelivered},
	{folio: "VIO-63F4A078", product: 4, customer: 0, tipo: entity.TypeRental, created: -3, deliver: -2, returnIn: days(7), deposit: amount(600), total: 2000, status: entity.StatusDelivered},
}

// Run inserta los datos de desarrollo en una sola transacción. No hace nada si ya
// hay productos. Cada transacción sembrada descuenta 1 al stock de su producto.
func Run(ctx context.Context, store repository.Store, clk clock.Clock) (Result, error) {
	existing, err := store.Repos().Products.List(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(existing) > 0 {
		return Result{Skipped: true}, nil
	}

	today := clock.Today(clk)
	on := func(offset int) time.Time { return today.AddDate(0, 0, offset) }

	var res Result
	err = store.RunInTx(ctx, func(r repository.Repos) error {
		productIDs := make([]int64, len(products))
		for i := range products {
			p := products[i]
			if err := r.Products.Create(ctx, &p); err != nil {
				return fmt.Errorf("seed producto %s: %w", p.Code, err)
			}
			productIDs[i] = p.ID
		}
		customerIDs := make([]int64, len(customers))
		for i := range customers {
			c := customers[i]
			if err := r.Customers.Create(ctx, &c); err != nil {
				return fmt.Errorf("seed cliente %s: %w", c.Name, err)
			}
			customerIDs[i] = c.ID
		}
		for _, s := range transactions {
			t := &entity.Transaction{
				Folio:        s.folio,
				ProductID:    productIDs[s.product],
				CustomerID:   customerIDs[s.customer],
				Type:         s.tipo,
				CreatedOn:    on(s.created),
				DeliveryDate: on(s.deliver),
				Total:        decimal.NewFromInt(s.total),
				Status:       s.status,
			}
			if s.returnIn != nil {
				d := on(*s.returnIn)
				t.ReturnDate = &d
			}
			if s.deposit != nil {
				d := decimal.NewFromInt(*s.deposit)
				t.Deposit = &d
			}
			if err := r.Transactions.Create(ctx, t); err != nil {
				return fmt.Errorf("seed transacción %s: %w", s.folio, err)
			}
			if err := r.Products.AdjustStock(ctx, t.ProductID, -1); err != nil {
				return fmt.Errorf("seed stock %s: %w", s.folio, err)
			}
		}
		res = Result{Products: len(productIDs), Customers: len(customerIDs), Transactions: len(transactions)}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
