// Package analytics contiene el agregador del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/violett-api/internal/application/dto"
	"github.com/jhoicas/violett-api/internal/application/usecase"
	"github.com/jhoicas/violett-api/internal/clock"
	"github.com/jhoicas/violett-api/internal/domain/entity"
	"github.com/jhoicas/violett-api/internal/domain/repository"
)

// LowStockThreshold umbral del contador de bajo stock del dashboard (sin tope).
const LowStockThreshold = 5

// DashboardUseCase calcula las estadísticas del dashboard con recorridos completos
// de productos y transacciones en cada llamada (sin caché).
type DashboardUseCase struct {
	products     repository.ProductRepository
	transactions repository.TransactionRepository
	clock        clock.Clock
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(products repository.ProductRepository, transactions repository.TransactionRepository, clk clock.Clock) *DashboardUseCase {
	return &DashboardUseCase{products: products, transactions: transactions, clock: clk}
}

// GetStats construye el DashboardStatsDTO.
//
// Dos lecturas en paralelo:
//  1. productos      → totalProductos, cantidadBajoStock
//  2. transacciones  → ventasMes, rentasActivas
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	monthStart := MonthStart(clock.Today(uc.clock))

	// ── Goroutines para paralelizar los dos recorridos ────────────────────────
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type transactionsResult struct {
		list []*entity.Transaction
		err  error
	}
	productsCh := make(chan productsResult, 1)
	txCh := make(chan transactionsResult, 1)

	go func() {
		list, err := uc.products.List(ctx)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.transactions.List(ctx)
		txCh <- transactionsResult{list, err}
	}()

	products := <-productsCh
	txs := <-txCh
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if txs.err != nil {
		return nil, fmt.Errorf("dashboard: transacciones: %w", txs.err)
	}

	// ── Agregados ─────────────────────────────────────────────────────────────
	sales := decimal.Zero
	active := 0
	for _, t := range txs.list {
		if !t.CreatedOn.Before(monthStart) {
			sales = sales.Add(t.Total)
		}
		if t.IsActiveRental() {
			active++
		}
	}

	return &dto.DashboardStatsDTO{
		TotalProducts: len(products.list),
		MonthlySales:  sales,
		ActiveRentals: active,
		LowStockCount: len(usecase.FilterLowStock(products.list, LowStockThreshold, 0)),
	}, nil
}

// MonthStart primer día del mes de la fecha civil d.
func MonthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
