package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalProducts int             `json:"totalProductos"`
	MonthlySales  decimal.Decimal `json:"ventasMes"`     // suma de total desde el día 1 del mes
	ActiveRentals int             `json:"rentasActivas"` // rentas no devueltas ni completadas
	LowStockCount int             `json:"cantidadBajoStock"`
}
