package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// LowStockRow es una fila del reporte de stock bajo (producto a/bajo su mínimo).
type LowStockRow struct {
	ProductID     string
	SKU           string
	Name          string
	WarehouseName string
	Quantity      decimal.Decimal
	MinStock      decimal.Decimal
}

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	// ListLowStock devuelve los productos cuyo stock está en o bajo su MinStock.
	ListLowStock(companyID string) ([]*LowStockRow, error)
}
