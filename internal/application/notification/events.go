package notification

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	notifdomain "github.com/jhoicas/almacen-api/internal/domain/notification"
)

// Constructores de los árboles de datos de evento que consumen las reglas.
// Los nombres de campo son contrato de las expresiones de condición y de las
// plantillas (Product.Quantity, Transaction.Type, ...): no renombrar sin
// migrar las reglas persistidas.

func productSnapshot(p *entity.Product, quantity decimal.Decimal) map[string]any {
	return map[string]any{
		"ID":       p.ID,
		"SKU":      p.SKU,
		"Name":     p.Name,
		"Quantity": quantity,
		"MinStock": p.MinStock,
		"Price":    p.Price,
		"Cost":     p.Cost,
		"IsActive": p.IsActive,
	}
}

func warehouseSnapshot(w *entity.Warehouse) map[string]any {
	return map[string]any{
		"ID":   w.ID,
		"Name": w.Name,
	}
}

// StockEvent arma el evento para STOCK_LOW / STOCK_OUT: el producto con su
// cantidad resultante y la bodega afectada.
func StockEvent(p *entity.Product, w *entity.Warehouse, quantity decimal.Decimal) notifdomain.Value {
	return notifdomain.FromAny(map[string]any{
		"Product":   productSnapshot(p, quantity),
		"Warehouse": warehouseSnapshot(w),
	})
}

// TransactionEvent arma el evento TRANSACTION_CREATED: la transacción
// registrada más los snapshots de producto y bodega.
func TransactionEvent(tx *entity.StockTransaction, p *entity.Product, w *entity.Warehouse, newQuantity decimal.Decimal) notifdomain.Value {
	return notifdomain.FromAny(map[string]any{
		"Transaction": map[string]any{
			"ID":        tx.ID,
			"GroupID":   tx.GroupID,
			"Type":      tx.Type,
			"Quantity":  tx.Quantity,
			"UnitCost":  tx.UnitCost,
			"TotalCost": tx.TotalCost,
			"Date":      tx.Date,
			"CreatedBy": tx.CreatedBy,
		},
		"Product":   productSnapshot(p, newQuantity),
		"Warehouse": warehouseSnapshot(w),
	})
}
