package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// StockTransactionRepository define el puerto de persistencia para los
// movimientos de inventario (solo inserción y consulta; son inmutables).
type StockTransactionRepository interface {
	Create(tx *entity.StockTransaction) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockTransaction, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockTransaction, error)
}
