package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL.
// GetForUpdate debe usarse dentro de una transacción (vía TxRunner).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de persistencia para stock.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock de un producto en una bodega.
func (r *StockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	return r.get(productID, warehouseID, false)
}

// GetForUpdate obtiene el stock bloqueando la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return r.get(productID, warehouseID, true)
}

func (r *StockRepo) get(productID, warehouseID string, forUpdate bool) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la fila de stock.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		stock.ProductID, stock.WarehouseID, stock.Quantity, stock.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListLowStock lista los productos cuyo stock está en o bajo su mínimo.
// Solo considera productos activos con mínimo configurado.
func (r *StockRepo) ListLowStock(companyID string) ([]*repository.LowStockRow, error) {
	query := `
		SELECT p.id, p.sku, p.name, w.name, s.quantity, p.min_stock
		FROM stock s
		JOIN products p ON p.id = s.product_id
		JOIN warehouses w ON w.id = s.warehouse_id
		WHERE p.company_id = $1
		  AND p.is_active
		  AND p.min_stock > 0
		  AND s.quantity <= p.min_stock
		ORDER BY p.name, w.name`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var list []*repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.Name, &row.WarehouseName, &row.Quantity, &row.MinStock); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
