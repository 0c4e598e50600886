package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación del puerto StockTransactionRepository sobre PostgreSQL.
// Los movimientos son inmutables: solo INSERT y SELECT.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador de persistencia para movimientos.
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

const stockTransactionColumns = `id, group_id, product_id, warehouse_id, type, quantity, unit_cost, total_cost, note, date, created_at, created_by`

func scanStockTransaction(row pgx.Row) (*entity.StockTransaction, error) {
	var t entity.StockTransaction
	err := row.Scan(
		&t.ID, &t.GroupID, &t.ProductID, &t.WarehouseID, &t.Type, &t.Quantity,
		&t.UnitCost, &t.TotalCost, &t.Note, &t.Date, &t.CreatedAt, &t.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste un movimiento.
func (r *StockTransactionRepo) Create(tx *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (` + stockTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.GroupID, tx.ProductID, tx.WarehouseID, tx.Type, tx.Quantity,
		tx.UnitCost, tx.TotalCost, tx.Note, tx.Date, tx.CreatedAt, tx.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *StockTransactionRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT ` + stockTransactionColumns + ` FROM stock_transactions
		WHERE product_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	return r.list(query, productID, limit, offset)
}

// ListByWarehouse lista movimientos de una bodega, más recientes primero.
func (r *StockTransactionRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT ` + stockTransactionColumns + ` FROM stock_transactions
		WHERE warehouse_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	return r.list(query, warehouseID, limit, offset)
}

func (r *StockTransactionRepo) list(query, id string, limit, offset int) ([]*entity.StockTransaction, error) {
	rows, err := r.q.Query(context.Background(), query, id, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockTransaction
	for rows.Next() {
		t, err := scanStockTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
