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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, company_id, name, address, created_at, updated_at`

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := row.Scan(&w.ID, &w.CompanyID, &w.Name, &w.Address, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (` + warehouseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		warehouse.ID, warehouse.CompanyID, warehouse.Name, warehouse.Address,
		warehouse.CreatedAt, warehouse.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = $1`
	w, err := scanWarehouse(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return w, nil
}

// Update actualiza una bodega.
func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	query := `UPDATE warehouses SET name = $2, address = $3, updated_at = $4 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		warehouse.ID, warehouse.Name, warehouse.Address, warehouse.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista bodegas de una empresa con paginación.
func (r *WarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	query := `
		SELECT ` + warehouseColumns + ` FROM warehouses
		WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var list []*entity.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// Delete elimina una bodega.
func (r *WarehouseRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AssignUser asigna un usuario a la bodega (idempotente por PK compuesta).
func (r *WarehouseRepo) AssignUser(assignment *entity.UserWarehouse) error {
	query := `
		INSERT INTO user_warehouses (user_id, warehouse_id, assigned_at, assigned_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, warehouse_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query,
		assignment.UserID, assignment.WarehouseID, assignment.AssignedAt, assignment.AssignedBy,
	)
	if err != nil {
		return fmt.Errorf("assign user to warehouse: %w", err)
	}
	return nil
}

// UnassignUser quita la asignación usuario-bodega.
func (r *WarehouseRepo) UnassignUser(userID, warehouseID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM user_warehouses WHERE user_id = $1 AND warehouse_id = $2`,
		userID, warehouseID,
	)
	if err != nil {
		return fmt.Errorf("unassign user from warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser lista las bodegas asignadas a un usuario.
func (r *WarehouseRepo) ListByUser(userID string) ([]*entity.Warehouse, error) {
	query := `
		SELECT w.id, w.company_id, w.name, w.address, w.created_at, w.updated_at
		FROM warehouses w
		JOIN user_warehouses uw ON uw.warehouse_id = w.id
		WHERE uw.user_id = $1
		ORDER BY w.name`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list warehouses by user: %w", err)
	}
	defer rows.Close()

	var list []*entity.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// ListAssignedUsers lista las asignaciones de usuarios de una bodega.
func (r *WarehouseRepo) ListAssignedUsers(warehouseID string) ([]*entity.UserWarehouse, error) {
	query := `
		SELECT user_id, warehouse_id, assigned_at, assigned_by
		FROM user_warehouses WHERE warehouse_id = $1`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list assigned users: %w", err)
	}
	defer rows.Close()

	var list []*entity.UserWarehouse
	for rows.Next() {
		var uw entity.UserWarehouse
		if err := rows.Scan(&uw.UserID, &uw.WarehouseID, &uw.AssignedAt, &uw.AssignedBy); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, &uw)
	}
	return list, rows.Err()
}
