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

var _ repository.ManufacturerRepository = (*ManufacturerRepo)(nil)

// ManufacturerRepo implementación del puerto ManufacturerRepository sobre PostgreSQL.
type ManufacturerRepo struct {
	q Querier
}

// NewManufacturerRepository construye el adaptador de persistencia para fabricantes.
func NewManufacturerRepository(q Querier) *ManufacturerRepo {
	return &ManufacturerRepo{q: q}
}

const manufacturerColumns = `id, company_id, name, code, contact, email, phone, status, created_at, updated_at`

func scanManufacturer(row pgx.Row) (*entity.Manufacturer, error) {
	var m entity.Manufacturer
	err := row.Scan(&m.ID, &m.CompanyID, &m.Name, &m.Code, &m.Contact, &m.Email, &m.Phone, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un nuevo fabricante.
func (r *ManufacturerRepo) Create(manufacturer *entity.Manufacturer) error {
	query := `
		INSERT INTO manufacturers (` + manufacturerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		manufacturer.ID, manufacturer.CompanyID, manufacturer.Name, manufacturer.Code,
		manufacturer.Contact, manufacturer.Email, manufacturer.Phone, manufacturer.Status,
		manufacturer.CreatedAt, manufacturer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert manufacturer: %w", err)
	}
	return nil
}

// GetByID obtiene un fabricante por ID.
func (r *ManufacturerRepo) GetByID(id string) (*entity.Manufacturer, error) {
	query := `SELECT ` + manufacturerColumns + ` FROM manufacturers WHERE id = $1`
	m, err := scanManufacturer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get manufacturer: %w", err)
	}
	return m, nil
}

// GetByCompanyAndCode obtiene un fabricante por empresa y código.
func (r *ManufacturerRepo) GetByCompanyAndCode(companyID, code string) (*entity.Manufacturer, error) {
	query := `SELECT ` + manufacturerColumns + ` FROM manufacturers WHERE company_id = $1 AND code = $2`
	m, err := scanManufacturer(r.q.QueryRow(context.Background(), query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get manufacturer by code: %w", err)
	}
	return m, nil
}

// Update actualiza un fabricante.
func (r *ManufacturerRepo) Update(manufacturer *entity.Manufacturer) error {
	query := `
		UPDATE manufacturers
		SET name = $2, contact = $3, email = $4, phone = $5, status = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		manufacturer.ID, manufacturer.Name, manufacturer.Contact, manufacturer.Email,
		manufacturer.Phone, manufacturer.Status, manufacturer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update manufacturer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista fabricantes de una empresa con paginación.
func (r *ManufacturerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Manufacturer, error) {
	query := `
		SELECT ` + manufacturerColumns + ` FROM manufacturers
		WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list manufacturers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Manufacturer
	for rows.Next() {
		m, err := scanManufacturer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan manufacturer: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Delete elimina un fabricante.
func (r *ManufacturerRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM manufacturers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete manufacturer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
