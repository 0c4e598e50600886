package dto

import "time"

// ── Categorías ────────────────────────────────────────────────────────────────

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Code     string `json:"code" validate:"required,min=1,max=50"`
	ParentID string `json:"parent_id"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
type UpdateCategoryRequest struct {
	Name     *string `json:"name"`
	ParentID *string `json:"parent_id"`
	Status   *string `json:"status"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ── Bodegas ───────────────────────────────────────────────────────────────────

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// AssignWarehouseRequest asigna un usuario a una bodega.
type AssignWarehouseRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// WarehouseAssignmentResponse salida de una asignación usuario-bodega.
type WarehouseAssignmentResponse struct {
	UserID      string    `json:"user_id"`
	WarehouseID string    `json:"warehouse_id"`
	AssignedAt  time.Time `json:"assigned_at"`
	AssignedBy  string    `json:"assigned_by,omitempty"`
}

// ── Fabricantes ───────────────────────────────────────────────────────────────

// CreateManufacturerRequest entrada para crear un fabricante.
type CreateManufacturerRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Code    string `json:"code" validate:"required,min=1,max=50"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// UpdateManufacturerRequest entrada para actualizar un fabricante.
type UpdateManufacturerRequest struct {
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Status  *string `json:"status"`
}

// ManufacturerResponse salida de un fabricante.
type ManufacturerResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ManufacturerListResponse lista paginada de fabricantes.
type ManufacturerListResponse struct {
	Items []ManufacturerResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// ── Empresas ──────────────────────────────────────────────────────────────────

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
