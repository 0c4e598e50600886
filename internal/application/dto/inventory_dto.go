package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterTransactionRequest entrada para registrar una transacción de stock.
// Para IN/OUT/ADJUSTMENT: product_id, warehouse_id, type, quantity (unit_cost obligatorio en IN).
// Para TRANSFER: product_id, from_warehouse_id, to_warehouse_id, type=TRANSFER, quantity.
type RegisterTransactionRequest struct {
	ProductID       string           `json:"product_id"`
	WarehouseID     string           `json:"warehouse_id"`
	FromWarehouseID string           `json:"from_warehouse_id"`
	ToWarehouseID   string           `json:"to_warehouse_id"`
	Type            string           `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT TRANSFER"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost"`
	Note            string           `json:"note"`
}

// StockTransactionResponse salida de una transacción registrada.
type StockTransactionResponse struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Note        string          `json:"note,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedBy   string          `json:"created_by"`
}
