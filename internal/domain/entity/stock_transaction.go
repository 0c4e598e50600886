package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de stock.
const (
	TransactionTypeIN         = "IN"
	TransactionTypeOUT        = "OUT"
	TransactionTypeADJUSTMENT = "ADJUSTMENT"
	TransactionTypeTRANSFER   = "TRANSFER"
)

// StockTransaction representa un movimiento de inventario registrado.
// Quantity es negativa en salidas; TRANSFER genera dos registros (origen y destino)
// con el mismo GroupID.
type StockTransaction struct {
	ID          string
	GroupID     string // agrupa los registros de una misma operación
	ProductID   string
	WarehouseID string
	Type        string // IN, OUT, ADJUSTMENT, TRANSFER
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal
	Note        string
	Date        time.Time
	CreatedAt   time.Time
	CreatedBy   string // ID del usuario que registró
}
