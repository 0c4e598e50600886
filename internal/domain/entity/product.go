package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (multi-bodega).
// Cost es promedio ponderado calculado desde transacciones; el stock se maneja por bodega en Stock.
// MinStock es el umbral que dispara el evento STOCK_LOW en el motor de notificaciones.
type Product struct {
	ID             string
	CompanyID      string
	SKU            string // código único por empresa
	Name           string
	Description    string
	CategoryID     string // vacío si no está categorizado
	ManufacturerID string // vacío si no tiene fabricante asociado
	Price          decimal.Decimal // precio de venta
	Cost           decimal.Decimal // costo promedio ponderado (inicia en 0)
	MinStock       decimal.Decimal // stock mínimo antes de alertar
	UnitMeasure    string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
