// Package pdf genera el reporte de stock bajo en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  Fecha de generación                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Bodega | Stock | Mínimo            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: total de productos en alerta                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// LowStockReportGenerator genera el reporte de productos en o bajo su mínimo.
type LowStockReportGenerator struct{}

// NewLowStockReportGenerator construye el generador.
func NewLowStockReportGenerator() *LowStockReportGenerator { return &LowStockReportGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *LowStockReportGenerator) Generate(company *entity.Company, rows []*repository.LowStockRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Stock Bajo", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(tableDetailRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(rows)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: empresa (izq) y fecha de generación (der).
func headerRow(company *entity.Company) core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de stock bajo", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}
	headerRight := header
	headerRight.Align = align.Right
	return row.New(7).Add(
		col.New(2).Add(text.New("SKU", header)),
		col.New(4).Add(text.New("Producto", header)),
		col.New(3).Add(text.New("Bodega", header)),
		col.New(1).Add(text.New("Stock", headerRight)),
		col.New(2).Add(text.New("Mínimo", headerRight)),
	)
}

func tableDetailRow(r *repository.LowStockRow) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	right := cell
	right.Align = align.Right
	qty := right
	if r.Quantity.IsZero() {
		qty.Color = colorAlert
		qty.Style = fontstyle.Bold
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(r.SKU, cell)),
		col.New(4).Add(text.New(r.Name, cell)),
		col.New(3).Add(text.New(r.WarehouseName, cell)),
		col.New(1).Add(text.New(r.Quantity.String(), qty)),
		col.New(2).Add(text.New(r.MinStock.String(), right)),
	)
}

func footerRow(total int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("%d producto(s) en alerta de stock", total), props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		),
	)
}
