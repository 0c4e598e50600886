package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// LowStockReportGenerator genera el PDF del reporte de stock bajo.
type LowStockReportGenerator interface {
	Generate(company *entity.Company, rows []*repository.LowStockRow) ([]byte, error)
}

// ReportHandler reportes de inventario.
type ReportHandler struct {
	companies repository.CompanyRepository
	stock     repository.StockRepository
	pdf       LowStockReportGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(companies repository.CompanyRepository, stock repository.StockRepository, pdf LowStockReportGenerator) *ReportHandler {
	return &ReportHandler{companies: companies, stock: stock, pdf: pdf}
}

// LowStockPDF godoc
// @Summary      Reporte PDF de stock bajo
// @Description  Productos activos cuyo stock está en o bajo su mínimo, por bodega.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStockPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	company, err := h.companies.GetByID(companyID)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.stock.ListLowStock(companyID)
	if err != nil {
		return respondError(c, err)
	}
	pdfBytes, err := h.pdf.Generate(company, rows)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock-bajo.pdf"`)
	return c.Send(pdfBytes)
}

// LowStockJSON devuelve las filas del reporte en JSON (para el dashboard).
func (h *ReportHandler) LowStockJSON(c *fiber.Ctx) error {
	rows, err := h.stock.ListLowStock(GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	if rows == nil {
		rows = []*repository.LowStockRow{}
	}
	return c.JSON(rows)
}
