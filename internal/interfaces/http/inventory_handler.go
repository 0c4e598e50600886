package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// InventoryHandler maneja el registro y consulta de movimientos de stock.
type InventoryHandler struct {
	register *inventory.RegisterTransactionUseCase
	txs      repository.StockTransactionRepository
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(register *inventory.RegisterTransactionUseCase, txs repository.StockTransactionRepository) *InventoryHandler {
	return &InventoryHandler{register: register, txs: txs}
}

// RegisterTransaction godoc
// @Summary      Registrar movimiento de inventario
// @Description  IN (entrada con costo), OUT (salida), ADJUSTMENT (ajuste con delta firmado) o TRANSFER (entre bodegas).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterTransactionRequest  true  "Datos del movimiento"
// @Success      201   {array}   dto.StockTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [post]
func (h *InventoryHandler) RegisterTransaction(c *fiber.Ctx) error {
	var in dto.RegisterTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y type son requeridos"})
	}
	out, err := h.register.Execute(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByProduct lista los movimientos de un producto.
func (h *InventoryHandler) ListByProduct(c *fiber.Ctx) error {
	return h.listMovements(c, h.txs.ListByProduct)
}

// ListByWarehouse lista los movimientos de una bodega.
func (h *InventoryHandler) ListByWarehouse(c *fiber.Ctx) error {
	return h.listMovements(c, h.txs.ListByWarehouse)
}

func (h *InventoryHandler) listMovements(c *fiber.Ctx, query func(id string, limit, offset int) ([]*entity.StockTransaction, error)) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	list, err := query(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockTransactionResponse, 0, len(list))
	for _, tx := range list {
		items = append(items, dto.StockTransactionResponse{
			ID: tx.ID, GroupID: tx.GroupID, ProductID: tx.ProductID, WarehouseID: tx.WarehouseID,
			Type: tx.Type, Quantity: tx.Quantity, UnitCost: tx.UnitCost, TotalCost: tx.TotalCost,
			Note: tx.Note, Date: tx.Date, CreatedBy: tx.CreatedBy,
		})
	}
	return c.JSON(items)
}
