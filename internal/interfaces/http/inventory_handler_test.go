package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	apphttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
)

// fakeStockTxRepo sirve movimientos en memoria para los endpoints de consulta.
type fakeStockTxRepo struct {
	txs []*entity.StockTransaction
}

func (f *fakeStockTxRepo) Create(tx *entity.StockTransaction) error {
	f.txs = append(f.txs, tx)
	return nil
}

func (f *fakeStockTxRepo) ListByProduct(productID string, _, _ int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, tx := range f.txs {
		if tx.ProductID == productID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeStockTxRepo) ListByWarehouse(warehouseID string, _, _ int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, tx := range f.txs {
		if tx.WarehouseID == warehouseID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func movimiento(id, productID, warehouseID, txType string, qty int64) *entity.StockTransaction {
	return &entity.StockTransaction{
		ID:          id,
		GroupID:     "g-" + id,
		ProductID:   productID,
		WarehouseID: warehouseID,
		Type:        txType,
		Quantity:    decimal.NewFromInt(qty),
		UnitCost:    decimal.NewFromInt(10),
		TotalCost:   decimal.NewFromInt(qty * 10),
		Date:        time.Now(),
	}
}

func appMovimientos(repo *fakeStockTxRepo) *fiber.App {
	app := fiber.New()
	h := apphttp.NewInventoryHandler(nil, repo)
	app.Get("/inventory/products/:id/transactions", h.ListByProduct)
	app.Get("/inventory/warehouses/:id/transactions", h.ListByWarehouse)
	return app
}

func TestListByWarehouse_FiltraPorBodega(t *testing.T) {
	repo := &fakeStockTxRepo{txs: []*entity.StockTransaction{
		movimiento("t1", "p1", "w1", entity.TransactionTypeIN, 5),
		movimiento("t2", "p1", "w2", entity.TransactionTypeOUT, -2),
		movimiento("t3", "p2", "w1", entity.TransactionTypeIN, 3),
	}}
	app := appMovimientos(repo)

	req := httptest.NewRequest(http.MethodGet, "/inventory/warehouses/w1/transactions", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var items []dto.StockTransactionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "w1", item.WarehouseID)
	}
}

func TestListByWarehouse_SinMovimientos_ListaVacia(t *testing.T) {
	app := appMovimientos(&fakeStockTxRepo{})

	req := httptest.NewRequest(http.MethodGet, "/inventory/warehouses/w9/transactions", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var items []dto.StockTransactionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	assert.Empty(t, items)
}
