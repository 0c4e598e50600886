package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	appnotif "github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	notifdomain "github.com/jhoicas/almacen-api/internal/domain/notification"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ─────────────────────────────────────────────────────────────────────────────

type stockKey struct{ productID, warehouseID string }

type fakeStockRepo struct {
	rows map[stockKey]decimal.Decimal
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: map[stockKey]decimal.Decimal{}}
}

func (f *fakeStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	return f.GetForUpdate(productID, warehouseID)
}

func (f *fakeStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	qty, ok := f.rows[stockKey{productID, warehouseID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: qty}, nil
}

func (f *fakeStockRepo) Upsert(s *entity.Stock) error {
	f.rows[stockKey{s.ProductID, s.WarehouseID}] = s.Quantity
	return nil
}

func (f *fakeStockRepo) ListLowStock(companyID string) ([]*repository.LowStockRow, error) {
	return nil, nil
}

type fakeTransactionRepo struct {
	created []*entity.StockTransaction
}

func (f *fakeTransactionRepo) Create(tx *entity.StockTransaction) error {
	f.created = append(f.created, tx)
	return nil
}

func (f *fakeTransactionRepo) ListByProduct(string, int, int) ([]*entity.StockTransaction, error) {
	return nil, nil
}

func (f *fakeTransactionRepo) ListByWarehouse(string, int, int) ([]*entity.StockTransaction, error) {
	return nil, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(*entity.Product) error { return nil }

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) GetByCompanyAndSKU(string, string) (*entity.Product, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeProductRepo) Update(*entity.Product) error { return nil }

func (f *fakeProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	f.products[productID].Cost = cost
	return nil
}

func (f *fakeProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Delete(string) error { return nil }

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func (f *fakeWarehouseRepo) Create(*entity.Warehouse) error { return nil }

func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := f.warehouses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

func (f *fakeWarehouseRepo) Update(*entity.Warehouse) error { return nil }
func (f *fakeWarehouseRepo) ListByCompany(string, int, int) ([]*entity.Warehouse, error) {
	return nil, nil
}
func (f *fakeWarehouseRepo) Delete(string) error                        { return nil }
func (f *fakeWarehouseRepo) AssignUser(*entity.UserWarehouse) error     { return nil }
func (f *fakeWarehouseRepo) UnassignUser(string, string) error          { return nil }
func (f *fakeWarehouseRepo) ListByUser(string) ([]*entity.Warehouse, error) { return nil, nil }
func (f *fakeWarehouseRepo) ListAssignedUsers(string) ([]*entity.UserWarehouse, error) {
	return nil, nil
}

// fakeRunner ejecuta el callback directamente sobre los fakes (sin tx real).
type fakeRunner struct {
	stock        *fakeStockRepo
	transactions *fakeTransactionRepo
	products     *fakeProductRepo
}

func (f *fakeRunner) WithinTx(_ context.Context, fn func(TxRepos) error) error {
	return fn(TxRepos{Stock: f.stock, Transactions: f.transactions, Products: f.products})
}

type dispatched struct {
	eventType string
	data      notifdomain.Value
}

type fakeNotifier struct {
	events []dispatched
}

func (f *fakeNotifier) Dispatch(_ context.Context, _, eventType string, data notifdomain.Value) (*appnotif.Report, error) {
	f.events = append(f.events, dispatched{eventType: eventType, data: data})
	return &appnotif.Report{EventType: eventType}, nil
}

func (f *fakeNotifier) eventTypes() []string {
	types := make([]string, 0, len(f.events))
	for _, e := range f.events {
		types = append(types, e.eventType)
	}
	return types
}

// ─────────────────────────────────────────────────────────────────────────────
// Armado
// ─────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *RegisterTransactionUseCase
	stock    *fakeStockRepo
	txs      *fakeTransactionRepo
	products *fakeProductRepo
	notifier *fakeNotifier
}

func newFixture() *fixture {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p1": {
			ID: "p1", CompanyID: "c1", SKU: "TORN-01", Name: "Tornillo",
			Cost: decimal.NewFromInt(10), MinStock: decimal.NewFromInt(5), IsActive: true,
		},
	}}
	warehouses := &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		"w1": {ID: "w1", CompanyID: "c1", Name: "Central"},
		"w2": {ID: "w2", CompanyID: "c1", Name: "Norte"},
	}}
	stock := newFakeStockRepo()
	txs := &fakeTransactionRepo{}
	notifier := &fakeNotifier{}
	runner := &fakeRunner{stock: stock, transactions: txs, products: products}
	uc := NewRegisterTransactionUseCase(products, warehouses, runner, notifier, nil)
	return &fixture{uc: uc, stock: stock, txs: txs, products: products, notifier: notifier}
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// ─────────────────────────────────────────────────────────────────────────────
// Entradas
// ─────────────────────────────────────────────────────────────────────────────

func TestEntradaActualizaStockYCostoPromedio(t *testing.T) {
	f := newFixture()
	f.stock.rows[stockKey{"p1", "w1"}] = dec(10) // 10 unidades a costo 10

	cost := dec(20)
	resp, err := f.uc.Execute(context.Background(), "c1", "u1", dto.RegisterTransactionRequest{
		ProductID: "p1", WarehouseID: "w1", Type: "IN", Quantity: dec(10), UnitCost: &cost,
	})
	require.NoError(t, err)
	require.Len(t, resp, 1)

	// (10*10 + 10*20) / 20 = 15
	assert.True(t, f.products.products["p1"].Cost.Equal(dec(15)),
		"costo promedio esperado 15, obtenido %s", f.products.products["p1"].Cost)
	assert.True(t, f.stock.rows[stockKey{"p1", "w1"}].Equal(dec(20)))
	assert.Equal(t, "IN", resp[0].Type)
	assert.True(t, resp[0].TotalCost.Equal(dec(200)))
}

func TestEntradaRequiereCostoUnitario(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Execute(context.Background(), "c1", "u1", dto.RegisterTransactionRequest{
		ProductID: "p1", WarehouseID: "w1", Type: "IN", Quantity: dec(5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────────────────────
// Salidas
// ─────────────────────────────────────────────────────────────────────────────

func TestSalidaConStockInsuficienteFalla(t *testing.T) {
	f := newFixture()
	f.stock.rows[stockKey{"p1", "w1"}] = dec(3)

	_, err := f.uc.Execute(context.Background(), "c1", "u1", dto.RegisterTransactionRequest{
		ProductID: "p1", WarehouseID: "w1", Type: "OUT", Quantity: dec(5),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.txs.created, "no debe registrarse ningún movimiento")
	assert.Empty(t, f.notifier.events, "no debe dispararse ningún evento")
}

func TestSalidaRegistraCantidadNegativa(t *testing.T) {
	f := newFixture()
	f.stock.rows[stockKey{"p1", "w1"}] = dec(20)

	resp, err := f.uc.Execute(context.Background(), "c1", "u1", dto.RegisterTransactionRequest{
		ProductID: "p1", WarehouseID: "w1", Type: "OUT", Quantity: dec(8),
	})
	require.NoError(t, err)
	assert.True(t, resp[0].Quantity.Equal(dec(-8)))
	assert.True(t, f.stock.rows[stockKey{"p1", "w1"}].Equal(dec(12)))
}

// ─────────────────────────────────────────────────────────────────────────────
// Eventos hacia el motor de notificaciones
// ─────────────────────────────────────────────────────────────────────────────

func TestSalidaBajoMinimoDisparaStockLow(t *testing.T) {
	f := newFixture()
	f.stock.rows[stockKey{"p1", "w1"}] = dec(10) // mínimo = 5

	_, err := f.uc.Execute(context.Background(), "c1", "u1", dto.RegisterTransactionRequest{
		ProductID: "p1", WarehouseID: "w1", Type: "OUT", Quantity: dec(7),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{entity.EventTransactionCreated, entity.EventStockLow}, f.notifier.eventTypes())

	// El evento lleva la cantidad resultante, no la movida.
	data := f.notifier.events[1].data
	qty, ok := notifdomain.Resolve(data, "Product.Quantity")
	require.True(t, ok)
	assert.Equal(t, "3", qty.Render())
}

func TestSalidaACeroDisparaStockOut(t *testing.T) {
	f := newFixture()
	f.stock.rows[stockKey{"p1", "w1"}] = dec(4)

	_, err := f.uc.Execute(context.Background(), "c1", "u1", dto.RegisterTransactionRequest{
		ProductID: "p1", WarehouseID: "w1", Type: "OUT", Quantity: dec(4),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.EventTransactionCreated, entity.EventStockOut}, f.notifier.eventTypes())
}

func TestSalidaSobreMinimoSoloDisparaTransactionCreated(t *testing.T) {
	f := newFixture()
	f.stock.rows[stockKey{"p1", "w1"}] = dec(50)

	_, err := f.uc.Execute(context.Background(), "c1", "u1", dto.RegisterTransactionRequest{
		ProductID: "p1", WarehouseID: "w1", Type: "OUT", Quantity: dec(10),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.EventTransactionCreated}, f.notifier.eventTypes())
}

// ─────────────────────────────────────────────────────────────────────────────
// Ajustes y transferencias
// ─────────────────────────────────────────────────────────────────────────────

func TestAjusteNegativoNoPuedeDejarStockNegativo(t *testing.T) {
	f := newFixture()
	f.stock.rows[stockKey{"p1", "w1"}] = dec(2)

	_, err := f.uc.Execute(context.Background(), "c1", "u1", dto.RegisterTransactionRequest{
		ProductID: "p1", WarehouseID: "w1", Type: "ADJUSTMENT", Quantity: dec(-5),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestTransferenciaGeneraDosMovimientosConMismoGrupo(t *testing.T) {
	f := newFixture()
	f.stock.rows[stockKey{"p1", "w1"}] = dec(30)

	resp, err := f.uc.Execute(context.Background(), "c1", "u1", dto.RegisterTransactionRequest{
		ProductID: "p1", FromWarehouseID: "w1", ToWarehouseID: "w2", Type: "TRANSFER", Quantity: dec(12),
	})
	require.NoError(t, err)
	require.Len(t, resp, 2)

	assert.Equal(t, resp[0].GroupID, resp[1].GroupID)
	assert.True(t, resp[0].Quantity.Equal(dec(-12)))
	assert.True(t, resp[1].Quantity.Equal(dec(12)))
	assert.True(t, f.stock.rows[stockKey{"p1", "w1"}].Equal(dec(18)))
	assert.True(t, f.stock.rows[stockKey{"p1", "w2"}].Equal(dec(12)))
}

func TestTransferenciaALaMismaBodegaFalla(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Execute(context.Background(), "c1", "u1", dto.RegisterTransactionRequest{
		ProductID: "p1", FromWarehouseID: "w1", ToWarehouseID: "w1", Type: "TRANSFER", Quantity: dec(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────────────────────
// Aislamiento multi-tenant
// ─────────────────────────────────────────────────────────────────────────────

func TestProductoDeOtraEmpresaEsRechazado(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Execute(context.Background(), "otra-empresa", "u1", dto.RegisterTransactionRequest{
		ProductID: "p1", WarehouseID: "w1", Type: "OUT", Quantity: dec(1),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
