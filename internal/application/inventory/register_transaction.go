package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	appnotif "github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-api/internal/domain/inventory"
	notifdomain "github.com/jhoicas/almacen-api/internal/domain/notification"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// RegisterTransactionUseCase registra movimientos de inventario (IN, OUT,
// ADJUSTMENT, TRANSFER) de forma atómica: bloqueo de la fila de stock,
// validación de saldo, recálculo de costo promedio en entradas y escritura del
// movimiento. Tras el commit dispara los eventos al motor de notificaciones.
type RegisterTransactionUseCase struct {
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
	runner     TxRunner
	notifier   Notifier
	log        *logger.Logger
}

// NewRegisterTransactionUseCase construye el caso de uso. notifier puede ser
// nil (no se notifica nada, útil en seeds y tests de consistencia).
func NewRegisterTransactionUseCase(
	products repository.ProductRepository,
	warehouses repository.WarehouseRepository,
	runner TxRunner,
	notifier Notifier,
	log *logger.Logger,
) *RegisterTransactionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterTransactionUseCase{
		products:   products,
		warehouses: warehouses,
		runner:     runner,
		notifier:   notifier,
		log:        log.Component("inventory"),
	}
}

// stockOutcome captura el estado resultante de una bodega afectada, para
// decidir qué eventos disparar después del commit.
type stockOutcome struct {
	tx        *entity.StockTransaction
	warehouse *entity.Warehouse
	newQty    decimal.Decimal
}

// Execute registra el movimiento y devuelve los registros creados (dos en TRANSFER).
func (uc *RegisterTransactionUseCase) Execute(ctx context.Context, companyID, userID string, in dto.RegisterTransactionRequest) ([]dto.StockTransactionResponse, error) {
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if !product.IsActive {
		return nil, domain.ErrConflict
	}

	var outcomes []stockOutcome
	switch in.Type {
	case entity.TransactionTypeIN:
		outcomes, err = uc.registerIn(ctx, product, userID, in)
	case entity.TransactionTypeOUT:
		outcomes, err = uc.registerOut(ctx, product, userID, in)
	case entity.TransactionTypeADJUSTMENT:
		outcomes, err = uc.registerAdjustment(ctx, product, userID, in)
	case entity.TransactionTypeTRANSFER:
		outcomes, err = uc.registerTransfer(ctx, product, userID, in)
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}

	// El movimiento ya está confirmado: los fallos del motor solo se loggean.
	uc.dispatchEvents(ctx, companyID, product, outcomes)

	responses := make([]dto.StockTransactionResponse, 0, len(outcomes))
	for _, o := range outcomes {
		responses = append(responses, *toTransactionResponse(o.tx))
	}
	return responses, nil
}

func (uc *RegisterTransactionUseCase) registerIn(ctx context.Context, product *entity.Product, userID string, in dto.RegisterTransactionRequest) ([]stockOutcome, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost == nil || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.loadWarehouse(in.WarehouseID, product.CompanyID)
	if err != nil {
		return nil, err
	}

	var outcome stockOutcome
	err = uc.runner.WithinTx(ctx, func(repos TxRepos) error {
		current, err := repos.Stock.GetForUpdate(product.ID, warehouse.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		currentQty := decimal.Zero
		if current != nil {
			currentQty = current.Quantity
		}

		newCost := domaininv.WeightedAverageCost(currentQty, product.Cost, in.Quantity, *in.UnitCost)
		if err := repos.Products.UpdateCost(product.ID, newCost); err != nil {
			return err
		}
		product.Cost = newCost

		newQty := currentQty.Add(in.Quantity)
		if err := repos.Stock.Upsert(&entity.Stock{
			ProductID:   product.ID,
			WarehouseID: warehouse.ID,
			Quantity:    newQty,
			UpdatedAt:   time.Now(),
		}); err != nil {
			return err
		}

		tx := newTransaction(product.ID, warehouse.ID, entity.TransactionTypeIN, in.Quantity, *in.UnitCost, in.Note, userID, "")
		if err := repos.Transactions.Create(tx); err != nil {
			return err
		}
		outcome = stockOutcome{tx: tx, warehouse: warehouse, newQty: newQty}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return []stockOutcome{outcome}, nil
}

func (uc *RegisterTransactionUseCase) registerOut(ctx context.Context, product *entity.Product, userID string, in dto.RegisterTransactionRequest) ([]stockOutcome, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.loadWarehouse(in.WarehouseID, product.CompanyID)
	if err != nil {
		return nil, err
	}

	var outcome stockOutcome
	err = uc.runner.WithinTx(ctx, func(repos TxRepos) error {
		current, err := repos.Stock.GetForUpdate(product.ID, warehouse.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrInsufficientStock
			}
			return err
		}
		if current.Quantity.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}

		newQty := current.Quantity.Sub(in.Quantity)
		if err := repos.Stock.Upsert(&entity.Stock{
			ProductID:   product.ID,
			WarehouseID: warehouse.ID,
			Quantity:    newQty,
			UpdatedAt:   time.Now(),
		}); err != nil {
			return err
		}

		tx := newTransaction(product.ID, warehouse.ID, entity.TransactionTypeOUT, in.Quantity.Neg(), product.Cost, in.Note, userID, "")
		if err := repos.Transactions.Create(tx); err != nil {
			return err
		}
		outcome = stockOutcome{tx: tx, warehouse: warehouse, newQty: newQty}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return []stockOutcome{outcome}, nil
}

func (uc *RegisterTransactionUseCase) registerAdjustment(ctx context.Context, product *entity.Product, userID string, in dto.RegisterTransactionRequest) ([]stockOutcome, error) {
	// El ajuste es un delta firmado; cero no tiene sentido.
	if in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.loadWarehouse(in.WarehouseID, product.CompanyID)
	if err != nil {
		return nil, err
	}

	var outcome stockOutcome
	err = uc.runner.WithinTx(ctx, func(repos TxRepos) error {
		current, err := repos.Stock.GetForUpdate(product.ID, warehouse.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		currentQty := decimal.Zero
		if current != nil {
			currentQty = current.Quantity
		}

		newQty := currentQty.Add(in.Quantity)
		if newQty.IsNegative() {
			return domain.ErrInsufficientStock
		}
		if err := repos.Stock.Upsert(&entity.Stock{
			ProductID:   product.ID,
			WarehouseID: warehouse.ID,
			Quantity:    newQty,
			UpdatedAt:   time.Now(),
		}); err != nil {
			return err
		}

		tx := newTransaction(product.ID, warehouse.ID, entity.TransactionTypeADJUSTMENT, in.Quantity, product.Cost, in.Note, userID, "")
		if err := repos.Transactions.Create(tx); err != nil {
			return err
		}
		outcome = stockOutcome{tx: tx, warehouse: warehouse, newQty: newQty}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return []stockOutcome{outcome}, nil
}

func (uc *RegisterTransactionUseCase) registerTransfer(ctx context.Context, product *entity.Product, userID string, in dto.RegisterTransactionRequest) ([]stockOutcome, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" || in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	from, err := uc.loadWarehouse(in.FromWarehouseID, product.CompanyID)
	if err != nil {
		return nil, err
	}
	to, err := uc.loadWarehouse(in.ToWarehouseID, product.CompanyID)
	if err != nil {
		return nil, err
	}

	groupID := uuid.New().String()
	var outFrom, outTo stockOutcome
	err = uc.runner.WithinTx(ctx, func(repos TxRepos) error {
		// Bloqueo en orden determinista de ID de bodega para evitar deadlocks
		// entre transferencias cruzadas.
		first, second := from, to
		if second.ID < first.ID {
			first, second = second, first
		}
		locked := map[string]decimal.Decimal{}
		for _, w := range []*entity.Warehouse{first, second} {
			s, err := repos.Stock.GetForUpdate(product.ID, w.ID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					locked[w.ID] = decimal.Zero
					continue
				}
				return err
			}
			locked[w.ID] = s.Quantity
		}

		if locked[from.ID].LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}
		fromQty := locked[from.ID].Sub(in.Quantity)
		toQty := locked[to.ID].Add(in.Quantity)
		now := time.Now()
		if err := repos.Stock.Upsert(&entity.Stock{ProductID: product.ID, WarehouseID: from.ID, Quantity: fromQty, UpdatedAt: now}); err != nil {
			return err
		}
		if err := repos.Stock.Upsert(&entity.Stock{ProductID: product.ID, WarehouseID: to.ID, Quantity: toQty, UpdatedAt: now}); err != nil {
			return err
		}

		txFrom := newTransaction(product.ID, from.ID, entity.TransactionTypeTRANSFER, in.Quantity.Neg(), product.Cost, in.Note, userID, groupID)
		txTo := newTransaction(product.ID, to.ID, entity.TransactionTypeTRANSFER, in.Quantity, product.Cost, in.Note, userID, groupID)
		if err := repos.Transactions.Create(txFrom); err != nil {
			return err
		}
		if err := repos.Transactions.Create(txTo); err != nil {
			return err
		}
		outFrom = stockOutcome{tx: txFrom, warehouse: from, newQty: fromQty}
		outTo = stockOutcome{tx: txTo, warehouse: to, newQty: toQty}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return []stockOutcome{outFrom, outTo}, nil
}

func (uc *RegisterTransactionUseCase) loadWarehouse(id, companyID string) (*entity.Warehouse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouses.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return warehouse, nil
}

// dispatchEvents dispara TRANSACTION_CREATED por cada movimiento y, según la
// cantidad resultante, STOCK_OUT (cero) o STOCK_LOW (en o bajo el mínimo).
func (uc *RegisterTransactionUseCase) dispatchEvents(ctx context.Context, companyID string, product *entity.Product, outcomes []stockOutcome) {
	if uc.notifier == nil {
		return
	}
	for _, o := range outcomes {
		uc.dispatch(ctx, companyID, entity.EventTransactionCreated,
			appnotif.TransactionEvent(o.tx, product, o.warehouse, o.newQty))

		switch {
		case o.newQty.IsZero():
			uc.dispatch(ctx, companyID, entity.EventStockOut,
				appnotif.StockEvent(product, o.warehouse, o.newQty))
		case product.MinStock.IsPositive() && o.newQty.LessThanOrEqual(product.MinStock):
			uc.dispatch(ctx, companyID, entity.EventStockLow,
				appnotif.StockEvent(product, o.warehouse, o.newQty))
		}
	}
}

func (uc *RegisterTransactionUseCase) dispatch(ctx context.Context, companyID, eventType string, data notifdomain.Value) {
	report, err := uc.notifier.Dispatch(ctx, companyID, eventType, data)
	if err != nil {
		uc.log.Error().Err(err).Str("event_type", eventType).Msg("fallo al despachar evento de notificación")
		return
	}
	if len(report.Errors) > 0 {
		uc.log.Warn().Str("event_type", eventType).Int("rule_errors", len(report.Errors)).Msg("reglas con errores durante la pasada")
	}
}

func newTransaction(productID, warehouseID, txType string, quantity, unitCost decimal.Decimal, note, userID, groupID string) *entity.StockTransaction {
	if groupID == "" {
		groupID = uuid.New().String()
	}
	now := time.Now()
	return &entity.StockTransaction{
		ID:          uuid.New().String(),
		GroupID:     groupID,
		ProductID:   productID,
		WarehouseID: warehouseID,
		Type:        txType,
		Quantity:    quantity,
		UnitCost:    unitCost,
		TotalCost:   quantity.Mul(unitCost),
		Note:        note,
		Date:        now,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
}

func toTransactionResponse(tx *entity.StockTransaction) *dto.StockTransactionResponse {
	return &dto.StockTransactionResponse{
		ID:          tx.ID,
		GroupID:     tx.GroupID,
		ProductID:   tx.ProductID,
		WarehouseID: tx.WarehouseID,
		Type:        tx.Type,
		Quantity:    tx.Quantity,
		UnitCost:    tx.UnitCost,
		TotalCost:   tx.TotalCost,
		Note:        tx.Note,
		Date:        tx.Date,
		CreatedBy:   tx.CreatedBy,
	}
}
