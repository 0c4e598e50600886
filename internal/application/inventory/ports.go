package inventory

import (
	"context"

	appnotif "github.com/jhoicas/almacen-api/internal/application/notification"
	notifdomain "github.com/jhoicas/almacen-api/internal/domain/notification"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios ligados a una misma transacción de base de
// datos. El runner los construye sobre la tx y los pasa al callback.
type TxRepos struct {
	Stock        repository.StockRepository
	Transactions repository.StockTransactionRepository
	Products     repository.ProductRepository
}

// TxRunner ejecuta fn dentro de una transacción de base de datos.
// Commit si fn retorna nil; rollback en caso contrario.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(repos TxRepos) error) error
}

// Notifier es el motor de notificaciones visto desde inventario. Un fallo del
// motor nunca revierte el movimiento ya confirmado.
type Notifier interface {
	Dispatch(ctx context.Context, companyID, eventType string, data notifdomain.Value) (*appnotif.Report, error)
}
