package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositorios
// ──────────────────────────────────────────────────────────────────────────────

type fakeWarehouseRepo struct {
	warehouses  map[string]*entity.Warehouse
	assignments []*entity.UserWarehouse
}

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{}}
}

func (f *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	f.warehouses[w.ID] = w
	return nil
}

func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := f.warehouses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

func (f *fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	f.warehouses[w.ID] = w
	return nil
}

func (f *fakeWarehouseRepo) ListByCompany(companyID string, _, _ int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range f.warehouses {
		if w.CompanyID == companyID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWarehouseRepo) Delete(id string) error {
	delete(f.warehouses, id)
	return nil
}

func (f *fakeWarehouseRepo) AssignUser(a *entity.UserWarehouse) error {
	f.assignments = append(f.assignments, a)
	return nil
}

func (f *fakeWarehouseRepo) UnassignUser(userID, warehouseID string) error {
	for i, a := range f.assignments {
		if a.UserID == userID && a.WarehouseID == warehouseID {
			f.assignments = append(f.assignments[:i], f.assignments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeWarehouseRepo) ListByUser(userID string) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, a := range f.assignments {
		if a.UserID == userID {
			out = append(out, f.warehouses[a.WarehouseID])
		}
	}
	return out, nil
}

func (f *fakeWarehouseRepo) ListAssignedUsers(warehouseID string) ([]*entity.UserWarehouse, error) {
	var out []*entity.UserWarehouse
	for _, a := range f.assignments {
		if a.WarehouseID == warehouseID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error { f.users[u.ID] = u; return nil }

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmailAndCompany(string, string) (*entity.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(string) (*entity.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(u *entity.User) error { f.users[u.ID] = u; return nil }

func (f *fakeUserRepo) ListByCompany(string, int, int) ([]*entity.User, error) { return nil, nil }

func (f *fakeUserRepo) Delete(id string) error { delete(f.users, id); return nil }

func armarBodegas() (*usecase.WarehouseUseCase, *fakeWarehouseRepo) {
	repo := newFakeWarehouseRepo()
	repo.warehouses["w1"] = &entity.Warehouse{ID: "w1", CompanyID: "c1", Name: "Central"}
	repo.warehouses["w2"] = &entity.Warehouse{ID: "w2", CompanyID: "c2", Name: "Ajena"}
	users := &fakeUserRepo{users: map[string]*entity.User{
		"u1": {ID: "u1", CompanyID: "c1", Role: entity.RoleBodeguero},
		"u2": {ID: "u2", CompanyID: "c2", Role: entity.RoleBodeguero},
	}}
	return usecase.NewWarehouseUseCase(repo, users), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAssignUser_OtraEmpresa_EsForbidden(t *testing.T) {
	uc, repo := armarBodegas()

	err := uc.AssignUser("w1", "u2", "admin-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, repo.assignments)
}

func TestListAssignedUsers_DevuelveAsignaciones(t *testing.T) {
	uc, repo := armarBodegas()

	require.NoError(t, uc.AssignUser("w1", "u1", "admin-1"))
	require.Len(t, repo.assignments, 1)

	out, err := uc.ListAssignedUsers("c1", "w1")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "u1", out[0].UserID)
	assert.Equal(t, "w1", out[0].WarehouseID)
	assert.Equal(t, "admin-1", out[0].AssignedBy)
	assert.WithinDuration(t, time.Now(), out[0].AssignedAt, time.Minute)
}

func TestListAssignedUsers_BodegaDeOtraEmpresa_EsForbidden(t *testing.T) {
	uc, _ := armarBodegas()

	_, err := uc.ListAssignedUsers("c1", "w2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListAssignedUsers_SinAsignaciones_ListaVacia(t *testing.T) {
	uc, _ := armarBodegas()

	out, err := uc.ListAssignedUsers("c1", "w1")
	require.NoError(t, err)
	assert.Empty(t, out)
}
