package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	notifdomain "github.com/jhoicas/almacen-api/internal/domain/notification"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de reglas
// ──────────────────────────────────────────────────────────────────────────────

type fakeRuleRepo struct {
	rules map[string]*entity.NotificationRule
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{rules: map[string]*entity.NotificationRule{}}
}

func (f *fakeRuleRepo) Create(rule *entity.NotificationRule) error {
	f.rules[rule.ID] = rule
	return nil
}

func (f *fakeRuleRepo) GetByID(id string) (*entity.NotificationRule, error) {
	r, ok := f.rules[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRuleRepo) Update(rule *entity.NotificationRule) error {
	if _, ok := f.rules[rule.ID]; !ok {
		return domain.ErrNotFound
	}
	f.rules[rule.ID] = rule
	return nil
}

func (f *fakeRuleRepo) ListByCompany(companyID string, _, _ int) ([]*entity.NotificationRule, error) {
	var out []*entity.NotificationRule
	for _, r := range f.rules {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRuleRepo) ListActiveByEventType(_ context.Context, companyID, eventType string) ([]*entity.NotificationRule, error) {
	var out []*entity.NotificationRule
	for _, r := range f.rules {
		if r.CompanyID == companyID && r.EventType == eventType && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRuleRepo) Delete(id string) error {
	if _, ok := f.rules[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rules, id)
	return nil
}

func peticionValida() dto.CreateRuleRequest {
	return dto.CreateRuleRequest{
		Name:            "Stock bajo mínimo",
		EventType:       entity.EventStockLow,
		Category:        "inventory",
		Condition:       json.RawMessage(`{"Product.IsActive": {"operator": "==", "value": true}}`),
		TitleTemplate:   "Stock bajo: {{Product.Name}}",
		MessageTemplate: "Quedan {{Product.Quantity}} unidades",
		Priority:        5,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRuleCreate_ReglaValida(t *testing.T) {
	uc := usecase.NewNotificationRuleUseCase(newFakeRuleRepo())

	out, err := uc.Create("co-1", peticionValida())
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "co-1", out.CompanyID)
	assert.True(t, out.IsActive, "la regla nueva nace activa")
	assert.Equal(t, entity.NotificationTypeInfo, out.NotificationType,
		"sin tipo explícito se usa info")
}

func TestRuleCreate_CondicionMalformada(t *testing.T) {
	uc := usecase.NewNotificationRuleUseCase(newFakeRuleRepo())

	in := peticionValida()
	in.Condition = json.RawMessage(`{"Product.Quantity": "no es una cláusula"}`)

	_, err := uc.Create("co-1", in)
	assert.ErrorIs(t, err, notifdomain.ErrMalformedCondition)
}

func TestRuleCreate_EventTypeDesconocido(t *testing.T) {
	uc := usecase.NewNotificationRuleUseCase(newFakeRuleRepo())

	in := peticionValida()
	in.EventType = "PRICE_CHANGED"

	_, err := uc.Create("co-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRuleCreate_SinMessageTemplate(t *testing.T) {
	uc := usecase.NewNotificationRuleUseCase(newFakeRuleRepo())

	in := peticionValida()
	in.MessageTemplate = ""

	_, err := uc.Create("co-1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRuleUpdate_RevalidaCondicion(t *testing.T) {
	repo := newFakeRuleRepo()
	uc := usecase.NewNotificationRuleUseCase(repo)

	created, err := uc.Create("co-1", peticionValida())
	require.NoError(t, err)

	rota := json.RawMessage(`{"Product.Quantity": 42}`)
	_, err = uc.Update(created.ID, dto.UpdateRuleRequest{Condition: rota})
	assert.ErrorIs(t, err, notifdomain.ErrMalformedCondition)

	// La regla persistida no cambió.
	stored, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.JSONEq(t, string(peticionValida().Condition), string(stored.Condition))
}

func TestRuleUpdate_DesactivarRegla(t *testing.T) {
	uc := usecase.NewNotificationRuleUseCase(newFakeRuleRepo())

	created, err := uc.Create("co-1", peticionValida())
	require.NoError(t, err)

	inactive := false
	updated, err := uc.Update(created.ID, dto.UpdateRuleRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestRuleDelete_NoExiste(t *testing.T) {
	uc := usecase.NewNotificationRuleUseCase(newFakeRuleRepo())
	err := uc.Delete("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
