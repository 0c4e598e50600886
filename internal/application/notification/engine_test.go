package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appnotif "github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	notifdomain "github.com/jhoicas/almacen-api/internal/domain/notification"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Colaboradores fake
// ──────────────────────────────────────────────────────────────────────────────

type fakeRuleSource struct {
	rules []*entity.NotificationRule
	err   error
}

func (f *fakeRuleSource) ListActiveByEventType(_ context.Context, _, eventType string) ([]*entity.NotificationRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.NotificationRule
	for _, r := range f.rules {
		if r.EventType == eventType {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakePrefSource struct {
	prefs []*entity.NotificationPreference
	err   error
}

func (f *fakePrefSource) ListByEventType(_ context.Context, _, eventType string) ([]*entity.NotificationPreference, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.NotificationPreference
	for _, p := range f.prefs {
		if p.EventType == eventType {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeDeliverer struct {
	delivered []*appnotif.Rendered
	failFor   string // UserID cuya entrega falla
}

func (f *fakeDeliverer) Deliver(_ context.Context, n *appnotif.Rendered) error {
	if f.failFor != "" && n.UserID == f.failFor {
		return errors.New("smtp caído")
	}
	f.delivered = append(f.delivered, n)
	return nil
}

func reglaStockBaja() *entity.NotificationRule {
	return &entity.NotificationRule{
		ID:               "rule-1",
		Name:             "stock bajo",
		EventType:        entity.EventStockLow,
		NotificationType: entity.NotificationTypeWarning,
		Category:         "inventory",
		ConditionExpression: `{
			"Product.Quantity": {"operator": "<=", "value": "{{Product.MinStock}}"},
			"Product.IsActive": {"operator": "==", "value": true}
		}`,
		TitleTemplate:   "Stock bajo: {{Product.Name}}",
		MessageTemplate: "Product '{{Product.Name}}' (SKU: {{Product.SKU}}) is low: {{Product.Quantity}}/{{Product.MinStock}}",
		IsActive:        true,
		Priority:        5,
	}
}

func preferencia(userID string, minPriority int) *entity.NotificationPreference {
	return &entity.NotificationPreference{
		ID:           "pref-" + userID,
		UserID:       userID,
		EventType:    entity.EventStockLow,
		InAppEnabled: true,
		MinPriority:  minPriority,
	}
}

func datosBolt() notifdomain.Value {
	data, _ := notifdomain.FromJSON([]byte(`{
		"Product": {"Name": "Bolt", "SKU": "B1", "Quantity": 2, "MinStock": 10, "IsActive": true}
	}`))
	return data
}

func nuevoMotor(rules *fakeRuleSource, prefs *fakePrefSource, d *fakeDeliverer) *appnotif.Engine {
	return appnotif.NewEngine(rules, prefs, d, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestDispatch_EscenarioStockLowCompleto(t *testing.T) {
	rules := &fakeRuleSource{rules: []*entity.NotificationRule{reglaStockBaja()}}
	prefs := &fakePrefSource{prefs: []*entity.NotificationPreference{
		preferencia("user-1", 0),
		preferencia("user-2", 3),
	}}
	d := &fakeDeliverer{}

	report, err := nuevoMotor(rules, prefs, d).Dispatch(context.Background(), "co-1", entity.EventStockLow, datosBolt())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Matched)
	assert.Equal(t, 2, report.Emitted)
	require.Len(t, d.delivered, 2)
	for _, n := range d.delivered {
		assert.Equal(t, "Product 'Bolt' (SKU: B1) is low: 2/10", n.Message)
		assert.Equal(t, entity.NotificationTypeWarning, n.Type)
		assert.Equal(t, "inventory", n.Category)
		assert.Equal(t, "rule-1", n.RuleID)
		assert.True(t, n.InApp)
	}
}

func TestDispatch_SoloEmiteLaReglaQueMatchea(t *testing.T) {
	noMatchea := reglaStockBaja()
	noMatchea.ID = "rule-2"
	noMatchea.Name = "producto inactivo"
	noMatchea.ConditionExpression = `{"Product.IsActive": {"operator": "==", "value": false}}`

	rules := &fakeRuleSource{rules: []*entity.NotificationRule{reglaStockBaja(), noMatchea}}
	prefs := &fakePrefSource{prefs: []*entity.NotificationPreference{preferencia("user-1", 0)}}
	d := &fakeDeliverer{}

	report, err := nuevoMotor(rules, prefs, d).Dispatch(context.Background(), "co-1", entity.EventStockLow, datosBolt())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Evaluated)
	assert.Equal(t, 1, report.Matched)
	require.Len(t, d.delivered, 1)
	assert.Equal(t, "rule-1", d.delivered[0].RuleID)
}

func TestDispatch_UmbralDePrioridad(t *testing.T) {
	regla := reglaStockBaja()
	regla.Priority = 3
	rules := &fakeRuleSource{rules: []*entity.NotificationRule{regla}}
	prefs := &fakePrefSource{prefs: []*entity.NotificationPreference{preferencia("user-1", 5)}}
	d := &fakeDeliverer{}

	report, err := nuevoMotor(rules, prefs, d).Dispatch(context.Background(), "co-1", entity.EventStockLow, datosBolt())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Emitted, "priority 3 < minPriority 5: sin notificación")

	regla.Priority = 8
	report, err = nuevoMotor(rules, prefs, d).Dispatch(context.Background(), "co-1", entity.EventStockLow, datosBolt())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Emitted, "priority 8 >= minPriority 5: una notificación")
}

func TestDispatch_SinCanalesHabilitados_NoEmite(t *testing.T) {
	pref := preferencia("user-1", 0)
	pref.InAppEnabled = false
	rules := &fakeRuleSource{rules: []*entity.NotificationRule{reglaStockBaja()}}
	d := &fakeDeliverer{}

	report, err := nuevoMotor(rules, &fakePrefSource{prefs: []*entity.NotificationPreference{pref}}, d).
		Dispatch(context.Background(), "co-1", entity.EventStockLow, datosBolt())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Emitted)
}

func TestDispatch_ReglaMalformadaNoAbortaLasDemas(t *testing.T) {
	rota := reglaStockBaja()
	rota.ID = "rule-rota"
	rota.Name = "rota"
	rota.ConditionExpression = `{"Product.Quantity": "esto no es una cláusula"}`

	rules := &fakeRuleSource{rules: []*entity.NotificationRule{rota, reglaStockBaja()}}
	prefs := &fakePrefSource{prefs: []*entity.NotificationPreference{preferencia("user-1", 0)}}
	d := &fakeDeliverer{}

	report, err := nuevoMotor(rules, prefs, d).Dispatch(context.Background(), "co-1", entity.EventStockLow, datosBolt())
	require.NoError(t, err, "el fallo por regla es recuperable, no de pasada")

	require.Len(t, report.Errors, 1)
	assert.Equal(t, "rule-rota", report.Errors[0].RuleID)
	assert.ErrorIs(t, report.Errors[0].Err, notifdomain.ErrMalformedCondition)

	require.Len(t, d.delivered, 1, "la regla sana sí emitió")
	assert.Equal(t, "rule-1", d.delivered[0].RuleID)
}

func TestDispatch_ReglaInactivaSeIgnora(t *testing.T) {
	inactiva := reglaStockBaja()
	inactiva.IsActive = false
	rules := &fakeRuleSource{rules: []*entity.NotificationRule{inactiva}}
	d := &fakeDeliverer{}

	report, err := nuevoMotor(rules, &fakePrefSource{}, d).
		Dispatch(context.Background(), "co-1", entity.EventStockLow, datosBolt())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Evaluated)
	assert.Empty(t, d.delivered)
}

func TestDispatch_FalloDeCargaDeReglas_EsDePasada(t *testing.T) {
	rules := &fakeRuleSource{err: errors.New("db caída")}
	_, err := nuevoMotor(rules, &fakePrefSource{}, &fakeDeliverer{}).
		Dispatch(context.Background(), "co-1", entity.EventStockLow, datosBolt())
	require.Error(t, err)
}

func TestDispatch_FalloDeUnaEntregaNoAbortaLasDemas(t *testing.T) {
	rules := &fakeRuleSource{rules: []*entity.NotificationRule{reglaStockBaja()}}
	prefs := &fakePrefSource{prefs: []*entity.NotificationPreference{
		preferencia("user-falla", 0),
		preferencia("user-ok", 0),
	}}
	d := &fakeDeliverer{failFor: "user-falla"}

	report, err := nuevoMotor(rules, prefs, d).Dispatch(context.Background(), "co-1", entity.EventStockLow, datosBolt())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Emitted)
	require.Len(t, d.delivered, 1)
	assert.Equal(t, "user-ok", d.delivered[0].UserID)
}

func TestDispatch_PlantillaConPlaceholderRoto_DegradaConGracia(t *testing.T) {
	regla := reglaStockBaja()
	regla.MessageTemplate = "Stock: {{Product.NoExiste}} unidades"
	rules := &fakeRuleSource{rules: []*entity.NotificationRule{regla}}
	prefs := &fakePrefSource{prefs: []*entity.NotificationPreference{preferencia("user-1", 0)}}
	d := &fakeDeliverer{}

	_, err := nuevoMotor(rules, prefs, d).Dispatch(context.Background(), "co-1", entity.EventStockLow, datosBolt())
	require.NoError(t, err)
	require.Len(t, d.delivered, 1)
	assert.Equal(t, "Stock:  unidades", d.delivered[0].Message)
}
