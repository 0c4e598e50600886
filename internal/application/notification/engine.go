package notification

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	notifdomain "github.com/jhoicas/almacen-api/internal/domain/notification"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Engine orquesta una pasada de evaluación por evento: carga reglas activas,
// evalúa condiciones, renderiza plantillas y emite una notificación por cada
// par (regla matcheada, usuario con preferencia habilitada y prioridad
// suficiente). Cada pasada es independiente: reglas y preferencias son
// snapshots de solo lectura, por lo que pasadas de eventos distintos pueden
// ejecutarse concurrentemente sin estado compartido.
type Engine struct {
	rules     RuleSource
	prefs     PreferenceSource
	deliverer Deliverer
	log       *logger.Logger
}

// NewEngine construye el motor con sus tres colaboradores externos.
func NewEngine(rules RuleSource, prefs PreferenceSource, deliverer Deliverer, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{rules: rules, prefs: prefs, deliverer: deliverer, log: log.Component("notification-engine")}
}

// RuleError es el fallo recuperable de una regla dentro de una pasada
// (condición malformada, etc.). No aborta la evaluación de las demás.
type RuleError struct {
	RuleID   string
	RuleName string
	Err      error
}

func (e RuleError) Error() string {
	return fmt.Sprintf("regla %s (%s): %v", e.RuleName, e.RuleID, e.Err)
}

// Report resume una pasada: cuántas reglas se evaluaron y matchearon,
// cuántas notificaciones se emitieron, y los fallos/avisos por regla
// acumulados (fold sin cortocircuito).
type Report struct {
	EventType string
	Evaluated int
	Matched   int
	Emitted   int
	Errors    []RuleError
	Warnings  []string
}

// Dispatch ejecuta una pasada para un evento. Devuelve error solo ante fallos
// de pasada completa (no se pudieron cargar reglas o preferencias); los fallos
// por regla o por entrega individual quedan en el Report y en el log.
func (e *Engine) Dispatch(ctx context.Context, companyID, eventType string, data notifdomain.Value) (*Report, error) {
	report := &Report{EventType: eventType}

	rules, err := e.rules.ListActiveByEventType(ctx, companyID, eventType)
	if err != nil {
		return nil, fmt.Errorf("cargar reglas para %s: %w", eventType, err)
	}

	type match struct {
		rule    *entity.NotificationRule
		title   string
		message string
	}
	var matches []match

	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		report.Evaluated++

		cond, err := notifdomain.ParseCondition([]byte(rule.ConditionExpression))
		if err != nil {
			// La regla malformada se salta; las demás siguen evaluándose.
			report.Errors = append(report.Errors, RuleError{RuleID: rule.ID, RuleName: rule.Name, Err: err})
			e.log.Warn().Str("rule_id", rule.ID).Str("event_type", eventType).Err(err).
				Msg("regla saltada por condición malformada")
			continue
		}

		matched, warnings := cond.Eval(data)
		for _, w := range warnings {
			report.Warnings = append(report.Warnings, fmt.Sprintf("regla %s: %s", rule.Name, w))
			e.log.Warn().Str("rule_id", rule.ID).Str("event_type", eventType).
				Msg("aviso de evaluación: " + w)
		}
		if !matched {
			continue
		}
		report.Matched++

		// El renderizado degrada con gracia: un placeholder no resoluble
		// sustituye cadena vacía, nunca falla la pasada.
		matches = append(matches, match{
			rule:    rule,
			title:   notifdomain.Render(rule.TitleTemplate, data),
			message: notifdomain.Render(rule.MessageTemplate, data),
		})
	}

	if len(matches) == 0 {
		return report, nil
	}

	prefs, err := e.prefs.ListByEventType(ctx, companyID, eventType)
	if err != nil {
		return nil, fmt.Errorf("cargar preferencias para %s: %w", eventType, err)
	}

	for _, m := range matches {
		for _, pref := range prefs {
			if !pref.AnyChannelEnabled() || m.rule.Priority < pref.MinPriority {
				continue
			}
			rendered := &Rendered{
				Title:    m.title,
				Message:  m.message,
				Type:     m.rule.NotificationType,
				Category: m.rule.Category,
				UserID:   pref.UserID,
				RuleID:   m.rule.ID,
				InApp:    pref.InAppEnabled,
				Email:    pref.EmailEnabled,
				Push:     pref.PushEnabled,
			}
			// Fire-and-forget: el fallo de una entrega no aborta las restantes.
			if err := e.deliverer.Deliver(ctx, rendered); err != nil {
				e.log.Error().Str("rule_id", m.rule.ID).Str("user_id", pref.UserID).Err(err).
					Msg("entrega de notificación fallida")
				continue
			}
			report.Emitted++
		}
	}

	e.log.Debug().Str("event_type", eventType).Int("evaluated", report.Evaluated).
		Int("matched", report.Matched).Int("emitted", report.Emitted).
		Msg("pasada de notificaciones completada")

	return report, nil
}
