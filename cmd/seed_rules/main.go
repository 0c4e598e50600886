// seed_rules carga las reglas de notificación por defecto para una empresa
// a partir del archivo rules.yaml.
//
// Uso: go run ./cmd/seed_rules -company <uuid> [-file cmd/seed_rules/rules.yaml]
// La URL de conexión se toma de -database o de la variable DATABASE_URL.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"gopkg.in/yaml.v3"

	notif "github.com/jhoicas/almacen-api/internal/domain/notification"
)

type ruleFile struct {
	Rules []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	Name             string `yaml:"name"`
	EventType        string `yaml:"event_type"`
	NotificationType string `yaml:"notification_type"`
	Category         string `yaml:"category"`
	Condition        string `yaml:"condition"`
	TitleTemplate    string `yaml:"title_template"`
	MessageTemplate  string `yaml:"message_template"`
	Priority         int    `yaml:"priority"`
}

func main() {
	var databaseURL, companyID, filePath string
	flag.StringVar(&databaseURL, "database", "", "URL de PostgreSQL (o variable DATABASE_URL)")
	flag.StringVar(&companyID, "company", "", "UUID de la empresa (requerido)")
	flag.StringVar(&filePath, "file", "cmd/seed_rules/rules.yaml", "Archivo YAML con las reglas")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" || companyID == "" {
		fmt.Fprintln(os.Stderr, "se requieren -company y la URL de la base de datos (-database o DATABASE_URL)")
		os.Exit(1)
	}
	if _, err := uuid.Parse(companyID); err != nil {
		fmt.Fprintf(os.Stderr, "company inválido: %v\n", err)
		os.Exit(1)
	}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "leer %s: %v\n", filePath, err)
		os.Exit(1)
	}
	var f ruleFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		fmt.Fprintf(os.Stderr, "parsear YAML: %v\n", err)
		os.Exit(1)
	}
	if len(f.Rules) == 0 {
		fmt.Fprintln(os.Stderr, "el archivo no contiene reglas")
		os.Exit(1)
	}

	// Validar las condiciones antes de tocar la base de datos.
	for _, r := range f.Rules {
		if _, err := notif.ParseCondition([]byte(r.Condition)); err != nil {
			fmt.Fprintf(os.Stderr, "regla %q: condición inválida: %v\n", r.Name, err)
			os.Exit(1)
		}
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	const insertSQL = `
		INSERT INTO notification_rules
			(id, company_id, name, event_type, notification_type, category,
			 condition_expression, title_template, message_template, is_active, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true, $10)
		ON CONFLICT (company_id, name) DO UPDATE SET
			event_type = EXCLUDED.event_type,
			notification_type = EXCLUDED.notification_type,
			category = EXCLUDED.category,
			condition_expression = EXCLUDED.condition_expression,
			title_template = EXCLUDED.title_template,
			message_template = EXCLUDED.message_template,
			priority = EXCLUDED.priority,
			updated_at = NOW()`

	for _, r := range f.Rules {
		_, err := conn.Exec(ctx, insertSQL,
			uuid.NewString(), companyID, r.Name, r.EventType, r.NotificationType,
			r.Category, r.Condition, r.TitleTemplate, r.MessageTemplate, r.Priority)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insertar regla %q: %v\n", r.Name, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Cargadas %d reglas para la empresa %s\n", len(f.Rules), companyID)
}
