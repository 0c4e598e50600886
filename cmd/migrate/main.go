// migrate aplica las migraciones SQL del esquema.
//
// Uso: go run ./cmd/migrate -command up
// La URL de conexión se toma de -database o de la variable DATABASE_URL.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var databaseURL string
	var migrationsPath string
	var command string

	flag.StringVar(&databaseURL, "database", "", "URL de PostgreSQL (o variable DATABASE_URL)")
	flag.StringVar(&migrationsPath, "path", "migrations", "Directorio de migraciones")
	flag.StringVar(&command, "command", "up", "Comando: up, down, version, force")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		log.Fatal("se requiere la URL de la base de datos: flag -database o DATABASE_URL")
	}

	m, err := migrate.New(fmt.Sprintf("file://%s", migrationsPath), databaseURL)
	if err != nil {
		log.Fatalf("crear instancia de migración: %v", err)
	}
	defer m.Close()

	switch command {
	case "up":
		err = m.Up()
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("aplicar migraciones: %v", err)
		}
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("sin cambios: la base de datos ya está al día")
		} else {
			log.Println("migraciones aplicadas")
		}

	case "down":
		err = m.Down()
		if err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("revertir migraciones: %v", err)
		}
		log.Println("migraciones revertidas")

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("consultar versión: %v", err)
		}
		log.Printf("versión actual: %d (dirty: %v)", version, dirty)

	case "force":
		if len(flag.Args()) < 1 {
			log.Fatal("force requiere el número de versión: -command force <version>")
		}
		var version int
		if _, err := fmt.Sscanf(flag.Arg(0), "%d", &version); err != nil {
			log.Fatalf("número de versión inválido: %v", err)
		}
		if err := m.Force(version); err != nil {
			log.Fatalf("forzar versión: %v", err)
		}
		log.Printf("versión forzada a %d", version)

	default:
		log.Fatalf("comando desconocido: %s (use: up, down, version, force)", command)
	}
}
