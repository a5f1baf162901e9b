package dbmigrate

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/fdg312/mealweek/migrations"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Commands lists the goose commands exposed by cmd/migrate.
var Commands = []string{"up", "down", "status", "redo", "version"}

// Run applies a goose command. Migrations come from dir when it is set and
// exists on disk, otherwise from the SQL files embedded in the binary.
func Run(command, dbURL, dir string) error {
	if dbURL == "" {
		return fmt.Errorf("database URL is empty")
	}
	if !IsSupported(command) {
		return fmt.Errorf("unsupported migrate command %q", command)
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if dir != "" && dirExists(dir) {
		goose.SetBaseFS(nil)
	} else {
		goose.SetBaseFS(migrations.FS)
		dir = "."
	}

	if err := goose.Run(command, db, dir); err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}
	return nil
}

func IsSupported(command string) bool {
	for _, c := range Commands {
		if c == command {
			return true
		}
	}
	return false
}

func dirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
