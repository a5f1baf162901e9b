package main

import (
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fdg312/mealweek/internal/config"
	"github.com/fdg312/mealweek/internal/dbmigrate"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	if len(os.Args) < 2 {
		log.Fatal().Msgf("usage: go run ./cmd/migrate [%s]", strings.Join(dbmigrate.Commands, "|"))
	}

	command := os.Args[1]
	if !dbmigrate.IsSupported(command) {
		log.Fatal().Str("command", command).Strs("allowed", dbmigrate.Commands).Msg("unsupported command")
	}

	cfg := config.Load()
	target, err := dbmigrate.SelectDatabaseURL(cfg, false)
	if err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	if target.Warning != "" {
		log.Warn().Msg(target.Warning)
	}
	log.Info().Str("command", command).Str("using", target.Source).Msg("migrate")

	if err := dbmigrate.Run(command, target.URL, dbmigrate.DefaultMigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
	log.Info().Str("command", command).Msg("migrate completed")
}
