package main

import (
	"context"
	"flag"
	"log"
	"time"

	"itapp/internal/config"
	"itapp/internal/database/migration"
	dbpostgres "itapp/internal/database/postgres"
	"itapp/internal/pkg/logger"
)

// migrate applies the embedded schema migrations without starting the server.
func main() {
	showVersion := flag.Bool("version", false, "print the applied schema version and exit")
	table := flag.String("table", "", "migrations table name")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	lg := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		lg.Fatal().Err(err).Msg("connect database")
	}
	defer func() {
		_ = db.Close()
	}()

	r := migration.Runner{Table: *table}
	if *showVersion {
		v, dirty, err := r.Version(db.SQLDB())
		if err != nil {
			lg.Fatal().Err(err).Msg("read schema version")
		}
		lg.Info().Uint("version", v).Bool("dirty", dirty).Msg("schema version")
		return
	}

	if err := r.Run(db.SQLDB()); err != nil {
		lg.Fatal().Err(err).Msg("migration failed")
	}
	lg.Info().Msg("migrations applied")
}
