package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"itapp/internal/config"
	"itapp/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestTranslateErr(t *testing.T) {
	if translateErr(nil) != nil {
		t.Fatalf("expected nil")
	}

	if err := translateErr(pgx.ErrNoRows); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "applications_student_id_job_id_key"}
	err := translateErr(dup)
	if !errors.Is(err, database.ErrUniqueViolation) {
		t.Fatalf("expected ErrUniqueViolation, got %v", err)
	}

	other := &pgconn.PgError{Code: "23503"}
	if err := translateErr(other); errors.Is(err, database.ErrUniqueViolation) {
		t.Fatalf("foreign key violation must not map to unique violation")
	}
}

func TestConnString_EscapesCredentials(t *testing.T) {
	cfg := config.DatabaseConfig{
		DBHost:     "db.internal",
		DBPort:     "5433",
		DBName:     "itapp",
		DBUser:     "app",
		DBPassword: "p@ss word'x",
		DBSSLMode:  "require",
	}

	pcfg, err := pgxpool.ParseConfig(connString(cfg))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	cc := pcfg.ConnConfig
	if cc.Host != "db.internal" || cc.Port != 5433 || cc.Database != "itapp" || cc.User != "app" {
		t.Fatalf("unexpected conn config: host=%s port=%d db=%s user=%s", cc.Host, cc.Port, cc.Database, cc.User)
	}
	if cc.Password != cfg.DBPassword {
		t.Fatalf("password=%q, want %q", cc.Password, cfg.DBPassword)
	}
	if cc.TLSConfig == nil {
		t.Fatalf("expected TLS for sslmode=require")
	}
}
