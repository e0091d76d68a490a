package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"colaboradores/src/domain/entities"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgresClient monta o pgxpool. maxConnections <= 0 mantém o default do driver.
func NewPostgresClient(host string, port string, dbname string, username string, password string, maxConnections int) (*pgxpool.Pool, error) {
	config, err := NewPoolConfig(host, port, dbname, username, password, maxConnections)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}

	return pool, nil
}

func NewPoolConfig(host string, port string, dbname string, username string, password string, maxConnections int) (*pgxpool.Config, error) {
	dbConfig := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", username, password, host, port, dbname)

	config, err := pgxpool.ParseConfig(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	if maxConnections > 0 {
		config.MaxConns = int32(maxConnections) //nolint:all
	}

	// Idle timeout - economiza recursos
	config.MaxConnIdleTime = 5 * time.Minute

	// Lifetime das conexões - evita problemas de timeout do PostgreSQL
	config.MaxConnLifetime = 30 * time.Minute

	config.ConnConfig.RuntimeParams = map[string]string{
		"timezone":          "UTC",
		"statement_timeout": "30s",
		"lock_timeout":      "10s",
	}

	return config, nil
}

// IsConnectionFailure tells apart errors raised before the statement reached
// the server (dial, auth, TLS) from query errors.
func IsConnectionFailure(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 08xxx: connection exception, 28xxx: invalid authorization, 3D000: banco inexistente
		return len(pgErr.Code) == 5 && (pgErr.Code[:2] == "08" || pgErr.Code[:2] == "28" || pgErr.Code == "3D000")
	}

	return pgconn.SafeToRetry(err)
}

// NewNullDate converte a data de admissão para parâmetros de Exec (driver.Valuer);
// a data zero é gravada como NULL. O COPY não aceita esse tipo, ver dateToPg nos repositórios.
func NewNullDate(d entities.Date) pgtype.Date {
	if d.IsZero() {
		return pgtype.Date{Status: pgtype.Null}
	}
	return pgtype.Date{
		Time:   time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
		Status: pgtype.Present,
	}
}
