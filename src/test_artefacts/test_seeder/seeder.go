package test_seeder

import (
	"context"
	"fmt"
	"os"

	"colaboradores/src/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TestSeeder struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) TestSeeder {
	return TestSeeder{pool: pool}
}

// CreateSchema aplica o DDL de referência (db/schema.sql) no banco de teste.
func (ts TestSeeder) CreateSchema(ctx context.Context, schemaPath string) {
	ddl, err := os.ReadFile(schemaPath)
	if err != nil {
		panic(fmt.Sprintf("Seeder.CreateSchema failed to read %s: %v", schemaPath, err))
	}

	if _, err := ts.pool.Exec(ctx, string(ddl)); err != nil {
		panic(fmt.Sprintf("Seeder.CreateSchema failed: %v", err))
	}
}

func (ts TestSeeder) TruncateTables(ctx context.Context) {
	tables := []string{
		domain.TableColaboradores,
	}

	for _, table := range tables {
		_, err := ts.pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
		if err != nil {
			panic(fmt.Sprintf("Failed to truncate %s: %v", table, err))
		}
	}
}
