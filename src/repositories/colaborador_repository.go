package repositories

import (
	"context"
	"fmt"
	"time"

	"colaboradores/src/domain"
	"colaboradores/src/domain/entities"
	"colaboradores/src/infra/postgres"

	"github.com/jackc/pgx/v5"
	pgxtype "github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var colaboradorColumns = []string{"nome", "cargo", "salario", "data_admissao"}

type PostgresColaboradorRepository struct {
	pool *postgres.ConnectionPool
}

func NewPostgresColaboradorRepository(pool *postgres.ConnectionPool) *PostgresColaboradorRepository {
	return &PostgresColaboradorRepository{pool: pool}
}

func (r *PostgresColaboradorRepository) ListAll(ctx context.Context) ([]entities.Colaborador, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Release(conn)

	query := `
		SELECT 
			id, 
			nome, 
			cargo, 
			salario, 
			data_admissao
		FROM 
			colaboradores
		ORDER BY 
			id;
	`

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, storeError("ListAll", err)
	}
	defer rows.Close()

	colaboradores := make([]entities.Colaborador, 0)
	for rows.Next() {
		var (
			id           int64
			nome, cargo  pgxtype.Text
			salario      pgxtype.Numeric
			dataAdmissao pgxtype.Date
		)

		if err := rows.Scan(&id, &nome, &cargo, &salario, &dataAdmissao); err != nil {
			return nil, storeError("ListAll", err)
		}

		colaborador := entities.Colaborador{
			ID:    id,
			Nome:  nome.String,
			Cargo: cargo.String,
		}

		colaborador.Salario, err = numericToDecimal(salario)
		if err != nil {
			return nil, storeError("ListAll", err)
		}

		if dataAdmissao.Valid {
			colaborador.DataAdmissao = entities.DateOf(dataAdmissao.Time)
		}

		colaboradores = append(colaboradores, colaborador)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("ListAll", err)
	}

	return colaboradores, nil
}

func (r *PostgresColaboradorRepository) Create(ctx context.Context, colaborador entities.Colaborador) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer r.pool.Release(conn)

	query := `
		INSERT INTO 
			colaboradores (nome, cargo, salario, data_admissao)
		VALUES 
			($1, $2, $3, $4)
		RETURNING 
			id;
	`

	var id int64
	err = conn.QueryRow(ctx, query,
		colaborador.Nome,
		colaborador.Cargo,
		decimalToNumeric(colaborador.Salario),
		postgres.NewNullDate(colaborador.DataAdmissao),
	).Scan(&id)
	if err != nil {
		return 0, storeError("Create", err)
	}

	return id, nil
}

func (r *PostgresColaboradorRepository) Update(ctx context.Context, id int64, colaborador entities.Colaborador) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer r.pool.Release(conn)

	query := `
		UPDATE 
			colaboradores 
		SET 
			nome = $1, 
			cargo = $2, 
			salario = $3, 
			data_admissao = $4
		WHERE 
			id = $5;
	`

	tag, err := conn.Exec(ctx, query,
		colaborador.Nome,
		colaborador.Cargo,
		decimalToNumeric(colaborador.Salario),
		postgres.NewNullDate(colaborador.DataAdmissao),
		id,
	)
	if err != nil {
		return 0, storeError("Update", err)
	}

	return tag.RowsAffected(), nil
}

func (r *PostgresColaboradorRepository) Delete(ctx context.Context, id int64) (int64, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer r.pool.Release(conn)

	tag, err := conn.Exec(ctx, `DELETE FROM colaboradores WHERE id = $1;`, id)
	if err != nil {
		return 0, storeError("Delete", err)
	}

	return tag.RowsAffected(), nil
}

// ImportMany grava o lote inteiro numa transação via COPY; ids do payload são ignorados.
func (r *PostgresColaboradorRepository) ImportMany(ctx context.Context, colaboradores []entities.Colaborador) (int64, error) {
	if len(colaboradores) == 0 {
		return 0, nil
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer r.pool.Release(conn)

	rows := make([][]interface{}, 0, len(colaboradores))
	for _, c := range colaboradores {
		rows = append(rows, []interface{}{c.Nome, c.Cargo, decimalToNumeric(c.Salario), dateToPg(c.DataAdmissao)})
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, storeError("ImportMany", err)
	}
	defer tx.Rollback(ctx)

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{domain.TableColaboradores}, colaboradorColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, storeError("ImportMany", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, storeError("ImportMany", err)
	}

	return copied, nil
}

func storeError(operation string, err error) error {
	if postgres.IsConnectionFailure(err) {
		return fmt.Errorf("PostgresColaboradorRepository.%s - %w: %w", operation, domain.ErrConnection, err)
	}
	return fmt.Errorf("PostgresColaboradorRepository.%s - %w: %w", operation, domain.ErrStore, err)
}

func decimalToNumeric(d decimal.Decimal) pgxtype.Numeric {
	return pgxtype.Numeric{
		Int:   d.Coefficient(),
		Exp:   d.Exponent(),
		Valid: true,
	}
}

func numericToDecimal(n pgxtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Zero, nil
	}
	if n.NaN || n.InfinityModifier != pgxtype.Finite {
		return decimal.Zero, fmt.Errorf("salario is not a finite number")
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}

// dateToPg é usado só no COPY: o CopyFrom do pgx v5 grava em formato binário e
// precisa de um tipo codificável pelo v5. Create e Update passam postgres.NewNullDate.
func dateToPg(d entities.Date) pgxtype.Date {
	if d.IsZero() {
		return pgxtype.Date{}
	}
	return pgxtype.Date{
		Time:  time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
		Valid: true,
	}
}
