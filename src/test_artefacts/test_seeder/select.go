package test_seeder

import (
	"context"

	"colaboradores/src/domain/entities"

	"github.com/shopspring/decimal"
)

func (ts TestSeeder) SelectColaboradores(ctx context.Context) ([]entities.Colaborador, error) {
	query := `SELECT id, nome, cargo, salario::text, to_char(data_admissao, 'YYYY-MM-DD')
			  FROM colaboradores ORDER BY id`

	rows, err := ts.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var colaboradores []entities.Colaborador
	for rows.Next() {
		var (
			colaborador  entities.Colaborador
			salario      string
			dataAdmissao *string
		)

		if err := rows.Scan(&colaborador.ID, &colaborador.Nome, &colaborador.Cargo, &salario, &dataAdmissao); err != nil {
			return nil, err
		}

		colaborador.Salario, err = decimal.NewFromString(salario)
		if err != nil {
			return nil, err
		}

		if dataAdmissao != nil {
			colaborador.DataAdmissao, err = entities.ParseDate(*dataAdmissao)
			if err != nil {
				return nil, err
			}
		}

		colaboradores = append(colaboradores, colaborador)
	}

	return colaboradores, rows.Err()
}

func (ts TestSeeder) CountColaboradores(ctx context.Context) (int, error) {
	var count int
	err := ts.pool.QueryRow(ctx, `SELECT COUNT(*) FROM colaboradores`).Scan(&count)
	return count, err
}
