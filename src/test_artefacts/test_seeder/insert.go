package test_seeder

import (
	"context"
	"fmt"

	"colaboradores/src/domain/entities"
)

// InsertColaborador grava o colaborador e preenche o ID gerado pelo banco
func (ts TestSeeder) InsertColaborador(ctx context.Context, colaborador *entities.Colaborador) {
	query := `
		INSERT INTO colaboradores (nome, cargo, salario, data_admissao)
		VALUES ($1, $2, $3::text::numeric, $4::text::date) RETURNING id`

	var dataAdmissao *string
	if !colaborador.DataAdmissao.IsZero() {
		formatted := colaborador.DataAdmissao.String()
		dataAdmissao = &formatted
	}

	err := ts.pool.QueryRow(ctx, query,
		colaborador.Nome,
		colaborador.Cargo,
		colaborador.Salario.String(),
		dataAdmissao,
	).Scan(&colaborador.ID)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertColaborador failed: %v", err))
	}
}
