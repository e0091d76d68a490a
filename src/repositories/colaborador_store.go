package repositories

import (
	"context"

	"colaboradores/src/domain/entities"
)

// ColaboradorStore é o contrato comum às implementações de armazenamento.
// Update e Delete retornam o número de linhas afetadas; zero não é erro.
type ColaboradorStore interface {
	ListAll(ctx context.Context) ([]entities.Colaborador, error)
	Create(ctx context.Context, colaborador entities.Colaborador) (int64, error)
	Update(ctx context.Context, id int64, colaborador entities.Colaborador) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	ImportMany(ctx context.Context, colaboradores []entities.Colaborador) (int64, error)
}
