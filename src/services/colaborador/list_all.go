package colaborador

import (
	"context"

	"colaboradores/src/domain/entities"
)

// ListAll retorna todos os colaboradores; uma base vazia gera uma lista vazia, nunca nil.
func (s *ColaboradorService) ListAll(ctx context.Context) ([]entities.Colaborador, error) {
	colaboradores, err := s.repository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if colaboradores == nil {
		colaboradores = make([]entities.Colaborador, 0)
	}

	return colaboradores, nil
}
