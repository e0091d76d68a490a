package colaborador

import (
	"context"

	"colaboradores/src/domain"
	"colaboradores/src/domain/entities"
	"colaboradores/src/services/events"
)

// Create persiste o colaborador e devolve o registro com o id gerado.
// Um id vindo no payload é ignorado.
func (s *ColaboradorService) Create(ctx context.Context, colaborador entities.Colaborador) (entities.Colaborador, error) {
	colaborador = colaborador.WithoutID()

	id, err := s.repository.Create(ctx, colaborador)
	if err != nil {
		return entities.Colaborador{}, err
	}

	colaborador.ID = id

	s.publish(ctx, events.NewColaboradorEvent(domain.EventTypeColaboradorCreated, id, &colaborador, 1))

	return colaborador, nil
}
