package colaborador

import (
	"context"

	"colaboradores/src/domain"
	"colaboradores/src/domain/entities"
	"colaboradores/src/services/events"
)

// Update substitui os quatro campos do colaborador. Um id inexistente não é erro.
func (s *ColaboradorService) Update(ctx context.Context, id int64, colaborador entities.Colaborador) error {
	colaborador.ID = id

	affected, err := s.repository.Update(ctx, id, colaborador)
	if err != nil {
		return err
	}

	s.logger.Debug("colaborador update applied", "colaborador_id", id, "affected", affected)

	if affected == 0 {
		return nil
	}

	s.publish(ctx, events.NewColaboradorEvent(domain.EventTypeColaboradorUpdated, id, &colaborador, affected))

	return nil
}
