package colaborador

import (
	"context"

	"colaboradores/src/domain"
	"colaboradores/src/services/events"
)

// Delete remove o colaborador. Um id inexistente não é erro.
func (s *ColaboradorService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repository.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.logger.Debug("colaborador delete applied", "colaborador_id", id, "affected", affected)

	if affected == 0 {
		return nil
	}

	s.publish(ctx, events.NewColaboradorEvent(domain.EventTypeColaboradorDeleted, id, nil, affected))

	return nil
}
