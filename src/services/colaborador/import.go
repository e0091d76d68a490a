package colaborador

import (
	"context"

	"colaboradores/src/domain"
	"colaboradores/src/domain/entities"
	"colaboradores/src/services/events"
)

// Import grava um lote vindo do consumer; ids do lote são descartados.
func (s *ColaboradorService) Import(ctx context.Context, colaboradores []entities.Colaborador) (int, error) {
	if len(colaboradores) == 0 {
		return 0, nil
	}

	batch := make([]entities.Colaborador, len(colaboradores))
	for i, c := range colaboradores {
		batch[i] = c.WithoutID()
	}

	imported, err := s.repository.ImportMany(ctx, batch)
	if err != nil {
		return 0, err
	}

	s.logger.Info("colaboradores imported", "count", imported)

	s.publish(ctx, events.NewColaboradorEvent(domain.EventTypeColaboradoresImported, 0, nil, imported))

	return int(imported), nil
}
