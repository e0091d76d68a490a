package colaborador

import (
	"context"
	"log/slog"

	"colaboradores/src/domain"
	"colaboradores/src/domain/entities"
)

type ColaboradorRepository interface {
	ListAll(ctx context.Context) ([]entities.Colaborador, error)
	Create(ctx context.Context, colaborador entities.Colaborador) (int64, error)
	Update(ctx context.Context, id int64, colaborador entities.Colaborador) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	ImportMany(ctx context.Context, colaboradores []entities.Colaborador) (int64, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.ColaboradorEvent) error
}

type ColaboradorService struct {
	logger     *slog.Logger
	repository ColaboradorRepository
	publisher  EventPublisher
}

func NewColaboradorService(
	logger *slog.Logger,
	repository ColaboradorRepository,
	publisher EventPublisher,
) *ColaboradorService {
	return &ColaboradorService{
		logger:     logger,
		repository: repository,
		publisher:  publisher,
	}
}

// publish nunca falha a escrita que originou o evento.
func (s *ColaboradorService) publish(ctx context.Context, event domain.ColaboradorEvent) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish colaborador event",
			"error", err,
			"event_type", event.EventType,
			"colaborador_id", event.ColaboradorID)
	}
}
