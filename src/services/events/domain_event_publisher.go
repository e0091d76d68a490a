package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"colaboradores/src/domain"
	"colaboradores/src/domain/entities"
	"colaboradores/src/infra/kafka"

	"github.com/google/uuid"
)

const (
	SourceService = "colaboradores-api"
	SchemaVersion = "v1"
)

// MessageProducer é satisfeito pelo kafka.KafkaClient.
type MessageProducer interface {
	Producer(messages []kafka.Message, topic string) error
}

type DomainEventPublisher struct {
	logger   *slog.Logger
	producer MessageProducer
	topic    string
}

func NewDomainEventPublisher(
	logger *slog.Logger,
	producer MessageProducer,
	topic string,
) *DomainEventPublisher {
	return &DomainEventPublisher{
		logger:   logger,
		producer: producer,
		topic:    topic,
	}
}

// NewColaboradorEvent monta o evento com id e horário preenchidos.
func NewColaboradorEvent(eventType string, colaboradorID int64, colaborador *entities.Colaborador, affected int64) domain.ColaboradorEvent {
	return domain.ColaboradorEvent{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		ColaboradorID: colaboradorID,
		Colaborador:   colaborador,
		Affected:      affected,
		OccurredAt:    time.Now().UTC(),
	}
}

// Publish envia os eventos em um único lote para o tópico configurado.
func (p *DomainEventPublisher) Publish(ctx context.Context, events ...domain.ColaboradorEvent) error {
	if len(events) == 0 {
		return nil
	}

	kafkaMessages := make([]kafka.Message, 0, len(events))

	for _, event := range events {
		eventBytes, err := json.Marshal(event)
		if err != nil {
			p.logger.Error("Failed to marshal domain event",
				"error", err,
				"event_id", event.EventID,
				"colaborador_id", event.ColaboradorID)
			continue
		}

		kafkaMessages = append(kafkaMessages, kafka.Message{
			Key:     messageKey(event),
			Value:   eventBytes,
			Headers: createEventHeaders(event),
		})
	}

	if err := p.producer.Producer(kafkaMessages, p.topic); err != nil {
		p.logger.Error("Failed to publish domain events to Kafka",
			"error", err,
			"topic", p.topic,
			"events_count", len(kafkaMessages))
		return fmt.Errorf("failed to publish domain events to topic %s: %w", p.topic, err)
	}

	p.logger.Debug("Published domain events",
		"topic", p.topic,
		"events_count", len(kafkaMessages))

	return nil
}

// Particiona por colaborador para manter a ordem dos eventos de um mesmo registro.
func messageKey(event domain.ColaboradorEvent) string {
	if event.ColaboradorID == 0 {
		return event.EventID
	}
	return strconv.FormatInt(event.ColaboradorID, 10)
}

func createEventHeaders(event domain.ColaboradorEvent) map[string]string {
	return map[string]string{
		"event_type":     event.EventType,
		"source_service": SourceService,
		"schema_version": SchemaVersion,
		"event_id":       event.EventID,
	}
}

// NoopPublisher descarta os eventos; usado quando KAFKA_BROKERS está vazio.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, events ...domain.ColaboradorEvent) error {
	return nil
}
