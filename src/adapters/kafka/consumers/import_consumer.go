package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"colaboradores/src/domain/entities"
	"colaboradores/src/infra/kafka"
)

// ColaboradorImporter é satisfeito pelo colaborador.ColaboradorService.
type ColaboradorImporter interface {
	Import(ctx context.Context, colaboradores []entities.Colaborador) (int, error)
}

type ImportConsumer struct {
	logger   *slog.Logger
	importer ColaboradorImporter
}

func NewImportConsumer(
	logger *slog.Logger,
	importer ColaboradorImporter,
) *ImportConsumer {
	return &ImportConsumer{
		logger:   logger,
		importer: importer,
	}
}

func (c *ImportConsumer) Start(ctx context.Context, kafkaClient *kafka.KafkaClient, topic string) error {
	c.logger.Info("Starting colaboradores import consumer", "topic", topic)

	handler := func(messages []kafka.Message) error {
		return c.handleMessages(ctx, messages)
	}

	return kafkaClient.Consumer(ctx, handler, topic)
}

// handleMessages grava o lote inteiro ou nada: uma mensagem inválida devolve erro
// e o lote não é marcado, sendo entregue de novo.
func (c *ImportConsumer) handleMessages(ctx context.Context, messages []kafka.Message) error {
	if len(messages) == 0 {
		return nil
	}

	c.logger.Info("Processing messages batch", "count", len(messages))

	colaboradores := make([]entities.Colaborador, 0, len(messages))

	for _, msg := range messages {
		// mesmo corpo aceito pelo POST /api/colaboradores
		var colaborador entities.Colaborador
		if err := json.Unmarshal(msg.Value, &colaborador); err != nil {
			c.logger.Error("Failed to unmarshal message",
				"error", err,
				"key", msg.Key,
				"value", string(msg.Value))
			return fmt.Errorf("failed to unmarshal message with key %s: %w", msg.Key, err)
		}

		colaboradores = append(colaboradores, colaborador)
	}

	imported, err := c.importer.Import(ctx, colaboradores)
	if err != nil {
		c.logger.Error("Failed to import colaboradores",
			"error", err,
			"count", len(colaboradores))
		return fmt.Errorf("failed to import colaboradores: %w", err)
	}

	c.logger.Info("Successfully processed messages batch",
		"count", len(messages),
		"imported", imported)

	return nil
}
