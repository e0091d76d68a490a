package kafka

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/IBM/sarama"
)

type KafkaClient struct {
	consumer     sarama.ConsumerGroup
	producer     sarama.SyncProducer
	batchSize    int
	batchTimeout time.Duration
}

type Message struct {
	Key      string
	Value    []byte
	Headers  map[string]string
	internal *sarama.ConsumerMessage
}

type Handler func(messages []Message) error

const consumerRetryDelay = 5 * time.Second

func NewConfig(batchSize int) *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V2_8_0_0

	// Consumer config
	config.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Group.Session.Timeout = 30 * time.Second
	config.Consumer.Group.Heartbeat.Interval = 10 * time.Second
	config.Consumer.MaxProcessingTime = 60 * time.Second
	config.Consumer.MaxWaitTime = 250 * time.Millisecond
	config.ChannelBufferSize = max(batchSize*2, 256)

	// Producer config - eventos de domínio são poucos, priorizamos entrega
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1024 * 1024

	return config
}

// NewKafkaProducer cria um client que só publica.
func NewKafkaProducer(brokers []string) (*KafkaClient, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewConfig(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	log.Printf("Kafka producer initialized for brokers %v", brokers)

	return NewKafkaClientFrom(nil, producer, 1), nil
}

// NewKafkaConsumer cria um client que só consome, em lotes de batchSize.
func NewKafkaConsumer(brokers []string, groupID string, batchSize int) (*KafkaClient, error) {
	consumer, err := sarama.NewConsumerGroup(brokers, groupID, NewConfig(batchSize))
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	log.Printf("Kafka consumer initialized with batch size: %d", batchSize)

	return NewKafkaClientFrom(consumer, nil, batchSize), nil
}

func NewKafkaClientFrom(consumer sarama.ConsumerGroup, producer sarama.SyncProducer, batchSize int) *KafkaClient {
	if batchSize <= 0 {
		batchSize = 1
	}

	return &KafkaClient{
		consumer:     consumer,
		producer:     producer,
		batchSize:    batchSize,
		batchTimeout: 2 * time.Second,
	}
}

func (k *KafkaClient) Consumer(ctx context.Context, handler Handler, topic string) error {
	if k.consumer == nil {
		return errors.New("kafka client has no consumer group")
	}

	consumerHandler := &consumerGroupHandler{
		handler:      handler,
		batchSize:    k.batchSize,
		batchTimeout: k.batchTimeout,
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("Kafka consumer context cancelled")
			return nil
		default:
			if err := k.consumer.Consume(ctx, []string{topic}, consumerHandler); err != nil {
				if errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return nil
				}
				log.Printf("Error consuming from topic %s: %v", topic, err)
				waitRetry(ctx)
				continue
			}

			// Lote falhou: a sessão foi encerrada sem marcar e o próximo Consume relê do último commit
			if consumerHandler.failed.Swap(false) {
				log.Printf("Batch failed on topic %s, rejoining group to redeliver", topic)
				waitRetry(ctx)
			}
		}
	}
}

func waitRetry(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(consumerRetryDelay):
	}
}

func (k *KafkaClient) Producer(messages []Message, topic string) error {
	if len(messages) == 0 {
		return nil
	}
	if k.producer == nil {
		return errors.New("kafka client has no producer")
	}

	kafkaMessages := make([]*sarama.ProducerMessage, len(messages))
	for i, msg := range messages {
		kafkaMessages[i] = &sarama.ProducerMessage{
			Topic:   topic,
			Key:     sarama.StringEncoder(msg.Key),
			Value:   sarama.ByteEncoder(msg.Value),
			Headers: toRecordHeaders(msg.Headers),
		}
	}

	if err := k.producer.SendMessages(kafkaMessages); err != nil {
		var producerErrors sarama.ProducerErrors
		if errors.As(err, &producerErrors) {
			for _, pErr := range producerErrors {
				log.Printf("  - message to %s failed: %v", pErr.Msg.Topic, pErr.Err)
			}
			return fmt.Errorf("batch send failed: %d/%d messages failed", len(producerErrors), len(messages))
		}
		return fmt.Errorf("batch send failed: %w", err)
	}

	return nil
}

func (k *KafkaClient) Close() error {
	var errs []error

	if k.consumer != nil {
		if err := k.consumer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close consumer: %w", err))
		}
	}

	if k.producer != nil {
		if err := k.producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close producer: %w", err))
		}
	}

	return errors.Join(errs...)
}

func toRecordHeaders(headers map[string]string) []sarama.RecordHeader {
	if len(headers) == 0 {
		return nil
	}

	recordHeaders := make([]sarama.RecordHeader, 0, len(headers))
	for key, value := range headers {
		recordHeaders = append(recordHeaders, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}

	return recordHeaders
}

func fromRecordHeaders(headers []*sarama.RecordHeader) map[string]string {
	if len(headers) == 0 {
		return nil
	}

	result := make(map[string]string, len(headers))
	for _, header := range headers {
		if header == nil {
			continue
		}
		result[string(header.Key)] = string(header.Value)
	}

	return result
}

// consumerGroupHandler implementa sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	handler      Handler
	batchSize    int
	batchTimeout time.Duration
	failed       atomic.Bool
}

func (h *consumerGroupHandler) Setup(session sarama.ConsumerGroupSession) error {
	log.Printf("Kafka consumer group session setup - batch size: %d", h.batchSize)
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Println("Kafka consumer group session cleanup")
	return nil
}

// ConsumeClaim entrega lotes ao handler. Se um lote falha, nenhuma mensagem
// dele é marcada e o claim termina com erro: a sessão é encerrada e o grupo
// volta a ler a partir do último offset commitado, reentregando o lote.
func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Printf("Starting consumer for partition %d (batch: %d, timeout: %v)",
		claim.Partition(), h.batchSize, h.batchTimeout)

	messages := make([]Message, 0, h.batchSize)
	timer := time.NewTimer(h.batchTimeout)
	defer timer.Stop()

	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return h.processBatch(session, claim, messages)
			}

			messages = append(messages, Message{
				Key:      string(message.Key),
				Value:    message.Value,
				Headers:  fromRecordHeaders(message.Headers),
				internal: message,
			})

			if len(messages) >= h.batchSize {
				if err := h.processBatch(session, claim, messages); err != nil {
					return err
				}
				messages = messages[:0]
				timer.Reset(h.batchTimeout)
			}

		case <-timer.C:
			if err := h.processBatch(session, claim, messages); err != nil {
				return err
			}
			messages = messages[:0]
			timer.Reset(h.batchTimeout)

		case <-session.Context().Done():
			return h.processBatch(session, claim, messages)
		}
	}
}

func (h *consumerGroupHandler) processBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, messages []Message) error {
	if len(messages) == 0 {
		return nil
	}

	if err := h.handler(messages); err != nil {
		h.failed.Store(true)
		log.Printf("Handler error for batch of %d messages: %v", len(messages), err)
		return fmt.Errorf("batch from offset %d on %s/%d not processed: %w",
			messages[0].Offset(), claim.Topic(), claim.Partition(), err)
	}

	for _, msg := range messages {
		if msg.internal != nil {
			session.MarkMessage(msg.internal, "")
		}
	}

	return nil
}

// Offset devolve o offset da mensagem consumida, ou -1 para mensagens criadas localmente.
func (m Message) Offset() int64 {
	if m.internal == nil {
		return -1
	}
	return m.internal.Offset
}
