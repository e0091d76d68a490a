package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"colaboradores/src/adapters/kafka/consumers"
	"colaboradores/src/helper/env"
	"colaboradores/src/infra/kafka"
	"colaboradores/src/infra/postgres"
	"colaboradores/src/infra/redis"
	"colaboradores/src/repositories"
	"colaboradores/src/services/colaborador"
	"colaboradores/src/services/events"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func main() {
	log.SetOutput(os.Stdout)
	log.Println("Starting Colaboradores Import Consumer with Uber Fx...")

	app := fx.New(
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),

		// Providers
		fx.Provide(
			newLogger,
			newConnectionPool,
			newListCache,
			newEventPublisher,
			newColaboradorService,
			newImportConsumer,
		),

		// Invocations
		fx.Invoke(startConsumer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start consumer application: %v", err)
	}

	<-app.Done()

	log.Println("Shutting down import consumer...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}

	log.Println("Import consumer shutdown complete")
}

func newLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func newConnectionPool(lc fx.Lifecycle, logger *slog.Logger) (*postgres.ConnectionPool, error) {
	dbHost := env.MustGetString("DB_HOST")
	dbPort := env.GetString("DB_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.GetString("DB_PASS")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 0)

	pgxPool, err := postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
	if err != nil {
		return nil, err
	}

	pool := postgres.NewConnectionPool(pgxPool)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := pool.Ping(ctx); err != nil {
				logger.Error("Database connection test failed", "host", dbHost, "error", err)
				return err
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			pool.Shutdown()
			return nil
		},
	})

	return pool, nil
}

// A listagem servida pela API fica em cache, então o import também invalida.
func newListCache(lc fx.Lifecycle) repositories.ListCache {
	redisHosts := env.GetList("REDIS_HOSTS")
	if len(redisHosts) == 0 {
		return nil
	}

	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 10)
	redisDefaultTTL := env.GetSeconds("REDIS_DEFAULT_TTL_SECONDS", 60)

	client := redis.NewRedisClient(redisHosts, redisPoolSize, redisDefaultTTL)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client
}

// Importações em massa só geram eventos quando habilitadas explicitamente.
func newEventPublisher(lc fx.Lifecycle, logger *slog.Logger) (colaborador.EventPublisher, error) {
	if !env.GetBool("KAFKA_EVENTS_ENABLED", false) {
		logger.Info("KAFKA_EVENTS_ENABLED not set, domain events disabled")
		return events.NoopPublisher{}, nil
	}

	topic := env.GetString("KAFKA_EVENTS_TOPIC", "colaboradores.events")

	kafkaClient, err := kafka.NewKafkaProducer(env.GetList("KAFKA_BROKERS"))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return kafkaClient.Close()
		},
	})

	return events.NewDomainEventPublisher(logger, kafkaClient, topic), nil
}

func newColaboradorService(
	logger *slog.Logger,
	pool *postgres.ConnectionPool,
	cache repositories.ListCache,
	publisher colaborador.EventPublisher,
) *colaborador.ColaboradorService {
	repository := repositories.NewCachedColaboradorRepository(repositories.NewPostgresColaboradorRepository(pool), cache)

	return colaborador.NewColaboradorService(logger, repository, publisher)
}

func newImportConsumer(
	logger *slog.Logger,
	colaboradorService *colaborador.ColaboradorService,
) *consumers.ImportConsumer {
	return consumers.NewImportConsumer(logger, colaboradorService)
}

func startConsumer(
	lc fx.Lifecycle,
	logger *slog.Logger,
	importConsumer *consumers.ImportConsumer,
) {
	var (
		kafkaClient *kafka.KafkaClient
		cancel      context.CancelFunc
		done        = make(chan struct{})
	)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			brokers := env.GetList("KAFKA_BROKERS")
			groupID := env.GetString("KAFKA_IMPORT_CONSUMER_GROUP_ID", "colaboradores-import")
			batchSize := env.GetInt("KAFKA_BATCH_SIZE", 500)
			topic := env.GetString("KAFKA_IMPORT_TOPIC", "colaboradores.import")

			var err error
			kafkaClient, err = kafka.NewKafkaConsumer(brokers, groupID, batchSize)
			if err != nil {
				return err
			}

			// O ctx do OnStart é cancelado ao fim do start, o consumer precisa do seu
			var consumerCtx context.Context
			consumerCtx, cancel = context.WithCancel(context.Background())

			go func() {
				defer close(done)
				if err := importConsumer.Start(consumerCtx, kafkaClient, topic); err != nil {
					logger.Error("Consumer failed", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down Kafka client...")
			cancel()

			if err := kafkaClient.Close(); err != nil {
				logger.Error("Failed to close Kafka client", "error", err)
				return err
			}

			select {
			case <-done:
			case <-ctx.Done():
			}

			logger.Info("Kafka client shut down gracefully")
			return nil
		},
	})
}
