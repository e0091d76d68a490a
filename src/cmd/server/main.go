package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	httpadapter "colaboradores/src/adapters/http"
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
	log.Println("Starting API server with Uber Fx...")

	app := fx.New(
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),

		// Providers
		fx.Provide(
			newLogger,
			newColaboradorStore,
			newListCache,
			newEventPublisher,
			newColaboradorService,
			newServer,
		),

		// Invocations
		fx.Invoke(registerServerHooks),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wait for app to exit gracefully
	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}
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

// newColaboradorStore escolhe o armazenamento pelo STORE_DRIVER. Com postgres o
// pool é testado no start; se o banco não responder o processo não sobe.
func newColaboradorStore(lc fx.Lifecycle, logger *slog.Logger) (repositories.ColaboradorStore, httpadapter.HealthChecker, error) {
	driver := env.GetString("STORE_DRIVER", "postgres")

	switch driver {
	case "memory":
		logger.Warn("Using in-memory store, data is lost on restart")
		return repositories.NewInMemoryColaboradorRepository(), nil, nil
	case "postgres":
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}

	dbHost := env.MustGetString("DB_HOST")
	dbPort := env.GetString("DB_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.GetString("DB_PASS")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 0)

	pgxPool, err := postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
	if err != nil {
		return nil, nil, err
	}

	pool := postgres.NewConnectionPool(pgxPool)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := pool.Ping(ctx); err != nil {
				logger.Error("Database connection test failed", "host", dbHost, "database", dbname, "error", err)
				return err
			}
			logger.Info("Database connection established", "host", dbHost, "database", dbname)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			pool.Shutdown()
			return nil
		},
	})

	return repositories.NewPostgresColaboradorRepository(pool), pool, nil
}

// newListCache devolve nil quando REDIS_HOSTS não está configurado.
func newListCache(lc fx.Lifecycle, logger *slog.Logger) repositories.ListCache {
	redisHosts := env.GetList("REDIS_HOSTS")
	if len(redisHosts) == 0 {
		logger.Info("REDIS_HOSTS not set, list cache disabled")
		return nil
	}

	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 10)
	redisDefaultTTL := env.GetSeconds("REDIS_DEFAULT_TTL_SECONDS", 60)

	client := redis.NewRedisClient(redisHosts, redisPoolSize, redisDefaultTTL)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// cache fora do ar não impede o start, as leituras caem no banco
			if err := client.HealthCheck(ctx); err != nil {
				logger.Warn("Redis health check failed", "error", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client
}

// newEventPublisher devolve um publisher que descarta eventos quando KAFKA_BROKERS está vazio
// ou KAFKA_EVENTS_ENABLED=false.
func newEventPublisher(lc fx.Lifecycle, logger *slog.Logger) (colaborador.EventPublisher, error) {
	if !env.GetBool("KAFKA_EVENTS_ENABLED", true) {
		logger.Info("KAFKA_EVENTS_ENABLED is false, domain events disabled")
		return events.NoopPublisher{}, nil
	}

	brokers := env.GetList("KAFKA_BROKERS")
	if len(brokers) == 0 {
		logger.Info("KAFKA_BROKERS not set, domain events disabled")
		return events.NoopPublisher{}, nil
	}

	kafkaClient, err := kafka.NewKafkaProducer(brokers)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return kafkaClient.Close()
		},
	})

	topic := env.GetString("KAFKA_EVENTS_TOPIC", "colaboradores.events")

	return events.NewDomainEventPublisher(logger, kafkaClient, topic), nil
}

func newColaboradorService(
	logger *slog.Logger,
	store repositories.ColaboradorStore,
	cache repositories.ListCache,
	publisher colaborador.EventPublisher,
) *colaborador.ColaboradorService {
	cachedRepository := repositories.NewCachedColaboradorRepository(store, cache)

	return colaborador.NewColaboradorService(logger, cachedRepository, publisher)
}

func newServer(
	logger *slog.Logger,
	colaboradorService *colaborador.ColaboradorService,
	healthChecker httpadapter.HealthChecker,
) *httpadapter.Server {
	port := env.GetInt("PORT", 3000)
	allowedOrigin := env.GetString("CORS_ALLOWED_ORIGIN", "*")

	return httpadapter.NewServer(logger, port, allowedOrigin, colaboradorService, healthChecker)
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, shutdowner fx.Shutdowner, srv *httpadapter.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Printf("Server failed: %v", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server forced to shutdown: %v", err)
				return err
			}
			log.Println("Server exited gracefully")
			return nil
		},
	})
}
