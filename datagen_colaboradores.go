//go:build datagen_colaboradores
// +build datagen_colaboradores

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"colaboradores/src/domain/entities"
	"colaboradores/src/helper/env"
	"colaboradores/src/infra/kafka"
	"colaboradores/src/infra/postgres"
	"colaboradores/src/repositories"

	"github.com/go-faker/faker/v4"
	"github.com/shopspring/decimal"
)

var cargos = []string{
	"Desenvolvedor", "Analista de Dados", "Gerente de Projetos", "Designer",
	"Analista de RH", "Contador", "Engenheiro de Software", "Suporte Técnico",
}

func main() {
	total := flag.Int("total", 1000, "Quantidade de colaboradores a gerar")
	bulkSize := flag.Int("bulk-size", 500, "Registros por lote (COPY ou mensagens Kafka)")
	target := flag.String("target", "postgres", "Destino: postgres (COPY direto) ou kafka (tópico de import)")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n🛑 Shutdown signal received, stopping...")
		cancel()
	}()

	var sink func(ctx context.Context, batch []entities.Colaborador) error
	switch *target {
	case "postgres":
		pool := newConnectionPool()
		defer pool.Shutdown()
		repository := repositories.NewPostgresColaboradorRepository(pool)
		sink = func(ctx context.Context, batch []entities.Colaborador) error {
			_, err := repository.ImportMany(ctx, batch)
			return err
		}
	case "kafka":
		kafkaClient, err := kafka.NewKafkaProducer(env.GetList("KAFKA_BROKERS"))
		if err != nil {
			log.Fatalf("Failed to create kafka producer: %v", err)
		}
		defer kafkaClient.Close()
		topic := env.GetString("KAFKA_IMPORT_TOPIC", "colaboradores.import")
		sink = func(ctx context.Context, batch []entities.Colaborador) error {
			return kafkaClient.Producer(toMessages(batch), topic)
		}
	default:
		log.Fatalf("unknown target %q", *target)
	}

	startTime := time.Now()
	generated := 0

	for generated < *total && ctx.Err() == nil {
		size := min(*bulkSize, *total-generated)
		batch := make([]entities.Colaborador, size)
		for i := range batch {
			batch[i] = generateFakeColaborador()
		}

		if err := sink(ctx, batch); err != nil {
			log.Fatalf("Failed to write batch: %v", err)
		}

		generated += size
		fmt.Printf("📊 Generated: %d/%d | Elapsed: %v\n", generated, *total, time.Since(startTime).Round(time.Millisecond))
	}

	fmt.Printf("\n🏁 Seeding finished!\n")
	fmt.Printf("📊 Total generated: %d\n", generated)
	fmt.Printf("⏱️  Total time: %v\n", time.Since(startTime).Round(time.Millisecond))
}

func newConnectionPool() *postgres.ConnectionPool {
	pgxPool, err := postgres.NewPostgresClient(
		env.MustGetString("DB_HOST"),
		env.GetString("DB_PORT", "5432"),
		env.MustGetString("DB_NAME"),
		env.MustGetString("DB_USER"),
		env.GetString("DB_PASS"),
		env.GetInt("DB_MAX_POOL_CONNECTIONS", 0),
	)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}

	return postgres.NewConnectionPool(pgxPool)
}

func generateFakeColaborador() entities.Colaborador {
	dataAdmissao, err := entities.ParseDate(faker.Date())
	if err != nil {
		dataAdmissao = entities.DateOf(time.Now().AddDate(0, -rand.Intn(120), 0))
	}

	return entities.Colaborador{
		Nome:         faker.Name(),
		Cargo:        cargos[rand.Intn(len(cargos))],
		Salario:      decimal.New(int64(150000+rand.Intn(2850000)), -2),
		DataAdmissao: dataAdmissao,
	}
}

func toMessages(batch []entities.Colaborador) []kafka.Message {
	messages := make([]kafka.Message, 0, len(batch))
	for i, colaborador := range batch {
		value, err := json.Marshal(colaborador)
		if err != nil {
			log.Printf("Failed to marshal colaborador: %v", err)
			continue
		}
		messages = append(messages, kafka.Message{
			Key:   strconv.Itoa(i),
			Value: value,
		})
	}
	return messages
}
