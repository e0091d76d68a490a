package postgres_test

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"colaboradores/src/domain"
	"colaboradores/src/domain/entities"
	"colaboradores/src/infra/postgres"
)

var _ = Describe("ConnectionPool", func() {
	var (
		pool *postgres.ConnectionPool
		ctx  context.Context
	)

	BeforeEach(func() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		DeferCleanup(cancel)

		// pgxpool só conecta no primeiro Acquire; a porta 1 recusa a conexão
		pgxPool, err := postgres.NewPostgresClient("127.0.0.1", "1", "colaboradores", "user", "secret", 2)
		Expect(err).NotTo(HaveOccurred())
		pool = postgres.NewConnectionPool(pgxPool)
	})

	AfterEach(func() {
		pool.Shutdown()
	})

	When("the database is unreachable", func() {
		It("fails Acquire with a connection error", func() {
			// ACT
			conn, err := pool.Acquire(ctx)

			// ASSERT
			Expect(conn).To(BeNil())
			Expect(err).To(MatchError(domain.ErrConnection))
			Expect(err).NotTo(MatchError(domain.ErrPoolClosed))
		})

		It("fails Ping with a connection error", func() {
			Expect(pool.Ping(ctx)).To(MatchError(domain.ErrConnection))
		})
	})

	When("the pool was shut down", func() {
		It("rejects further acquisition", func() {
			// ARRANGE
			pool.Shutdown()

			// ACT
			_, err := pool.Acquire(ctx)

			// ASSERT
			Expect(pool.IsClosed()).To(BeTrue())
			Expect(err).To(MatchError(domain.ErrPoolClosed))
			Expect(err).To(MatchError(domain.ErrConnection))
		})

		It("accepts repeated shutdowns", func() {
			pool.Shutdown()

			Expect(func() { pool.Shutdown() }).NotTo(Panic())
		})
	})

	It("releases a nil connection without panicking", func() {
		Expect(func() { pool.Release(nil) }).NotTo(Panic())
	})
})

var _ = Describe("postgres helpers", func() {
	Context("NewPoolConfig", func() {
		It("keeps the driver default when maxConnections is zero", func() {
			defaults, err := postgres.NewPoolConfig("localhost", "5432", "db", "user", "pass", 0)
			Expect(err).NotTo(HaveOccurred())

			configured, err := postgres.NewPoolConfig("localhost", "5432", "db", "user", "pass", 7)
			Expect(err).NotTo(HaveOccurred())

			Expect(defaults.MaxConns).To(BeNumerically(">", 0))
			Expect(configured.MaxConns).To(Equal(int32(7)))
			Expect(configured.ConnConfig.RuntimeParams).To(HaveKeyWithValue("timezone", "UTC"))
		})
	})

	Context("IsConnectionFailure", func() {
		It("recognizes connection and authentication errors", func() {
			Expect(postgres.IsConnectionFailure(&pgconn.PgError{Code: "28P01"})).To(BeTrue())
			Expect(postgres.IsConnectionFailure(&pgconn.PgError{Code: "08006"})).To(BeTrue())
		})

		It("treats query errors as store errors", func() {
			Expect(postgres.IsConnectionFailure(&pgconn.PgError{Code: "42601"})).To(BeFalse())
			Expect(postgres.IsConnectionFailure(errors.New("boom"))).To(BeFalse())
		})
	})

	Context("NewNullDate", func() {
		It("maps the zero date to NULL", func() {
			value, err := postgres.NewNullDate(entities.Date{}).Value()

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(BeNil())
		})

		It("keeps the calendar day", func() {
			value, err := postgres.NewNullDate(entities.NewDate(2024, time.January, 1)).Value()

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
		})
	})
})
