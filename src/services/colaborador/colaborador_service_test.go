package colaborador_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"colaboradores/src/domain"
	"colaboradores/src/domain/entities"
	"colaboradores/src/repositories"
	"colaboradores/src/services/colaborador"
	"colaboradores/src/test_artefacts/comparer"
	"colaboradores/src/test_artefacts/stubs"
)

var _ = Describe("ColaboradorService", func() {
	var (
		repository *repositories.InMemoryColaboradorRepository
		publisher  *recordingPublisher
		service    *colaborador.ColaboradorService
		logger     *slog.Logger
		ctx        context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		repository = repositories.NewInMemoryColaboradorRepository()
		publisher = &recordingPublisher{}
		service = colaborador.NewColaboradorService(logger, repository, publisher)
	})

	Context("ListAll", func() {
		When("the store is empty", func() {
			It("returns an empty sequence", func() {
				// ACT
				colaboradores, err := service.ListAll(ctx)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(colaboradores).NotTo(BeNil())
				Expect(colaboradores).To(BeEmpty())
			})
		})
	})

	Context("Create", func() {
		It("adds exactly one entry with the submitted values and a new id", func() {
			// ARRANGE
			existing := stubs.NewColaboradorStub().Get()
			_, _ = service.Create(ctx, existing)
			before, _ := service.ListAll(ctx)

			submitted := stubs.NewColaboradorStub().
				WithID(12345).
				WithNome("Ana").
				WithCargo("Dev").
				WithSalario("5000").
				WithDataAdmissao(2024, time.January, 1).
				Get()

			// ACT
			created, err := service.Create(ctx, submitted)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).NotTo(Equal(int64(12345)))
			Expect(created.HasID()).To(BeTrue())

			after, _ := service.ListAll(ctx)
			Expect(after).To(HaveLen(len(before) + 1))
			Expect(after).To(ContainElement(BeComparableTo(created, comparer.Decimal())))
			Expect(created).To(BeComparableTo(submitted, comparer.IgnoreFieldsFor[entities.Colaborador]("ID")))
		})

		It("accepts empty strings and negative salaries", func() {
			// ARRANGE
			submitted := stubs.NewColaboradorStub().WithNome("").WithCargo("").WithSalario("-10.5").Get()

			// ACT
			created, err := service.Create(ctx, submitted)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Nome).To(BeEmpty())
			Expect(created.Salario.String()).To(Equal("-10.5"))
		})

		It("publishes a created event", func() {
			// ACT
			created, err := service.Create(ctx, stubs.NewColaboradorStub().Get())

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(publisher.events).To(HaveLen(1))
			Expect(publisher.events[0].EventType).To(Equal(domain.EventTypeColaboradorCreated))
			Expect(publisher.events[0].ColaboradorID).To(Equal(created.ID))
			Expect(publisher.events[0].EventID).NotTo(BeEmpty())
		})

		When("publishing fails", func() {
			It("still creates the colaborador", func() {
				// ARRANGE
				publisher.failWith = errors.New("broker down")

				// ACT
				_, err := service.Create(ctx, stubs.NewColaboradorStub().Get())

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				colaboradores, _ := service.ListAll(ctx)
				Expect(colaboradores).To(HaveLen(1))
			})
		})
	})

	Context("Update", func() {
		It("changes only the target row and keeps its id", func() {
			// ARRANGE
			target, _ := service.Create(ctx, stubs.NewColaboradorStub().WithSalario("5000").Get())
			other, _ := service.Create(ctx, stubs.NewColaboradorStub().Get())

			changed := target
			changed.Salario = stubs.NewColaboradorStub().WithSalario("6000").Get().Salario

			// ACT
			err := service.Update(ctx, target.ID, changed.WithoutID())

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			colaboradores, _ := service.ListAll(ctx)
			Expect(colaboradores).To(BeComparableTo([]entities.Colaborador{changed, other}, comparer.Decimal()))
			Expect(publisher.eventTypes()).To(Equal([]string{
				domain.EventTypeColaboradorCreated,
				domain.EventTypeColaboradorCreated,
				domain.EventTypeColaboradorUpdated,
			}))
		})

		When("the id does not exist", func() {
			It("leaves the store unchanged without error", func() {
				// ARRANGE
				existing, _ := service.Create(ctx, stubs.NewColaboradorStub().Get())

				// ACT
				err := service.Update(ctx, existing.ID+1000, stubs.NewColaboradorStub().Get())

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				colaboradores, _ := service.ListAll(ctx)
				Expect(colaboradores).To(BeComparableTo([]entities.Colaborador{existing}))
				Expect(publisher.eventTypes()).NotTo(ContainElement(domain.EventTypeColaboradorUpdated))
			})
		})
	})

	Context("Delete", func() {
		It("removes exactly one row", func() {
			// ARRANGE
			target, _ := service.Create(ctx, stubs.NewColaboradorStub().Get())
			other, _ := service.Create(ctx, stubs.NewColaboradorStub().Get())

			// ACT
			err := service.Delete(ctx, target.ID)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			colaboradores, _ := service.ListAll(ctx)
			Expect(colaboradores).To(BeComparableTo([]entities.Colaborador{other}))
		})

		When("the id does not exist", func() {
			It("leaves the store unchanged without error", func() {
				// ARRANGE
				_, _ = service.Create(ctx, stubs.NewColaboradorStub().Get())

				// ACT
				err := service.Delete(ctx, 999)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				colaboradores, _ := service.ListAll(ctx)
				Expect(colaboradores).To(HaveLen(1))
			})
		})
	})

	Context("Import", func() {
		It("stores the whole batch and publishes a single event", func() {
			// ARRANGE
			batch := stubs.NewColaboradoresStub(5)
			batch[0].ID = 77

			// ACT
			imported, err := service.Import(ctx, batch)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(imported).To(Equal(5))
			colaboradores, _ := service.ListAll(ctx)
			Expect(colaboradores).To(HaveLen(5))
			Expect(colaboradores[0].ID).To(Equal(int64(1)))
			Expect(publisher.events).To(HaveLen(1))
			Expect(publisher.events[0].Affected).To(Equal(int64(5)))
		})

		It("ignores an empty batch", func() {
			imported, err := service.Import(ctx, nil)

			Expect(err).NotTo(HaveOccurred())
			Expect(imported).To(BeZero())
			Expect(publisher.events).To(BeEmpty())
		})
	})

	When("the store is unreachable", func() {
		BeforeEach(func() {
			unreachable := failingRepository{err: fmt.Errorf("ConnectionPool.Acquire - %w: %w", domain.ErrConnection, errDatabaseDown)}
			service = colaborador.NewColaboradorService(logger, unreachable, publisher)
		})

		It("surfaces a connection error on every operation", func() {
			_, err := service.ListAll(ctx)
			Expect(err).To(MatchError(domain.ErrConnection))

			_, err = service.Create(ctx, stubs.NewColaboradorStub().Get())
			Expect(err).To(MatchError(domain.ErrConnection))

			Expect(service.Update(ctx, 1, stubs.NewColaboradorStub().Get())).To(MatchError(domain.ErrConnection))
			Expect(service.Delete(ctx, 1)).To(MatchError(domain.ErrConnection))

			_, err = service.Import(ctx, stubs.NewColaboradoresStub(1))
			Expect(err).To(MatchError(domain.ErrConnection))

			Expect(publisher.events).To(BeEmpty())
		})
	})
})
