package ui_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"colaboradores/src/client"
	"colaboradores/src/repositories"
	"colaboradores/src/test_artefacts/stubs"
	"colaboradores/src/ui"
)

var _ = Describe("Container", func() {
	var (
		server     *httptest.Server
		apiClient  *client.ColaboradoresClient
		repository *repositories.InMemoryColaboradorRepository
		container  *ui.Container
		ctx        context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		server, apiClient, repository = newBackend()
		container = ui.NewContainer(apiClient)
	})

	AfterEach(func() {
		server.Close()
	})

	It("starts listing", func() {
		Expect(container.Mount(ctx)).To(Succeed())

		Expect(container.State()).To(Equal(ui.Listing{}))
		Expect(container.Form()).To(BeNil())
	})

	It("opens a blank form on add and goes back to a refreshed list on save", func() {
		// ARRANGE
		Expect(container.Mount(ctx)).To(Succeed())

		// ACT
		Expect(container.List().Add(ctx)).To(Succeed())

		// ASSERT
		Expect(container.State()).To(Equal(ui.Editing{Record: nil}))
		form := container.Form()
		Expect(form).NotTo(BeNil())
		Expect(form.IsNew()).To(BeTrue())

		// ACT
		Expect(form.Set("nome", "Ana")).To(Succeed())
		Expect(form.Submit(ctx)).To(Succeed())

		// ASSERT
		Expect(container.State()).To(Equal(ui.Listing{}))
		Expect(container.List().Colaboradores()).To(HaveLen(1))
	})

	It("opens the selected record on edit", func() {
		// ARRANGE
		existing := stubs.NewColaboradorStub().Get()
		existing.ID, _ = repository.Create(ctx, existing)
		Expect(container.Mount(ctx)).To(Succeed())

		// ACT
		Expect(container.List().Edit(ctx, container.List().Colaboradores()[0])).To(Succeed())

		// ASSERT
		state, editing := container.State().(ui.Editing)
		Expect(editing).To(BeTrue())
		Expect(state.Record).NotTo(BeNil())
		Expect(state.Record.ID).To(Equal(existing.ID))
		Expect(container.Form().IsNew()).To(BeFalse())
	})

	It("returns to the list on cancel without saving", func() {
		// ARRANGE
		container.ShowForm(nil)
		Expect(container.Form().Set("nome", "Descartado")).To(Succeed())

		// ACT
		Expect(container.Form().Cancel(ctx)).To(Succeed())

		// ASSERT
		Expect(container.State()).To(Equal(ui.Listing{}))
		colaboradores, _ := repository.ListAll(ctx)
		Expect(colaboradores).To(BeEmpty())
	})

	Context("Render", func() {
		It("renders an empty list", func() {
			var out bytes.Buffer
			Expect(container.Mount(ctx)).To(Succeed())

			Expect(ui.Render(&out, container)).To(Succeed())

			Expect(out.String()).To(ContainSubstring("Nenhum colaborador cadastrado."))
		})

		It("renders the table", func() {
			// ARRANGE
			ana := stubs.NewColaboradorStub().WithNome("Ana").WithCargo("Dev").WithSalario("5000").WithDataAdmissao(2024, time.January, 1).Get()
			_, _ = repository.Create(ctx, ana)
			Expect(container.Mount(ctx)).To(Succeed())
			var out bytes.Buffer

			// ACT
			Expect(ui.Render(&out, container)).To(Succeed())

			// ASSERT
			Expect(out.String()).To(ContainSubstring("NOME"))
			Expect(out.String()).To(ContainSubstring("Ana"))
			Expect(out.String()).To(ContainSubstring("5000.00"))
			Expect(out.String()).To(ContainSubstring("2024-01-01"))
		})

		It("renders the form being edited", func() {
			// ARRANGE
			existing := stubs.NewColaboradorStub().WithID(3).WithNome("Bia").Get()
			container.ShowForm(&existing)
			var out bytes.Buffer

			// ACT
			Expect(ui.Render(&out, container)).To(Succeed())

			// ASSERT
			Expect(out.String()).To(ContainSubstring("Editando colaborador #3"))
			Expect(out.String()).To(ContainSubstring("Bia"))
		})
	})
})
