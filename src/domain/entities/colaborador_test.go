package entities_test

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"colaboradores/src/domain/entities"
)

var _ = Describe("Colaborador JSON", func() {
	It("writes the salary as a number and the date as YYYY-MM-DD", func() {
		colaborador := entities.Colaborador{
			ID:           1,
			Nome:         "Ana",
			Cargo:        "Dev",
			Salario:      decimal.RequireFromString("5000.50"),
			DataAdmissao: entities.NewDate(2024, time.January, 1),
		}

		payload, err := json.Marshal(colaborador)

		Expect(err).NotTo(HaveOccurred())
		Expect(payload).To(MatchJSON(`{"id":1,"nome":"Ana","cargo":"Dev","salario":5000.5,"data_admissao":"2024-01-01"}`))
	})

	It("omits the id of a record that was not persisted and writes a missing date as null", func() {
		payload, err := json.Marshal(entities.Colaborador{Nome: "Ana"})

		Expect(err).NotTo(HaveOccurred())
		Expect(payload).To(MatchJSON(`{"nome":"Ana","cargo":"","salario":0,"data_admissao":null}`))
	})

	It("reads salary as number or string and the date in both accepted formats", func() {
		var fromNumber, fromString entities.Colaborador

		Expect(json.Unmarshal([]byte(`{"salario":5000,"data_admissao":"2024-01-01"}`), &fromNumber)).To(Succeed())
		Expect(json.Unmarshal([]byte(`{"salario":"5000.00","data_admissao":"2024-01-01T00:00:00.000Z"}`), &fromString)).To(Succeed())

		Expect(fromNumber.Salario.Equal(fromString.Salario)).To(BeTrue())
		Expect(fromNumber.DataAdmissao.String()).To(Equal("2024-01-01"))
		Expect(fromString.DataAdmissao.String()).To(Equal("2024-01-01"))
	})

	It("rejects dates in other layouts", func() {
		var colaborador entities.Colaborador

		err := json.Unmarshal([]byte(`{"data_admissao":"01/01/2024"}`), &colaborador)

		Expect(err).To(MatchError(ContainSubstring("YYYY-MM-DD")))
	})

	It("clears the id with WithoutID", func() {
		colaborador := entities.Colaborador{ID: 3, Nome: "Ana"}

		Expect(colaborador.HasID()).To(BeTrue())
		Expect(colaborador.WithoutID().HasID()).To(BeFalse())
		Expect(colaborador.ID).To(Equal(int64(3)))
	})
})
