package stubs

import (
	"time"

	"colaboradores/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

type ColaboradorStub struct {
	colaborador entities.Colaborador
}

// NewColaboradorStub devolve um colaborador ainda sem id.
func NewColaboradorStub() ColaboradorStub {
	admissao := gofakeit.DateRange(
		time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
	)

	colaborador := entities.Colaborador{
		Nome:         gofakeit.Name(),
		Cargo:        gofakeit.JobTitle(),
		Salario:      decimal.NewFromInt(int64(gofakeit.Number(1500, 30000))).Add(decimal.New(int64(gofakeit.Number(0, 99)), -2)),
		DataAdmissao: entities.DateOf(admissao),
	}

	return ColaboradorStub{colaborador: colaborador}
}

func (cs ColaboradorStub) WithID(id int64) ColaboradorStub {
	cs.colaborador.ID = id
	return cs
}

func (cs ColaboradorStub) WithNome(nome string) ColaboradorStub {
	cs.colaborador.Nome = nome
	return cs
}

func (cs ColaboradorStub) WithCargo(cargo string) ColaboradorStub {
	cs.colaborador.Cargo = cargo
	return cs
}

func (cs ColaboradorStub) WithSalario(salario string) ColaboradorStub {
	cs.colaborador.Salario = decimal.RequireFromString(salario)
	return cs
}

func (cs ColaboradorStub) WithDataAdmissao(year int, month time.Month, day int) ColaboradorStub {
	cs.colaborador.DataAdmissao = entities.NewDate(year, month, day)
	return cs
}

func (cs ColaboradorStub) WithoutDataAdmissao() ColaboradorStub {
	cs.colaborador.DataAdmissao = entities.Date{}
	return cs
}

func (cs ColaboradorStub) Get() entities.Colaborador {
	return cs.colaborador
}

func NewColaboradoresStub(count int) []entities.Colaborador {
	colaboradores := make([]entities.Colaborador, count)
	for i := range colaboradores {
		colaboradores[i] = NewColaboradorStub().Get()
	}
	return colaboradores
}
