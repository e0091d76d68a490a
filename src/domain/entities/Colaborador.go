package entities

import (
	"github.com/shopspring/decimal"
)

func init() {
	// O frontend envia e espera o salário como número JSON, não como string.
	decimal.MarshalJSONWithoutQuotes = true
}

// Colaborador é o único registro persistido pelo sistema.
type Colaborador struct {
	// Atribuído pelo banco na criação; zero significa "ainda não persistido".
	ID           int64           `json:"id,omitempty"`
	Nome         string          `json:"nome"`
	Cargo        string          `json:"cargo"`
	Salario      decimal.Decimal `json:"salario"`
	DataAdmissao Date            `json:"data_admissao"`
}

// HasID reports whether the colaborador was already persisted.
func (c Colaborador) HasID() bool {
	return c.ID != 0
}

// WithoutID returns a copy with the identifier cleared, as sent on create.
func (c Colaborador) WithoutID() Colaborador {
	c.ID = 0
	return c
}
