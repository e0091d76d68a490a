package http

import (
	"colaboradores/src/domain/entities"

	"github.com/shopspring/decimal"
)

// ColaboradorRequest é o corpo de POST e PUT. O id, se vier, é ignorado.
type ColaboradorRequest struct {
	Nome         string          `json:"nome"`
	Cargo        string          `json:"cargo"`
	Salario      decimal.Decimal `json:"salario"`
	DataAdmissao entities.Date   `json:"data_admissao"`
}

func (r ColaboradorRequest) ToEntity() entities.Colaborador {
	return entities.Colaborador{
		Nome:         r.Nome,
		Cargo:        r.Cargo,
		Salario:      r.Salario,
		DataAdmissao: r.DataAdmissao,
	}
}

type MessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

const (
	MessageColaboradorCreated = "Colaborador criado com sucesso"
	MessageColaboradorUpdated = "Colaborador atualizado com sucesso"
	MessageColaboradorDeleted = "Colaborador removido com sucesso"
)
