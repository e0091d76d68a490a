package domain

import (
	"errors"
	"time"

	"colaboradores/src/domain/entities"
)

var (
	// ErrConnection marca falhas ao obter conexão com o banco (host fora do ar, credenciais inválidas).
	ErrConnection = errors.New("database connection error")

	// ErrPoolClosed é retornado por Acquire depois do Shutdown do pool.
	ErrPoolClosed = errors.New("connection pool is closed")

	// ErrStore marca falhas na execução de uma query.
	ErrStore = errors.New("database store error")

	ErrInvalidPayload = errors.New("invalid request payload")
	ErrInvalidID      = errors.New("invalid colaborador id")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

const TableColaboradores = "colaboradores"

const (
	EventTypeColaboradorCreated    = "colaborador_created"
	EventTypeColaboradorUpdated    = "colaborador_updated"
	EventTypeColaboradorDeleted    = "colaborador_deleted"
	EventTypeColaboradoresImported = "colaboradores_imported"
)

// ColaboradorEvent é publicado depois de cada escrita bem sucedida.
type ColaboradorEvent struct {
	EventID       string                `json:"event_id"`
	EventType     string                `json:"event_type"`
	ColaboradorID int64                 `json:"colaborador_id,omitempty"`
	Colaborador   *entities.Colaborador `json:"colaborador,omitempty"`
	// Quantidade de registros afetados (imports e no-ops de update/delete).
	Affected   int64     `json:"affected"`
	OccurredAt time.Time `json:"occurred_at"`
}
