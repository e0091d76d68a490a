package ui

import (
	"context"

	"colaboradores/src/domain/entities"
)

type Event int

const (
	EventAdd Event = iota + 1
	EventEdit
	EventSaved
	EventCancel
)

func (e Event) String() string {
	switch e {
	case EventAdd:
		return "add"
	case EventEdit:
		return "edit"
	case EventSaved:
		return "saved"
	case EventCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// EventHandler recebe os eventos que as views emitem para o container.
// colaborador só vem preenchido em EventEdit.
type EventHandler func(ctx context.Context, event Event, colaborador *entities.Colaborador) error

// ColaboradoresAPI é satisfeita pelo client.ColaboradoresClient.
type ColaboradoresAPI interface {
	List(ctx context.Context) ([]entities.Colaborador, error)
	Create(ctx context.Context, colaborador entities.Colaborador) (int64, error)
	Update(ctx context.Context, id int64, colaborador entities.Colaborador) error
	Delete(ctx context.Context, id int64) error
}

func emit(ctx context.Context, handler EventHandler, event Event, colaborador *entities.Colaborador) error {
	if handler == nil {
		return nil
	}
	return handler(ctx, event, colaborador)
}
