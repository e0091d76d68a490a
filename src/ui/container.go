package ui

import (
	"context"
	"fmt"

	"colaboradores/src/domain/entities"
)

// State é Listing ou Editing; não existe outro valor.
type State interface {
	isState()
}

type Listing struct{}

// Editing carrega o registro em edição; Record nil significa um novo colaborador.
type Editing struct {
	Record *entities.Colaborador
}

func (Listing) isState() {}
func (Editing) isState() {}

// Container alterna entre a lista e o formulário.
type Container struct {
	api   ColaboradoresAPI
	state State
	list  *ListView
	form  *FormView
}

func NewContainer(api ColaboradoresAPI) *Container {
	container := &Container{
		api:   api,
		state: Listing{},
	}
	container.list = NewListView(api, container.handleEvent)

	return container
}

func (c *Container) Mount(ctx context.Context) error {
	return c.list.Mount(ctx)
}

func (c *Container) State() State {
	return c.state
}

func (c *Container) List() *ListView {
	return c.list
}

// Form devolve nil enquanto o estado é Listing.
func (c *Container) Form() *FormView {
	if _, editing := c.state.(Editing); !editing {
		return nil
	}
	return c.form
}

func (c *Container) ShowForm(record *entities.Colaborador) {
	if record != nil {
		copied := *record
		record = &copied
	}

	c.state = Editing{Record: record}
	c.form = NewFormView(c.api, record, c.handleEvent)
}

// ShowList volta para a lista e a recarrega.
func (c *Container) ShowList(ctx context.Context) error {
	c.state = Listing{}
	c.form = nil
	return c.list.Mount(ctx)
}

func (c *Container) handleEvent(ctx context.Context, event Event, colaborador *entities.Colaborador) error {
	switch event {
	case EventAdd:
		c.ShowForm(nil)
		return nil
	case EventEdit:
		c.ShowForm(colaborador)
		return nil
	case EventSaved, EventCancel:
		return c.ShowList(ctx)
	default:
		return fmt.Errorf("unhandled ui event %s", event)
	}
}
