package ui

import (
	"context"
	"fmt"

	"colaboradores/src/domain/entities"
)

type ListView struct {
	api           ColaboradoresAPI
	onEvent       EventHandler
	colaboradores []entities.Colaborador
}

func NewListView(api ColaboradoresAPI, onEvent EventHandler) *ListView {
	return &ListView{
		api:           api,
		onEvent:       onEvent,
		colaboradores: make([]entities.Colaborador, 0),
	}
}

// Mount busca a lista completa e substitui a que estava em memória.
func (v *ListView) Mount(ctx context.Context) error {
	colaboradores, err := v.api.List(ctx)
	if err != nil {
		return fmt.Errorf("ListView.Mount - %w", err)
	}

	v.colaboradores = colaboradores
	return nil
}

func (v *ListView) Colaboradores() []entities.Colaborador {
	return v.colaboradores
}

// Find procura pelo id na lista carregada.
func (v *ListView) Find(id int64) (entities.Colaborador, bool) {
	for _, c := range v.colaboradores {
		if c.ID == id {
			return c, true
		}
	}
	return entities.Colaborador{}, false
}

// Delete remove no servidor e recarrega a lista.
func (v *ListView) Delete(ctx context.Context, id int64) error {
	if err := v.api.Delete(ctx, id); err != nil {
		return fmt.Errorf("ListView.Delete - %w", err)
	}

	return v.Mount(ctx)
}

func (v *ListView) Add(ctx context.Context) error {
	return emit(ctx, v.onEvent, EventAdd, nil)
}

func (v *ListView) Edit(ctx context.Context, colaborador entities.Colaborador) error {
	return emit(ctx, v.onEvent, EventEdit, &colaborador)
}
