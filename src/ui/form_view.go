package ui

import (
	"context"
	"fmt"
	"strings"

	"colaboradores/src/domain/entities"

	"github.com/shopspring/decimal"
)

const (
	FieldNome         = "nome"
	FieldCargo        = "cargo"
	FieldSalario      = "salario"
	FieldDataAdmissao = "data_admissao"
)

var Fields = []string{FieldNome, FieldCargo, FieldSalario, FieldDataAdmissao}

// FormView edita uma cópia local do colaborador. Submit não recarrega a
// lista, isso fica com quem recebe o EventSaved.
type FormView struct {
	api     ColaboradoresAPI
	onEvent EventHandler
	draft   entities.Colaborador
}

// NewFormView parte do registro informado ou de um modelo em branco quando record é nil.
func NewFormView(api ColaboradoresAPI, record *entities.Colaborador, onEvent EventHandler) *FormView {
	var draft entities.Colaborador
	if record != nil {
		draft = *record
	}

	return &FormView{
		api:     api,
		onEvent: onEvent,
		draft:   draft,
	}
}

func (v *FormView) Draft() entities.Colaborador {
	return v.draft
}

func (v *FormView) IsNew() bool {
	return !v.draft.HasID()
}

// Set atribui um dos quatro campos a partir do texto digitado.
func (v *FormView) Set(field string, value string) error {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case FieldNome:
		v.draft.Nome = value
	case FieldCargo:
		v.draft.Cargo = value
	case FieldSalario:
		salario, err := parseSalario(value)
		if err != nil {
			return err
		}
		v.draft.Salario = salario
	case FieldDataAdmissao:
		dataAdmissao, err := entities.ParseDate(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		v.draft.DataAdmissao = dataAdmissao
	default:
		return fmt.Errorf("unknown field %q, use one of %s", field, strings.Join(Fields, ", "))
	}

	return nil
}

// Submit cria quando não há id e atualiza caso contrário, depois emite EventSaved.
func (v *FormView) Submit(ctx context.Context) error {
	if v.IsNew() {
		id, err := v.api.Create(ctx, v.draft)
		if err != nil {
			return fmt.Errorf("FormView.Submit - %w", err)
		}
		v.draft.ID = id
	} else {
		if err := v.api.Update(ctx, v.draft.ID, v.draft); err != nil {
			return fmt.Errorf("FormView.Submit - %w", err)
		}
	}

	return emit(ctx, v.onEvent, EventSaved, nil)
}

func (v *FormView) Cancel(ctx context.Context) error {
	return emit(ctx, v.onEvent, EventCancel, nil)
}

// aceita vírgula como separador decimal ("5000,50")
func parseSalario(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}

	if strings.Contains(value, ",") && !strings.Contains(value, ".") {
		value = strings.Replace(value, ",", ".", 1)
	}

	salario, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid salario %q", value)
	}

	return salario, nil
}
