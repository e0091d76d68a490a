package ui

import (
	"fmt"
	"io"
	"text/tabwriter"

	"colaboradores/src/domain/entities"
)

// Render escreve o estado atual do container como texto.
func Render(w io.Writer, container *Container) error {
	switch state := container.State().(type) {
	case Editing:
		return renderForm(w, state, container.Form())
	default:
		return renderList(w, container.List().Colaboradores())
	}
}

func renderList(w io.Writer, colaboradores []entities.Colaborador) error {
	if len(colaboradores) == 0 {
		_, err := fmt.Fprintln(w, "Nenhum colaborador cadastrado.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOME\tCARGO\tSALÁRIO\tADMISSÃO")
	for _, c := range colaboradores {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Nome, c.Cargo, c.Salario.StringFixed(2), c.DataAdmissao.String())
	}

	return tw.Flush()
}

func renderForm(w io.Writer, state Editing, form *FormView) error {
	title := "Novo colaborador"
	if state.Record != nil && state.Record.HasID() {
		title = fmt.Sprintf("Editando colaborador #%d", state.Record.ID)
	}

	draft := form.Draft()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, title)
	fmt.Fprintf(tw, "  %s\t%s\n", FieldNome, draft.Nome)
	fmt.Fprintf(tw, "  %s\t%s\n", FieldCargo, draft.Cargo)
	fmt.Fprintf(tw, "  %s\t%s\n", FieldSalario, draft.Salario.String())
	fmt.Fprintf(tw, "  %s\t%s\n", FieldDataAdmissao, draft.DataAdmissao.String())

	return tw.Flush()
}
