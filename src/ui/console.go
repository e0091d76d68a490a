package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const consoleHelp = `comandos:
  list                  recarrega e mostra a lista
  add                   abre o formulário para um novo colaborador
  edit <id>             abre o formulário com o colaborador
  set <campo> <valor>   altera um campo do formulário (nome, cargo, salario, data_admissao)
  save                  grava o formulário
  cancel                fecha o formulário sem gravar
  delete <id>           remove o colaborador
  help                  mostra esta ajuda
  quit                  sai`

var errQuit = errors.New("quit")

// Console é o frontend de terminal: lê um comando por linha e redesenha o container.
type Console struct {
	container *Container
	in        io.Reader
	out       io.Writer
}

func NewConsole(container *Container, in io.Reader, out io.Writer) *Console {
	return &Console{
		container: container,
		in:        in,
		out:       out,
	}
}

// Run executa até "quit", fim da entrada ou cancelamento do ctx. A leitura fica
// numa goroutine para que o cancelamento não espere o próximo Enter.
func (c *Console) Run(ctx context.Context) error {
	if err := c.container.Mount(ctx); err != nil {
		fmt.Fprintf(c.out, "erro: %v\n", err)
	}
	c.render()

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines, readErr := c.readLines(readCtx)

	for {
		fmt.Fprint(c.out, "> ")

		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return err
		case line := <-lines:
			err := c.Execute(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(c.out, "erro: %v\n", err)
			}
		}
	}
}

// readLines só envia o erro de leitura depois que todas as linhas foram consumidas.
func (c *Console) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	return lines, readErr
}

// Execute interpreta uma linha de comando.
func (c *Console) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	command, args := strings.ToLower(fields[0]), fields[1:]

	switch command {
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprintln(c.out, consoleHelp)
		return nil
	case "list":
		if err := c.container.ShowList(ctx); err != nil {
			return err
		}
	case "add":
		if err := c.container.List().Add(ctx); err != nil {
			return err
		}
	case "edit":
		id, err := parseConsoleID(args)
		if err != nil {
			return err
		}
		colaborador, found := c.container.List().Find(id)
		if !found {
			return fmt.Errorf("colaborador %d não está na lista", id)
		}
		if err := c.container.List().Edit(ctx, colaborador); err != nil {
			return err
		}
	case "delete":
		id, err := parseConsoleID(args)
		if err != nil {
			return err
		}
		if err := c.container.List().Delete(ctx, id); err != nil {
			return err
		}
	case "set", "save", "cancel":
		form := c.container.Form()
		if form == nil {
			return fmt.Errorf("nenhum formulário aberto, use add ou edit")
		}
		if err := c.executeForm(ctx, form, command, args, line); err != nil {
			return err
		}
	default:
		return fmt.Errorf("comando desconhecido %q, digite help", command)
	}

	c.render()
	return nil
}

func (c *Console) executeForm(ctx context.Context, form *FormView, command string, args []string, line string) error {
	switch command {
	case "set":
		if len(args) < 1 {
			return fmt.Errorf("uso: set <campo> <valor>")
		}
		return form.Set(args[0], afterWords(line, 2))
	case "save":
		return form.Submit(ctx)
	default:
		return form.Cancel(ctx)
	}
}

func (c *Console) render() {
	if err := Render(c.out, c.container); err != nil {
		fmt.Fprintf(c.out, "erro: %v\n", err)
	}
}

// afterWords devolve o restante da linha depois das n primeiras palavras,
// preservando os espaços internos do valor.
func afterWords(line string, n int) string {
	rest := line
	for range n {
		rest = strings.TrimLeft(rest, " \t")
		if i := strings.IndexAny(rest, " \t"); i >= 0 {
			rest = rest[i:]
		} else {
			rest = ""
		}
	}
	return strings.TrimSpace(rest)
}

func parseConsoleID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("informe o id")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id inválido %q", args[0])
	}

	return id, nil
}
