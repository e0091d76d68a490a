package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"colaboradores/src/client"
	"colaboradores/src/ui"

	"github.com/alecthomas/kong"
)

type Command struct {
	APIURL  string        `name:"api-url" help:"Base URL of the colaboradores API." default:"http://localhost:3000" env:"COLABORADORES_API_URL"`
	Timeout time.Duration `help:"HTTP timeout for each API call." default:"10s"`
}

func (c *Command) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	apiClient := client.NewColaboradoresClient(c.APIURL, &http.Client{Timeout: c.Timeout})
	console := ui.NewConsole(ui.NewContainer(apiClient), os.Stdin, os.Stdout)

	return console.Run(ctx)
}

func main() {
	command := new(Command)
	ctx := kong.Parse(
		command,
		kong.Name("colaboradores"),
		kong.Description("Terminal frontend for the colaboradores API"),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
