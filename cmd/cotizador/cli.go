package main

import (
	"github.com/urfave/cli/v2"
)

func newCLI() *cli.App {
	return &cli.App{
		Name:  "cotizador",
		Usage: "edit quotations from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
			&cli.StringFlag{Name: "base-url", Usage: "quote server root", EnvVars: []string{"COTIZADOR_BASE_URL"}},
			&cli.StringFlag{Name: "quote", Aliases: []string{"q"}, Usage: "quote id", EnvVars: []string{"COTIZADOR_QUOTE_ID"}},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "metrics-addr", Usage: "serve Prometheus metrics on this address"},
		},
		Commands: []*cli.Command{
			serviceCommand(),
			materialCommand(),
			laborCommand(),
			deleteItemCommand(),
			transportCommand(),
			stateCommand(),
			entityCommand(),
			filterCommand(),
			parametersCommand(),
			carouselCommand(),
		},
	}
}
