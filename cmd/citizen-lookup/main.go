// Точка входа Citizen Lookup — сервиса поиска записей граждан.
// Команды: serve (HTTP API) и check (проверка файла данных без запуска сервера).
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/bigkaa/citizen-lookup/internal/config"
)

func main() {
	app := &cli.Command{
		Name:    "citizen-lookup",
		Usage:   "Поиск записей граждан по CSV/Excel-выгрузкам",
		Version: config.Version,
		Commands: []*cli.Command{
			serveCommand(),
			checkCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
