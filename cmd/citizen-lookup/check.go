package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/bigkaa/citizen-lookup/internal/ingest"
)

// checkCommand разбирает файл данных и печатает число загруженных
// и пропущенных строк. Хранилище и сервер не создаются.
func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Проверить CSV/Excel-файл данных",
		ArgsUsage: "<файл>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Путь к файлу данных (.csv или .xlsx)",
			},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			path := c.String("file")
			if path == "" {
				path = c.Args().First()
			}
			if path == "" {
				return errors.New("не указан файл данных")
			}
			return checkFile(path)
		},
	}
}

func checkFile(path string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	src := ingest.Source{Name: "check", Path: path, Format: ingest.DetectFormat(path)}
	batch, err := ingest.ReadSource(src, logger)
	if err != nil {
		return fmt.Errorf("ошибка чтения %s: %w", path, err)
	}

	fmt.Printf("Файл: %s\n", path)
	fmt.Printf("Формат: %s\n", src.Format)
	fmt.Printf("Записей: %d\n", len(batch.Rows))
	fmt.Printf("Пропущено строк: %d\n", batch.Skipped)
	return nil
}
