package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher следит за файлом-источником и вызывает перезагрузку
// после серии изменений (debounce). Наблюдение ведётся за каталогом,
// поэтому атомарная замена файла (запись во временный + rename)
// не теряет подписку.
type Watcher struct {
	path     string
	debounce time.Duration
	reload   func(ctx context.Context) error
	fsw      *fsnotify.Watcher
	logger   *slog.Logger
}

// NewWatcher создаёт наблюдатель и подписывается на каталог файла.
func NewWatcher(path string, debounce time.Duration, reload func(ctx context.Context) error, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("путь к источнику: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("создание fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("подписка на каталог %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		reload:   reload,
		fsw:      fsw,
		logger:   logger.With(slog.String("component", "ingest_watcher")),
	}, nil
}

// Run обрабатывает события до отмены ctx. Ошибка перезагрузки
// логируется, наблюдение продолжается.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("Ошибка закрытия watcher", slog.String("error", err.Error()))
		}
	}()

	w.logger.Info("Наблюдение за источником запущено", slog.String("path", w.path))

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.logger.Debug("Источник изменён",
					slog.String("path", event.Name),
					slog.String("op", event.Op.String()),
				)
				timer.Reset(w.debounce)
			}

		case <-timer.C:
			if err := w.reload(ctx); err != nil {
				w.logger.Error("Перезагрузка после изменения файла не удалась",
					slog.String("path", w.path),
					slog.String("error", err.Error()),
				)
				continue
			}
			w.logger.Info("Источник перезагружен после изменения", slog.String("path", w.path))

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Ошибка watcher", slog.String("error", err.Error()))
		}
	}
}
