package ingest

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// TestWatcher_ReloadOnWrite проверяет перезагрузку после записи в файл.
func TestWatcher_ReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("CCCD\n1\n"), 0o644); err != nil {
		t.Fatalf("запись файла: %v", err)
	}

	var reloads atomic.Int32
	done := make(chan struct{}, 1)
	w, err := NewWatcher(path, 50*time.Millisecond, func(context.Context) error {
		reloads.Add(1)
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	}, testLogger())
	if err != nil {
		t.Fatalf("NewWatcher ошибка: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(stopped)
	}()
	defer func() {
		cancel()
		<-stopped
	}()

	// Несколько записей подряд схлопываются в одну перезагрузку.
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("CCCD\n1\n2\n"), 0o644); err != nil {
			t.Fatalf("запись файла: %v", err)
		}
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("перезагрузка не произошла")
	}

	time.Sleep(200 * time.Millisecond)
	if n := reloads.Load(); n != 1 {
		t.Errorf("перезагрузок = %d, ожидалась 1", n)
	}
}

// TestWatcher_IgnoresOtherFiles проверяет фильтрацию по имени файла.
func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")

	var reloads atomic.Int32
	w, err := NewWatcher(path, 20*time.Millisecond, func(context.Context) error {
		reloads.Add(1)
		return nil
	}, testLogger())
	if err != nil {
		t.Fatalf("NewWatcher ошибка: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(stopped)
	}()

	if err := os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o644); err != nil {
		t.Fatalf("запись файла: %v", err)
	}
	time.Sleep(200 * time.Millisecond)

	cancel()
	<-stopped

	if n := reloads.Load(); n != 0 {
		t.Errorf("перезагрузок = %d, ожидалось 0", n)
	}
}
