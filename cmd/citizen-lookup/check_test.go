package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "CCCD,Họ tên\n001,Nguyễn Văn An\n,,\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := checkFile(path); err != nil {
		t.Fatalf("checkFile ошибка: %v", err)
	}
}

func TestCheckFile_Missing(t *testing.T) {
	if err := checkFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("ожидалась ошибка для отсутствующего файла")
	}
}

func TestCheckCommand_RequiresFile(t *testing.T) {
	cmd := checkCommand()
	if err := cmd.Run(context.Background(), []string{"check"}); err == nil {
		t.Fatal("ожидалась ошибка без указания файла")
	}
}
