package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindLatestDocument(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, age time.Duration) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("version: \"1.0\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		stamp := time.Now().Add(-age)
		if err := os.Chtimes(path, stamp, stamp); err != nil {
			t.Fatal(err)
		}
		return path
	}

	write("old.yaml", 2*time.Hour)
	latest := write("new.yml", time.Minute)
	write("ignored.txt", 0)

	got, err := FindLatestDocument(dir)
	if err != nil {
		t.Fatalf("FindLatestDocument failed: %v", err)
	}
	if got != latest {
		t.Errorf("got %q, want %q", got, latest)
	}
}

func TestFindLatestDocumentEmptyDir(t *testing.T) {
	if _, err := FindLatestDocument(t.TempDir()); err == nil {
		t.Fatal("expected error for directory without documents")
	}
}

func TestFindLatestDocumentMissingDir(t *testing.T) {
	if _, err := FindLatestDocument(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
