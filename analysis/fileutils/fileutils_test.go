package fileutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteJSONFileAtomic(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "nested", "report.json")
	v := map[string]int{"messages": 3}

	if err := WriteJSONFileAtomic(p, v, true); err != nil {
		t.Fatalf("WriteJSONFileAtomic: %v", err)
	}

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var got map[string]int
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["messages"] != 3 {
		t.Fatalf("got=%v", got)
	}
}

func TestWriteFileAtomic_OverwritesExisting(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "corpus.txt")
	if err := WriteFileAtomic(p, []byte("old"), 0o644); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFileAtomic(p, []byte("new"), 0o644); err != nil {
		t.Fatalf("second write: %v", err)
	}

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "new\n" {
		t.Fatalf("content=%q, want %q", b, "new\n")
	}
}

func TestWriteFileAtomic_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.Join(dir, "out.txt")
	if err := WriteFileAtomic(p, []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.txt" {
		t.Fatalf("dir entries=%v, want only out.txt", entries)
	}
}
