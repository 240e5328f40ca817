package analysis

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeZip(t *testing.T, path string, members map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write zip: %v", err)
	}
}

func TestLoadTranscript_PlainText(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "chat.txt")
	if err := os.WriteFile(p, []byte("1/1/23, 10:00 - Alice: hi\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	text, err := LoadTranscript(p)
	if err != nil {
		t.Fatalf("LoadTranscript: %v", err)
	}
	if !strings.Contains(text, "Alice: hi") {
		t.Fatalf("text=%q", text)
	}
}

func TestLoadTranscript_ZipWithTxt(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "chat.zip")
	writeZip(t, p, map[string]string{
		"WhatsApp Chat with Group.txt": "1/1/23, 10:00 - Alice: hi\n",
	})

	text, err := LoadTranscript(p)
	if err != nil {
		t.Fatalf("LoadTranscript: %v", err)
	}
	if !strings.Contains(text, "Alice: hi") {
		t.Fatalf("text=%q", text)
	}
}

func TestLoadTranscript_ZipWithoutTxt(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "chat.zip")
	writeZip(t, p, map[string]string{"notes.pdf": "binary junk"})

	if _, err := LoadTranscript(p); !errors.Is(err, ErrNoTranscript) {
		t.Fatalf("err=%v, want ErrNoTranscript", err)
	}
}

func TestLoadTranscript_EmptyFile(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "chat.txt")
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadTranscript(p); !errors.Is(err, ErrNoTranscript) {
		t.Fatalf("err=%v, want ErrNoTranscript", err)
	}
}

func TestReadTranscript(t *testing.T) {
	t.Parallel()

	text, err := ReadTranscript(strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("ReadTranscript: %v", err)
	}
	if text != "payload" {
		t.Fatalf("text=%q", text)
	}

	if _, err := ReadTranscript(strings.NewReader("")); !errors.Is(err, ErrNoTranscript) {
		t.Fatalf("err=%v, want ErrNoTranscript", err)
	}
}
