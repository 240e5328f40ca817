package analysis

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoTranscript means the input held no usable text payload at all (for
// example a zip with no .txt member). It is the only fatal condition in the
// pipeline: no partial result is produced.
var ErrNoTranscript = errors.New("no transcript text found in input")

// LoadTranscript reads a transcript from path. A .zip archive is expected to
// contain exactly one exported .txt payload; the first .txt member found is
// used. Any other path is read directly as UTF-8 text.
func LoadTranscript(path string) (string, error) {
	if path == "" {
		return "", errors.New("LoadTranscript: path is empty")
	}

	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return loadFromZip(path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("LoadTranscript: read file: %w", err)
	}
	if len(b) == 0 {
		return "", ErrNoTranscript
	}
	return string(b), nil
}

// ReadTranscript consumes a directly delivered text payload.
func ReadTranscript(r io.Reader) (string, error) {
	if r == nil {
		return "", errors.New("ReadTranscript: reader is nil")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("ReadTranscript: read payload: %w", err)
	}
	if len(b) == 0 {
		return "", ErrNoTranscript
	}
	return string(b), nil
}

func loadFromZip(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("LoadTranscript: open zip: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if !strings.EqualFold(filepath.Ext(f.Name), ".txt") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("LoadTranscript: open zip member %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("LoadTranscript: read zip member %s: %w", f.Name, err)
		}
		return string(b), nil
	}
	return "", ErrNoTranscript
}
