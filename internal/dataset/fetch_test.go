package dataset

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func buildArchive(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	entry, err := w.Create("WikiTableQuestions/data/" + TestSplitFile)
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if _, err := entry.Write([]byte("id\tutterance\tcontext\ttargetValue\n")); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

func TestEnsureExtractsExistingArchive(t *testing.T) {
	cacheDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(cacheDir, archiveName), buildArchive(t), 0o644); err != nil {
		t.Fatalf("write archive: %v", err)
	}

	dataDir, err := Ensure(context.Background(), nil, cacheDir)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	want := filepath.Join(cacheDir, "WikiTableQuestions", "data")
	if dataDir != want {
		t.Fatalf("unexpected data dir: %q", dataDir)
	}
	if _, err := os.Stat(filepath.Join(dataDir, TestSplitFile)); err != nil {
		t.Fatalf("split file not extracted: %v", err)
	}
}

func TestEnsureSkipsWhenDataPresent(t *testing.T) {
	cacheDir := t.TempDir()
	dataDir := filepath.Join(cacheDir, "WikiTableQuestions", "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	// No archive and no server: Ensure must not need either.
	got, err := Ensure(context.Background(), nil, cacheDir)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if got != dataDir {
		t.Fatalf("unexpected data dir: %q", got)
	}
}

func TestDownload(t *testing.T) {
	payload := buildArchive(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "archive.zip")
	if err := download(context.Background(), server.Client(), server.URL, dest); err != nil {
		t.Fatalf("download: %v", err)
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("archive content mismatch")
	}
}

func TestDownloadBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "archive.zip")
	if err := download(context.Background(), server.Client(), server.URL, dest); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestExtractRejectsEscapingEntry(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	if _, err := w.Create("../escape.txt"); err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "bad.zip")
	if err := os.WriteFile(archivePath, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write archive: %v", err)
	}
	if err := extract(archivePath, filepath.Join(dir, "out")); err == nil {
		t.Fatalf("expected error for escaping entry")
	}
}
