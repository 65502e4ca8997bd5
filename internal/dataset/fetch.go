package dataset

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ArchiveURL is the upstream WTQ compact release archive.
const ArchiveURL = "https://github.com/ppasupat/WikiTableQuestions/releases/download/v1.0.2/WikiTableQuestions-1.0.2-compact.zip"

// archiveName is the local file name for the downloaded archive.
const archiveName = "WikiTableQuestions-1.0.2-compact.zip"

// extractedDataDir is the data directory inside the extracted archive.
const extractedDataDir = "WikiTableQuestions/data"

// Ensure makes the WTQ data available under cacheDir and returns the data
// directory path. Both the download and the extraction are skipped when
// their outputs already exist, so repeated runs are cheap.
func Ensure(ctx context.Context, client *http.Client, cacheDir string) (string, error) {
	if cacheDir == "" {
		return "", fmt.Errorf("cache directory is required")
	}
	dataDir := filepath.Join(cacheDir, filepath.FromSlash(extractedDataDir))
	if info, err := os.Stat(dataDir); err == nil && info.IsDir() {
		return dataDir, nil
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}
	archivePath := filepath.Join(cacheDir, archiveName)
	if _, err := os.Stat(archivePath); err != nil {
		if err := download(ctx, client, ArchiveURL, archivePath); err != nil {
			return "", err
		}
	}
	if err := extract(archivePath, cacheDir); err != nil {
		return "", err
	}
	if info, err := os.Stat(dataDir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("archive did not contain %s", extractedDataDir)
	}
	return dataDir, nil
}

// download streams the archive to disk through a temp file so partial
// downloads never masquerade as complete ones.
func download(ctx context.Context, client *http.Client, url, dest string) error {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download archive: unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".wtq-download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("write archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("move archive: %w", err)
	}
	return nil
}

// extract unpacks the archive under destDir, rejecting entries that would
// escape it.
func extract(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		target := filepath.Join(destDir, filepath.FromSlash(file.Name))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", file.Name)
		}
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create dir: %w", err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
		if err := extractFile(file, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(file *zip.File, target string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open archive entry: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	return dst.Close()
}
