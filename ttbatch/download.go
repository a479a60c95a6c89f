package ttbatch

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"resty.dev/v3"
)

// FetchKomplet downloads a KOMPLET.ZIP distribution archive from url and
// extracts it into destDir, returning destDir for use as Options.KompletRoot.
func FetchKomplet(url, destDir string) (string, error) {
	log.Infof("downloading KOMPLET archive from %s", url)

	client := resty.New()
	defer client.Close()

	resp, err := client.R().Get(url)
	if err != nil {
		return "", fmt.Errorf("ttbatch: downloading %s: %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("ttbatch: downloading %s: %s", url, resp.Status())
	}

	zipBytes, err := io.ReadAll(resp.Body)
	defer resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("ttbatch: reading response body: %w", err)
	}

	zipReader, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return "", fmt.Errorf("ttbatch: opening archive: %w", err)
	}

	log.Debugf("extracting %d entries into %s", len(zipReader.File), destDir)

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("ttbatch: creating destination dir: %w", err)
	}

	for _, f := range zipReader.File {
		targetPath := filepath.Join(destDir, f.Name)
		if !isWithinDir(destDir, targetPath) {
			return "", errors.New("ttbatch: archive entry escapes destination directory: " + f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(targetPath, 0o755); err != nil {
				return "", err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return "", err
		}

		if err := extractEntry(f, targetPath); err != nil {
			return "", err
		}
	}

	return destDir, nil
}

func extractEntry(f *zip.File, targetPath string) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(targetPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func isWithinDir(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
