// Package fileutil provides small file helpers shared by the config, export
// and catalog import paths.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to a temp file beside path and renames it into
// place, creating parent directories as needed. Readers never observe a
// partially written file.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// CopyFileVerified copies src to dst, then re-reads dst and compares its
// size and SHA-256 with what was read from src. dst is removed when they
// differ. It returns the hex digest of the content.
func CopyFileVerified(src, dst string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create destination directory: %w", err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create destination: %w", err)
	}
	h := sha256.New()
	n, err := io.Copy(out, io.TeeReader(in, h))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("copy %s: %w", src, err)
	}
	want := h.Sum(nil)

	gotSize, got, err := digest(dst)
	if err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	if gotSize != n || !bytes.Equal(got, want) {
		_ = os.Remove(dst)
		return "", fmt.Errorf("verify %s: wrote %d bytes, read back %d with a different digest", dst, n, gotSize)
	}
	return hex.EncodeToString(want), nil
}

func digest(path string) (int64, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("reopen %s: %w", path, err)
	}
	defer f.Close()
	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return 0, nil, fmt.Errorf("read back %s: %w", path, err)
	}
	return n, h.Sum(nil), nil
}
