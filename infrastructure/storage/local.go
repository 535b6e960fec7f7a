package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/investmatch/investmatch/domain/errs"
)

var errBadPath = errors.New("invalid object path")

// Local stores objects on the filesystem and serves them under baseURL.
type Local struct {
	dir     string
	baseURL string
}

// NewLocal creates a Local bucket rooted at dir. baseURL is the prefix the
// returned URLs use, typically the server's /files route.
func NewLocal(dir, baseURL string) *Local {
	return &Local{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Dir returns the root directory.
func (l *Local) Dir() string { return l.dir }

// Upload writes body under the bucket directory.
func (l *Local) Upload(ctx context.Context, name, _ string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := cleanPath(name)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(l.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return l.baseURL + "/" + escapePath(name), nil
}

// cleanPath normalises an object path and rejects traversal.
func cleanPath(p string) (string, error) {
	cleaned := path.Clean("/" + strings.TrimSpace(p))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." || strings.Contains(p, "..") {
		return "", fmt.Errorf("%w: %w: %q", errs.ErrValidation, errBadPath, p)
	}
	return cleaned, nil
}
