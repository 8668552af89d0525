// Package blob stores captured photos and hands back an opaque URL. Callers
// never interpret the URL.
package blob

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrEmptyImage = errors.New("empty image data")

type Store interface {
	SaveBase64(ctx context.Context, folder, data string) (string, error)
}

// LocalStore writes images under dir. The files are served by the HTTP
// layer at baseURL + "/uploads".
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// SaveBase64 decodes data, optionally prefixed with a "data:...;base64,"
// header, and writes it to a uniquely named file inside folder.
func (s *LocalStore) SaveBase64(ctx context.Context, folder, data string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if i := strings.Index(data, ","); i >= 0 {
		data = data[i+1:]
	}
	data = strings.TrimSpace(data)
	if data == "" {
		return "", ErrEmptyImage
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	folder = filepath.Base(filepath.Clean("/" + folder))
	target := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}

	name := uuid.NewString() + ".jpg"
	if err := os.WriteFile(filepath.Join(target, name), raw, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return s.baseURL + "/uploads/" + folder + "/" + name, nil
}
