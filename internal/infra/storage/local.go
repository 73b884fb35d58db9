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

	"github.com/google/uuid"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image too large")
)

const imageDir = "images"

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// MEDIA_DIR配下に画像を保存する。
// 返すパスはMEDIA_DIRからの相対パス（/media/<path> で配信）。
type LocalStorage struct {
	root     string
	maxBytes int64
}

func NewLocalStorage(root string, maxBytes int64) *LocalStorage {
	return &LocalStorage{root: root, maxBytes: maxBytes}
}

func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) SaveImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", ErrUnsupportedImage
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, imageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	name := uuid.NewString() + ext
	full := filepath.Join(dir, name)

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}

	// 上限+1まで読んで超過を判定
	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && n > s.maxBytes {
		err = ErrImageTooLarge
	}
	if err != nil {
		_ = os.Remove(full)
		return "", err
	}

	return path.Join(imageDir, name), nil
}

// 存在しないファイルはエラーにしない
func (s *LocalStorage) Remove(ctx context.Context, rel string) error {
	if rel == "" {
		return nil
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return fmt.Errorf("invalid media path: %s", rel)
	}
	err := os.Remove(filepath.Join(s.root, clean))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
