package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// FileMode is the permission of delivered files.
const FileMode os.FileMode = 0o644

// Dir delivers documents into a directory. Each file is written to a
// temporary name, synced and renamed into place, so a reader never sees a
// partial document and a failed write leaves nothing behind.
type Dir struct {
	Path string
}

// Deliver stores data under name inside the directory.
func (d Dir) Deliver(ctx context.Context, name string, data []byte) error {
	_, err := d.Save(ctx, name, data)
	return err
}

// Save is Deliver that also reports the final path.
func (d Dir) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	base := filepath.Base(name)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	dir := d.Path
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	target := filepath.Join(dir, base)
	if err := renameio.WriteFile(target, data, FileMode, renameio.IgnoreUmask()); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	return target, nil
}
