package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"flax/internal/filex"
)

// FilePort persists the document as a single JSON file on local disk. This
// is the default backend and matches the historical on-disk layout, so an
// existing data file keeps working.
type FilePort struct {
	path string
}

func NewFilePort(path string) *FilePort {
	return &FilePort{path: path}
}

func (p *FilePort) Load(ctx context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", p.path, err)
	}
	if len(data) == 0 {
		return nil, false, nil
	}
	return data, true, nil
}

func (p *FilePort) Save(ctx context.Context, data []byte) error {
	if err := filex.EnsureParentDir(p.path); err != nil {
		return err
	}
	if err := os.WriteFile(p.path, data, 0o660); err != nil {
		return fmt.Errorf("write %s: %w", p.path, err)
	}
	return nil
}
