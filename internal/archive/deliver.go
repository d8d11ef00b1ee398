package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Deliverer hands a finished file to the user.
type Deliverer interface {
	Deliver(ctx context.Context, name string, data []byte) error
}

// DirDeliverer writes delivered files into a directory.
type DirDeliverer struct {
	Dir string
}

// NewDirDeliverer returns a DirDeliverer writing into dir.
func NewDirDeliverer(dir string) *DirDeliverer {
	return &DirDeliverer{Dir: dir}
}

// Deliver writes data to Dir/name through a temporary file so a partially
// written file never carries the final name.
func (d *DirDeliverer) Deliver(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("invalid output name: %q", name)
	}

	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	outPath := filepath.Join(d.Dir, name)
	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write tmp file: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
