package export

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

const filePerm = 0o644

// Job is one artifact: its final path and the function producing its bytes
type Job struct {
	Path  string
	Write func(ctx context.Context, w io.WriteSeeker) error
}

// WriteFile runs write into a temp file next to path and renames it into place
// The temp file is removed on any failure, so path is never left half-written
func WriteFile(ctx context.Context, path string, write func(ctx context.Context, w io.WriteSeeker) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err = write(ctx, tmp); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// CreateTemp opens 0600; artifacts are shared files
	if err = tmp.Chmod(filePerm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	log.Printf("Wrote %s", path)
	return nil
}

// WriteAll writes every job concurrently; the first failure cancels the rest
func WriteAll(ctx context.Context, jobs ...Job) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		if job.Path == "" || job.Write == nil {
			continue
		}
		g.Go(func() error {
			return WriteFile(ctx, job.Path, job.Write)
		})
	}
	return g.Wait()
}
