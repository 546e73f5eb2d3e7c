package images

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/raushankrgupta/harvesthub-seeder/models"
)

// Directory picks the first .jpg in Dir, or the first .png when there is no
// .jpg. A missing directory means no image.
type Directory struct {
	Dir string
}

// NewDirectory creates a Directory provider
func NewDirectory(dir string) *Directory {
	return &Directory{Dir: dir}
}

func (d *Directory) Describe() string {
	return d.Dir
}

func (d *Directory) FindImage(ctx context.Context) (*models.ImageFile, error) {
	path, err := d.firstCandidate()
	if err != nil || path == "" {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}
	return &models.ImageFile{Name: filepath.Base(path), Data: data}, nil
}

func (d *Directory) firstCandidate() (string, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to list %s: %w", d.Dir, err)
	}

	var jpgs, pngs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg":
			jpgs = append(jpgs, e.Name())
		case ".png":
			pngs = append(pngs, e.Name())
		}
	}
	sort.Strings(jpgs)
	sort.Strings(pngs)

	candidates := append(jpgs, pngs...)
	if len(candidates) == 0 {
		return "", nil
	}
	return filepath.Join(d.Dir, candidates[0]), nil
}
