package images

import (
	"context"

	"github.com/raushankrgupta/harvesthub-seeder/models"
)

// Memory always returns the same in-memory image; a nil Image means none
type Memory struct {
	Image *models.ImageFile
}

// NewMemory creates a Memory provider holding data under name
func NewMemory(name string, data []byte) *Memory {
	return &Memory{Image: &models.ImageFile{Name: name, Data: data}}
}

func (m *Memory) Describe() string {
	if m.Image == nil {
		return "memory (empty)"
	}
	return "memory:" + m.Image.Name
}

func (m *Memory) FindImage(ctx context.Context) (*models.ImageFile, error) {
	if m.Image == nil {
		return nil, nil
	}
	img := *m.Image
	return &img, nil
}
