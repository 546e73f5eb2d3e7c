package images

import (
	"context"

	"github.com/raushankrgupta/harvesthub-seeder/models"
)

// Provider produces at most one image to attach to a product
type Provider interface {
	// FindImage returns the candidate image, or nil when there is none
	FindImage(ctx context.Context) (*models.ImageFile, error)
	// Describe names the source for progress output
	Describe() string
}
