package inventory

import (
	"context"
	"errors"
	"log/slog"

	"nathanbeddoewebdev/nova-inventory/internal/domain"
)

// imageResolver is the part of a session the image cache needs.
type imageResolver interface {
	GetImage(ctx context.Context, id string) (*domain.Image, error)
}

// imageCache maps image id to human id for one inventory run. Only
// resolved images are cached: an image missing from one region's catalog
// may exist in the next.
type imageCache struct {
	names map[string]string
}

func newImageCache() *imageCache {
	return &imageCache{names: make(map[string]string)}
}

// humanID returns the human id of image id, asking r on first encounter.
// A not-found image yields "" and no error; other lookup errors are
// returned.
func (c *imageCache) humanID(ctx context.Context, r imageResolver, id string) (string, error) {
	if name, ok := c.names[id]; ok {
		return name, nil
	}

	img, err := r.GetImage(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		slog.Debug("image not found, grouping by id only", "image", id)
		return "", nil
	case err != nil:
		return "", err
	}

	c.names[id] = img.HumanID
	return img.HumanID, nil
}
