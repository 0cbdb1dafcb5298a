package providers

import (
	"context"

	"nathanbeddoewebdev/nova-inventory/internal/config"
	"nathanbeddoewebdev/nova-inventory/internal/domain"
)

// version is reported in the User-Agent of API requests.
const version = "0.1.0"

// Session is an authenticated handle onto one region of a compute API.
// A session is used for a single region and then discarded.
type Session interface {
	// Namespace prefixes every host variable the backend exports,
	// e.g. "nova" yields nova_id, nova_region.
	Namespace() string

	// ListServers returns the servers of the session's region in the
	// order the API returned them.
	ListServers(ctx context.Context) ([]domain.Server, error)

	// GetImage resolves an image by id. Implementations wrap
	// domain.ErrNotFound when the image does not exist.
	GetImage(ctx context.Context, id string) (*domain.Image, error)
}

// Connector authenticates against a provider and returns a session scoped
// to region. Rejected credentials wrap domain.ErrUnauthorized, denied
// access wraps domain.ErrForbidden.
type Connector func(ctx context.Context, d *config.Descriptor, region string) (Session, error)
