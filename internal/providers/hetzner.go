package providers

import (
	"context"
	"fmt"
	"strconv"

	"nathanbeddoewebdev/nova-inventory/internal/config"
	"nathanbeddoewebdev/nova-inventory/internal/domain"
	"nathanbeddoewebdev/nova-inventory/internal/util"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

const (
	hetznerNamespace = "hcloud"

	// hetznerNetwork is the single synthetic network Hetzner servers are
	// mapped onto: private network IPs are "fixed", public IPs "floating".
	hetznerNetwork = "hcloud"

	// HetznerAttributesVersion identifies the set of server fields exported
	// as hcloud_* host variables.
	HetznerAttributesVersion = 1
)

// HetznerSession implements Session using the Hetzner Cloud API. Hetzner
// has no regional endpoints; a session is scoped to one location and
// filters the project's servers by it.
type HetznerSession struct {
	client   *hcloud.Client
	location string
}

// NewHetznerClient creates an hcloud client with the given options.
// Default options (application name) are applied first; callers can override them.
func NewHetznerClient(opts ...hcloud.ClientOption) *hcloud.Client {
	defaults := []hcloud.ClientOption{
		hcloud.WithApplication("nova-inventory", version),
	}
	return hcloud.NewClient(append(defaults, opts...)...)
}

// ConnectHetzner validates the token and location by looking the location up.
func ConnectHetzner(ctx context.Context, d *config.Descriptor, region string) (Session, error) {
	return connectHetzner(ctx, NewHetznerClient(hcloud.WithToken(d.Token)), region)
}

func connectHetzner(ctx context.Context, client *hcloud.Client, location string) (Session, error) {
	loc, _, err := client.Location.GetByName(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("hetzner: %w", classifyHetzner(err))
	}
	if loc == nil {
		return nil, fmt.Errorf("hetzner: unknown location %q: %w", location, domain.ErrNotFound)
	}

	return &HetznerSession{client: client, location: loc.Name}, nil
}

func (h *HetznerSession) Namespace() string { return hetznerNamespace }

// ListServers retrieves all servers of the project located in the
// session's location.
func (h *HetznerSession) ListServers(ctx context.Context) ([]domain.Server, error) {
	hzServers, err := h.client.Server.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", classifyHetzner(err))
	}

	servers := make([]domain.Server, 0, len(hzServers))
	for _, s := range hzServers {
		if serverLocation(s) != h.location {
			continue
		}
		servers = append(servers, hcloudToDomainServer(s))
	}

	return servers, nil
}

// GetImage resolves an image by its numeric id. Deleted snapshots and
// backups report domain.ErrNotFound.
func (h *HetznerSession) GetImage(ctx context.Context, id string) (*domain.Image, error) {
	numericID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid image ID %q: %w", id, domain.ErrNotFound)
	}

	img, _, err := h.client.Image.GetByID(ctx, numericID)
	if err != nil {
		return nil, fmt.Errorf("failed to get image %s: %w", id, classifyHetzner(err))
	}
	if img == nil {
		return nil, fmt.Errorf("image %s: %w", id, domain.ErrNotFound)
	}

	return hcloudToDomainImage(img), nil
}

func hcloudToDomainImage(img *hcloud.Image) *domain.Image {
	// Snapshots and backups have no name, only a description.
	name := img.Name
	if name == "" {
		name = img.Description
	}
	return &domain.Image{
		ID:      strconv.FormatInt(img.ID, 10),
		Name:    name,
		HumanID: util.HumanID(name),
	}
}

func serverLocation(s *hcloud.Server) string {
	if s.Location != nil {
		return s.Location.Name
	}
	if s.Datacenter != nil && s.Datacenter.Location != nil {
		return s.Datacenter.Location.Name
	}
	return ""
}

// hcloudToDomainServer converts an hcloud.Server to a domain.Server.
func hcloudToDomainServer(s *hcloud.Server) domain.Server {
	server := domain.Server{
		ID:       strconv.FormatInt(s.ID, 10),
		Name:     s.Name,
		Metadata: make(map[string]string, len(s.Labels)),
	}
	for k, v := range s.Labels {
		server.Metadata[k] = v
	}

	network := domain.Network{Name: hetznerNetwork}
	for _, pn := range s.PrivateNet {
		if pn.IP != nil {
			network.Addresses = append(network.Addresses, domain.Address{Addr: pn.IP.String(), Type: domain.AddressFixed, Version: 4})
		}
	}
	if !s.PublicNet.IPv4.IsUnspecified() {
		network.Addresses = append(network.Addresses, domain.Address{Addr: s.PublicNet.IPv4.IP.String(), Type: domain.AddressFloating, Version: 4})
	}
	for _, fip := range s.PublicNet.FloatingIPs {
		if fip != nil && fip.IP != nil {
			network.Addresses = append(network.Addresses, domain.Address{Addr: fip.IP.String(), Type: domain.AddressFloating, Version: 4})
		}
	}
	server.Networks = []domain.Network{network}

	if s.ServerType != nil {
		server.FlavorID = strconv.FormatInt(s.ServerType.ID, 10)
	}
	if s.Image != nil {
		server.ImageID = strconv.FormatInt(s.Image.ID, 10)
	}

	server.Attributes = hetznerAttributes(s)
	return server
}

// hetznerAttributes is the explicit list of server fields exported as
// host variables.
func hetznerAttributes(s *hcloud.Server) map[string]any {
	attrs := map[string]any{
		"id":                strconv.FormatInt(s.ID, 10),
		"name":              s.Name,
		"status":            string(s.Status),
		"created":           formatTime(s.Created),
		"labels":            s.Labels,
		"locked":            s.Locked,
		"primary_disk_size": s.PrimaryDiskSize,
		"location":          serverLocation(s),
		"public_ipv4":       "",
		"public_ipv6":       "",
	}

	if s.ServerType != nil {
		attrs["server_type"] = s.ServerType.Name
		attrs["architecture"] = string(s.ServerType.Architecture)
	}
	if s.Datacenter != nil {
		attrs["datacenter"] = s.Datacenter.Name
	}
	if s.Image != nil {
		attrs["image"] = s.Image.Name
	}
	if !s.PublicNet.IPv4.IsUnspecified() {
		attrs["public_ipv4"] = s.PublicNet.IPv4.IP.String()
	}
	if !s.PublicNet.IPv6.IsUnspecified() {
		attrs["public_ipv6"] = s.PublicNet.IPv6.IP.String()
	}

	return attrs
}

// classifyHetzner wraps hcloud API errors with the matching domain sentinel.
func classifyHetzner(err error) error {
	switch {
	case hcloud.IsError(err, hcloud.ErrorCodeUnauthorized):
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	case hcloud.IsError(err, hcloud.ErrorCodeForbidden):
		return fmt.Errorf("%w: %v", domain.ErrForbidden, err)
	case hcloud.IsError(err, hcloud.ErrorCodeNotFound):
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	default:
		return err
	}
}
