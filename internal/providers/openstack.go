package providers

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"nathanbeddoewebdev/nova-inventory/internal/config"
	"nathanbeddoewebdev/nova-inventory/internal/domain"
	"nathanbeddoewebdev/nova-inventory/internal/util"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack"
	"github.com/gophercloud/gophercloud/v2/openstack/compute/v2/servers"
	"github.com/gophercloud/gophercloud/v2/openstack/image/v2/images"
)

const (
	openstackNamespace = "nova"

	// OpenStackAttributesVersion identifies the set of server fields
	// exported as nova_* host variables. Bump it whenever openstackAttributes
	// changes so inventory consumers can detect schema changes.
	OpenStackAttributesVersion = 1

	requestTimeout = 30 * time.Second
)

// OpenStackSession implements Session against Nova (compute) and Glance
// (image) endpoints of one region.
type OpenStackSession struct {
	compute *gophercloud.ServiceClient
	image   *gophercloud.ServiceClient
	region  string
}

// ConnectOpenStack authenticates with Keystone and resolves the compute and
// image endpoints of region from the service catalog.
func ConnectOpenStack(ctx context.Context, d *config.Descriptor, region string) (Session, error) {
	if d.AuthSystem != "" && !strings.EqualFold(d.AuthSystem, "keystone") {
		return nil, fmt.Errorf("openstack: unsupported auth_system %q", d.AuthSystem)
	}

	provider, err := openstack.NewClient(d.AuthURL)
	if err != nil {
		return nil, fmt.Errorf("openstack: invalid auth_url %q: %w", d.AuthURL, err)
	}
	provider.HTTPClient = newHTTPClient(d.Insecure)
	provider.UserAgent.Prepend("nova-inventory/" + version)

	opts := gophercloud.AuthOptions{
		IdentityEndpoint: d.AuthURL,
		Username:         d.Username,
		Password:         d.Password,
		TenantName:       d.ProjectID,
		DomainName:       d.DomainName,
	}
	if err := openstack.Authenticate(ctx, provider, opts); err != nil {
		return nil, fmt.Errorf("openstack: authentication failed: %w", classifyOpenStack(err))
	}

	session, err := newOpenStackSession(provider, region, d.ServiceType)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func newOpenStackSession(provider *gophercloud.ProviderClient, region, serviceType string) (*OpenStackSession, error) {
	eo := gophercloud.EndpointOpts{Region: region}

	compute, err := newComputeClient(provider, eo, serviceType)
	if err != nil {
		return nil, fmt.Errorf("openstack: no compute endpoint for region %q: %w", region, err)
	}

	// Image names are a nicety; a catalog without Glance still yields
	// an inventory grouped by raw image id.
	image, err := openstack.NewImageV2(provider, eo)
	if err != nil {
		slog.Warn("no image endpoint in catalog, image names will not be resolved",
			"region", region, "error", err)
		image = nil
	}

	return &OpenStackSession{compute: compute, image: image, region: region}, nil
}

func newComputeClient(provider *gophercloud.ProviderClient, eo gophercloud.EndpointOpts, serviceType string) (*gophercloud.ServiceClient, error) {
	if serviceType == "" || serviceType == "compute" {
		return openstack.NewComputeV2(provider, eo)
	}

	eo.ApplyDefaults(serviceType)
	url, err := provider.EndpointLocator(eo)
	if err != nil {
		return nil, err
	}
	return &gophercloud.ServiceClient{ProviderClient: provider, Endpoint: url, Type: serviceType}, nil
}

func newHTTPClient(insecure bool) http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via insecure=true
	}
	return http.Client{Transport: transport, Timeout: requestTimeout}
}

func (s *OpenStackSession) Namespace() string { return openstackNamespace }

// ListServers retrieves every server of the region, following
// servers_links pagination.
//
// Pages are decoded from the raw response body rather than through the
// pager: the pager re-encodes bodies as Go maps, which loses the order of
// each server's "addresses" object, and the first network must be the
// one the API listed first.
func (s *OpenStackSession) ListServers(ctx context.Context) ([]domain.Server, error) {
	url := s.compute.ServiceURL("servers", "detail")

	var out []domain.Server
	for url != "" {
		var raw json.RawMessage
		if _, err := s.compute.Get(ctx, url, &raw, nil); err != nil {
			return nil, fmt.Errorf("failed to list servers in %s: %w", s.region, classifyOpenStack(err))
		}

		page, next, err := decodeServerPage(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode servers in %s: %w", s.region, err)
		}
		out = append(out, page...)

		if next == url {
			break
		}
		url = next
	}

	return out, nil
}

// GetImage resolves an image through the Glance v2 API.
func (s *OpenStackSession) GetImage(ctx context.Context, id string) (*domain.Image, error) {
	if s.image == nil {
		return nil, fmt.Errorf("image %s: %w (no image service)", id, domain.ErrNotFound)
	}

	img, err := images.Get(ctx, s.image, id).Extract()
	if err != nil {
		return nil, fmt.Errorf("failed to get image %s: %w", id, classifyOpenStack(err))
	}

	return &domain.Image{
		ID:      img.ID,
		Name:    img.Name,
		HumanID: util.HumanID(img.Name),
	}, nil
}

// serverPage is one page of GET /servers/detail.
type serverPage struct {
	Servers []servers.Server   `json:"servers"`
	Links   []gophercloud.Link `json:"servers_links"`
}

// serverExtras carries the fields servers.Server does not expose in a form
// we need: the ordered address object and the nova API extensions.
type serverExtras struct {
	Addresses        orderedNetworks `json:"addresses"`
	AvailabilityZone string          `json:"OS-EXT-AZ:availability_zone"`
	VMState          string          `json:"OS-EXT-STS:vm_state"`
	TaskState        *string         `json:"OS-EXT-STS:task_state"`
	PowerState       int             `json:"OS-EXT-STS:power_state"`
	DiskConfig       string          `json:"OS-DCF:diskConfig"`
}

func decodeServerPage(raw []byte) ([]domain.Server, string, error) {
	var page serverPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, "", err
	}

	var extras struct {
		Servers []serverExtras `json:"servers"`
	}
	if err := json.Unmarshal(raw, &extras); err != nil {
		return nil, "", err
	}
	if len(extras.Servers) != len(page.Servers) {
		return nil, "", fmt.Errorf("server count mismatch: %d != %d", len(extras.Servers), len(page.Servers))
	}

	out := make([]domain.Server, 0, len(page.Servers))
	for i := range page.Servers {
		out = append(out, novaToDomainServer(&page.Servers[i], &extras.Servers[i]))
	}

	var next string
	for _, link := range page.Links {
		if link.Rel == "next" {
			next = link.Href
		}
	}

	return out, next, nil
}

// novaToDomainServer converts a Nova server to a domain.Server.
func novaToDomainServer(s *servers.Server, ext *serverExtras) domain.Server {
	server := domain.Server{
		ID:       s.ID,
		Name:     s.Name,
		Metadata: s.Metadata,
		Networks: ext.Addresses,
		FlavorID: stringField(s.Flavor, "id", "original_name"),
		ImageID:  stringField(s.Image, "id"),
	}

	server.Attributes = openstackAttributes(s, ext)
	return server
}

// openstackAttributes is the explicit list of server fields exported as
// host variables. Keys use the Nova API field names; the inventory builder
// slugs and prefixes them.
func openstackAttributes(s *servers.Server, ext *serverExtras) map[string]any {
	networks := make(map[string][]string, len(ext.Addresses))
	for _, n := range ext.Addresses {
		addrs := make([]string, 0, len(n.Addresses))
		for _, a := range n.Addresses {
			addrs = append(addrs, a.Addr)
		}
		networks[n.Name] = addrs
	}

	metadata := s.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	attrs := map[string]any{
		"id":                          s.ID,
		"name":                        s.Name,
		"human_id":                    util.HumanID(s.Name),
		"status":                      s.Status,
		"tenant_id":                   s.TenantID,
		"user_id":                     s.UserID,
		"hostId":                      s.HostID,
		"progress":                    s.Progress,
		"accessIPv4":                  s.AccessIPv4,
		"accessIPv6":                  s.AccessIPv6,
		"key_name":                    s.KeyName,
		"metadata":                    metadata,
		"addresses":                   s.Addresses,
		"networks":                    networks,
		"image":                       s.Image,
		"flavor":                      s.Flavor,
		"security_groups":             s.SecurityGroups,
		"OS-EXT-AZ:availability_zone": ext.AvailabilityZone,
		"OS-EXT-STS:vm_state":         ext.VMState,
		"OS-EXT-STS:task_state":       ext.TaskState,
		"OS-EXT-STS:power_state":      ext.PowerState,
		"OS-DCF:diskConfig":           ext.DiskConfig,
		"created":                     formatTime(s.Created),
		"updated":                     formatTime(s.Updated),
	}
	return attrs
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// stringField returns the first non-empty string value among keys.
func stringField(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// orderedNetworks decodes Nova's "addresses" object, keeping network order.
type orderedNetworks []domain.Network

type novaAddress struct {
	Addr    string `json:"addr"`
	Version int    `json:"version"`
	Type    string `json:"OS-EXT-IPS:type"`
}

func (n *orderedNetworks) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*n = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("addresses: expected object, got %v", tok)
	}

	var networks orderedNetworks
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("addresses: expected network name, got %v", keyTok)
		}

		var entries []novaAddress
		if err := dec.Decode(&entries); err != nil {
			return fmt.Errorf("addresses: network %q: %w", name, err)
		}

		network := domain.Network{Name: name, Addresses: make([]domain.Address, 0, len(entries))}
		for _, e := range entries {
			network.Addresses = append(network.Addresses, domain.Address{
				Addr:    e.Addr,
				Type:    e.Type,
				Version: e.Version,
			})
		}
		networks = append(networks, network)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*n = networks
	return nil
}

// classifyOpenStack wraps gophercloud errors with the matching domain sentinel.
func classifyOpenStack(err error) error {
	switch {
	case err == nil:
		return nil
	case gophercloud.ResponseCodeIs(err, http.StatusUnauthorized):
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	case gophercloud.ResponseCodeIs(err, http.StatusForbidden):
		return fmt.Errorf("%w: %v", domain.ErrForbidden, err)
	case gophercloud.ResponseCodeIs(err, http.StatusNotFound):
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("request timed out: %w", err)
	default:
		return err
	}
}
