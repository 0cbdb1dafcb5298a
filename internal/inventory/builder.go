package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"nathanbeddoewebdev/nova-inventory/internal/config"
	"nathanbeddoewebdev/nova-inventory/internal/domain"
	"nathanbeddoewebdev/nova-inventory/internal/providers"
	"nathanbeddoewebdev/nova-inventory/internal/util"
)

// Options tune how host variables are derived.
type Options struct {
	// UsePrivateAddress selects the first fixed address instead of the
	// first floating one for SSHHostVar.
	UsePrivateAddress bool
}

// Builder walks the regions of a descriptor in order, opening one session
// per region.
type Builder struct {
	desc    *config.Descriptor
	connect providers.Connector
	opts    Options
}

// NewBuilder returns a Builder that opens sessions with connect.
func NewBuilder(desc *config.Descriptor, connect providers.Connector, opts Options) *Builder {
	return &Builder{desc: desc, connect: connect, opts: opts}
}

// List builds the full inventory across all regions. Host variables of a
// host seen in several regions are merged, later regions winning.
func (b *Builder) List(ctx context.Context) (*Inventory, error) {
	inv := newInventory()
	images := newImageCache()

	for _, region := range b.desc.Regions {
		session, servers, err := b.listRegion(ctx, region)
		if err != nil {
			return nil, err
		}

		for i := range servers {
			if err := b.addServer(ctx, inv, images, session, region, &servers[i]); err != nil {
				return nil, err
			}
		}
	}

	return inv, nil
}

// Host returns the variables of every server named hostname across all
// regions, merged with later regions winning. An unknown host yields an
// empty map.
func (b *Builder) Host(ctx context.Context, hostname string) (map[string]any, error) {
	vars := make(map[string]any)

	for _, region := range b.desc.Regions {
		session, servers, err := b.listRegion(ctx, region)
		if err != nil {
			return nil, err
		}

		for i := range servers {
			s := &servers[i]
			if s.Name != hostname {
				continue
			}
			b.setHostVars(vars, session.Namespace(), region, s)
		}
	}

	return vars, nil
}

func (b *Builder) listRegion(ctx context.Context, region string) (providers.Session, []domain.Server, error) {
	session, err := b.connect(ctx, b.desc, region)
	if err != nil {
		return nil, nil, fmt.Errorf("region %s: %w", region, err)
	}
	if session == nil {
		return nil, nil, fmt.Errorf("region %s: %w", region, domain.ErrNoSession)
	}

	servers, err := session.ListServers(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("region %s: %w", region, err)
	}

	slog.Debug("listed servers", "region", region, "count", len(servers))
	return session, servers, nil
}

// addServer files one server into every group it belongs to and records
// its host variables.
func (b *Builder) addServer(ctx context.Context, inv *Inventory, images *imageCache, session providers.Session, region string, s *domain.Server) error {
	name := s.Name

	inv.add(region, name)

	if group := s.Metadata["group"]; group != "" {
		inv.add(group, name)
	}
	for _, group := range strings.Split(s.Metadata["groups"], ",") {
		inv.add(group, name)
	}

	b.setHostVars(inv.vars(name), session.Namespace(), region, s)

	for _, key := range sortedKeys(s.Metadata) {
		inv.add(fmt.Sprintf("%s_%s_%s", b.desc.MetaPrefix, key, s.Metadata[key]), name)
	}

	inv.add("instance-"+s.ID, name)
	if s.FlavorID != "" {
		inv.add("flavor-"+s.FlavorID, name)
	}

	if s.ImageID == "" {
		return nil
	}
	human, err := images.humanID(ctx, session, s.ImageID)
	if err != nil {
		return fmt.Errorf("region %s: server %s: %w", region, name, err)
	}
	if human != "" {
		inv.add("image-"+human, name)
	}
	inv.add("image-"+s.ImageID, name)

	return nil
}

// setHostVars flattens the server's attributes into vars as
// <namespace>_<slug>, then sets <namespace>_region and SSHHostVar.
// A server without a usable address keeps any SSHHostVar set earlier.
func (b *Builder) setHostVars(vars map[string]any, namespace, region string, s *domain.Server) {
	for key, value := range s.Attributes {
		vars[util.Slugify(namespace, key)] = value
	}
	vars[util.Slugify(namespace, "region")] = region

	private, public := classifyAddresses(s.Networks)
	addr, ok := sshAddress(private, public, b.opts.UsePrivateAddress)
	if !ok {
		kind := domain.AddressFloating
		if b.opts.UsePrivateAddress {
			kind = domain.AddressFixed
		}
		slog.Warn("no address for ssh host, leaving it unset",
			"host", s.Name, "region", region, "address_type", kind)
		return
	}
	vars[SSHHostVar] = addr
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
