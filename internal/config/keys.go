package config

import (
	"fmt"
	"strconv"
	"strings"

	"nathanbeddoewebdev/nova-inventory/internal/util"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the key name inside the provider's INI section (e.g. "auth_url").
	Name string

	// Env lists the environment variables consulted, in order, when no
	// config file was found.
	Env []string

	// Default is used when neither the file nor the environment set a value.
	Default string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Set applies a value for this key to the given Descriptor.
	Set func(d *Descriptor, value string) error
}

// openstackKeys is the authoritative list of [openstack] keys.
// To add a new option: add a field to Descriptor and append a KeySpec here.
var openstackKeys = []KeySpec{
	{
		Name:        "username",
		Env:         []string{"OS_USERNAME"},
		Description: "Keystone user name",
		Set:         func(d *Descriptor, v string) error { d.Username = v; return nil },
	},
	{
		Name:        "password",
		Env:         []string{"OS_PASSWORD"},
		Description: "Keystone password (falls back to the OS keychain)",
		Set:         func(d *Descriptor, v string) error { d.Password = v; return nil },
	},
	{
		Name:        "project_id",
		Env:         []string{"OS_TENANT_NAME", "OS_PROJECT_ID"},
		Description: "Project (tenant) to scope the token to",
		Set:         func(d *Descriptor, v string) error { d.ProjectID = v; return nil },
	},
	{
		Name:        "auth_url",
		Env:         []string{"OS_AUTH_URL"},
		Description: "Keystone endpoint, e.g. https://keystone.example.com:5000/v3",
		Set:         func(d *Descriptor, v string) error { d.AuthURL = v; return nil },
	},
	{
		Name:        "region_name",
		Env:         []string{"OS_REGION_NAME"},
		Default:     "region1",
		Description: "Comma-separated regions to inventory",
		Set:         setRegions,
	},
	{
		Name:        "domain_name",
		Env:         []string{"OS_USER_DOMAIN_NAME", "OS_DOMAIN_NAME"},
		Default:     "Default",
		Description: "Keystone v3 domain of the user and project",
		Set:         func(d *Descriptor, v string) error { d.DomainName = v; return nil },
	},
	{
		Name:        "service_type",
		Default:     "compute",
		Description: "Catalog service type of the compute API",
		Set:         func(d *Descriptor, v string) error { d.ServiceType = v; return nil },
	},
	{
		Name:        "auth_system",
		Default:     "keystone",
		Description: "Authentication system (only keystone is supported)",
		Set:         func(d *Descriptor, v string) error { d.AuthSystem = v; return nil },
	},
	{
		Name:        "insecure",
		Env:         []string{"OS_INSECURE"},
		Default:     "false",
		Description: "Skip TLS certificate verification",
		Set:         setInsecure,
	},
}

// hetznerKeys is the list of [hetzner] keys.
var hetznerKeys = []KeySpec{
	{
		Name:        "token",
		Env:         []string{"HCLOUD_TOKEN"},
		Description: "Hetzner Cloud API token (falls back to the OS keychain)",
		Set:         func(d *Descriptor, v string) error { d.Token = v; return nil },
	},
	{
		Name:        "locations",
		Env:         []string{"HCLOUD_LOCATIONS"},
		Description: "Comma-separated locations to inventory, e.g. fsn1,nbg1",
		Set:         setRegions,
	},
}

func setRegions(d *Descriptor, value string) error {
	regions := util.SplitList(value)
	for _, r := range regions {
		if err := util.ValidateRegionName(r); err != nil {
			return err
		}
	}
	d.Regions = regions
	return nil
}

func setInsecure(d *Descriptor, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("insecure must be a boolean, got %q", value)
	}
	d.Insecure = b
	return nil
}

// Keys returns the key specs for the given provider section, or nil if the
// provider is unknown.
func Keys(provider string) []KeySpec {
	switch util.NormalizeKey(provider) {
	case ProviderOpenStack:
		return openstackKeys
	case ProviderHetzner:
		return hetznerKeys
	default:
		return nil
	}
}

// KeysHelp builds a formatted block listing all sections and their keys,
// suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	var b strings.Builder
	for _, section := range []string{ProviderOpenStack, ProviderHetzner} {
		keys := Keys(section)

		// Find the longest key name for alignment.
		maxLen := 0
		for _, k := range keys {
			if len(k.Name) > maxLen {
				maxLen = len(k.Name)
			}
		}

		fmt.Fprintf(&b, "[%s]\n", section)
		for _, k := range keys {
			desc := k.Description
			if len(k.Env) > 0 {
				desc += " (env: " + strings.Join(k.Env, ", ") + ")"
			}
			fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, desc)
		}
	}
	return b.String()
}
