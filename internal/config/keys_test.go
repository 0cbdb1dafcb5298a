package config

import (
	"strings"
	"testing"
)

func TestKeys_KnownProviders(t *testing.T) {
	for _, provider := range []string{"openstack", "OpenStack", "hetzner"} {
		if Keys(provider) == nil {
			t.Errorf("expected keys for provider %q", provider)
		}
	}
	if Keys("unknown") != nil {
		t.Error("expected nil keys for unknown provider")
	}
}

func TestKeys_OpenStackCoversINIFields(t *testing.T) {
	want := []string{
		"username", "password", "project_id", "auth_url",
		"region_name", "service_type", "auth_system", "insecure",
	}
	have := map[string]bool{}
	for _, k := range Keys("openstack") {
		have[k.Name] = true
		if k.Set == nil {
			t.Errorf("key %q has no Set func", k.Name)
		}
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing key %q", name)
		}
	}
}

func TestKeysHelp(t *testing.T) {
	help := KeysHelp()
	for _, want := range []string{"[openstack]", "[hetzner]", "auth_url", "OS_AUTH_URL", "HCLOUD_TOKEN"} {
		if !strings.Contains(help, want) {
			t.Errorf("expected %q in help text:\n%s", want, help)
		}
	}
}
