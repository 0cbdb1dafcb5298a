package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		prefix string
		value  string
		want   string
	}{
		{"nova", "id", "nova_id"},
		{"nova", "accessIPv4", "nova_accessipv4"},
		{"nova", "OS-EXT-AZ:availability_zone", "nova_os-ext-az_availability_zone"},
		{"nova", "OS-EXT-STS:vm_state", "nova_os-ext-sts_vm_state"},
		{"nova", "_private", "nova_private"},
		{"nova", "key name", "nova_key_name"},
		{"", "Hello World", "hello_world"},
		{"hcloud", "server_type", "hcloud_server_type"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := Slugify(tt.prefix, tt.value); got != tt.want {
				t.Errorf("Slugify(%q, %q) = %q, want %q", tt.prefix, tt.value, got, tt.want)
			}
		})
	}
}

func TestHumanID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ubuntu 24.04 LTS", "ubuntu-2404-lts"},
		{"CentOS-7 (x86_64)", "centos-7-x86_64"},
		{"  debian   12  ", "debian-12"},
		{"Café Image", "cafe-image"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HumanID(tt.name); got != tt.want {
				t.Errorf("HumanID(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	if got := NormalizeKey("  OpenStack "); got != "openstack" {
		t.Errorf("NormalizeKey = %q, want %q", got, "openstack")
	}
}
