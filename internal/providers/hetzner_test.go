package providers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nathanbeddoewebdev/nova-inventory/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// newTestHetznerClient creates an hcloud client pointed at a test server
// that replies to every request with status and body.
func newTestHetznerClient(t *testing.T, status int, body string) *hcloud.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("expected Authorization header 'Bearer test-token', got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewHetznerClient(hcloud.WithEndpoint(srv.URL), hcloud.WithToken("test-token"))
}

func TestConnectHetzner_Location(t *testing.T) {
	client := newTestHetznerClient(t, http.StatusOK, `{
  "locations": [
    {"id": 1, "name": "fsn1", "description": "Falkenstein DC Park 1", "country": "DE",
     "city": "Falkenstein", "latitude": 50.47612, "longitude": 12.370071, "network_zone": "eu-central"}
  ]
}`)

	session, err := connectHetzner(context.Background(), client, "fsn1")
	if err != nil {
		t.Fatalf("connectHetzner failed: %v", err)
	}
	if session.Namespace() != "hcloud" {
		t.Errorf("expected namespace hcloud, got %q", session.Namespace())
	}
}

func TestConnectHetzner_UnknownLocation(t *testing.T) {
	client := newTestHetznerClient(t, http.StatusOK, `{"locations": []}`)

	_, err := connectHetzner(context.Background(), client, "mars1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConnectHetzner_Unauthorized(t *testing.T) {
	client := newTestHetznerClient(t, http.StatusUnauthorized,
		`{"error": {"code": "unauthorized", "message": "unable to authenticate", "details": null}}`)

	_, err := connectHetzner(context.Background(), client, "fsn1")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestHcloudToDomainServer(t *testing.T) {
	created := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	s := &hcloud.Server{
		ID:         42,
		Name:       "web-server",
		Status:     hcloud.ServerStatusRunning,
		Created:    created,
		Labels:     map[string]string{"group": "web"},
		ServerType: &hcloud.ServerType{ID: 22, Name: "cx22", Architecture: hcloud.ArchitectureX86},
		Image:      &hcloud.Image{ID: 103, Name: "ubuntu-24.04"},
		Location:   &hcloud.Location{Name: "fsn1"},
		Datacenter: &hcloud.Datacenter{Name: "fsn1-dc14", Location: &hcloud.Location{Name: "fsn1"}},
		PublicNet: hcloud.ServerPublicNet{
			IPv4: hcloud.ServerPublicNetIPv4{IP: net.ParseIP("1.2.3.4")},
		},
		PrivateNet: []hcloud.ServerPrivateNet{{IP: net.ParseIP("10.0.0.2")}},
	}

	got := hcloudToDomainServer(s)

	if got.ID != "42" || got.Name != "web-server" {
		t.Errorf("unexpected id/name: %q/%q", got.ID, got.Name)
	}
	if got.FlavorID != "22" || got.ImageID != "103" {
		t.Errorf("unexpected flavor/image: %q/%q", got.FlavorID, got.ImageID)
	}
	if diff := cmp.Diff(map[string]string{"group": "web"}, got.Metadata); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}

	wantNetworks := []domain.Network{{
		Name: "hcloud",
		Addresses: []domain.Address{
			{Addr: "10.0.0.2", Type: "fixed", Version: 4},
			{Addr: "1.2.3.4", Type: "floating", Version: 4},
		},
	}}
	if diff := cmp.Diff(wantNetworks, got.Networks); diff != "" {
		t.Errorf("networks mismatch (-want +got):\n%s", diff)
	}

	for key, want := range map[string]any{
		"server_type":  "cx22",
		"architecture": "x86",
		"location":     "fsn1",
		"datacenter":   "fsn1-dc14",
		"image":        "ubuntu-24.04",
		"public_ipv4":  "1.2.3.4",
		"status":       "running",
		"created":      "2024-06-15T12:00:00Z",
	} {
		if got.Attributes[key] != want {
			t.Errorf("attribute %s = %v, want %v", key, got.Attributes[key], want)
		}
	}
}

func TestServerLocation(t *testing.T) {
	tests := []struct {
		name string
		s    *hcloud.Server
		want string
	}{
		{"location", &hcloud.Server{Location: &hcloud.Location{Name: "nbg1"}}, "nbg1"},
		{"datacenter fallback", &hcloud.Server{Datacenter: &hcloud.Datacenter{Location: &hcloud.Location{Name: "hel1"}}}, "hel1"},
		{"none", &hcloud.Server{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := serverLocation(tt.s); got != tt.want {
				t.Errorf("serverLocation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHcloudToDomainImage(t *testing.T) {
	tests := []struct {
		name string
		img  *hcloud.Image
		want *domain.Image
	}{
		{
			name: "system image",
			img:  &hcloud.Image{ID: 1, Name: "ubuntu-24.04", Description: "Ubuntu 24.04"},
			want: &domain.Image{ID: "1", Name: "ubuntu-24.04", HumanID: "ubuntu-2404"},
		},
		{
			name: "snapshot uses description",
			img:  &hcloud.Image{ID: 2, Description: "Nightly Snapshot"},
			want: &domain.Image{ID: "2", Name: "Nightly Snapshot", HumanID: "nightly-snapshot"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, hcloudToDomainImage(tt.img)); diff != "" {
				t.Errorf("image mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHetznerSession_GetImageNotFound(t *testing.T) {
	client := newTestHetznerClient(t, http.StatusNotFound,
		`{"error": {"code": "not_found", "message": "image not found", "details": null}}`)
	session := &HetznerSession{client: client, location: "fsn1"}

	_, err := session.GetImage(context.Background(), "42")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHetznerSession_GetImageInvalidID(t *testing.T) {
	session := &HetznerSession{location: "fsn1"}

	_, err := session.GetImage(context.Background(), "ubuntu-24.04")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
