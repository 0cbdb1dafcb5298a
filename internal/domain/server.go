package domain

// Address types reported by the compute API for each interface address.
const (
	AddressFixed    = "fixed"
	AddressFloating = "floating"
)

// Address is a single IP address attached to a server network.
type Address struct {
	Addr    string `json:"addr"`
	Type    string `json:"type"`              // "fixed" or "floating"
	Version int    `json:"version,omitempty"` // 4 or 6
}

// Network groups the addresses a server holds on one named network.
type Network struct {
	Name      string    `json:"name"`
	Addresses []Address `json:"addresses"`
}

// Server is a compute instance as seen by the inventory builder.
// Backends populate it from their SDK types; the builder never sees
// provider-specific structs.
type Server struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Metadata map[string]string `json:"metadata,omitempty"`

	// Networks keeps the order the API returned them in. Only the first
	// entry is used to pick the SSH address.
	Networks []Network `json:"networks,omitempty"`

	FlavorID string `json:"flavor_id"`
	ImageID  string `json:"image_id,omitempty"`

	// Attributes holds the raw, provider-named fields exported as host
	// variables. Each backend fills a fixed, versioned set of keys.
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Image is a boot image resolved by id.
type Image struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// HumanID is the slugged name used in group names, e.g.
	// "Ubuntu 24.04 LTS" -> "ubuntu-2404-lts".
	HumanID string `json:"human_id"`
}
