package providers

import (
	"fmt"
	"sort"
	"sync"

	"nathanbeddoewebdev/nova-inventory/internal/config"
	"nathanbeddoewebdev/nova-inventory/internal/util"
)

var (
	mu       sync.RWMutex
	registry = map[string]Connector{}
)

func Register(name string, connector Connector) {
	normalizedName := util.NormalizeKey(name)
	if normalizedName == "" {
		panic("providers: empty provider name")
	}
	if connector == nil {
		panic("providers: nil connector")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[normalizedName]; exists {
		panic(fmt.Sprintf("providers: provider %q already registered", name))
	}

	registry[normalizedName] = connector
}

func Get(name string) (Connector, error) {
	normalizedName := util.NormalizeKey(name)
	mu.RLock()
	connector, ok := registry[normalizedName]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("providers: unknown provider %q", name)
	}

	return connector, nil
}

// RegisterDefaults registers every built-in backend. Safe to call once per
// process; tests use Reset and Register directly.
func RegisterDefaults() {
	Register(config.ProviderOpenStack, ConnectOpenStack)
	Register(config.ProviderHetzner, ConnectHetzner)
}

// Reset clears the provider registry. Intended for use in tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = map[string]Connector{}
}

// List returns the registered provider names in sorted order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
