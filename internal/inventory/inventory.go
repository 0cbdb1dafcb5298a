// Package inventory turns the servers of one or more cloud regions into an
// Ansible dynamic inventory: a table of group name to host names plus a
// table of per-host variables.
package inventory

import (
	"log/slog"
	"sort"

	"nathanbeddoewebdev/nova-inventory/internal/util"
)

const (
	// MetaKey is the reserved top-level key carrying host variables, so
	// Ansible does not need one --host call per host.
	MetaKey = util.ReservedGroupName

	// SSHHostVar is the host variable holding the address Ansible connects to.
	SSHHostVar = "ansible_ssh_host"
)

// Inventory is the result of a --list run.
type Inventory struct {
	// Groups maps group name to host names in discovery order. A host may
	// appear in a group more than once if it qualifies more than once.
	Groups map[string][]string

	// HostVars maps host name to its variables.
	HostVars map[string]map[string]any
}

func newInventory() *Inventory {
	return &Inventory{
		Groups:   make(map[string][]string),
		HostVars: make(map[string]map[string]any),
	}
}

// add appends host to group. Empty group names are ignored and the
// reserved MetaKey is refused so metadata cannot clobber host variables.
func (inv *Inventory) add(group, host string) {
	if group == "" {
		return
	}
	if group == MetaKey {
		slog.Warn("ignoring reserved group name", "group", group, "host", host)
		return
	}
	inv.Groups[group] = append(inv.Groups[group], host)
}

// vars returns the variable map of host, creating it on first use.
func (inv *Inventory) vars(host string) map[string]any {
	v, ok := inv.HostVars[host]
	if !ok {
		v = make(map[string]any)
		inv.HostVars[host] = v
	}
	return v
}

// Document returns the inventory in the shape Ansible expects: every group
// as a top-level key, plus {"_meta": {"hostvars": ...}} when any host
// variables were collected.
func (inv *Inventory) Document() map[string]any {
	doc := make(map[string]any, len(inv.Groups)+1)
	for name, hosts := range inv.Groups {
		doc[name] = hosts
	}
	if len(inv.HostVars) > 0 {
		doc[MetaKey] = map[string]any{"hostvars": inv.HostVars}
	}
	return doc
}

// GroupNames returns the group names in sorted order.
func (inv *Inventory) GroupNames() []string {
	names := make([]string, 0, len(inv.Groups))
	for name := range inv.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
