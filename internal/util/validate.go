package util

import (
	"fmt"
	"regexp"
	"strings"
)

// ReservedGroupName is the top-level inventory key holding host variables.
// No group, region included, may use it.
const ReservedGroupName = "_meta"

// validRegionChars matches alphanumerics, hyphens, underscores and periods.
var validRegionChars = regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)

// ValidateRegionName checks that a configured region (or Hetzner location)
// name is usable as an endpoint filter and as an inventory group name:
//   - Not empty
//   - Only alphanumeric characters, hyphens (-), underscores (_) and periods (.)
//   - Not the reserved group name "_meta"
func ValidateRegionName(name string) error {
	if name == "" {
		return fmt.Errorf("region name must not be empty")
	}

	if name == ReservedGroupName {
		return fmt.Errorf("region name %q is reserved", name)
	}

	if !validRegionChars.MatchString(name) {
		return fmt.Errorf("region name %q contains invalid characters (only a-z, A-Z, 0-9, hyphens, underscores, and periods are allowed)", name)
	}

	return nil
}

// SplitList splits a comma-separated value, trimming whitespace around each
// element and dropping empty elements.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
