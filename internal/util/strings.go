package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeKey lowercases and trims a string for use as a consistent lookup key.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var (
	nonWordOrDash  = regexp.MustCompile(`[^\w-]`)
	nonSlugChars   = regexp.MustCompile(`[^\w\s-]`)
	dashOrSpaceRun = regexp.MustCompile(`[-\s]+`)
)

// Slugify joins prefix and value with an underscore after replacing every
// character of value outside [A-Za-z0-9_-] with an underscore, lowercasing
// it and trimming leading underscores. An empty prefix yields the bare slug.
//
//	Slugify("nova", "OS-EXT-AZ:availability_zone") // "nova_os-ext-az_availability_zone"
func Slugify(prefix, value string) string {
	slug := strings.TrimLeft(strings.ToLower(nonWordOrDash.ReplaceAllString(value, "_")), "_")
	if prefix == "" {
		return slug
	}
	return prefix + "_" + slug
}

// HumanID turns a display name into a lowercase, dash-separated ASCII slug.
// Accents are folded to their base letter and punctuation is dropped:
//
//	HumanID("Ubuntu 24.04 LTS") // "ubuntu-2404-lts"
func HumanID(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	s := strings.ToLower(strings.TrimSpace(nonSlugChars.ReplaceAllString(b.String(), "")))
	return dashOrSpaceRun.ReplaceAllString(s, "-")
}
