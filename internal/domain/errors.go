package domain

import "errors"

// Sentinel errors for cross-provider error classification.
// Session backends wrap these so the inventory builder and the CLI can
// handle error categories uniformly without importing provider SDKs.
//
//	return fmt.Errorf("failed to get image %s: %w", id, domain.ErrNotFound)
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the request was rejected due to
	// invalid, expired, or missing credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the credentials were accepted but the user
	// is not allowed to act on the requested project or region.
	ErrForbidden = errors.New("forbidden")

	// ErrNoSession indicates a connector reported success without
	// returning a usable session.
	ErrNoSession = errors.New("no session")
)
