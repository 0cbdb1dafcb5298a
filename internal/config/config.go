// Package config resolves the connection descriptor used to open cloud
// sessions.
//
// Settings come from the first nova.ini found on the candidate path list
// (--config, ./nova.ini, $NOVA_INI_PATH or $ANSIBLE_CONFIG or ~/nova.ini,
// /etc/ansible/nova.ini) or,
// when no file exists, from the OS_* / HCLOUD_* environment. Secrets
// missing from both fall back to the OS keychain.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"nathanbeddoewebdev/nova-inventory/internal/services/auth"
	"nathanbeddoewebdev/nova-inventory/internal/util"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

const (
	ProviderOpenStack = "openstack"
	ProviderHetzner   = "hetzner"

	fileName          = "nova.ini"
	systemPath        = "/etc/ansible/nova.ini"
	pathEnv           = "NOVA_INI_PATH"
	ansibleConfigEnv  = "ANSIBLE_CONFIG"
	metaPrefixEnv     = "OS_META_PREFIX"
	defaultMetaPrefix = "meta"

	// EnvSource is recorded as Descriptor.Source when no config file was used.
	EnvSource = "environment"
)

var (
	// ErrNoCredentials indicates neither a config file nor the environment
	// (nor the keychain) supplied usable credentials.
	ErrNoCredentials = errors.New("no credentials found")

	// ErrInvalidConfig indicates a config file or environment value could
	// not be used.
	ErrInvalidConfig = errors.New("invalid config")
)

// Descriptor is the normalized connection descriptor. It is built once at
// startup and only read afterwards.
type Descriptor struct {
	Provider string

	Username   string
	Password   string
	ProjectID  string
	AuthURL    string
	DomainName string

	// Regions is ordered and non-empty. For Hetzner these are location names.
	Regions []string

	ServiceType string
	AuthSystem  string
	Insecure    bool

	// Token is the Hetzner Cloud API token.
	Token string

	// MetaPrefix names the metadata-pair groups, <prefix>_<key>_<value>.
	MetaPrefix string

	// Source is the config file path the settings came from, or EnvSource.
	Source string
}

// Sources are the inputs Resolve reads from. Injecting them keeps
// resolution independent of the real filesystem, environment and keychain.
type Sources struct {
	// Candidates are config file paths in priority order.
	Candidates []string

	// Explicit, when set, is a candidate the user named; its absence is
	// an error instead of a reason to try the next candidate.
	Explicit string

	// ReadFile returns the file contents, or an error satisfying
	// errors.Is(err, fs.ErrNotExist) when the file is absent.
	ReadFile func(path string) ([]byte, error)

	// Getenv returns the value of an environment variable or "".
	Getenv func(key string) string

	// Secrets is consulted for missing passwords and tokens. May be nil.
	Secrets auth.Store
}

// DefaultCandidates returns the config file search path. An explicit path,
// when given, is searched first.
func DefaultCandidates(explicit string, getenv func(string) string) []string {
	var paths []string
	if explicit != "" {
		paths = append(paths, expandHome(explicit))
	}

	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, fileName))
	}

	if p := getenv(pathEnv); p != "" {
		paths = append(paths, expandHome(p))
	} else if p := getenv(ansibleConfigEnv); p != "" {
		paths = append(paths, expandHome(p))
	} else {
		paths = append(paths, expandHome(filepath.Join("~", fileName)))
	}

	return append(paths, systemPath)
}

// Load resolves the descriptor for provider from the real environment,
// filesystem and the given secret store.
func Load(provider, explicitPath string, secrets auth.Store) (*Descriptor, error) {
	var explicit string
	if explicitPath != "" {
		explicit = expandHome(explicitPath)
	}
	return Resolve(provider, Sources{
		Candidates: DefaultCandidates(explicitPath, os.Getenv),
		Explicit:   explicit,
		ReadFile:   os.ReadFile,
		Getenv:     os.Getenv,
		Secrets:    secrets,
	})
}

// Resolve builds a Descriptor for provider. The first existing candidate
// file wins; the environment is used only when no file exists.
// OS_META_PREFIX is honored regardless of where credentials came from.
func Resolve(provider string, src Sources) (*Descriptor, error) {
	provider = util.NormalizeKey(provider)
	if provider == "" {
		provider = ProviderOpenStack
	}

	keys := Keys(provider)
	if keys == nil {
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, provider)
	}

	getenv := src.Getenv
	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	d := &Descriptor{
		Provider:   provider,
		MetaPrefix: defaultMetaPrefix,
	}
	if p := getenv(metaPrefixEnv); p != "" {
		d.MetaPrefix = p
	}

	path, data, err := firstExisting(src)
	if err != nil {
		return nil, err
	}

	var lookup func(KeySpec) string
	if path != "" {
		// Passwords may contain '#' and ';', so nothing after '=' is a comment.
		v := viper.NewWithOptions(viper.IniLoadOptions(ini.LoadOptions{IgnoreInlineComment: true}))
		v.SetConfigType("ini")
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
		}
		if v.Sub(provider) == nil {
			return nil, fmt.Errorf("%w: %s has no [%s] section", ErrInvalidConfig, path, provider)
		}
		lookup = func(k KeySpec) string { return v.GetString(provider + "." + k.Name) }
		d.Source = path
	} else {
		lookup = func(k KeySpec) string {
			for _, name := range k.Env {
				if v := getenv(name); v != "" {
					return v
				}
			}
			return ""
		}
		d.Source = EnvSource
	}

	for _, k := range keys {
		value := strings.TrimSpace(lookup(k))
		if value == "" {
			value = k.Default
		}
		if err := k.Set(d, value); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, k.Name, err)
		}
	}

	fillSecret(d, src.Secrets)

	if err := d.validate(src.Candidates); err != nil {
		return nil, err
	}

	slog.Debug("resolved connection descriptor",
		"provider", d.Provider,
		"source", d.Source,
		"regions", d.Regions,
	)

	return d, nil
}

// SecretKey returns the keychain key holding this descriptor's password
// (OpenStack) or token (Hetzner).
func (d *Descriptor) SecretKey() auth.Key {
	if d.Provider == ProviderOpenStack {
		return auth.Key{Provider: d.Provider, Account: d.Username}
	}
	return auth.Key{Provider: d.Provider}
}

func (d *Descriptor) validate(searched []string) error {
	noCreds := fmt.Errorf("%w: unable to find config file in %s or environment variables",
		ErrNoCredentials, strings.Join(searched, ","))

	switch d.Provider {
	case ProviderOpenStack:
		if d.Username == "" || d.Password == "" {
			return noCreds
		}
		if d.AuthURL == "" {
			return fmt.Errorf("%w: auth_url is required (source: %s)", ErrInvalidConfig, d.Source)
		}
	case ProviderHetzner:
		if d.Token == "" {
			return noCreds
		}
	}

	if len(d.Regions) == 0 {
		return fmt.Errorf("%w: at least one region is required (source: %s)", ErrInvalidConfig, d.Source)
	}

	return nil
}

// fillSecret looks up a missing password or token in the secret store.
// Keychain failures are not fatal: headless hosts often have no keychain.
func fillSecret(d *Descriptor, secrets auth.Store) {
	if secrets == nil {
		return
	}

	var target *string
	switch d.Provider {
	case ProviderOpenStack:
		if d.Username == "" {
			return
		}
		target = &d.Password
	case ProviderHetzner:
		target = &d.Token
	default:
		return
	}
	if *target != "" {
		return
	}

	secret, err := secrets.GetSecret(d.SecretKey())
	switch {
	case err == nil:
		*target = secret
	case errors.Is(err, auth.ErrSecretNotFound):
		slog.Debug("no secret in keychain", "key", d.SecretKey().String())
	default:
		slog.Warn("keychain lookup failed", "key", d.SecretKey().String(), "error", err)
	}
}

// firstExisting returns the path and contents of the first candidate file
// that exists. An empty path means none did.
func firstExisting(src Sources) (string, []byte, error) {
	if src.ReadFile == nil {
		return "", nil, nil
	}

	for _, path := range src.Candidates {
		data, err := src.ReadFile(path)
		if err == nil {
			return path, data, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			if src.Explicit != "" && path == src.Explicit {
				return "", nil, fmt.Errorf("%w: config file %s does not exist", ErrInvalidConfig, path)
			}
			continue
		}
		return "", nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	return "", nil, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
