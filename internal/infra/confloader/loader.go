package confloader

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix scopes the environment variables the loader reads.
const DefaultEnvPrefix = "STOCKD_"

// Loader fills a config struct from layered sources. The target
// arrives carrying its defaults; the YAML file overrides those, and
// environment variables override the file.
type Loader struct {
	envPrefix string
	filePath  string
}

// Option configures a Loader.
type Option func(*Loader)

// WithConfigFile points the loader at a YAML file. Without it only
// the environment is consulted.
func WithConfigFile(path string) Option {
	return func(l *Loader) { l.filePath = path }
}

// WithEnvPrefix replaces the STOCKD_ prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) { l.envPrefix = prefix }
}

// NewLoader returns a loader with the default environment prefix.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load layers the configured sources and unmarshals the merged tree
// into target via its koanf tags.
func (l *Loader) Load(target any) error {
	k := koanf.New(".")

	if l.filePath != "" {
		if err := k.Load(file.Provider(l.filePath), yaml.Parser()); err != nil {
			return fmt.Errorf("load config file %s: %w", l.filePath, err)
		}
	}

	if err := k.Load(env.Provider(l.envPrefix, ".", l.envToKey), nil); err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	if err := k.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// envToKey maps STOCKD_SERVER_HTTP_ADDR to server.http.addr. Every
// level of the config schema is a single word, so each underscore is
// a level separator.
func (l *Loader) envToKey(name string) string {
	name = strings.TrimPrefix(name, l.envPrefix)
	return strings.ReplaceAll(strings.ToLower(name), "_", ".")
}
