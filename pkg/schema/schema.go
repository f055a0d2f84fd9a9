// Package schema declares the configurable categories and options offered by
// the setup flow, and the registry used to type-check resolved values.
//
// The schema is pure static data: it is constructed once at process start and
// never mutated by any other component. Category and option ordering is
// significant, it is both the display order and the prompt order.
package schema

import (
	"fmt"
	"sort"
)

// OptionType selects the asking strategy used for an option.
type OptionType string

const (
	// TypeNumber is asked as free-text input and parsed as an integer.
	TypeNumber OptionType = "number"
	// TypeString is asked as free-text input.
	TypeString OptionType = "string"
	// TypeBoolean is asked as a Yes/No choice.
	TypeBoolean OptionType = "boolean"
	// TypeTriBoolean is asked as an Unset/False/True choice.
	TypeTriBoolean OptionType = "tri-boolean"
	// TypeChoice is asked as a selection among the option's declared choices.
	TypeChoice OptionType = "choice"
)

// Option describes a single configurable value.
type Option struct {
	// Key identifies the option in the resolved map.
	Key string
	// Label is the human-readable prompt text.
	Label string
	// Type selects the asking strategy.
	Type OptionType
	// Choices lists the allowed values for TypeChoice options.
	Choices []string
	// Default is used verbatim when the category is skipped and offered as
	// the suggested answer when prompted. A nil default means "no override".
	Default any
}

// Category is a named, ordered group of related options presented together
// in the guided flow.
type Category struct {
	Key     string
	Name    string
	Options []Option
}

// ResolvedOptions maps option keys to resolved values. A nil value means the
// operator declined to override the option. After the setup flow completes,
// every declared key is present plus the synthetic KeyTrustProxyEffective.
type ResolvedOptions map[string]any

// Option keys. The trust-proxy effective key is synthetic: it is computed
// from the raw trust-proxy options and is not part of any category.
const (
	KeyPort           = "port"
	KeyHost           = "host"
	KeyRoutePrefix    = "routePrefix"
	KeyLogLevel       = "logLevel"
	KeyPrettyLogs     = "prettyLogs"
	KeyRequestLogging = "requestLogging"
	KeyDebug          = "debug"
	KeyDebugPort      = "debugPort"
	KeyDebugHost      = "debugHost"
	KeyWatch          = "watch"
	KeyIgnoreWatch    = "ignoreWatch"
	KeyVerboseWatch   = "verboseWatch"
	KeyBodyLimit      = "bodyLimit"
	KeyPluginTimeout  = "pluginTimeout"
	KeyCloseGrace     = "closeGraceDelay"

	KeyTrustProxyEnabled = "trustProxyEnabled"
	KeyTrustProxyIPs     = "trustProxyIPs"
	KeyTrustProxyHops    = "trustProxyHops"

	KeyTrustProxyEffective = "trustProxyEffective"
)

// CategoryTrustProxy is the key of the trust-proxy category. The setup flow
// re-derives the effective trust-proxy value immediately after this category.
const CategoryTrustProxy = "trust-proxy"

// Categories returns the reference configuration: six categories in
// declaration order. Callers receive a fresh copy on every call so the
// canonical schema cannot be mutated.
func Categories() []Category {
	return []Category{
		{
			Key:  "network",
			Name: "Network",
			Options: []Option{
				{Key: KeyPort, Label: "Port to listen on", Type: TypeNumber, Default: 3000},
				{Key: KeyHost, Label: "Address to bind to", Type: TypeString, Default: "127.0.0.1"},
				{Key: KeyRoutePrefix, Label: "Route prefix", Type: TypeString, Default: "/"},
			},
		},
		{
			Key:  "logging",
			Name: "Logging",
			Options: []Option{
				{
					Key:     KeyLogLevel,
					Label:   "Log level",
					Type:    TypeChoice,
					Choices: []string{"fatal", "error", "warn", "info", "debug", "trace"},
					Default: "info",
				},
				{Key: KeyPrettyLogs, Label: "Pretty-print logs", Type: TypeBoolean, Default: true},
				{Key: KeyRequestLogging, Label: "Log every request", Type: TypeBoolean, Default: false},
			},
		},
		{
			Key:  "debug",
			Name: "Debugging",
			Options: []Option{
				{Key: KeyDebug, Label: "Start in debug mode", Type: TypeBoolean, Default: false},
				{Key: KeyDebugPort, Label: "Inspector port", Type: TypeNumber, Default: 9320},
				{Key: KeyDebugHost, Label: "Inspector host", Type: TypeString, Default: "127.0.0.1"},
			},
		},
		{
			Key:  "watch",
			Name: "Watch mode",
			Options: []Option{
				{Key: KeyWatch, Label: "Restart on file changes", Type: TypeBoolean, Default: false},
				{Key: KeyIgnoreWatch, Label: "Paths to ignore while watching", Type: TypeString, Default: "node_modules .git"},
				{Key: KeyVerboseWatch, Label: "Verbose watch logging", Type: TypeBoolean, Default: false},
			},
		},
		{
			Key:  "limits",
			Name: "Safety and limits",
			Options: []Option{
				{Key: KeyBodyLimit, Label: "Maximum request body size (bytes)", Type: TypeNumber, Default: 1048576},
				{Key: KeyPluginTimeout, Label: "Plugin startup timeout (ms)", Type: TypeNumber, Default: 10000},
				{Key: KeyCloseGrace, Label: "Close grace delay (ms)", Type: TypeNumber, Default: 500},
			},
		},
		{
			Key:  CategoryTrustProxy,
			Name: "Trust proxy",
			Options: []Option{
				{Key: KeyTrustProxyEnabled, Label: "Trust all proxies", Type: TypeTriBoolean, Default: nil},
				{Key: KeyTrustProxyIPs, Label: "Trusted proxy addresses (IP or CIDR list)", Type: TypeString, Default: ""},
				{Key: KeyTrustProxyHops, Label: "Trusted proxy hop count", Type: TypeNumber, Default: nil},
			},
		},
	}
}

// Registry associates every declared option key with its type so resolved
// values can be checked without runtime coercion.
type Registry struct {
	types   map[string]OptionType
	choices map[string][]string
}

// NewRegistry builds a registry from the given categories. It fails when two
// categories declare the same option key.
func NewRegistry(categories []Category) (*Registry, error) {
	r := &Registry{
		types:   make(map[string]OptionType),
		choices: make(map[string][]string),
	}
	for _, cat := range categories {
		for _, opt := range cat.Options {
			if _, exists := r.types[opt.Key]; exists {
				return nil, fmt.Errorf("option %q declared more than once", opt.Key)
			}
			r.types[opt.Key] = opt.Type
			if opt.Type == TypeChoice {
				r.choices[opt.Key] = append([]string(nil), opt.Choices...)
			}
		}
	}
	return r, nil
}

// Keys returns every declared option key in lexical order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.types))
	for key := range r.types {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Type returns the declared type for key.
func (r *Registry) Type(key string) (OptionType, bool) {
	t, ok := r.types[key]
	return t, ok
}

// Validate checks that resolved contains exactly the declared keys plus the
// synthetic trust-proxy key, and that every non-nil value has the dynamic
// type its declaration requires.
func (r *Registry) Validate(resolved ResolvedOptions) error {
	for key := range r.types {
		if _, ok := resolved[key]; !ok {
			return fmt.Errorf("resolved options missing declared key %q", key)
		}
	}
	for key, value := range resolved {
		if key == KeyTrustProxyEffective {
			switch value.(type) {
			case nil, bool, string, int:
			default:
				return fmt.Errorf("option %q has unexpected type %T", key, value)
			}
			continue
		}
		declared, ok := r.types[key]
		if !ok {
			return fmt.Errorf("resolved options contain undeclared key %q", key)
		}
		if value == nil {
			continue
		}
		if err := r.checkValue(key, declared, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) checkValue(key string, declared OptionType, value any) error {
	switch declared {
	case TypeNumber:
		if _, ok := value.(int); !ok {
			return fmt.Errorf("option %q: expected number, got %T", key, value)
		}
	case TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("option %q: expected string, got %T", key, value)
		}
	case TypeBoolean, TypeTriBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("option %q: expected boolean, got %T", key, value)
		}
	case TypeChoice:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("option %q: expected string, got %T", key, value)
		}
		for _, choice := range r.choices[key] {
			if s == choice {
				return nil
			}
		}
		return fmt.Errorf("option %q: %q is not one of the declared choices", key, s)
	default:
		return fmt.Errorf("option %q: unknown option type %q", key, declared)
	}
	return nil
}
