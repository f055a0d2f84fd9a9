// Package userconfig overlays operator preferences onto the option schema.
//
// An optional config file can replace the *defaults* offered by the setup
// flow. It never resolves options by itself: the interactive flow stays the
// only configuration path, the file just changes what "skip" and empty
// answers mean for this operator.
package userconfig

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/fastforge/fastforge/pkg/schema"
)

// Path returns the default location of the user configuration file.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "fastforge", "config.yaml")
}

// ApplyDefaults loads the config file at configPath and rewrites the
// defaults of matching options in place. A missing file is not an error.
// Unknown keys and values of the wrong type are skipped with a warning on
// the warnings writer.
func ApplyDefaults(categories []schema.Category, configPath string, warnings io.Writer) []schema.Category {
	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return categories
		}
		fmt.Fprintf(warnings, "Warning: failed to load user config: %v\n", err)
		return categories
	}

	known := make(map[string]struct{})
	for ci := range categories {
		for oi := range categories[ci].Options {
			opt := &categories[ci].Options[oi]
			// viper lowercases keys, match AllKeys below.
			known[strings.ToLower(opt.Key)] = struct{}{}
			if !v.IsSet(opt.Key) {
				continue
			}
			value, ok := coerce(opt, v.Get(opt.Key))
			if !ok {
				fmt.Fprintf(warnings, "Warning: user config value for %q does not fit a %s option, ignoring\n", opt.Key, opt.Type)
				continue
			}
			opt.Default = value
		}
	}

	for _, key := range v.AllKeys() {
		if _, ok := known[key]; !ok {
			fmt.Fprintf(warnings, "Warning: user config key %q matches no option, ignoring\n", key)
		}
	}
	return categories
}

// coerce checks a raw config value against an option's declared type.
func coerce(opt *schema.Option, raw any) (any, bool) {
	switch opt.Type {
	case schema.TypeNumber:
		switch n := raw.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			if n == float64(int(n)) {
				return int(n), true
			}
		}
	case schema.TypeString:
		if s, ok := raw.(string); ok {
			return s, true
		}
	case schema.TypeBoolean, schema.TypeTriBoolean:
		if b, ok := raw.(bool); ok {
			return b, true
		}
	case schema.TypeChoice:
		if s, ok := raw.(string); ok && slices.Contains(opt.Choices, s) {
			return s, true
		}
	}
	return nil, false
}
