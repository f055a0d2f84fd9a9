package userconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastforge/fastforge/pkg/schema"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func optionByKey(t *testing.T, categories []schema.Category, key string) schema.Option {
	t.Helper()
	for _, cat := range categories {
		for _, opt := range cat.Options {
			if opt.Key == key {
				return opt
			}
		}
	}
	t.Fatalf("no option %q", key)
	return schema.Option{}
}

func TestApplyDefaultsOverridesMatchingOptions(t *testing.T) {
	path := writeConfig(t, "port: 8080\nlogLevel: warn\nprettyLogs: false\n")
	warnings := &bytes.Buffer{}

	categories := ApplyDefaults(schema.Categories(), path, warnings)

	assert.Equal(t, 8080, optionByKey(t, categories, schema.KeyPort).Default)
	assert.Equal(t, "warn", optionByKey(t, categories, schema.KeyLogLevel).Default)
	assert.Equal(t, false, optionByKey(t, categories, schema.KeyPrettyLogs).Default)
	assert.Empty(t, warnings.String())
}

func TestApplyDefaultsSkipsWrongTypes(t *testing.T) {
	path := writeConfig(t, "port: not-a-number\nlogLevel: loud\n")
	warnings := &bytes.Buffer{}

	categories := ApplyDefaults(schema.Categories(), path, warnings)

	assert.Equal(t, 3000, optionByKey(t, categories, schema.KeyPort).Default)
	assert.Equal(t, "info", optionByKey(t, categories, schema.KeyLogLevel).Default)
	assert.Contains(t, warnings.String(), "port")
	assert.Contains(t, warnings.String(), "logLevel")
}

func TestApplyDefaultsWarnsOnUnknownKeys(t *testing.T) {
	path := writeConfig(t, "shinyNewOption: 1\n")
	warnings := &bytes.Buffer{}

	ApplyDefaults(schema.Categories(), path, warnings)

	assert.Contains(t, warnings.String(), "matches no option")
}

func TestApplyDefaultsMissingFileIsFine(t *testing.T) {
	warnings := &bytes.Buffer{}
	path := filepath.Join(t.TempDir(), "nope", "config.yaml")

	categories := ApplyDefaults(schema.Categories(), path, warnings)

	assert.Equal(t, 3000, optionByKey(t, categories, schema.KeyPort).Default)
	assert.Empty(t, warnings.String())
}
