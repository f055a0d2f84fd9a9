package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateEngineRender(t *testing.T) {
	engine := NewTemplateEngine()

	tests := []struct {
		name     string
		template string
		data     map[string]any
		want     string
		wantErr  bool
	}{
		{
			name:     "empty template",
			template: "",
			want:     "",
		},
		{
			name:     "simple variable",
			template: "hello {name}",
			data:     map[string]any{"name": "world"},
			want:     "hello world",
		},
		{
			name:     "unknown variable is left untouched",
			template: "const options = {noSuchVar}",
			data:     map[string]any{},
			want:     "const options = {noSuchVar}",
		},
		{
			name:     "literal braces survive",
			template: "return { root: true }",
			data:     map[string]any{"root": "nope"},
			want:     "return { root: true }",
		},
		{
			name:     "expression",
			template: "{{ 1 + 2 }} files",
			want:     "3 files",
		},
		{
			name:     "ternary over nil data",
			template: `{{ port != nil ? "set" : "unset" }}`,
			data:     map[string]any{"port": nil},
			want:     "unset",
		},
		{
			name:     "expression with variables",
			template: `{{ "http://" + host + ":" + string(port) }}`,
			data:     map[string]any{"host": "127.0.0.1", "port": 3000},
			want:     "http://127.0.0.1:3000",
		},
		{
			name:     "invalid expression",
			template: "{{ 1 +++ }}",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Render(tt.template, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplateEngineCachesPrograms(t *testing.T) {
	engine := NewTemplateEngine()

	_, err := engine.Render("{{ 2 * 2 }}", nil)
	require.NoError(t, err)
	assert.Len(t, engine.programCache, 1)

	_, err = engine.Render("{{ 2 * 2 }} and {{ 2 * 2 }}", nil)
	require.NoError(t, err)
	assert.Len(t, engine.programCache, 1)
}

func TestCamel(t *testing.T) {
	assert.Equal(t, "billing", camel("billing"))
	assert.Equal(t, "myPlugin1", camel("my-plugin1"))
	assert.Equal(t, "aBC", camel("a-b-c"))
}

func TestJSValue(t *testing.T) {
	assert.Equal(t, "'10.0.0.0/8'", jsValue("10.0.0.0/8"))
	assert.Equal(t, "true", jsValue(true))
	assert.Equal(t, "false", jsValue(false))
	assert.Equal(t, "2", jsValue(2))
	assert.Equal(t, `'it\'s'`, jsValue("it's"))
}
