package wizard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastforge/fastforge/pkg/prompt"
)

func runWizard(t *testing.T, input string) ([]PluginScaffold, string) {
	t.Helper()
	out := &bytes.Buffer{}
	prompter := prompt.NewPrompter(&prompt.Config{
		Input:  strings.NewReader(input),
		Output: out,
	})

	scaffolds, err := NewWizard(prompter).Run()
	require.NoError(t, err)
	return scaffolds, out.String()
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"my-plugin1", true},
		{"a", true},
		{"billing", true},
		{"My-Plugin", false},
		{"1plugin", false},
		{"", false},
		{"my_plugin", false},
		{"-plugin", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidName(tt.name), "name %q", tt.name)
	}
}

func TestRunDoneImmediatelyEndsWizard(t *testing.T) {
	// Done is option 5. No name was captured, so the wizard ends without
	// appending and without asking for another plugin.
	scaffolds, output := runWizard(t, "5\n")

	assert.Empty(t, scaffolds)
	assert.NotContains(t, output, "Scaffold another plugin?")
}

func TestRunSingleFullScaffold(t *testing.T) {
	// Route -> named "billing" -> route "invoices"; Hook "audit";
	// Decorator; Done; no further plugin.
	scaffolds, _ := runWizard(t, strings.Join([]string{
		"1", "billing", "invoices",
		"2", "audit",
		"3",
		"5",
		"2", // another? No
	}, "\n") + "\n")

	require.Len(t, scaffolds, 1)
	sc := scaffolds[0]
	assert.Equal(t, "billing", sc.Name)
	assert.Equal(t, []string{"invoices"}, sc.Routes)
	assert.Equal(t, []string{"audit"}, sc.Hooks)
	assert.True(t, sc.HasDecorator)
	assert.Empty(t, sc.ChildName)
}

func TestRunNameOnlyScaffold(t *testing.T) {
	// First action is Decorator, which forces the name prompt; then the
	// decorator flag is set and the operator is done.
	scaffolds, _ := runWizard(t, "3\nmetrics\n5\n2\n")

	require.Len(t, scaffolds, 1)
	assert.Equal(t, "metrics", scaffolds[0].Name)
	assert.True(t, scaffolds[0].HasDecorator)
}

func TestRunRejectsInvalidPluginNames(t *testing.T) {
	scaffolds, output := runWizard(t, strings.Join([]string{
		"1", "My-Plugin", "1plugin", "my-plugin1", "users",
		"5",
		"2",
	}, "\n") + "\n")

	require.Len(t, scaffolds, 1)
	assert.Equal(t, "my-plugin1", scaffolds[0].Name)
	assert.Contains(t, output, "is not a valid name")
}

func TestRunDuplicateRouteWarnsAndKeepsOne(t *testing.T) {
	scaffolds, output := runWizard(t, strings.Join([]string{
		"1", "billing", "users",
		"1", "users",
		"5",
		"2",
	}, "\n") + "\n")

	require.Len(t, scaffolds, 1)
	assert.Equal(t, []string{"users"}, scaffolds[0].Routes)
	assert.Contains(t, output, "already exists")
}

func TestRunSameRouteOnDifferentScaffolds(t *testing.T) {
	scaffolds, _ := runWizard(t, strings.Join([]string{
		"1", "billing", "users",
		"5",
		"1", // another? Yes
		"1", "shipping", "users",
		"5",
		"2",
	}, "\n") + "\n")

	require.Len(t, scaffolds, 2)
	assert.Equal(t, []string{"users"}, scaffolds[0].Routes)
	assert.Equal(t, []string{"users"}, scaffolds[1].Routes)
}

func TestRunDuplicateDecoratorWarns(t *testing.T) {
	scaffolds, output := runWizard(t, "3\nbilling\n3\n5\n2\n")

	require.Len(t, scaffolds, 1)
	assert.True(t, scaffolds[0].HasDecorator)
	assert.Contains(t, output, "already has a decorator")
}

func TestRunChildPluginMustDifferFromParent(t *testing.T) {
	scaffolds, output := runWizard(t, strings.Join([]string{
		"4", "billing", // first action forces the name prompt
		"billing", // child equal to parent: rejected
		"ledger",  // accepted
		"5",
		"2",
	}, "\n") + "\n")

	require.Len(t, scaffolds, 1)
	assert.Equal(t, "ledger", scaffolds[0].ChildName)
	assert.Contains(t, output, "must differ")
}

func TestRunDuplicateChildWarns(t *testing.T) {
	scaffolds, output := runWizard(t, strings.Join([]string{
		"4", "billing", "ledger",
		"4",
		"5",
		"2",
	}, "\n") + "\n")

	require.Len(t, scaffolds, 1)
	assert.Equal(t, "ledger", scaffolds[0].ChildName)
	assert.Contains(t, output, "already has a child plugin")
}

func TestRunRejectsDuplicatePluginNameAcrossScaffolds(t *testing.T) {
	scaffolds, output := runWizard(t, strings.Join([]string{
		"3", "billing", "5",
		"1", // another? Yes
		"3", "billing", // taken: re-prompt
		"payments",
		"5",
		"2",
	}, "\n") + "\n")

	require.Len(t, scaffolds, 2)
	assert.Equal(t, "billing", scaffolds[0].Name)
	assert.Equal(t, "payments", scaffolds[1].Name)
	assert.Contains(t, output, "already scaffolded")
}

func TestSummary(t *testing.T) {
	out := &bytes.Buffer{}
	Summary(out, []PluginScaffold{
		{
			Name:         "billing",
			Routes:       []string{"invoices", "refunds"},
			Hooks:        []string{"audit"},
			HasDecorator: true,
			ChildName:    "ledger",
		},
		{Name: "metrics"},
	})

	text := out.String()
	assert.Contains(t, text, "billing: routes ×2, hooks ×1, decorator, child plugin")
	assert.Contains(t, text, "  route invoices")
	assert.Contains(t, text, "  route refunds")
	assert.Contains(t, text, "  hook audit")
	assert.Contains(t, text, "  child plugin ledger")
	assert.Contains(t, text, "metrics: none (base plugin only)")
}
