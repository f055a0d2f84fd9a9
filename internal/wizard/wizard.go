// Package wizard collects plugin scaffold definitions through a menu-driven
// flow.
//
// Like the setup flow, the wizard is written as an explicit state machine:
// the inner loop that assembles one scaffold moves through named states with
// a step function, so every transition is reachable from a test.
package wizard

import (
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/fastforge/fastforge/pkg/prompt"
)

// identifierPattern constrains plugin, route, hook and child-plugin names.
var identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidName reports whether name is an acceptable identifier: a lowercase
// letter followed by lowercase letters, digits or hyphens.
func ValidName(name string) bool {
	return identifierPattern.MatchString(name)
}

// PluginScaffold records the operator's intent to generate one plugin.
// Routes and Hooks are unique within a scaffold; ChildName, when set, always
// differs from Name.
type PluginScaffold struct {
	Name         string
	Routes       []string
	Hooks        []string
	HasDecorator bool
	ChildName    string
}

// Menu entries of the inner loop.
const (
	actionRoute     = "Route"
	actionHook      = "Hook"
	actionDecorator = "Decorator"
	actionChild     = "Child plugin"
	actionDone      = "Done"
)

// wizardState names a position in the inner loop.
type wizardState int

const (
	stateAwaitingAction wizardState = iota
	stateCollectingName
	stateApplyingAction
	stateFinished
)

// Wizard accumulates plugin scaffolds.
type Wizard struct {
	prompter  *prompt.Prompter
	scaffolds []PluginScaffold
}

// NewWizard creates a wizard over the given prompter.
func NewWizard(prompter *prompt.Prompter) *Wizard {
	return &Wizard{prompter: prompter}
}

// Run drives the outer loop and returns the scaffolds in creation order,
// possibly none. Choosing Done before naming a plugin ends the whole wizard
// immediately, without appending and without asking for another plugin.
func (w *Wizard) Run() ([]PluginScaffold, error) {
	w.scaffolds = nil
	for {
		scaffold, named, err := w.buildOne()
		if err != nil {
			return nil, err
		}
		if !named {
			return w.scaffolds, nil
		}
		w.scaffolds = append(w.scaffolds, *scaffold)

		again, err := w.prompter.Confirm("Scaffold another plugin?")
		if err != nil {
			return nil, err
		}
		if !again {
			return w.scaffolds, nil
		}
	}
}

// builder holds one scaffold under construction plus the menu action waiting
// to be applied.
type builder struct {
	scaffold PluginScaffold
	named    bool
	pending  string
}

// buildOne assembles a single scaffold. The second return value is false
// when the operator chose Done without ever naming the plugin.
func (w *Wizard) buildOne() (*PluginScaffold, bool, error) {
	b := &builder{}
	current := stateAwaitingAction
	for current != stateFinished {
		next, err := w.step(b, current)
		if err != nil {
			return nil, false, err
		}
		current = next
	}
	return &b.scaffold, b.named, nil
}

// step executes one inner-loop state and returns the next.
func (w *Wizard) step(b *builder, current wizardState) (wizardState, error) {
	switch current {
	case stateAwaitingAction:
		action, err := w.prompter.AskChoice("Add to this plugin:", []string{
			actionRoute, actionHook, actionDecorator, actionChild, actionDone,
		})
		if err != nil {
			return stateFinished, err
		}
		if action == actionDone {
			return stateFinished, nil
		}
		b.pending = action
		if !b.named {
			return stateCollectingName, nil
		}
		return stateApplyingAction, nil

	case stateCollectingName:
		name, err := w.collectPluginName()
		if err != nil {
			return stateFinished, err
		}
		b.scaffold.Name = name
		b.named = true
		return stateApplyingAction, nil

	case stateApplyingAction:
		if err := w.applyAction(b); err != nil {
			return stateFinished, err
		}
		return stateAwaitingAction, nil

	default:
		return stateFinished, fmt.Errorf("plugin wizard reached unknown state %d", current)
	}
}

// collectPluginName prompts until it gets a valid identifier that no
// completed scaffold already uses.
func (w *Wizard) collectPluginName() (string, error) {
	for {
		name, err := w.promptIdentifier("Plugin name")
		if err != nil {
			return "", err
		}
		if w.nameTaken(name) {
			w.prompter.Warnf("A plugin named %q is already scaffolded", name)
			continue
		}
		return name, nil
	}
}

func (w *Wizard) nameTaken(name string) bool {
	for _, sc := range w.scaffolds {
		if sc.Name == name {
			return true
		}
	}
	return false
}

// applyAction performs the pending menu action against the scaffold under
// construction. Semantic conflicts warn and leave the scaffold unchanged.
func (w *Wizard) applyAction(b *builder) error {
	sc := &b.scaffold
	switch b.pending {
	case actionRoute:
		name, err := w.promptIdentifier("Route name")
		if err != nil {
			return err
		}
		if slices.Contains(sc.Routes, name) {
			w.prompter.Warnf("Route %q already exists on this plugin", name)
			return nil
		}
		sc.Routes = append(sc.Routes, name)

	case actionHook:
		name, err := w.promptIdentifier("Hook name")
		if err != nil {
			return err
		}
		if slices.Contains(sc.Hooks, name) {
			w.prompter.Warnf("Hook %q already exists on this plugin", name)
			return nil
		}
		sc.Hooks = append(sc.Hooks, name)

	case actionDecorator:
		if sc.HasDecorator {
			w.prompter.Warnf("This plugin already has a decorator")
			return nil
		}
		sc.HasDecorator = true

	case actionChild:
		if sc.ChildName != "" {
			w.prompter.Warnf("This plugin already has a child plugin")
			return nil
		}
		for {
			name, err := w.promptIdentifier("Child plugin name")
			if err != nil {
				return err
			}
			if name == sc.Name {
				w.prompter.Warnf("Child plugin name must differ from the plugin's own name")
				continue
			}
			sc.ChildName = name
			break
		}
	}
	return nil
}

// promptIdentifier asks for a name and re-prompts until it matches the
// identifier pattern.
func (w *Wizard) promptIdentifier(label string) (string, error) {
	for {
		name, err := w.prompter.AskInput(label, "")
		if err != nil {
			return "", err
		}
		if !ValidName(name) {
			w.prompter.Warnf("%q is not a valid name (lowercase letter, then lowercase letters, digits or hyphens)", name)
			continue
		}
		return name, nil
	}
}

// Summary renders a per-scaffold tally followed by the itemized names. It
// only reads the scaffolds.
func Summary(out io.Writer, scaffolds []PluginScaffold) {
	for _, sc := range scaffolds {
		var parts []string
		if len(sc.Routes) > 0 {
			parts = append(parts, fmt.Sprintf("routes ×%d", len(sc.Routes)))
		}
		if len(sc.Hooks) > 0 {
			parts = append(parts, fmt.Sprintf("hooks ×%d", len(sc.Hooks)))
		}
		if sc.HasDecorator {
			parts = append(parts, "decorator")
		}
		if sc.ChildName != "" {
			parts = append(parts, "child plugin")
		}
		tally := "none (base plugin only)"
		if len(parts) > 0 {
			tally = strings.Join(parts, ", ")
		}
		fmt.Fprintf(out, "%s: %s\n", sc.Name, tally)

		for _, route := range sc.Routes {
			fmt.Fprintf(out, "  route %s\n", route)
		}
		for _, hook := range sc.Hooks {
			fmt.Fprintf(out, "  hook %s\n", hook)
		}
		if sc.ChildName != "" {
			fmt.Fprintf(out, "  child plugin %s\n", sc.ChildName)
		}
	}
}
