// Package setup walks the operator through the option schema and produces a
// fully resolved options map.
//
// The flow is an explicit state machine rather than nested loops: every
// reachable state and its exit conditions can be exercised directly in
// tests. Control is single-threaded, each prompt blocks until the transport
// returns a line.
package setup

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/fastforge/fastforge/pkg/prompt"
	"github.com/fastforge/fastforge/pkg/schema"
)

// state names a position in the setup flow.
type state int

const (
	stateChoosingMode state = iota
	stateNextCategory
	stateCategoryGate
	stateConfiguringCategory
	stateSummarizing
	stateDone
)

// Flow resolves the option schema through operator interaction.
type Flow struct {
	prompter   *prompt.Prompter
	categories []schema.Category
	resolved   schema.ResolvedOptions
	index      int
}

// NewFlow creates a setup flow over the given categories.
func NewFlow(prompter *prompt.Prompter, categories []schema.Category) *Flow {
	return &Flow{
		prompter:   prompter,
		categories: categories,
	}
}

// Resolve runs the flow to completion and returns the resolved options.
// Every declared option key is present in the result (nil meaning "no
// override"), plus the derived trust-proxy key. Invalid input never aborts
// the flow; the only errors are transport failures.
func (f *Flow) Resolve() (schema.ResolvedOptions, error) {
	f.resolved = make(schema.ResolvedOptions)
	f.index = 0

	current := stateChoosingMode
	for current != stateDone {
		next, err := f.step(current)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return f.resolved, nil
}

// step executes one state and returns the next.
func (f *Flow) step(current state) (state, error) {
	switch current {
	case stateChoosingMode:
		return f.chooseMode()
	case stateNextCategory:
		if f.index >= len(f.categories) {
			return stateSummarizing, nil
		}
		return stateCategoryGate, nil
	case stateCategoryGate:
		return f.categoryGate()
	case stateConfiguringCategory:
		return f.configureCategory()
	case stateSummarizing:
		ApplyTrustProxyPrecedence(f.resolved)
		f.printSummary()
		return stateDone, nil
	default:
		return stateDone, fmt.Errorf("setup flow reached unknown state %d", current)
	}
}

func (f *Flow) chooseMode() (state, error) {
	mode, err := f.prompter.AskChoice("How do you want to configure the project?", []string{
		"Default setup (accept every default)",
		"Guided setup (walk through each category)",
	})
	if err != nil {
		return stateDone, err
	}
	if mode == "Guided setup (walk through each category)" {
		return stateNextCategory, nil
	}
	for _, cat := range f.categories {
		f.applyDefaults(cat)
	}
	return stateSummarizing, nil
}

func (f *Flow) categoryGate() (state, error) {
	cat := f.categories[f.index]
	action, err := f.prompter.AskChoice(fmt.Sprintf("Category: %s", cat.Name), []string{
		"Skip (use defaults)",
		"Configure",
	})
	if err != nil {
		return stateDone, err
	}
	if action == "Configure" {
		return stateConfiguringCategory, nil
	}
	f.applyDefaults(cat)
	f.finishCategory(cat)
	return stateNextCategory, nil
}

func (f *Flow) configureCategory() (state, error) {
	cat := f.categories[f.index]
	for _, opt := range cat.Options {
		value, err := f.askOption(opt)
		if err != nil {
			return stateDone, err
		}
		f.resolved[opt.Key] = value
	}
	f.finishCategory(cat)
	return stateNextCategory, nil
}

// applyDefaults copies a category's defaults verbatim into the result.
func (f *Flow) applyDefaults(cat schema.Category) {
	for _, opt := range cat.Options {
		f.resolved[opt.Key] = opt.Default
	}
}

// finishCategory advances to the next category. The effective trust-proxy
// value is re-derived right after the trust-proxy category so it always
// reflects the latest raw values before anything reads it.
func (f *Flow) finishCategory(cat schema.Category) {
	if cat.Key == schema.CategoryTrustProxy {
		ApplyTrustProxyPrecedence(f.resolved)
	}
	f.index++
}

// printSummary renders every resolved key and value in schema order, the
// derived key last.
func (f *Flow) printSummary() {
	data := pterm.TableData{{"Option", "Value"}}
	for _, cat := range f.categories {
		for _, opt := range cat.Options {
			data = append(data, []string{opt.Key, displayValue(f.resolved[opt.Key])})
		}
	}
	data = append(data, []string{
		schema.KeyTrustProxyEffective,
		displayValue(f.resolved[schema.KeyTrustProxyEffective]),
	})

	out := f.prompter.Output()
	fmt.Fprintln(out)
	if err := pterm.DefaultTable.WithWriter(out).WithHasHeader().WithData(data).Render(); err != nil {
		for _, row := range data[1:] {
			fmt.Fprintf(out, "%s = %s\n", row[0], row[1])
		}
	}
}
