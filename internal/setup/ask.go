package setup

import (
	"fmt"
	"strconv"

	"github.com/fastforge/fastforge/pkg/schema"
)

// askOption produces a value for a single option, choosing the asking
// strategy by the option's type tag.
func (f *Flow) askOption(opt schema.Option) (any, error) {
	switch opt.Type {
	case schema.TypeBoolean:
		yes, err := f.prompter.Confirm(opt.Label)
		if err != nil {
			return nil, err
		}
		return yes, nil

	case schema.TypeTriBoolean:
		answer, err := f.prompter.AskChoice(opt.Label, []string{"Unset", "False", "True"})
		if err != nil {
			return nil, err
		}
		switch answer {
		case "False":
			return false, nil
		case "True":
			return true, nil
		default:
			return nil, nil
		}

	case schema.TypeChoice:
		return f.prompter.AskChoice(opt.Label, opt.Choices)

	case schema.TypeNumber:
		answer, err := f.prompter.AskInput(opt.Label, defaultString(opt.Default))
		if err != nil {
			return nil, err
		}
		if answer == "" {
			return nil, nil
		}
		n, convErr := strconv.Atoi(answer)
		if convErr != nil {
			f.prompter.Warnf("%q is not a number, keeping the default (%s)", answer, displayValue(opt.Default))
			return opt.Default, nil
		}
		return n, nil

	default: // schema.TypeString
		answer, err := f.prompter.AskInput(opt.Label, defaultString(opt.Default))
		if err != nil {
			return nil, err
		}
		if answer == "" {
			return nil, nil
		}
		return answer, nil
	}
}

// defaultString renders a default as the suggestion passed to the input
// prompt. Nil and empty-string defaults yield no suggestion.
func defaultString(def any) string {
	if def == nil {
		return ""
	}
	return fmt.Sprintf("%v", def)
}

// displayValue renders a resolved value for the summary, with an explicit
// placeholder for unset values.
func displayValue(value any) string {
	if value == nil {
		return "<unset>"
	}
	return fmt.Sprintf("%v", value)
}
