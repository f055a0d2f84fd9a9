package manifest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// TemplateEngine renders file-content templates with variable interpolation.
// It supports two syntaxes:
//  1. Simple variables: {variable_name}
//  2. Expr expressions: {{expression}}
//
// Unknown simple variables are left untouched, which keeps literal braces in
// generated source files intact.
type TemplateEngine struct {
	programCache map[string]*vm.Program
}

// NewTemplateEngine creates a template engine.
func NewTemplateEngine() *TemplateEngine {
	return &TemplateEngine{
		programCache: make(map[string]*vm.Program),
	}
}

var (
	expressionPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)
	variablePattern   = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)
)

// Render renders a template string with the given data.
func (t *TemplateEngine) Render(template string, data map[string]any) (string, error) {
	if template == "" {
		return "", nil
	}
	if data == nil {
		data = make(map[string]any)
	}

	result, err := t.processExpressions(template, data)
	if err != nil {
		return "", err
	}
	return t.processVariables(result, data), nil
}

// processExpressions evaluates {{ expr }} style expressions.
func (t *TemplateEngine) processExpressions(template string, data map[string]any) (string, error) {
	var lastErr error
	result := expressionPattern.ReplaceAllStringFunc(template, func(match string) string {
		expression := strings.TrimSpace(match[2 : len(match)-2])

		value, err := t.evaluateExpression(expression, data)
		if err != nil {
			lastErr = err
			return match
		}
		return fmt.Sprint(value)
	})
	if lastErr != nil {
		return "", fmt.Errorf("failed to evaluate expression: %w", lastErr)
	}
	return result, nil
}

// processVariables substitutes {name} tokens that have a value in data.
func (t *TemplateEngine) processVariables(template string, data map[string]any) string {
	return variablePattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := data[name]
		if !ok {
			return match
		}
		return fmt.Sprint(value)
	})
}

func (t *TemplateEngine) evaluateExpression(expression string, data map[string]any) (any, error) {
	program, ok := t.programCache[expression]
	if !ok {
		var err error
		program, err = expr.Compile(expression, expr.AllowUndefinedVariables())
		if err != nil {
			return nil, fmt.Errorf("invalid expression %q: %w", expression, err)
		}
		t.programCache[expression] = program
	}
	return vm.Run(program, data)
}
