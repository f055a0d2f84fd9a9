package main

import (
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fastforge/fastforge/internal/manifest"
	"github.com/fastforge/fastforge/internal/setup"
	"github.com/fastforge/fastforge/internal/userconfig"
	"github.com/fastforge/fastforge/internal/wizard"
	"github.com/fastforge/fastforge/pkg/prompt"
	"github.com/fastforge/fastforge/pkg/schema"
)

// newFlags holds the flags of the new command.
type newFlags struct {
	configPath string
}

func (f *newFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.configPath, "config", "",
		"Path to a defaults file (default: the fastforge config in your XDG config directory)")
}

func newNewCmd() *cobra.Command {
	flags := &newFlags{}
	cmd := &cobra.Command{
		Use:   "new <directory>",
		Short: "Scaffold a new Fastify project",
		Long: `Scaffold a new Fastify project into a brand-new directory.

This command:
  1. Walks you through the configuration categories (or accepts every default)
  2. Optionally scaffolds any number of plugins through the plugin wizard
  3. Computes the full file manifest and checks it for collisions
  4. Writes the project files`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]

			configPath := flags.configPath
			if configPath == "" {
				configPath = userconfig.Path()
			}
			categories := userconfig.ApplyDefaults(
				schema.Categories(), configPath, cmd.ErrOrStderr())

			registry, err := schema.NewRegistry(categories)
			if err != nil {
				return err
			}

			prompter := prompt.NewPrompter(nil)

			resolved, err := setup.NewFlow(prompter, categories).Resolve()
			if err != nil {
				return err
			}
			if err := registry.Validate(resolved); err != nil {
				return fmt.Errorf("setup flow produced inconsistent options: %w", err)
			}

			scaffolds, err := wizard.NewWizard(prompter).Run()
			if err != nil {
				return err
			}
			if len(scaffolds) > 0 {
				fmt.Fprintln(prompter.Output())
				wizard.Summary(prompter.Output(), scaffolds)
			}

			files, err := manifest.Build(filepath.Base(target), resolved, scaffolds)
			if err != nil {
				return err
			}

			spinner, _ := pterm.DefaultSpinner.Start("Generating project files...")
			if err := manifest.Write(target, files); err != nil {
				if spinner != nil {
					spinner.Fail("Generation failed")
				}
				return err
			}
			if spinner != nil {
				spinner.Success(fmt.Sprintf("Created %s (%d files)", target, len(files)))
			}

			pterm.Info.Printfln("Next: cd %s && npm install && npm start", target)
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}
