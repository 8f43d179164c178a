package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/modulegen/internal/cli/config"
	"github.com/conduit-lang/modulegen/internal/cli/ui"
)

type initOptions struct {
	dir       string
	namespace string
	sources   []string
	output    string
	yes       bool
	force     bool
}

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a modulegen.yml for the current project",
		Long: `Create a modulegen.yml configuration file.

Without --yes the command prompts for the snapshot sources, the namespace of the
generated provider and the output path. Values given as flags become the prompt
defaults.`,
		Example: `  # Interactive setup
  modulegen init

  # Non-interactive setup
  modulegen init --yes --namespace SampleApp --source obj/symbols`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Directory to write modulegen.yml into")
	cmd.Flags().StringVarP(&opts.namespace, "namespace", "n", "", "Namespace of the generated provider class")
	cmd.Flags().StringSliceVarP(&opts.sources, "source", "s", nil, "Snapshot file or directory of the analyzed assembly")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default: ReactPackageProvider.g.cs)")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Accept flag values and defaults without prompting")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	noColor := color.NoColor

	if existing := config.FindFile(opts.dir); existing != "" && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", existing)
	}

	cfg := config.Default()
	cfg.Sources = []string{"obj/symbols"}
	if len(opts.sources) > 0 {
		cfg.Sources = opts.sources
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}
	cfg.Namespace = opts.namespace
	// the machine's CPU count is not a project setting
	cfg.Jobs = 0

	if !opts.yes {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	if err := validateNamespace(cfg.Namespace); err != nil {
		return err
	}

	path := filepath.Join(opts.dir, config.FileName+".yml")
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ui.WriteSuccess(out, "Created "+path, noColor)
	fmt.Fprintln(out)
	infoColor := color.New(color.FgCyan)
	if noColor {
		infoColor.DisableColor()
	}
	infoColor.Fprintln(out, "Next: modulegen generate")
	return nil
}

func promptConfig(cfg *config.Config) error {
	questions := []*survey.Question{
		{
			Name: "sources",
			Prompt: &survey.Input{
				Message: "Symbol snapshot files or directories (comma separated):",
				Default: strings.Join(cfg.Sources, ","),
			},
			Validate: survey.Required,
		},
		{
			Name: "references",
			Prompt: &survey.Input{
				Message: "Additional reference snapshots (optional, comma separated):",
				Help:    "Microsoft.ReactNative and Microsoft.ReactNative.Managed are built in",
			},
		},
		{
			Name: "namespace",
			Prompt: &survey.Input{
				Message: "Namespace of the generated ReactPackageProvider:",
				Default: cfg.Namespace,
			},
			Validate: survey.ComposeValidators(survey.Required, func(ans interface{}) error {
				s, _ := ans.(string)
				return validateNamespace(s)
			}),
		},
		{
			Name: "output",
			Prompt: &survey.Input{
				Message: "Output file:",
				Default: cfg.Output,
			},
			Validate: survey.Required,
		},
		{
			Name: "allowErrors",
			Prompt: &survey.Confirm{
				Message: "Write the output even when errors are reported?",
				Default: cfg.AllowErrors,
			},
		},
	}

	answers := struct {
		Sources     string
		References  string
		Namespace   string
		Output      string
		AllowErrors bool
	}{}

	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	cfg.Sources = splitList(answers.Sources)
	cfg.References = splitList(answers.References)
	cfg.Namespace = answers.Namespace
	cfg.Output = answers.Output
	cfg.AllowErrors = answers.AllowErrors
	return nil
}

func validateNamespace(ns string) error {
	if !config.ValidNamespace(ns) {
		return fmt.Errorf("invalid namespace %q: use dotted identifiers such as SampleApp.Modules", ns)
	}
	return nil
}

// splitList splits a comma separated answer, dropping blanks
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
