package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/modulegen/internal/cli/config"
	"github.com/conduit-lang/modulegen/internal/cli/ui"
	"github.com/conduit-lang/modulegen/internal/compiler/errors"
	"github.com/conduit-lang/modulegen/internal/logging"
	"github.com/conduit-lang/modulegen/internal/tooling/build"
	"github.com/conduit-lang/modulegen/internal/watch"
)

// stdoutOutput as the output path prints the generated code instead of
// writing a file
const stdoutOutput = "-"

type generateOptions struct {
	configFile  string
	sources     []string
	references  []string
	output      string
	namespace   string
	jobs        int
	allowErrors bool
	noBuiltin   bool
	json        bool
	verbose     bool
	watch       bool
}

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the ReactPackageProvider from symbol snapshots",
		Long: `Load symbol snapshots, analyze the native modules they declare and write the
package provider source.

The generation process:
  1. Load - decode and bind the snapshot files
  2. Resolve - find the Microsoft.ReactNative library types
  3. Analyze - extract modules, view managers, serializable types and extensions
  4. Generate - emit the C# provider class
  5. Write - replace the output file when its content changed

Flags override modulegen.yml, which overrides MODULEGEN_* environment variables.`,
		Example: `  # Generate using modulegen.yml
  modulegen generate

  # Explicit sources and namespace
  modulegen generate --source obj/SampleApp.json --namespace SampleApp

  # Print the generated code instead of writing it
  modulegen generate --output -

  # Machine-readable diagnostics for build tooling
  modulegen generate --json

  # Regenerate whenever a snapshot changes
  modulegen generate --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "Config file (default: modulegen.yml in the current directory)")
	cmd.Flags().StringSliceVarP(&opts.sources, "source", "s", nil, "Snapshot file or directory of the analyzed assembly (repeatable)")
	cmd.Flags().StringSliceVarP(&opts.references, "reference", "r", nil, "Snapshot file or directory of a referenced assembly (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file, or - for stdout (default: ReactPackageProvider.g.cs)")
	cmd.Flags().StringVarP(&opts.namespace, "namespace", "n", "", "Namespace of the generated provider class")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "Snapshot files read in parallel (default: number of CPUs)")
	cmd.Flags().BoolVar(&opts.allowErrors, "allow-errors", false, "Write the output even when errors were reported")
	cmd.Flags().BoolVar(&opts.noBuiltin, "no-builtin-references", false, "Do not add the embedded Microsoft.ReactNative references")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output the result and diagnostics in JSON format")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show detailed output and debug logs")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Regenerate when snapshot files change")

	return cmd
}

// loadConfig reads the config file and applies the flags the user set
func (o *generateOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if o.configFile != "" {
		cfg, err = config.LoadFile(o.configFile)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Sources = o.sources
	}
	if flags.Changed("reference") {
		cfg.References = o.references
	}
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("namespace") {
		cfg.Namespace = o.namespace
	}
	if flags.Changed("jobs") {
		cfg.Jobs = o.jobs
	}
	if flags.Changed("allow-errors") {
		cfg.AllowErrors = o.allowErrors
	}
	if flags.Changed("no-builtin-references") {
		cfg.BuiltinReferences = !o.noBuiltin
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("no sources configured: pass --source or add sources to modulegen.yml")
	}
	if cfg.Namespace == "" {
		return nil, fmt.Errorf("no namespace configured: pass --namespace or add namespace to modulegen.yml")
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	noColor := color.NoColor
	errOut := cmd.ErrOrStderr()

	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		if !opts.json {
			fmt.Fprint(errOut, ui.ConfigError(err.Error(), noColor))
			return errDiagnostics
		}
		return err
	}

	logger := logging.New(opts.verbose)
	defer logger.Sync()

	buildOpts := &build.Options{
		Sources:           cfg.Sources,
		References:        cfg.References,
		OutputPath:        cfg.Output,
		Namespace:         cfg.Namespace,
		MaxJobs:           cfg.Jobs,
		AllowErrors:       cfg.AllowErrors,
		BuiltinReferences: cfg.BuiltinReferences,
		Logger:            logger,
	}
	toStdout := cfg.Output == stdoutOutput
	if toStdout {
		buildOpts.OutputPath = ""
	}

	sys, err := build.NewSystem(buildOpts)
	if err != nil {
		return err
	}

	printer := &resultPrinter{
		out:      cmd.OutOrStdout(),
		errOut:   errOut,
		json:     opts.json,
		verbose:  opts.verbose,
		toStdout: toStdout,
		noColor:  noColor,
	}

	if opts.watch {
		return watchGenerate(cmd.Context(), sys, cfg, printer, logger)
	}

	// A bar of \r updates only makes sense on a terminal
	var bar *ui.ProgressBar
	if printer.interactive() {
		bar = ui.NewProgressBar(errOut, ui.ProgressBarOptions{NoColor: noColor})
		buildOpts.ProgressFunc = bar.Report
	}

	result, err := sys.Generate(contextOf(cmd))
	if bar != nil {
		bar.Abort()
	}
	if err != nil {
		return err
	}

	if err := printer.print(result); err != nil {
		return err
	}
	if result.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func watchGenerate(ctx context.Context, sys *build.System, cfg *config.Config, printer *resultPrinter, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	inputs := append(append([]string{}, cfg.Sources...), cfg.References...)
	dirs, err := watch.WatchDirs(inputs)
	if err != nil {
		return err
	}
	files, err := sys.SnapshotFiles()
	if err != nil {
		return err
	}

	runner := watch.NewRunner(sys, func(result *build.Result, err error) {
		if err != nil {
			logger.Error("generation failed", zap.Error(err))
			fmt.Fprint(printer.errOut, ui.Warning(err.Error(), printer.noColor))
			return
		}
		if err := printer.print(result); err != nil {
			logger.Error("failed to print result", zap.Error(err))
		}
	}, logger)

	if !printer.json {
		fmt.Fprint(printer.errOut, ui.Info(fmt.Sprintf("Watching %d snapshot file(s) in %d directories. Press Ctrl+C to stop.", len(files), len(dirs)), printer.noColor))
	}

	return runner.Watch(ctx, watch.Options{
		Dirs:     dirs,
		Patterns: watch.DefaultPatterns,
		Ignored:  []string{filepath.Base(cfg.Output)},
		Debounce: cfg.Watch.Debounce,
		Logger:   logger,
	}, files)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// resultPrinter renders a generation result for humans or as JSON
type resultPrinter struct {
	out      io.Writer
	errOut   io.Writer
	json     bool
	verbose  bool
	toStdout bool
	noColor  bool
}

func (p *resultPrinter) interactive() bool {
	return !p.json && !p.noColor
}

// jsonResult is the --json document
type jsonResult struct {
	RunID       string                  `json:"run_id"`
	Success     bool                    `json:"success"`
	Written     bool                    `json:"written"`
	Output      string                  `json:"output,omitempty"`
	DurationMS  int64                   `json:"duration_ms"`
	Errors      int                     `json:"errors"`
	Warnings    int                     `json:"warnings"`
	Diagnostics []*errors.CompilerError `json:"diagnostics"`
	Code        string                  `json:"code,omitempty"`
}

func (p *resultPrinter) print(result *build.Result) error {
	if p.json {
		return p.printJSON(result)
	}

	ui.WriteDiagnostics(p.errOut, result.Diagnostics, p.noColor)

	if !result.Success {
		errCount, _, _ := result.Diagnostics.ErrorCount()
		fmt.Fprint(p.errOut, ui.GenerationBlocked(errCount, p.noColor))
		return nil
	}

	if p.toStdout {
		fmt.Fprint(p.out, result.Code)
		return nil
	}

	switch {
	case result.Written:
		ui.WriteSuccess(p.out, "Generated "+result.OutputPath, p.noColor)
	case result.OutputPath != "":
		ui.WriteSuccess(p.out, result.OutputPath+" is up to date", p.noColor)
	}

	if p.verbose && result.Assembly != nil {
		p.printSummary(result)
	}
	return nil
}

func (p *resultPrinter) printJSON(result *build.Result) error {
	errCount, warnCount, _ := result.Diagnostics.ErrorCount()
	doc := jsonResult{
		RunID:       result.RunID,
		Success:     result.Success,
		Written:     result.Written,
		Output:      result.OutputPath,
		DurationMS:  result.Duration.Milliseconds(),
		Errors:      errCount,
		Warnings:    warnCount,
		Diagnostics: result.Diagnostics,
	}
	if doc.Diagnostics == nil {
		doc.Diagnostics = []*errors.CompilerError{}
	}
	if p.toStdout {
		doc.Code = result.Code
	}

	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

func (p *resultPrinter) printSummary(result *build.Result) {
	asm := result.Assembly
	fmt.Fprintln(p.out)

	kv := ui.NewKeyValueTable(p.out, p.noColor)
	kv.AddRow("Run", result.RunID)
	kv.AddRow("Modules", strconv.Itoa(len(asm.Modules)))
	kv.AddRow("View managers", strconv.Itoa(len(asm.ViewManagers)))
	kv.AddRow("Serializable types", strconv.Itoa(len(asm.SerializableTypes)))
	kv.AddRow("Readers", strconv.Itoa(len(asm.Readers)))
	kv.AddRow("Writers", strconv.Itoa(len(asm.Writers)))
	kv.AddRow("Duration", result.Duration.String())
	kv.Render()

	if len(asm.Modules) == 0 {
		return
	}
	fmt.Fprintln(p.out)
	table := ui.NewTable(p.out, []string{"MODULE", "TYPE", "METHODS", "CONSTANTS", "EVENTS", "FUNCTIONS"}, p.noColor)
	for _, mod := range asm.Modules {
		table.AddRow(
			mod.Name,
			mod.Type.FullName(),
			strconv.Itoa(len(mod.Methods)),
			strconv.Itoa(len(mod.Constants)+len(mod.ConstantProviders)),
			strconv.Itoa(len(mod.Events)),
			strconv.Itoa(len(mod.Functions)),
		)
	}
	table.Render()
}
