// Package build runs one generation: it loads the symbol snapshots, analyzes the
// bound compilation and writes the package provider source.
package build

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/conduit-lang/modulegen/internal/compiler/analyzer"
	"github.com/conduit-lang/modulegen/internal/compiler/catalog"
	"github.com/conduit-lang/modulegen/internal/compiler/codegen"
	"github.com/conduit-lang/modulegen/internal/compiler/errors"
	"github.com/conduit-lang/modulegen/internal/compiler/loader"
	"github.com/conduit-lang/modulegen/internal/compiler/model"
	"github.com/conduit-lang/modulegen/internal/compiler/reacttypes"
	"github.com/conduit-lang/modulegen/internal/utils"
)

// Stage names a phase of a generation run
type Stage int

const (
	StageLoad Stage = iota
	StageResolve
	StageAnalyze
	StageGenerate
	StageWrite
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageResolve:
		return "resolve"
	case StageAnalyze:
		return "analyze"
	case StageGenerate:
		return "generate"
	case StageWrite:
		return "write"
	default:
		return "unknown"
	}
}

// stageCount is the number of stages reported to ProgressFunc
const stageCount = int(StageWrite) + 1

// Options configures a generation run
type Options struct {
	// Sources are snapshot files or directories of the assembly being analyzed
	Sources []string
	// References are snapshot files or directories of referenced assemblies
	References []string
	// OutputPath is the file receiving the generated code. Empty keeps the code in
	// the result only.
	OutputPath string
	// Namespace of the generated provider class
	Namespace string
	// MaxJobs bounds concurrent snapshot reads
	MaxJobs int
	// AllowErrors emits code even when error diagnostics were reported
	AllowErrors bool
	// BuiltinReferences adds the embedded Microsoft.ReactNative surface
	BuiltinReferences bool
	Logger            *zap.Logger
	ProgressFunc      func(current, total int, message string)
}

// DefaultOptions returns sensible defaults
func DefaultOptions() *Options {
	return &Options{
		OutputPath:        "ReactPackageProvider.g.cs",
		MaxJobs:           runtime.NumCPU(),
		BuiltinReferences: true,
	}
}

// Result contains information about a generation run
type Result struct {
	RunID string
	// Success is true when code was generated
	Success     bool
	Diagnostics errors.ErrorList
	Assembly    *model.Assembly
	Code        string
	OutputPath  string
	// Written reports whether the output file changed on disk
	Written  bool
	Duration time.Duration
}

// HasErrors reports whether the run reported an error diagnostic
func (r *Result) HasErrors() bool {
	return r.Diagnostics.HasErrors()
}

// System coordinates generation runs. It is not safe for concurrent use; the
// watcher serializes runs.
type System struct {
	options *Options
	logger  *zap.Logger
}

// NewSystem creates a new generation system
func NewSystem(opts *Options) (*System, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(opts.Sources) == 0 {
		return nil, fmt.Errorf("at least one source is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("namespace is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{options: opts, logger: logger}, nil
}

// Options returns the options the system was created with
func (s *System) Options() *Options {
	return s.options
}

// Generate performs a full generation run. The returned error is reserved for
// I/O failures and cancellation; problems in the analyzed program are reported
// through Result.Diagnostics.
func (s *System) Generate(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString()}
	logger := s.logger.With(zap.String("run_id", result.RunID))

	finish := func() (*Result, error) {
		result.Duration = time.Since(start)
		errCount, warnCount, _ := result.Diagnostics.ErrorCount()
		logger.Info("generation finished",
			zap.Bool("success", result.Success),
			zap.Bool("written", result.Written),
			zap.Int("errors", errCount),
			zap.Int("warnings", warnCount),
			zap.Duration("duration", result.Duration),
		)
		return result, nil
	}

	s.progress(StageLoad, "Loading snapshots")
	loaded, err := s.load(ctx, logger)
	if err != nil {
		return nil, err
	}
	result.Diagnostics.Extend(loaded.Diagnostics)
	if loaded.Diagnostics.HasErrors() {
		logger.Warn("snapshots did not bind", zap.Int("diagnostics", len(loaded.Diagnostics)))
		return finish()
	}

	s.progress(StageResolve, "Resolving library types")
	types, diags := reacttypes.Resolve(loaded.Compilation)
	result.Diagnostics.Extend(diags)
	if types == nil {
		logger.Warn("required library types missing", zap.Int("missing", len(diags)))
		return finish()
	}

	s.progress(StageAnalyze, "Analyzing modules")
	asm, diags := analyzer.Analyze(loaded.Compilation, types, catalog.Load(loaded.Compilation))
	result.Diagnostics.Extend(diags)
	result.Assembly = asm
	logger.Debug("analysis complete",
		zap.Int("modules", len(asm.Modules)),
		zap.Int("view_managers", len(asm.ViewManagers)),
		zap.Int("serializable_types", len(asm.SerializableTypes)),
	)
	if diags.HasErrors() && !s.options.AllowErrors {
		return finish()
	}

	s.progress(StageGenerate, "Generating code")
	code, err := codegen.Generate(asm, s.options.Namespace)
	if err != nil {
		return nil, fmt.Errorf("code generation failed: %w", err)
	}
	result.Code = code
	result.Success = true

	if s.options.OutputPath != "" {
		s.progress(StageWrite, "Writing "+s.options.OutputPath)
		written, err := WriteIfChanged(s.options.OutputPath, []byte(code))
		if err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
		result.OutputPath = s.options.OutputPath
		result.Written = written
	}

	return finish()
}

func (s *System) load(ctx context.Context, logger *zap.Logger) (*loader.Result, error) {
	sources, err := utils.ExpandPaths(s.options.Sources)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no snapshot files found in %v", s.options.Sources)
	}
	references, err := utils.ExpandPaths(s.options.References)
	if err != nil {
		return nil, err
	}

	opts := loader.Options{
		Sources:    sources,
		References: references,
		Jobs:       s.options.MaxJobs,
		Logger:     logger,
	}
	if s.options.BuiltinReferences {
		opts.Extra = reacttypes.BuiltinReferences()
	}
	return loader.Load(ctx, opts)
}

// SnapshotFiles lists every snapshot file the run reads, for the watcher
func (s *System) SnapshotFiles() ([]string, error) {
	inputs := append(append([]string{}, s.options.Sources...), s.options.References...)
	return utils.ExpandPaths(inputs)
}

func (s *System) progress(stage Stage, message string) {
	if s.options.ProgressFunc != nil {
		s.options.ProgressFunc(int(stage)+1, stageCount, message)
	}
}
