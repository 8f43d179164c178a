// Package loader turns symbol snapshot files into a bound compilation. Reading and
// decoding run concurrently over a bounded worker pool; binding is sequential.
package loader

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/conduit-lang/modulegen/internal/compiler/errors"
	"github.com/conduit-lang/modulegen/internal/compiler/snapshot"
	"github.com/conduit-lang/modulegen/internal/compiler/symbols"
)

// Options configures a load
type Options struct {
	// Sources are snapshot files of the assembly being analyzed
	Sources []string
	// References are snapshot files of referenced assemblies
	References []string
	// Extra are references that are already decoded, such as the embedded
	// library surface
	Extra []*snapshot.File
	// Jobs bounds the number of files read at once (default: NumCPU)
	Jobs   int
	Logger *zap.Logger
}

// Result is the outcome of a load
type Result struct {
	Compilation *symbols.Compilation
	// Diagnostics holds decode and binding problems; any error severity entry
	// means the compilation must not be analyzed
	Diagnostics errors.ErrorList
}

// Load reads, decodes and binds every snapshot. The returned error is reserved for
// I/O failures and cancellation; malformed snapshots are reported as diagnostics.
func Load(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	all := make([]string, 0, len(opts.Sources)+len(opts.References))
	all = append(all, opts.Sources...)
	all = append(all, opts.References...)

	files, diags, err := ReadFiles(ctx, all, jobs)
	if err != nil {
		return nil, err
	}
	logger.Debug("snapshots decoded",
		zap.Int("sources", len(opts.Sources)),
		zap.Int("references", len(opts.References)+len(opts.Extra)),
		zap.Int("jobs", jobs),
	)

	var sources, references []*snapshot.File
	for i, f := range files {
		if f == nil {
			continue
		}
		if i < len(opts.Sources) {
			sources = append(sources, f)
		} else {
			references = append(references, f)
		}
	}
	references = append(references, opts.Extra...)

	comp, bindDiags := Bind(sources, references)
	diags.Extend(bindDiags)

	return &Result{Compilation: comp, Diagnostics: diags}, nil
}

// ReadFiles reads and decodes paths with at most jobs files in flight. The result
// slice is index-aligned with paths; entries that failed to decode are nil and
// have a matching diagnostic. Cancelling ctx stops queued reads.
func ReadFiles(ctx context.Context, paths []string, jobs int) ([]*snapshot.File, errors.ErrorList, error) {
	files := make([]*snapshot.File, len(paths))
	decodeErrs := make([]*errors.CompilerError, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			f, err := snapshot.Decode(data, snapshot.FormatFor(path))
			if err != nil {
				decodeErrs[i] = errors.NewInvalidSnapshot(path, err)
				return nil
			}
			f.Path = path
			files[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	// errgroup only reports the first worker error; a cancelled parent with no
	// worker failure still has to surface
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var diags errors.ErrorList
	for _, d := range decodeErrs {
		if d != nil {
			diags.Add(d)
		}
	}
	return files, diags, nil
}
