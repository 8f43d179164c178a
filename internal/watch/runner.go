package watch

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/conduit-lang/modulegen/internal/tooling/build"
)

// Generator runs one generation; *build.System implements it
type Generator interface {
	Generate(ctx context.Context) (*build.Result, error)
}

// Reporter receives the outcome of every run
type Reporter func(result *build.Result, err error)

// Runner regenerates whenever a watched snapshot changes content. Runs never
// overlap.
type Runner struct {
	generator Generator
	report    Reporter
	logger    *zap.Logger

	mu     sync.Mutex
	hashes map[string]string
}

// NewRunner creates a runner around generator
func NewRunner(generator Generator, report Reporter, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if report == nil {
		report = func(*build.Result, error) {}
	}
	return &Runner{
		generator: generator,
		report:    report,
		logger:    logger,
		hashes:    make(map[string]string),
	}
}

// Prime records the current content of files so that saving them unchanged does
// not trigger a run
func (r *Runner) Prime(files []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range files {
		r.hashes[f] = fileHash(f)
	}
}

// RunOnce performs a generation and reports it
func (r *Runner) RunOnce(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.run(ctx)
}

// HandleChanges regenerates when any of files differs from the content seen
// last. It reports whether a run happened.
func (r *Runner) HandleChanges(ctx context.Context, files []string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := false
	for _, f := range files {
		hash := fileHash(f)
		if old, ok := r.hashes[f]; ok && old == hash {
			continue
		}
		r.hashes[f] = hash
		changed = true
	}
	if !changed {
		r.logger.Debug("content unchanged, skipping run", zap.Strings("files", files))
		return false
	}
	r.logger.Info("snapshots changed", zap.Strings("files", files))
	r.run(ctx)
	return true
}

func (r *Runner) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	result, err := r.generator.Generate(ctx)
	r.report(result, err)
}

// Watch runs once, then regenerates on every debounced batch of changes until
// ctx is cancelled
func (r *Runner) Watch(ctx context.Context, opts Options, files []string) error {
	r.Prime(files)
	r.RunOnce(ctx)

	fw, err := NewFileWatcher(opts, func(changed []string) error {
		r.HandleChanges(ctx, changed)
		return nil
	})
	if err != nil {
		return err
	}
	if err := fw.Start(); err != nil {
		fw.Stop()
		return err
	}
	r.logger.Info("watching for changes", zap.Strings("dirs", opts.Dirs), zap.Duration("debounce", opts.Debounce))

	<-ctx.Done()
	return fw.Stop()
}

// fileHash returns the content hash of path; a missing file hashes to "" so its
// removal counts as a change
func fileHash(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return build.ContentHash(data)
}
