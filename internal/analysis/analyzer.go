// Package analysis resolves and scans every module of a project.
package analysis

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/hyva-compat/internal/models"
	"github.com/jakoblorz/hyva-compat/internal/resolver"
	"golang.org/x/sync/errgroup"
)

// Resolver finds a module's directory.
type Resolver interface {
	Resolve(identifier string) (resolver.Resolution, error)
}

// Classifier scans a module's directory.
type Classifier interface {
	Classify(identifier, modulePath string) (*models.Classification, error)
}

// ProgressFunc is called after each module completes. done increases by
// one on every call.
type ProgressFunc func(done, total int)

// Analyzer runs resolution and classification for a list of modules.
type Analyzer struct {
	resolver   Resolver
	classifier Classifier
	workers    int
	progress   ProgressFunc
	logger     *log.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithWorkers bounds the number of modules processed at once. Values below
// one mean sequential processing.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.workers = n
	}
}

// WithProgress registers a completion callback.
func WithProgress(fn ProgressFunc) Option {
	return func(a *Analyzer) {
		a.progress = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// New creates an Analyzer.
func New(res Resolver, cls Classifier, options ...Option) *Analyzer {
	a := &Analyzer{
		resolver:   res,
		classifier: cls,
		workers:    runtime.NumCPU(),
		logger:     log.Default(),
	}

	for _, option := range options {
		option(a)
	}

	if a.workers < 1 {
		a.workers = 1
	}
	return a
}

// Run returns one record per identifier, in input order. Modules that cannot
// be resolved get models.NotFoundPath and no classification; modules whose
// directory cannot be scanned keep their path but no classification. Only
// context cancellation makes Run fail.
func (a *Analyzer) Run(ctx context.Context, identifiers []string) ([]*models.ModuleRecord, error) {
	records := make([]*models.ModuleRecord, len(identifiers))
	total := len(identifiers)

	var mu sync.Mutex
	done := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i, identifier := range identifiers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			records[i] = a.analyze(identifier)

			mu.Lock()
			done++
			if a.progress != nil {
				a.progress(done, total)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (a *Analyzer) analyze(identifier string) *models.ModuleRecord {
	res, err := a.resolver.Resolve(identifier)
	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			a.logger.Info("Module path not found", "module", identifier)
		} else {
			a.logger.Error("Module resolution failed", "module", identifier, "err", err)
		}
		return models.NewModuleRecord(identifier, models.NotFoundPath)
	}

	a.logger.Debug("Resolved module", "module", identifier, "path", res.Path, "via", res.Via)
	record := models.NewModuleRecord(identifier, res.Path)

	classification, err := a.classifier.Classify(identifier, res.Path)
	if err != nil {
		a.logger.Warn("Module scan failed", "module", identifier, "err", err)
		return record
	}
	record.Classification = classification

	return record
}
