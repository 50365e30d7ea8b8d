// Package catalog drives the per-event pipeline over a directory of
// posterior files and assembles the resulting summary records into one
// catalog document.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/astrokat/gwcat/internal/metrics"
	"github.com/astrokat/gwcat/internal/parser"
	"github.com/astrokat/gwcat/internal/summary"
)

// Options configures an Assembler.
type Options struct {
	// Glob selects candidate posterior files within the data directory.
	Glob string
	// Workers bounds the number of events processed concurrently.
	Workers int
	// FailFast aborts the run on the first event failure instead of
	// recording a failure note and continuing.
	FailFast bool
	// Progress renders a terminal progress bar across events.
	Progress bool
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Assembler runs parse → standardize → summarize per event and builds the
// catalog document. Event records are discarded as soon as their summary is
// extracted; only the compact records live past an iteration.
type Assembler struct {
	parser     parser.Parser
	summarizer *summary.Summarizer
	opts       Options
}

// New creates an Assembler for one parser/summarizer pair.
func New(p parser.Parser, s *summary.Summarizer, opts Options) *Assembler {
	if opts.Glob == "" {
		opts.Glob = "*"
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Assembler{parser: p, summarizer: s, opts: opts}
}

// eventResult is the outcome of one event's pipeline.
type eventResult struct {
	file   string
	name   string
	record summary.Record
	took   time.Duration
	err    error
}

// Run processes every matching file under dataDir and returns the assembled
// document. File discovery is sorted so reruns are reproducible; worker
// completion order cannot affect the document, which is keyed by event name.
func (a *Assembler) Run(ctx context.Context, dataDir string) (*Document, error) {
	files, err := filepath.Glob(filepath.Join(dataDir, a.opts.Glob))
	if err != nil {
		return nil, fmt.Errorf("discover posterior files: %w", err)
	}
	sort.Strings(files)
	metrics.FilesDiscovered.Add(float64(len(files)))

	logger := a.opts.Logger.With("run_id", uuid.New().String())
	logger.Info("catalog run starting", "dir", dataDir, "files", len(files), "catalog", a.parser.Catalog())

	var bar *progressbar.ProgressBar
	if a.opts.Progress {
		bar = progressbar.Default(int64(len(files)), "summarizing posteriors")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := newWorkerPool(ctx, a.opts.Workers, a.processFile)
	go func() {
		for _, f := range files {
			if !pool.Submit(ctx, f) {
				break
			}
		}
		pool.Close()
	}()

	doc := NewDocument()
	var firstErr error
	for res := range pool.Results() {
		if bar != nil {
			_ = bar.Add(1)
		}
		if res.err != nil {
			metrics.EventsFailed.Inc()
			logger.Error("event failed", "event", res.name, "file", res.file, "err", res.err)
			if a.opts.FailFast {
				if firstErr == nil {
					firstErr = fmt.Errorf("event %s: %w", res.name, res.err)
					cancel()
				}
				continue
			}
			doc.Events[res.name] = &FailureNote{CommonName: res.name, Error: res.err.Error()}
			continue
		}
		metrics.EventsSummarized.Inc()
		metrics.EventProcessingDuration.Observe(float64(res.took.Milliseconds()))
		doc.Events[res.name] = res.record
		logger.Info("event summarized", "event", res.name, "took", res.took)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if firstErr != nil {
		metrics.RunsCompleted.WithLabelValues("error").Inc()
		return nil, firstErr
	}
	metrics.RunsCompleted.WithLabelValues("ok").Inc()
	logger.Info("catalog run complete", "events", len(doc.Events))
	return doc, nil
}

func (a *Assembler) processFile(_ context.Context, path string) eventResult {
	start := time.Now()
	res := eventResult{file: path, name: parser.EventName(path)}

	rec, err := parser.Parse(a.parser, path)
	if err != nil {
		res.err = err
		return res
	}
	res.record, res.err = a.summarizer.Summarize(rec.EventName, rec.Samples)
	res.took = time.Since(start)
	return res
}
