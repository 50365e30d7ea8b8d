// Command gwcat generates a gravitational-wave event catalog from a
// directory of posterior sample files: one summary record per event,
// assembled into a single JSON document.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/astrokat/gwcat/internal/api"
	"github.com/astrokat/gwcat/internal/catalog"
	"github.com/astrokat/gwcat/internal/config"
	"github.com/astrokat/gwcat/internal/cosmology"
	"github.com/astrokat/gwcat/internal/parser"
	"github.com/astrokat/gwcat/internal/parser/flatcsv"
	"github.com/astrokat/gwcat/internal/parser/gwtc1"
	"github.com/astrokat/gwcat/internal/standardize"
	"github.com/astrokat/gwcat/internal/summary"
)

// rerunDebounce coalesces bursts of file-system events into one regeneration.
const rerunDebounce = 500 * time.Millisecond

func main() {
	cfgPath := flag.String("config", "configs/gwcat.yaml", "Path to YAML config")
	dataDir := flag.String("data", "", "Override data_dir from config")
	outPath := flag.String("out", "", "Override out_path from config")
	format := flag.String("format", "", "Override catalog format from config")
	serve := flag.String("serve", "", "Serve the catalog over HTTP at this address (overrides serve_addr)")
	watch := flag.Bool("watch", false, "Keep running and regenerate when the data directory changes")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ov := cliOverrides{
		dataDir:   *dataDir,
		outPath:   *outPath,
		format:    *format,
		serveAddr: *serve,
	}

	loader, err := config.NewLoader(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	cfg := loader.Config()
	applyOverrides(cfg, ov)
	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "err", err)
		os.Exit(1)
	}

	reg := parser.NewRegistry()
	cosmo := cosmology.Planck15()
	defaults := standardize.Defaults{
		Incl:        cfg.Defaults.Incl,
		Phi12:       cfg.Defaults.Phi12,
		PhiJL:       cfg.Defaults.PhiJL,
		GeocentTime: cfg.Defaults.GeocentTime,
	}
	reg.Register(gwtc1.New(cosmo, defaults))
	reg.Register(flatcsv.New(cosmo, defaults))

	asm, err := buildAssembler(reg, cfg)
	if err != nil {
		slog.Error("failed to build pipeline", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if !*watch && cfg.ServeAddr == "" {
		if err := runOnce(ctx, asm, cfg, nil); err != nil {
			slog.Error("catalog run failed", "err", err)
			os.Exit(1)
		}
		return
	}

	// ── Watch / serve mode ───────────────────────────────────────────────────
	handler := api.New()
	if cfg.ServeAddr != "" {
		srv := &http.Server{
			Addr:         cfg.ServeAddr,
			Handler:      handler,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			slog.Info("serving catalog", "addr", cfg.ServeAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("server error", "err", err)
				os.Exit(1)
			}
		}()
		defer func() {
			shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer shutCancel()
			_ = srv.Shutdown(shutCtx)
		}()
	}

	if err := runOnce(ctx, asm, cfg, handler); err != nil {
		slog.Error("catalog run failed", "err", err)
	}

	// The mutex guards the asm/cfg pair and the data watcher against the
	// hot-reload goroutine.
	var mu sync.Mutex
	var stopData func()
	rerun := make(chan struct{}, 1)
	if *watch {
		stopData, err = watchDataDir(cfg.DataDir, rerun)
		if err != nil {
			slog.Error("data watcher unavailable", "err", err)
			os.Exit(1)
		}
		slog.Info("watching data directory", "dir", cfg.DataDir)
	}
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		if stopData != nil {
			stopData()
		}
	}()

	// Rebuild the pipeline on config hot-reload; a data_dir change re-arms
	// the data watcher on the new directory.
	loader.OnChange(func(newCfg *config.Config) {
		applyOverrides(newCfg, ov)
		if err := config.Validate(newCfg); err != nil {
			slog.Warn("hot-reload skipped: config invalid", "err", err)
			return
		}
		newAsm, err := buildAssembler(reg, newCfg)
		if err != nil {
			slog.Warn("hot-reload skipped: pipeline build failed", "err", err)
			return
		}
		mu.Lock()
		prevDir := cfg.DataDir
		asm, cfg = newAsm, newCfg
		mu.Unlock()
		if *watch && newCfg.DataDir != prevDir {
			newStop, err := watchDataDir(newCfg.DataDir, rerun)
			if err != nil {
				slog.Warn("data watcher not re-armed", "dir", newCfg.DataDir, "err", err)
			} else {
				mu.Lock()
				if stopData != nil {
					stopData()
				}
				stopData = newStop
				mu.Unlock()
				slog.Info("watching data directory", "dir", newCfg.DataDir)
			}
		}
		slog.Info("config hot-reloaded")
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	for {
		select {
		case <-rerun:
			mu.Lock()
			curAsm, curCfg := asm, cfg
			mu.Unlock()
			if err := runOnce(ctx, curAsm, curCfg, handler); err != nil {
				slog.Error("catalog run failed", "err", err)
			}
		case <-quit:
			slog.Info("shutting down")
			cancel()
			return
		}
	}
}

// cliOverrides holds the flag values that take precedence over the config
// file; they are re-applied after every hot-reload.
type cliOverrides struct {
	dataDir   string
	outPath   string
	format    string
	serveAddr string
}

func applyOverrides(cfg *config.Config, ov cliOverrides) {
	if ov.dataDir != "" {
		cfg.DataDir = ov.dataDir
	}
	if ov.outPath != "" {
		cfg.OutPath = ov.outPath
	}
	if ov.format != "" && ov.format != cfg.Format {
		// Switching format invalidates the configured glob; the new
		// format's default pattern applies.
		cfg.Format = ov.format
		cfg.Glob = ""
		config.ApplyDefaults(cfg)
	}
	if ov.serveAddr != "" {
		cfg.ServeAddr = ov.serveAddr
	}
}

// buildAssembler wires the pipeline for the configured format.
func buildAssembler(reg *parser.Registry, cfg *config.Config) (*catalog.Assembler, error) {
	p, err := reg.Get(cfg.Format)
	if err != nil {
		return nil, err
	}
	iv, err := summary.ParseInterval(cfg.Interval)
	if err != nil {
		return nil, err
	}
	keys := cfg.PublishedKeys
	if len(keys) == 0 {
		keys = summary.DefaultPublishedKeys()
	}
	summarizer := summary.New(iv, cosmology.Planck15(), keys, summary.SchemaVersion)
	return catalog.New(p, summarizer, catalog.Options{
		Glob:     cfg.Glob,
		Workers:  cfg.Workers,
		FailFast: cfg.OnError == config.FailFast,
		Progress: true,
	}), nil
}

// runOnce generates the catalog once and writes the output document.
func runOnce(ctx context.Context, asm *catalog.Assembler, cfg *config.Config, handler *api.Handler) error {
	doc, err := asm.Run(ctx, cfg.DataDir)
	if err != nil {
		return err
	}
	if err := doc.Write(cfg.OutPath); err != nil {
		return err
	}
	if handler != nil {
		handler.SetDocument(doc)
	}
	slog.Info("catalog written", "path", cfg.OutPath, "events", len(doc.Events))
	return nil
}

// watchDataDir signals rerun (debounced) whenever files under dir change.
func watchDataDir(dir string, rerun chan<- struct{}) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer w.Close()
		var timer *time.Timer
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(rerunDebounce, func() {
					select {
					case rerun <- struct{}{}:
					default:
					}
				})
			case <-w.Errors:
				// Ignore watcher errors.
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }, nil
}
