package config

import (
	"fmt"
	"strings"

	"github.com/astrokat/gwcat/internal/summary"
)

// Validate checks the config for required fields and recognized option
// values, collecting every problem rather than stopping at the first.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Version == "" {
		errs = append(errs, "version is required")
	}
	if cfg.DataDir == "" {
		errs = append(errs, "data_dir is required")
	}
	if cfg.OutPath == "" {
		errs = append(errs, "out_path is required")
	}
	if cfg.OnError != BestEffort && cfg.OnError != FailFast {
		errs = append(errs, fmt.Sprintf("on_error must be %q or %q, got %q", BestEffort, FailFast, cfg.OnError))
	}
	if cfg.Workers < 1 {
		errs = append(errs, fmt.Sprintf("workers must be >= 1, got %d", cfg.Workers))
	}
	if _, err := summary.ParseInterval(cfg.Interval); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
