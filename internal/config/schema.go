package config

// Config is the top-level YAML structure.
type Config struct {
	Version       string       `yaml:"version"`
	DataDir       string       `yaml:"data_dir"`
	OutPath       string       `yaml:"out_path"`
	Format        string       `yaml:"format"`
	Glob          string       `yaml:"glob"`
	Interval      string       `yaml:"interval"` // credible-interval width, e.g. "90%"
	OnError       string       `yaml:"on_error"` // "best_effort" or "fail_fast"
	Workers       int          `yaml:"workers"`
	ServeAddr     string       `yaml:"serve_addr"`
	Defaults      DefaultsConf `yaml:"defaults"`
	PublishedKeys []string     `yaml:"published_keys"` // empty = built-in GWOSC set
}

// DefaultsConf holds the values recorded for orientation parameters the
// source format does not supply.
type DefaultsConf struct {
	Incl        float64 `yaml:"incl"`
	Phi12       float64 `yaml:"phi_12"`
	PhiJL       float64 `yaml:"phi_jl"`
	GeocentTime float64 `yaml:"geocent_time"`
}

// Failure policies accepted by on_error.
const (
	BestEffort = "best_effort"
	FailFast   = "fail_fast"
)

// formatGlobs are the default file patterns per catalog format.
var formatGlobs = map[string]string{
	"gwtc1":   "*.h*5",
	"flatcsv": "*.csv",
}
