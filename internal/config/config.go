// Package config holds session-wide interpreter settings: numeric display
// precision, the RNG seed used by the roll/deal primitives, and the
// foreign-call policy (which 0!:/1!:/9!: calls are permitted). Settings
// load from an optional YAML file over the built-in defaults; the CLI's
// only related flag is --config, which names that file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	jerr "github.com/sambacha/jgo/internal/errors"
)

// ForeignPolicy controls which foreign-conjunction (m!:n) call classes a
// session may execute, so an embedding host can run untrusted scripts
// without file or process access.
type ForeignPolicy struct {
	AllowFileIO     bool `yaml:"allowFileIO"`
	AllowParamStore bool `yaml:"allowParamStore"`
}

// Config is the full set of session defaults.
type Config struct {
	// PrintPrecision is the number of significant digits used when
	// formatting a Float-kind atom for display (J's 9!:11 default 6).
	PrintPrecision int `yaml:"printPrecision"`

	// RandomSeed seeds the roll/deal (?) primitive; zero means seed
	// from the runtime's own entropy source at session start.
	RandomSeed int64 `yaml:"randomSeed"`

	Foreign ForeignPolicy `yaml:"foreign"`
}

// Default returns the built-in configuration: six-digit float precision,
// an entropy-seeded RNG, and the full foreign-call surface enabled.
func Default() Config {
	return Config{
		PrintPrecision: 6,
		RandomSeed:     0,
		Foreign: ForeignPolicy{
			AllowFileIO:     true,
			AllowParamStore: true,
		},
	}
}

// Load reads a YAML config file (e.g. .jgorc.yaml) over top of Default,
// leaving any field the file omits at its default value. A missing file
// is not an error; Load returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, jerr.FileName("reading config %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, jerr.FileName("parsing config %s: %v", path, err)
	}
	return cfg, nil
}
