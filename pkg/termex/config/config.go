package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/termex/pkg/termex/internalerr"
)

// DefaultPattern matches noun phrases, "X of Y" phrases and possessives over
// the coarse tag string of a sentence.
const DefaultPattern = `(((((NN|JJ) )*NN) IN (((NN|JJ) )*NN))|((NN|JJ )*NN POS (NN|JJ )*NN))|(((NN|JJ) )+NN( CD)?)`

// Mode selects the acronym recognition strategy.
type Mode string

const (
	Explicit Mode = "explicit"
	Implicit Mode = "implicit"
)

// Settings holds the recognized extraction options.
type Settings struct {
	Pattern  string  `yaml:"pattern"`
	Stoplist string  `yaml:"stoplist"` // empty means the built-in list
	Smin     float64 `yaml:"Smin"`     // token similarity threshold, (0,1)
	Amin     int     `yaml:"Amin"`     // implicit acronym frequency threshold
	Fmin     int     `yaml:"Fmin"`     // term frequency threshold
	Cmin     float64 `yaml:"Cmin"`     // C-value threshold, >= 0.7
	Acronyms Mode    `yaml:"acronyms"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Pattern:  DefaultPattern,
		Stoplist: "",
		Smin:     0.962,
		Amin:     5,
		Fmin:     2,
		Cmin:     1,
		Acronyms: Explicit,
	}
}

// WithDefaults returns a copy of s with every zero field set to its
// default.
func (s Settings) WithDefaults() Settings {
	def := Default()
	if s.Pattern == "" {
		s.Pattern = def.Pattern
	}
	if s.Smin == 0 {
		s.Smin = def.Smin
	}
	if s.Amin == 0 {
		s.Amin = def.Amin
	}
	if s.Fmin == 0 {
		s.Fmin = def.Fmin
	}
	if s.Cmin == 0 {
		s.Cmin = def.Cmin
	}
	if s.Acronyms == "" {
		s.Acronyms = def.Acronyms
	}
	return s
}

// Load reads settings from a YAML, JSON or TOML (.toml) file. It never
// fails: a missing or unparsable file yields the defaults, and every invalid
// value is replaced by its default. Each substitution is logged as a warning.
func Load(path string, logger *slog.Logger) Settings {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("settings file not readable, using defaults", "path", path, "err", err)
		return Default()
	}
	parse := Parse
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		parse = ParseTOML
	}
	s, err := parse(data, logger)
	if err != nil {
		logger.Warn("settings file not parsable, using defaults", "path", path, "err", err)
		return Default()
	}
	return s
}

// Parse decodes settings from raw YAML/JSON bytes. Keys that are absent keep
// their default; present but invalid values are replaced with a warning.
func Parse(data []byte, logger *slog.Logger) (Settings, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Default(), fmt.Errorf("%w: parse settings: %v", internalerr.ErrInvalidConfig, err)
	}
	return fromMap(raw, logger), nil
}

// ParseTOML is Parse for TOML documents.
func ParseTOML(data []byte, logger *slog.Logger) (Settings, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Default(), fmt.Errorf("%w: parse settings: %v", internalerr.ErrInvalidConfig, err)
	}
	return fromMap(raw, logger), nil
}

func fromMap(raw map[string]interface{}, logger *slog.Logger) Settings {
	s := Default()
	warn := func(key string, val interface{}) {
		logger.Warn("invalid setting, using the default instead", "key", key, "value", val)
	}

	if v, ok := raw["pattern"]; ok {
		if p, isStr := v.(string); isStr {
			s.Pattern = p
		} else {
			warn("pattern", v)
		}
	}
	if v, ok := raw["stoplist"]; ok {
		if p, isStr := v.(string); isStr {
			s.Stoplist = p
		} else {
			warn("stoplist", v)
		}
	}
	if v, ok := raw["Smin"]; ok {
		if f, isNum := toFloat(v); isNum {
			s.Smin = f
		} else {
			warn("Smin", v)
		}
	}
	if v, ok := raw["Amin"]; ok {
		if n, isInt := toInt(v); isInt {
			s.Amin = n
		} else {
			warn("Amin", v)
		}
	}
	if v, ok := raw["Fmin"]; ok {
		if n, isInt := toInt(v); isInt {
			s.Fmin = n
		} else {
			warn("Fmin", v)
		}
	}
	if v, ok := raw["Cmin"]; ok {
		if f, isNum := toFloat(v); isNum {
			s.Cmin = f
		} else {
			warn("Cmin", v)
		}
	}
	if v, ok := raw["acronyms"]; ok {
		if m, isStr := v.(string); isStr {
			s.Acronyms = Mode(m)
		} else {
			warn("acronyms", v)
		}
	}

	return s.Validate(logger)
}

// Validate returns a copy of s with every invalid value replaced by its
// default.
func (s Settings) Validate(logger *slog.Logger) Settings {
	if logger == nil {
		logger = slog.Default()
	}
	def := Default()
	warn := func(key string, val interface{}) {
		logger.Warn("invalid setting, using the default instead", "key", key, "value", val)
	}

	if _, err := regexp.Compile(s.Pattern); err != nil || s.Pattern == "" {
		warn("pattern", s.Pattern)
		s.Pattern = def.Pattern
	}
	if s.Stoplist != "" {
		if _, err := os.Stat(s.Stoplist); err != nil {
			warn("stoplist", s.Stoplist)
			s.Stoplist = def.Stoplist
		}
	}
	if !(s.Smin > 0 && s.Smin < 1) {
		warn("Smin", s.Smin)
		s.Smin = def.Smin
	}
	if s.Cmin < 0.7 {
		warn("Cmin", s.Cmin)
		s.Cmin = def.Cmin
	}
	if s.Acronyms != Explicit && s.Acronyms != Implicit {
		warn("acronyms", s.Acronyms)
		s.Acronyms = def.Acronyms
	}
	return s
}

// CompiledPattern returns the tag pattern as a regexp. Settings returned by
// Validate always compile.
func (s Settings) CompiledPattern() *regexp.Regexp {
	re, err := regexp.Compile(s.Pattern)
	if err != nil {
		return regexp.MustCompile(DefaultPattern)
	}
	return re
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// toInt accepts the integer types the YAML and TOML decoders produce.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}
