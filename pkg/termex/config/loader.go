package config

import (
	"log/slog"
	"regexp"

	"github.com/cognicore/termex/pkg/termex/stoplist"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	SettingsPath string
	StoplistPath string // overrides the settings file's stoplist when set
	Logger       *slog.Logger
}

// Components holds all loaded configuration components
type Components struct {
	Settings Settings
	Stoplist *stoplist.List
	Pattern  *regexp.Regexp
}

// Load reads all configuration files and returns initialized components.
// Configuration problems are never fatal: each one falls back to a default
// and is logged.
func (l *Loader) Load() *Components {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	settings := Load(l.SettingsPath, logger)
	if l.StoplistPath != "" {
		settings.Stoplist = l.StoplistPath
		settings = settings.Validate(logger)
	}

	return &Components{
		Settings: settings,
		Stoplist: LoadStoplist(settings.Stoplist, logger),
		Pattern:  settings.CompiledPattern(),
	}
}

// LoadStoplist reads the stoplist at path, falling back to the built-in list
// when path is empty or unreadable.
func LoadStoplist(path string, logger *slog.Logger) *stoplist.List {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return stoplist.Default()
	}
	sl, err := stoplist.Load(path)
	if err != nil {
		logger.Warn("stoplist not readable, using the built-in list", "path", path, "err", err)
		return stoplist.Default()
	}
	logger.Debug("stoplist loaded", "path", path, "words", sl.Len())
	return sl
}
