// Package settings provides typed access to the persisted user settings.
package settings

import (
	"log/slog"
	"maps"
	"slices"
)

// Keys of all settings.
const (
	settingColoredLayoutCards      = "ui.layoutCards.colored"
	settingDarkMode                = "ui.darkMode"
	settingHideUnavailableFeatures = "ui.hideFeaturesNotAvailableInCurrentFirmware"
	settingLanguage                = "ui.language"
	settingLogLevel                = "app.logLevel"
)

// Defaults of settings.
const (
	coloredLayoutCardsDefault      = false
	darkModeDefault                = false
	hideUnavailableFeaturesDefault = true
	logLevelDefault                = "warning"
)

// WritePolicy defines how failed writes to the store are handled.
type WritePolicy uint

const (
	// FireAndForget logs failed writes and reports them as success.
	FireAndForget WritePolicy = iota
	// Strict reports failed writes to the caller.
	Strict
)

func (p WritePolicy) String() string {
	switch p {
	case FireAndForget:
		return "fire-and-forget"
	case Strict:
		return "strict"
	}
	return "?"
}

// Settings gives typed access to all settings in a store.
//
// Reads never fail. When a key is missing or can not be read the default is returned.
// Whether writes can fail depends on the write policy.
type Settings struct {
	policy WritePolicy
	s      Store
}

// New returns new settings for a store with the fire-and-forget write policy.
func New(s Store) *Settings {
	return NewWithPolicy(s, FireAndForget)
}

// NewWithPolicy returns new settings for a store with the given write policy.
func NewWithPolicy(s Store, policy WritePolicy) *Settings {
	return &Settings{s: s, policy: policy}
}

func (s *Settings) Policy() WritePolicy {
	return s.policy
}

// Keys returns the keys of all settings. Mostly to know what to delete.
func (s *Settings) Keys() []string {
	return []string{
		settingColoredLayoutCards,
		settingDarkMode,
		settingHideUnavailableFeatures,
		settingLanguage,
		settingLogLevel,
	}
}

// Reset removes all settings from the store.
func (s *Settings) Reset() error {
	for _, k := range s.Keys() {
		if err := s.handleWrite(k, s.s.Delete(k)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Settings) ColoredLayoutCards() bool {
	return s.getBool(settingColoredLayoutCards, coloredLayoutCardsDefault)
}

func (s *Settings) SetColoredLayoutCards(v bool) error {
	return s.handleWrite(settingColoredLayoutCards, s.s.SetBool(settingColoredLayoutCards, v))
}

func (s *Settings) DarkMode() bool {
	return s.getBool(settingDarkMode, darkModeDefault)
}

func (s *Settings) SetDarkMode(v bool) error {
	return s.handleWrite(settingDarkMode, s.s.SetBool(settingDarkMode, v))
}

func (s *Settings) HideUnavailableFeatures() bool {
	return s.getBool(settingHideUnavailableFeatures, hideUnavailableFeaturesDefault)
}

func (s *Settings) SetHideUnavailableFeatures(v bool) error {
	return s.handleWrite(settingHideUnavailableFeatures, s.s.SetBool(settingHideUnavailableFeatures, v))
}

// Language returns the stored locale code or fallback when none is stored.
// The default depends on the runtime, so it has to be provided by the caller.
func (s *Settings) Language(fallback string) string {
	return s.getString(settingLanguage, fallback)
}

func (s *Settings) SetLanguage(code string) error {
	return s.handleWrite(settingLanguage, s.s.SetString(settingLanguage, code))
}

var logLevelName2Level = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"error":   slog.LevelError,
	"info":    slog.LevelInfo,
	"warning": slog.LevelWarn,
}

// LogLevelNames returns the names of all valid log levels in alphabetical order.
func (s *Settings) LogLevelNames() []string {
	return slices.Sorted(maps.Keys(logLevelName2Level))
}

func (s *Settings) LogLevel() string {
	return s.getString(settingLogLevel, logLevelDefault)
}

func (s *Settings) LogLevelDefault() string {
	return logLevelDefault
}

// LogLevelSlog returns the current log level as slog level.
// Unknown names are reported as info.
func (s *Settings) LogLevelSlog() slog.Level {
	l, ok := logLevelName2Level[s.LogLevel()]
	if !ok {
		return slog.LevelInfo
	}
	return l
}

func (s *Settings) SetLogLevel(name string) error {
	return s.handleWrite(settingLogLevel, s.s.SetString(settingLogLevel, name))
}

func (s *Settings) getBool(key string, fallback bool) bool {
	v, err := s.s.Bool(key, fallback)
	if err != nil {
		slog.Error("settings: read failed", "key", key, "error", err)
		return fallback
	}
	return v
}

func (s *Settings) getString(key string, fallback string) string {
	v, err := s.s.String(key, fallback)
	if err != nil {
		slog.Error("settings: read failed", "key", key, "error", err)
		return fallback
	}
	return v
}

func (s *Settings) handleWrite(key string, err error) error {
	if err == nil {
		return nil
	}
	if s.policy == Strict {
		return err
	}
	slog.Error("settings: write failed", "key", key, "error", err)
	return nil
}
