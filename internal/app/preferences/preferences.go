// Package preferences implements the user interface preferences of the app.
//
// A [Panel] keeps in-memory mirrors of the preferences it owns in sync with the settings store.
// Dark mode is not mirrored. It is owned by the shared appearance state.
package preferences

import (
	"iter"
	"log/slog"

	"github.com/ErikKalkoken/keybuddy/internal/app/settings"
)

// Localizer is the localization engine used by the panel.
type Localizer interface {
	CurrentLocale() string
	ChangeLocale(code string)
	SupportedLocales() []string
	DisplayNameFor(code string) string
}

// AppearanceState is the shared appearance state used by the panel.
type AppearanceState interface {
	DarkMode() bool
	SetDarkMode(on bool)
}

// Panel manages the user interface preferences.
//
// Every operation writes the store first and then updates the in-memory state.
// Whether a failed write is reported depends on the write policy of the settings.
// When it is reported, the in-memory state is left unchanged.
type Panel struct {
	appearance AppearanceState
	localizer  Localizer
	settings   *settings.Settings

	coloredLayoutCards      bool
	hideUnavailableFeatures bool
	language                string
}

// New returns a new panel. It must be initialized with [Panel.Init] before use.
func New(s *settings.Settings, loc Localizer, as AppearanceState) *Panel {
	p := &Panel{
		appearance:              as,
		localizer:               loc,
		settings:                s,
		hideUnavailableFeatures: true,
	}
	return p
}

// Init seeds the in-memory state from the store and the localizer.
// It is safe to call Init repeatedly, e.g. to pick up changes made to the store by others.
func (p *Panel) Init() {
	p.coloredLayoutCards = p.settings.ColoredLayoutCards()
	p.hideUnavailableFeatures = p.settings.HideUnavailableFeatures()
	p.language = p.localizer.CurrentLocale()
}

// ColoredLayoutCards reports whether layout cards are shown in color.
func (p *Panel) ColoredLayoutCards() bool {
	return p.coloredLayoutCards
}

// DarkMode reports whether dark mode is enabled.
// The value is always read from the shared appearance state.
func (p *Panel) DarkMode() bool {
	return p.appearance.DarkMode()
}

// HideUnavailableFeatures reports whether features not available in the current firmware are hidden.
func (p *Panel) HideUnavailableFeatures() bool {
	return p.hideUnavailableFeatures
}

// Language returns the code of the selected language.
func (p *Panel) Language() string {
	return p.language
}

// ToggleColoredLayoutCards switches colored layout cards on or off.
func (p *Panel) ToggleColoredLayoutCards() error {
	v := !p.coloredLayoutCards
	if err := p.settings.SetColoredLayoutCards(v); err != nil {
		return err
	}
	p.coloredLayoutCards = v
	return nil
}

// ToggleDarkMode switches dark mode on or off.
func (p *Panel) ToggleDarkMode() error {
	v := !p.appearance.DarkMode()
	if err := p.settings.SetDarkMode(v); err != nil {
		return err
	}
	p.appearance.SetDarkMode(v)
	return nil
}

// ToggleHideUnavailableFeatures switches hiding of unavailable features on or off.
func (p *Panel) ToggleHideUnavailableFeatures() error {
	v := !p.hideUnavailableFeatures
	if err := p.settings.SetHideUnavailableFeatures(v); err != nil {
		return err
	}
	p.hideUnavailableFeatures = v
	return nil
}

// UpdateLanguage switches the UI to the language with the given code and stores the code.
//
// The localizer decides which locale becomes effective, e.g. it may ignore unsupported codes.
// The selected language is only updated when the effective locale differs from it.
func (p *Panel) UpdateLanguage(code string) error {
	previous := p.localizer.CurrentLocale()
	p.localizer.ChangeLocale(code)
	if err := p.settings.SetLanguage(code); err != nil {
		p.localizer.ChangeLocale(previous)
		return err
	}
	if current := p.localizer.CurrentLocale(); current != p.language {
		p.language = current
		slog.Debug("Language changed", "language", current)
	}
	return nil
}

// LogLevel returns the name of the stored log level.
func (p *Panel) LogLevel() string {
	return p.settings.LogLevel()
}

// LogLevels returns the names of all log levels.
func (p *Panel) LogLevels() []string {
	return p.settings.LogLevelNames()
}

// UpdateLogLevel stores the log level and applies it to the default logger.
func (p *Panel) UpdateLogLevel(name string) error {
	if err := p.settings.SetLogLevel(name); err != nil {
		return err
	}
	slog.SetLogLoggerLevel(p.settings.LogLevelSlog())
	slog.Info("Log level changed", "level", name)
	return nil
}

// Languages returns a sequence of the code and display name of all supported languages.
// Each name is shown in its own language.
func (p *Panel) Languages() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, code := range p.localizer.SupportedLocales() {
			if !yield(code, p.localizer.DisplayNameFor(code)) {
				return
			}
		}
	}
}

// Restore applies the stored language and dark mode to the localizer and the appearance state.
// It is meant to be called once during startup.
// When no language is stored, fallbackLanguage is used.
func Restore(s *settings.Settings, loc Localizer, as AppearanceState, fallbackLanguage string) {
	code := s.Language(fallbackLanguage)
	loc.ChangeLocale(code)
	darkMode := s.DarkMode()
	as.SetDarkMode(darkMode)
	slog.Info("Restored preferences", "language", loc.CurrentLocale(), "darkMode", darkMode)
}
