// Package localizer provides translations for the UI and owns the currently active locale.
package localizer

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"sync"

	"fyne.io/fyne/v2/lang"
	"github.com/ErikKalkoken/go-set"
	"github.com/goccy/go-yaml"
	"github.com/maniartech/signals"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultLocale is the locale used when no other locale can be determined.
const DefaultLocale = "en"

// messageLanguage is the ID of the message holding the name of a language in that language.
const messageLanguage = "language"

//go:embed translations/*.yaml
var translationsFS embed.FS

// Localizer resolves message IDs to translated strings
// and owns the currently active locale of the app.
type Localizer struct {
	// LocaleChanged is emitted with the new locale code after the active locale changed.
	LocaleChanged signals.Signal[string]

	bundle    *i18n.Bundle
	matcher   language.Matcher
	tags      []language.Tag // supported tags, in the same order as the matcher
	supported set.Set[string]

	mu      sync.RWMutex
	current string
	loc     *i18n.Localizer
}

// NewDefault returns a new localizer with the translations shipped with the app.
func NewDefault(locale string) (*Localizer, error) {
	fsys, err := fs.Sub(translationsFS, "translations")
	if err != nil {
		return nil, err
	}
	return New(fsys, locale)
}

// New returns a new localizer with all translation files found in the root of fsys.
// Translation files are YAML files named after their locale, e.g. "fr.yaml".
//
// The initial locale is matched against the supported locales
// and falls back to [DefaultLocale] when it is not supported.
func New(fsys fs.FS, locale string) (*Localizer, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", func(data []byte, v any) error {
		return yaml.Unmarshal(data, v)
	})
	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("localizer: no translation files found")
	}
	for _, p := range files {
		if _, err := bundle.LoadMessageFileFS(fsys, p); err != nil {
			return nil, fmt.Errorf("localizer: load %s: %w", path.Base(p), err)
		}
	}
	l := &Localizer{
		LocaleChanged: signals.NewSync[string](),
		bundle:        bundle,
		tags:          bundle.LanguageTags(),
	}
	l.matcher = language.NewMatcher(l.tags)
	l.supported = set.Of[string]()
	for _, t := range l.tags {
		l.supported.Add(t.String())
	}
	initial, ok := l.match(locale)
	if !ok {
		initial, ok = l.match(DefaultLocale)
		if !ok {
			return nil, fmt.Errorf("localizer: default locale %s not supported", DefaultLocale)
		}
	}
	l.current = initial
	l.loc = i18n.NewLocalizer(bundle, initial)
	slog.Info("Localizer initialized", "locale", initial, "supported", l.SupportedLocales())
	return l, nil
}

// CurrentLocale returns the code of the active locale.
func (l *Localizer) CurrentLocale() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// ChangeLocale switches the active locale.
//
// Codes of supported locales are applied as is.
// Regional variants of a supported language (e.g. "de-AT") resolve to that language.
// All other codes are ignored and the active locale stays unchanged.
func (l *Localizer) ChangeLocale(code string) {
	effective, ok := l.match(code)
	if !ok {
		slog.Warn("Ignoring unsupported locale", "code", code)
		return
	}
	l.mu.Lock()
	if l.current == effective {
		l.mu.Unlock()
		return
	}
	l.current = effective
	l.loc = i18n.NewLocalizer(l.bundle, effective)
	l.mu.Unlock()
	slog.Info("Locale changed", "locale", effective)
	l.LocaleChanged.Emit(context.Background(), effective)
}

// IsSupported reports whether code is the code of a supported locale.
func (l *Localizer) IsSupported(code string) bool {
	return l.supported.Contains(code)
}

// SupportedLocales returns the codes of all supported locales in alphabetical order.
func (l *Localizer) SupportedLocales() []string {
	return slices.Sorted(l.supported.All())
}

// DisplayNameFor returns the name of a locale in its own language, e.g. "Deutsch" for "de".
func (l *Localizer) DisplayNameFor(code string) string {
	loc := i18n.NewLocalizer(l.bundle, code)
	s, tag, err := loc.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: messageLanguage})
	if err == nil && tag.String() == code {
		return s
	}
	t, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.Self.Name(t); name != "" {
		return name
	}
	return code
}

// T returns the translation for a message ID in the active locale.
// Messages missing in the active locale are taken from the default locale.
// It returns the message ID when no translation exists at all.
func (l *Localizer) T(messageID string) string {
	l.mu.RLock()
	loc := l.loc
	l.mu.RUnlock()
	s, err := loc.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		slog.Debug("Missing translation", "id", messageID, "locale", l.CurrentLocale(), "error", err)
	}
	if s == "" {
		return messageID
	}
	return s
}

// match returns the supported locale code for code and reports whether a match was found.
// Only locales of the same base language match, e.g. "de-AT" matches "de".
func (l *Localizer) match(code string) (string, bool) {
	if l.IsSupported(code) {
		return code, true
	}
	t, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	_, idx, conf := l.matcher.Match(t)
	if conf < language.High {
		return "", false
	}
	// the matcher falls back to the first tag for unrelated languages
	want, _ := t.Base()
	got, _ := l.tags[idx].Base()
	if want != got {
		return "", false
	}
	return l.tags[idx].String(), true
}

// SystemLocale returns the language code of the locale reported by the operating system.
func SystemLocale() string {
	return lang.SystemLocale().LanguageString()
}
