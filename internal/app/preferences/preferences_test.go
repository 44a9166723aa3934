package preferences_test

import (
	"errors"
	"log/slog"
	"maps"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ErikKalkoken/keybuddy/internal/app/appearance"
	"github.com/ErikKalkoken/keybuddy/internal/app/localizer"
	"github.com/ErikKalkoken/keybuddy/internal/app/preferences"
	"github.com/ErikKalkoken/keybuddy/internal/app/settings"
)

const (
	keyColored  = "ui.layoutCards.colored"
	keyDarkMode = "ui.darkMode"
	keyHide     = "ui.hideFeaturesNotAvailableInCurrentFirmware"
	keyLanguage = "ui.language"
)

var errStore = errors.New("store failure")

// memStore is an in-memory store which records all writes.
type memStore struct {
	data   map[string]any
	writes []string
	broken bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]any)}
}

func (s *memStore) Bool(key string, fallback bool) (bool, error) {
	v, ok := s.data[key].(bool)
	if !ok {
		return fallback, nil
	}
	return v, nil
}

func (s *memStore) SetBool(key string, v bool) error {
	return s.set(key, v)
}

func (s *memStore) String(key string, fallback string) (string, error) {
	v, ok := s.data[key].(string)
	if !ok {
		return fallback, nil
	}
	return v, nil
}

func (s *memStore) SetString(key string, v string) error {
	return s.set(key, v)
}

func (s *memStore) Delete(key string) error {
	delete(s.data, key)
	return nil
}

func (s *memStore) set(key string, v any) error {
	s.writes = append(s.writes, key)
	if s.broken {
		return errStore
	}
	s.data[key] = v
	return nil
}

func newLocalizer(t *testing.T) *localizer.Localizer {
	t.Helper()
	fsys := fstest.MapFS{
		"en.yaml": {Data: []byte("language: English\n")},
		"fr.yaml": {Data: []byte("language: Français\n")},
		"de.yaml": {Data: []byte("language: Deutsch\n")},
	}
	l, err := localizer.New(fsys, "en")
	require.NoError(t, err)
	return l
}

type fixture struct {
	as    *appearance.State
	loc   *localizer.Localizer
	panel *preferences.Panel
	store *memStore
}

func newFixture(t *testing.T, policy settings.WritePolicy) fixture {
	t.Helper()
	f := fixture{
		as:    appearance.NewState(false),
		loc:   newLocalizer(t),
		store: newMemStore(),
	}
	f.panel = preferences.New(settings.NewWithPolicy(f.store, policy), f.loc, f.as)
	return f
}

func TestPanelInit(t *testing.T) {
	t.Run("should use defaults when store is empty", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.panel.Init()
		assert.False(t, f.panel.ColoredLayoutCards())
		assert.True(t, f.panel.HideUnavailableFeatures())
		assert.Equal(t, "en", f.panel.Language())
		assert.False(t, f.panel.DarkMode())
	})
	t.Run("should seed from store", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.store.data[keyColored] = true
		f.store.data[keyHide] = false
		f.panel.Init()
		assert.True(t, f.panel.ColoredLayoutCards())
		assert.False(t, f.panel.HideUnavailableFeatures())
	})
	t.Run("should seed language from localizer, not from store", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.store.data[keyLanguage] = "de"
		f.loc.ChangeLocale("fr")
		f.panel.Init()
		assert.Equal(t, "fr", f.panel.Language())
	})
	t.Run("should be idempotent", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.store.data[keyColored] = true
		f.panel.Init()
		want := []any{f.panel.ColoredLayoutCards(), f.panel.HideUnavailableFeatures(), f.panel.Language()}
		for range 3 {
			f.panel.Init()
			got := []any{f.panel.ColoredLayoutCards(), f.panel.HideUnavailableFeatures(), f.panel.Language()}
			assert.Equal(t, want, got)
		}
		assert.Empty(t, f.store.writes)
	})
	t.Run("should pick up changes made to the store by others", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.panel.Init()
		f.store.data[keyColored] = true
		f.panel.Init()
		assert.True(t, f.panel.ColoredLayoutCards())
	})
}

func TestPanelToggle(t *testing.T) {
	cases := []struct {
		name   string
		key    string
		toggle func(p *preferences.Panel) error
		get    func(p *preferences.Panel) bool
	}{
		{
			"colored layout cards",
			keyColored,
			(*preferences.Panel).ToggleColoredLayoutCards,
			(*preferences.Panel).ColoredLayoutCards,
		},
		{
			"hide unavailable features",
			keyHide,
			(*preferences.Panel).ToggleHideUnavailableFeatures,
			(*preferences.Panel).HideUnavailableFeatures,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name+": should persist and mirror negated value", func(t *testing.T) {
			f := newFixture(t, settings.FireAndForget)
			f.panel.Init()
			before := tc.get(f.panel)
			err := tc.toggle(f.panel)
			require.NoError(t, err)
			assert.Equal(t, !before, tc.get(f.panel))
			assert.Equal(t, !before, f.store.data[tc.key])
			assert.Equal(t, []string{tc.key}, f.store.writes)
		})
		t.Run(tc.name+": should restore original state when toggled twice", func(t *testing.T) {
			f := newFixture(t, settings.FireAndForget)
			f.store.data[tc.key] = true
			f.panel.Init()
			require.NoError(t, tc.toggle(f.panel))
			require.NoError(t, tc.toggle(f.panel))
			assert.True(t, tc.get(f.panel))
			assert.Equal(t, true, f.store.data[tc.key])
		})
		t.Run(tc.name+": should update mirror when write fails and fire-and-forget", func(t *testing.T) {
			f := newFixture(t, settings.FireAndForget)
			f.panel.Init()
			before := tc.get(f.panel)
			f.store.broken = true
			err := tc.toggle(f.panel)
			assert.NoError(t, err)
			assert.Equal(t, !before, tc.get(f.panel))
		})
		t.Run(tc.name+": should keep mirror and report error when write fails and strict", func(t *testing.T) {
			f := newFixture(t, settings.Strict)
			f.panel.Init()
			before := tc.get(f.panel)
			f.store.broken = true
			err := tc.toggle(f.panel)
			assert.ErrorIs(t, err, errStore)
			assert.Equal(t, before, tc.get(f.panel))
		})
	}
}

func TestPanelToggleDarkMode(t *testing.T) {
	t.Run("should flip shared state with exactly one store write", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.panel.Init()
		err := f.panel.ToggleDarkMode()
		require.NoError(t, err)
		assert.True(t, f.as.DarkMode())
		assert.True(t, f.panel.DarkMode())
		assert.Equal(t, true, f.store.data[keyDarkMode])
		assert.Equal(t, []string{keyDarkMode}, f.store.writes)
	})
	t.Run("should reflect external changes", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.panel.Init()
		f.as.SetDarkMode(true)
		assert.True(t, f.panel.DarkMode())
		err := f.panel.ToggleDarkMode()
		require.NoError(t, err)
		assert.False(t, f.as.DarkMode())
		assert.Equal(t, false, f.store.data[keyDarkMode])
	})
	t.Run("should flip shared state when write fails and fire-and-forget", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.panel.Init()
		f.store.broken = true
		err := f.panel.ToggleDarkMode()
		assert.NoError(t, err)
		assert.True(t, f.as.DarkMode())
	})
	t.Run("should keep shared state when write fails and strict", func(t *testing.T) {
		f := newFixture(t, settings.Strict)
		f.panel.Init()
		f.store.broken = true
		err := f.panel.ToggleDarkMode()
		assert.ErrorIs(t, err, errStore)
		assert.False(t, f.as.DarkMode())
	})
}

func TestPanelUpdateLanguage(t *testing.T) {
	t.Run("should switch to supported language", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.panel.Init()
		err := f.panel.UpdateLanguage("fr")
		require.NoError(t, err)
		assert.Equal(t, "fr", f.loc.CurrentLocale())
		assert.Equal(t, "fr", f.store.data[keyLanguage])
		assert.Equal(t, "fr", f.panel.Language())
	})
	t.Run("should keep language when code is ignored by localizer", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.panel.Init()
		err := f.panel.UpdateLanguage("tlh")
		require.NoError(t, err)
		assert.Equal(t, "en", f.loc.CurrentLocale())
		assert.Equal(t, "en", f.panel.Language())
		assert.Equal(t, "tlh", f.store.data[keyLanguage])
	})
	t.Run("should keep non-default language when code is ignored by localizer", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.loc.ChangeLocale("de")
		f.panel.Init()
		err := f.panel.UpdateLanguage("tlh")
		require.NoError(t, err)
		assert.Equal(t, "de", f.loc.CurrentLocale())
		assert.Equal(t, "de", f.panel.Language())
		assert.Equal(t, "tlh", f.store.data[keyLanguage])
	})
	t.Run("should use effective locale of localizer", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.panel.Init()
		err := f.panel.UpdateLanguage("de-AT")
		require.NoError(t, err)
		assert.Equal(t, "de", f.panel.Language())
	})
	t.Run("should switch language when write fails and fire-and-forget", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.panel.Init()
		f.store.broken = true
		err := f.panel.UpdateLanguage("fr")
		assert.NoError(t, err)
		assert.Equal(t, "fr", f.loc.CurrentLocale())
		assert.Equal(t, "fr", f.panel.Language())
	})
	t.Run("should restore previous language when write fails and strict", func(t *testing.T) {
		f := newFixture(t, settings.Strict)
		f.panel.Init()
		f.store.broken = true
		err := f.panel.UpdateLanguage("fr")
		assert.ErrorIs(t, err, errStore)
		assert.Equal(t, "en", f.loc.CurrentLocale())
		assert.Equal(t, "en", f.panel.Language())
	})
}

func TestPanelLanguages(t *testing.T) {
	t.Run("should return all languages named in their own language", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.panel.Init()
		got := maps.Collect(f.panel.Languages())
		want := map[string]string{
			"de": "Deutsch",
			"en": "English",
			"fr": "Français",
		}
		assert.Equal(t, want, got)
	})
	t.Run("should not depend on the current language", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.loc.ChangeLocale("de")
		f.panel.Init()
		got := maps.Collect(f.panel.Languages())
		assert.Equal(t, "Français", got["fr"])
		assert.Equal(t, "English", got["en"])
	})
	t.Run("can stop early", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.panel.Init()
		var n int
		for range f.panel.Languages() {
			n++
			break
		}
		assert.Equal(t, 1, n)
	})
}

func TestPanelUpdateLogLevel(t *testing.T) {
	t.Cleanup(func() {
		slog.SetLogLoggerLevel(slog.LevelInfo)
	})
	t.Run("should store and apply log level", func(t *testing.T) {
		f := newFixture(t, settings.Strict)
		err := f.panel.UpdateLogLevel("debug")
		require.NoError(t, err)
		assert.Equal(t, "debug", f.panel.LogLevel())
		assert.True(t, slog.Default().Enabled(t.Context(), slog.LevelDebug))
	})
	t.Run("should report all log levels", func(t *testing.T) {
		f := newFixture(t, settings.Strict)
		assert.Contains(t, f.panel.LogLevels(), f.panel.LogLevel())
	})
	t.Run("should keep log level when write fails and strict", func(t *testing.T) {
		f := newFixture(t, settings.Strict)
		f.store.broken = true
		err := f.panel.UpdateLogLevel("error")
		assert.ErrorIs(t, err, errStore)
		assert.Equal(t, "warning", f.panel.LogLevel())
	})
}

func TestRestore(t *testing.T) {
	t.Run("should apply stored values", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		f.store.data[keyLanguage] = "de"
		f.store.data[keyDarkMode] = true
		s := settings.New(f.store)
		preferences.Restore(s, f.loc, f.as, "fr")
		assert.Equal(t, "de", f.loc.CurrentLocale())
		assert.True(t, f.as.DarkMode())
		assert.Empty(t, f.store.writes)
	})
	t.Run("should apply fallback language when none is stored", func(t *testing.T) {
		f := newFixture(t, settings.FireAndForget)
		s := settings.New(f.store)
		preferences.Restore(s, f.loc, f.as, "fr")
		assert.Equal(t, "fr", f.loc.CurrentLocale())
		assert.False(t, f.as.DarkMode())
	})
}
