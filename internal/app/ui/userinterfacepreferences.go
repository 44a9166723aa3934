package ui

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	kxwidget "github.com/ErikKalkoken/fyne-kx/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/ErikKalkoken/keybuddy/internal/app/appearance"
	"github.com/ErikKalkoken/keybuddy/internal/app/localizer"
	"github.com/ErikKalkoken/keybuddy/internal/app/preferences"
)

// UserInterfacePreferences is a form for changing the user interface preferences.
type UserInterfacePreferences struct {
	widget.BaseWidget

	// OnChanged is called after a layout preference was changed.
	OnChanged func()

	appearance              *appearance.State
	coloredLayoutCards      *kxwidget.Switch
	darkMode                *kxwidget.Switch
	form                    *widget.Form
	helpIcon                *ttwidget.Icon
	hideUnavailableFeatures *kxwidget.Switch
	language                *widget.Select
	languageCodes           map[string]string // display name to code
	listenerKey             string
	localizer               *localizer.Localizer
	logLevel                *widget.Select
	panel                   *preferences.Panel
	window                  fyne.Window
}

// NewUserInterfacePreferences returns a new form for panel.
// The panel is initialized from the store when the form is created.
// Errors are shown in window.
func NewUserInterfacePreferences(
	panel *preferences.Panel,
	loc *localizer.Localizer,
	as *appearance.State,
	window fyne.Window,
) *UserInterfacePreferences {
	a := &UserInterfacePreferences{
		appearance:    as,
		languageCodes: make(map[string]string),
		localizer:     loc,
		panel:         panel,
		window:        window,
	}
	a.ExtendBaseWidget(a)
	a.listenerKey = fmt.Sprintf("user-interface-preferences-%p", a)
	panel.Init()

	var names []string
	for code, name := range panel.Languages() {
		names = append(names, name)
		a.languageCodes[name] = code
	}
	a.language = widget.NewSelect(names, nil)
	a.language.SetSelected(loc.DisplayNameFor(panel.Language()))
	a.language.OnChanged = func(name string) {
		code, ok := a.languageCodes[name]
		if !ok || code == a.panel.Language() {
			return
		}
		if err := a.panel.UpdateLanguage(code); err != nil {
			a.showError("Failed to change language", err)
		}
		a.language.SetSelected(a.localizer.DisplayNameFor(a.panel.Language()))
	}

	a.darkMode = kxwidget.NewSwitch(nil)
	a.darkMode.On = panel.DarkMode()
	a.darkMode.OnChanged = func(on bool) {
		if on == a.panel.DarkMode() {
			return
		}
		if err := a.panel.ToggleDarkMode(); err != nil {
			a.showError("Failed to change dark mode", err)
			a.darkMode.SetOn(a.panel.DarkMode())
		}
	}

	a.coloredLayoutCards = a.makeSwitch(
		panel.ColoredLayoutCards,
		panel.ToggleColoredLayoutCards,
	)
	a.hideUnavailableFeatures = a.makeSwitch(
		panel.HideUnavailableFeatures,
		panel.ToggleHideUnavailableFeatures,
	)
	a.helpIcon = ttwidget.NewIcon(theme.InfoIcon())

	a.logLevel = widget.NewSelect(panel.LogLevels(), nil)
	a.logLevel.SetSelected(panel.LogLevel())
	a.logLevel.OnChanged = func(name string) {
		if name == a.panel.LogLevel() {
			return
		}
		if err := a.panel.UpdateLogLevel(name); err != nil {
			a.showError("Failed to change log level", err)
			a.logLevel.SetSelected(a.panel.LogLevel())
		}
	}

	a.form = widget.NewForm(
		widget.NewFormItem("", a.language),
		widget.NewFormItem("", a.darkMode),
		widget.NewFormItem("", a.coloredLayoutCards),
		widget.NewFormItem("", container.NewHBox(a.hideUnavailableFeatures, a.helpIcon)),
		widget.NewFormItem("", a.logLevel),
	)
	a.updateTexts()

	as.Changed.AddListener(func(_ context.Context, on bool) {
		fyne.Do(func() {
			a.darkMode.SetOn(on)
		})
	}, a.listenerKey)
	loc.LocaleChanged.AddListener(func(_ context.Context, _ string) {
		fyne.Do(func() {
			a.updateTexts()
			a.form.Refresh()
		})
	}, a.listenerKey)
	return a
}

// Close stops listening to changes. It should be called when the form is no longer shown.
func (a *UserInterfacePreferences) Close() {
	a.appearance.Changed.RemoveListener(a.listenerKey)
	a.localizer.LocaleChanged.RemoveListener(a.listenerKey)
}

func (a *UserInterfacePreferences) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(a.form)
}

func (a *UserInterfacePreferences) makeSwitch(getter func() bool, toggle func() error) *kxwidget.Switch {
	sw := kxwidget.NewSwitch(nil)
	sw.On = getter()
	sw.OnChanged = func(on bool) {
		if on == getter() {
			return
		}
		if err := toggle(); err != nil {
			a.showError("Failed to save preference", err)
			sw.SetOn(getter())
			return
		}
		if a.OnChanged != nil {
			a.OnChanged()
		}
	}
	return sw
}

func (a *UserInterfacePreferences) updateTexts() {
	t := a.localizer.T
	a.form.Items[0].Text = t("preferences.language")
	a.form.Items[1].Text = t("preferences.darkMode")
	a.form.Items[2].Text = t("preferences.coloredLayoutCards")
	a.form.Items[3].Text = t("preferences.hideUnavailableFeatures.label")
	a.form.Items[3].HintText = t("preferences.hideUnavailableFeatures.help")
	a.helpIcon.SetToolTip(t("preferences.hideUnavailableFeatures.help"))
	a.form.Items[4].Text = t("preferences.logLevel")
}

func (a *UserInterfacePreferences) showError(message string, err error) {
	slog.Error(message, "error", err)
	if a.window == nil {
		return
	}
	dialog.ShowError(fmt.Errorf("%s: %w", message, err), a.window)
}
