package ui

import (
	"context"
	"image/color"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/ErikKalkoken/keybuddy/internal/app/appearance"
	"github.com/ErikKalkoken/keybuddy/internal/app/localizer"
	"github.com/ErikKalkoken/keybuddy/internal/app/preferences"
)

const intervalDefault = 50

// MainWindow is the main window of the app.
type MainWindow struct {
	Interval binding.String // raw interval of the macro step as entered by the user

	intervalEntry  *IntervalEntry
	localizer      *localizer.Localizer
	panel          *preferences.Panel
	preferences    *UserInterfacePreferences
	stepBackground *canvas.Rectangle
	unavailable    *canvas.Text // sample of a feature the current firmware does not support
	window         fyne.Window
}

// NewMainWindow creates the main window of the app.
func NewMainWindow(
	app fyne.App,
	panel *preferences.Panel,
	loc *localizer.Localizer,
	as *appearance.State,
) *MainWindow {
	w := app.NewWindow("KeyBuddy")
	mw := &MainWindow{
		Interval:       binding.NewString(),
		localizer:      loc,
		panel:          panel,
		stepBackground: canvas.NewRectangle(color.Transparent),
		unavailable:    canvas.NewText("", color.Transparent),
		window:         w,
	}
	mw.Interval.Set(strconv.Itoa(intervalDefault))
	mw.preferences = NewUserInterfacePreferences(panel, loc, as, w)
	mw.preferences.OnChanged = mw.refreshStep
	mw.intervalEntry = NewIntervalEntry(loc, intervalDefault, func(s string) {
		slog.Debug("Macro step interval changed", "value", s)
		mw.Interval.Set(s)
	})
	loc.LocaleChanged.AddListener(func(_ context.Context, _ string) {
		fyne.Do(func() {
			mw.intervalEntry.Refresh()
			mw.refreshStep()
		})
	})
	as.Changed.AddListener(func(_ context.Context, _ bool) {
		fyne.Do(func() {
			mw.refreshStep()
		})
	})
	mw.stepBackground.CornerRadius = theme.Size(theme.SizeNameInputRadius)
	mw.unavailable.TextStyle.Italic = true
	mw.refreshStep()
	step := container.NewStack(
		mw.stepBackground,
		container.NewPadded(container.NewVBox(mw.intervalEntry, mw.unavailable)),
	)
	tabs := container.NewAppTabs(
		container.NewTabItem("Preferences", container.NewPadded(mw.preferences)),
		container.NewTabItem("Macro step", container.NewVBox(
			step,
			widget.NewLabelWithData(mw.Interval),
		)),
	)
	tabs.SetTabLocation(container.TabLocationLeading)
	w.SetContent(fynetooltip.AddWindowToolTipLayer(tabs, w.Canvas()))
	w.Resize(fyne.NewSize(700, 500))
	w.SetCloseIntercept(func() {
		mw.preferences.Close()
		fynetooltip.DestroyWindowToolTipLayer(w.Canvas())
		w.Close()
	})
	return mw
}

// Window returns the underlying Fyne window.
func (mw *MainWindow) Window() fyne.Window {
	return mw.window
}

// refreshStep updates the macro step card for the current layout preferences.
func (mw *MainWindow) refreshStep() {
	if mw.panel.ColoredLayoutCards() {
		mw.stepBackground.FillColor = theme.Color(appearance.ColorNameCardAccent)
	} else {
		mw.stepBackground.FillColor = color.Transparent
	}
	mw.stepBackground.Refresh()
	mw.unavailable.Text = mw.localizer.T("editor.macros.steps.repeat")
	mw.unavailable.Color = theme.Color(appearance.ColorNameUnavailable)
	if mw.panel.HideUnavailableFeatures() {
		mw.unavailable.Hide()
	} else {
		mw.unavailable.Show()
	}
	mw.unavailable.Refresh()
}

// ShowAndRun shows the window and runs the app. It blocks until the app is quit.
func (mw *MainWindow) ShowAndRun() {
	mw.window.ShowAndRun()
}
