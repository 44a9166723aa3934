package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Translator translates message IDs into the active language.
type Translator interface {
	T(messageID string) string
}

// IntervalEntry is an entry for the interval of a macro step in milliseconds.
//
// The entry is controlled by its owner: the value is set with [IntervalEntry.SetValue]
// and every edit is reported as is to OnChanged.
// No validation, clamping or conversion is done.
type IntervalEntry struct {
	widget.BaseWidget

	// OnChanged is called with the raw text whenever the user edits the value.
	OnChanged func(s string)

	entry    *widget.Entry
	hint     *widget.Label
	label    *widget.Label
	tr       Translator
	updating bool
}

// NewIntervalEntry returns a new interval entry showing value.
// Value can be a number or a numeric string.
func NewIntervalEntry(tr Translator, value any, onChanged func(s string)) *IntervalEntry {
	w := &IntervalEntry{
		OnChanged: onChanged,
		entry:     widget.NewEntry(),
		hint:      widget.NewLabel(""),
		label:     widget.NewLabel(""),
		tr:        tr,
	}
	w.ExtendBaseWidget(w)
	w.hint.SizeName = theme.SizeNameCaptionText
	w.hint.Importance = widget.LowImportance
	w.label.TextStyle.Bold = true
	w.entry.OnChanged = func(s string) {
		if w.updating || w.OnChanged == nil {
			return
		}
		w.OnChanged(s)
	}
	w.SetValue(value)
	w.updateTexts()
	return w
}

// SetValue shows value in the entry without reporting it to OnChanged.
func (w *IntervalEntry) SetValue(value any) {
	var s string
	if value != nil {
		s = fmt.Sprint(value)
	}
	w.updating = true
	defer func() {
		w.updating = false
	}()
	w.entry.SetText(s)
}

// Value returns the current raw text of the entry.
func (w *IntervalEntry) Value() string {
	return w.entry.Text
}

// Refresh updates the texts for the active language and redraws the widget.
func (w *IntervalEntry) Refresh() {
	w.updateTexts()
	w.BaseWidget.Refresh()
}

func (w *IntervalEntry) updateTexts() {
	w.label.SetText(w.tr.T("editor.macros.steps.INTERVAL"))
	w.hint.SetText(w.tr.T("editor.macros.steps.in_ms"))
}

func (w *IntervalEntry) CreateRenderer() fyne.WidgetRenderer {
	c := container.NewVBox(w.label, w.entry, w.hint)
	return widget.NewSimpleRenderer(c)
}
