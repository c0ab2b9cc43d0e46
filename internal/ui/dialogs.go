package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Notifier shows modal messages to the user
type Notifier interface {
	ShowWarning(title, message string)
	ShowInfo(title, message string)
	ShowError(title, message string)
}

// DirectoryPicker asks the user for a folder. onChosen receives ok=false when
// the picker was dismissed or failed.
type DirectoryPicker interface {
	PickDirectory(start string, onChosen func(path string, ok bool))
}

// WindowNotifier renders notifications as dialogs on a window
type WindowNotifier struct {
	window fyne.Window
}

// NewWindowNotifier creates a notifier bound to window
func NewWindowNotifier(window fyne.Window) *WindowNotifier {
	return &WindowNotifier{window: window}
}

// ShowWarning shows a dialog with a warning icon
func (n *WindowNotifier) ShowWarning(title, message string) {
	content := container.NewHBox(widget.NewIcon(theme.WarningIcon()), widget.NewLabel(message))
	dialog.NewCustom(title, "OK", content, n.window).Show()
}

// ShowInfo shows an information dialog
func (n *WindowNotifier) ShowInfo(title, message string) {
	dialog.ShowInformation(title, message, n.window)
}

// ShowError shows a dialog with an error icon
func (n *WindowNotifier) ShowError(title, message string) {
	label := widget.NewLabel(message)
	label.Wrapping = fyne.TextWrapWord
	content := container.NewBorder(nil, nil, widget.NewIcon(theme.ErrorIcon()), nil, label)
	dialog.NewCustom(title, "OK", content, n.window).Show()
}

// FolderPicker wraps the toolkit folder-open dialog
type FolderPicker struct {
	window fyne.Window
}

// NewFolderPicker creates a picker bound to window
func NewFolderPicker(window fyne.Window) *FolderPicker {
	return &FolderPicker{window: window}
}

// PickDirectory opens the folder dialog, starting at start when it can be listed
func (p *FolderPicker) PickDirectory(start string, onChosen func(path string, ok bool)) {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			onChosen("", false)
			return
		}
		onChosen(uri.Path(), true)
	}, p.window)

	if start != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(start)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}
