package ui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/ytget/quickdl/internal/download"
	"github.com/ytget/quickdl/internal/model"
	"github.com/ytget/quickdl/internal/platform"
)

// FormOptions configures a FormController. Zero values get window-bound defaults.
type FormOptions struct {
	Destination string
	Format      model.FormatChoice
	Language    string
	Version     string // appended to the window title when set
	Notifier    Notifier
	Picker      DirectoryPicker
	Logger      *zap.Logger

	// Dispatch runs fn on the UI goroutine. Defaults to fyne.Do.
	Dispatch func(fn func())
}

// FormController owns the download form and the single in-flight download
type FormController struct {
	window       fyne.Window
	starter      download.Starter
	notifier     Notifier
	picker       DirectoryPicker
	localization *Localization
	logger       *zap.Logger
	dispatch     func(func())
	gate         *semaphore.Weighted
	version      string

	destination     string
	format          model.FormatChoice
	status          model.WorkerStatus
	activeID        string
	cancel          context.CancelFunc
	cancelRequested bool

	urlLabel         *widget.Label
	urlEntry         *widget.Entry
	destinationLabel *widget.Label
	destinationValue *widget.Label
	changeDirBtn     *widget.Button
	formatLabel      *widget.Label
	formatSelect     *widget.Select
	progressBar      *widget.ProgressBar
	statusLabel      *widget.Label
	downloadBtn      *widget.Button
	cancelBtn        *widget.Button
	content          fyne.CanvasObject
}

// NewFormController builds the form and sets it as the window content
func NewFormController(window fyne.Window, starter download.Starter, opts FormOptions) *FormController {
	localization := NewLocalization()
	localization.SetLanguage(opts.Language)

	fc := &FormController{
		window:       window,
		starter:      starter,
		notifier:     opts.Notifier,
		picker:       opts.Picker,
		localization: localization,
		logger:       opts.Logger,
		dispatch:     opts.Dispatch,
		gate:         semaphore.NewWeighted(1),
		version:      opts.Version,
		destination:  opts.Destination,
		format:       opts.Format,
		status:       model.WorkerStatusIdle,
	}

	if fc.notifier == nil {
		fc.notifier = NewWindowNotifier(window)
	}
	if fc.picker == nil {
		fc.picker = NewFolderPicker(window)
	}
	if fc.logger == nil {
		fc.logger = zap.NewNop()
	}
	if fc.dispatch == nil {
		fc.dispatch = fyne.Do
	}
	if fc.destination == "" {
		fc.destination = platform.DefaultDestination()
	}
	if !fc.format.Valid() {
		fc.format = model.FormatMuxedBest
	}

	fc.setupUI()
	fc.createMenu()
	window.SetContent(fc.content)

	return fc
}

// setupUI creates and arranges all form widgets
func (fc *FormController) setupUI() {
	fc.urlLabel = widget.NewLabel("")
	fc.urlLabel.TextStyle = fyne.TextStyle{Bold: true}
	fc.urlEntry = widget.NewEntry()
	// Trigger download when user presses Enter in the URL field
	fc.urlEntry.OnSubmitted = func(string) {
		fc.TriggerDownload()
	}

	fc.destinationLabel = widget.NewLabel("")
	fc.destinationLabel.TextStyle = fyne.TextStyle{Bold: true}
	fc.destinationValue = widget.NewLabel(fc.destination)
	fc.destinationValue.Truncation = fyne.TextTruncateEllipsis
	fc.changeDirBtn = widget.NewButton("", fc.ChooseDirectory)

	fc.formatLabel = widget.NewLabel("")
	fc.formatLabel.TextStyle = fyne.TextStyle{Bold: true}
	fc.formatSelect = widget.NewSelect(nil, nil)

	fc.progressBar = widget.NewProgressBar()
	fc.progressBar.Min = ProgressMin
	fc.progressBar.Max = ProgressMax
	fc.statusLabel = widget.NewLabel("")

	fc.downloadBtn = widget.NewButton("", fc.TriggerDownload)
	fc.downloadBtn.Importance = widget.HighImportance
	fc.cancelBtn = widget.NewButton("", fc.CancelDownload)
	fc.cancelBtn.Disable()

	fc.refreshTexts()

	destinationRow := container.NewBorder(nil, nil, nil, fc.changeDirBtn, fc.destinationValue)
	actionRow := container.NewBorder(nil, nil, nil, fc.cancelBtn, fc.downloadBtn)

	fc.content = container.NewPadded(container.NewVBox(
		fc.urlLabel,
		fc.urlEntry,
		fc.destinationLabel,
		destinationRow,
		fc.formatLabel,
		fc.formatSelect,
		layout.NewSpacer(),
		fc.progressBar,
		fc.statusLabel,
		actionRow,
	))
}

// createMenu creates the application menu
func (fc *FormController) createMenu() {
	openFolderItem := fyne.NewMenuItem(IconFolder+" "+fc.localization.GetText(KeyOpenFolder), fc.onOpenDestination)

	// Language submenu
	languageMenu := fyne.NewMenu(IconLanguage + " " + fc.localization.GetText(KeyLanguage))

	availableLanguages := fc.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(availableLanguages))
	for code := range availableLanguages {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		langCode := code
		langItem := fyne.NewMenuItem(availableLanguages[code], func() {
			fc.onLanguageChange(langCode)
		})

		// Mark current language
		if fc.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	// Fyne appends Quit to the first menu
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(fc.localization.GetText(KeyFile), openFolderItem),
		languageMenu,
	)

	fc.window.SetMainMenu(mainMenu)
}

// onLanguageChange switches the UI language for this session
func (fc *FormController) onLanguageChange(langCode string) {
	fc.localization.SetLanguage(langCode)
	fc.refreshTexts()
	fc.createMenu()
}

// refreshTexts updates all UI texts with current language
func (fc *FormController) refreshTexts() {
	loc := fc.localization

	title := loc.GetText(KeyAppTitle)
	if fc.version != "" {
		title = fmt.Sprintf("%s v%s", title, fc.version)
	}
	fc.window.SetTitle(title)
	fc.urlLabel.SetText(loc.GetText(KeyURLLabel))
	fc.urlEntry.SetPlaceHolder(loc.GetText(KeyEnterURL))
	fc.destinationLabel.SetText(loc.GetText(KeyDestinationLabel))
	fc.changeDirBtn.SetText(loc.GetText(KeyChange))
	fc.formatLabel.SetText(loc.GetText(KeyFormatLabel))
	fc.downloadBtn.SetText(loc.GetText(KeyDownload))
	fc.cancelBtn.SetText(loc.GetText(KeyCancel))

	choices := model.AllFormatChoices()
	labels := make([]string, len(choices))
	for i, choice := range choices {
		labels[i] = fc.formatText(choice)
	}

	// Detach the handler while options are swapped so the choice is kept
	fc.formatSelect.OnChanged = nil
	fc.formatSelect.Options = labels
	fc.formatSelect.SetSelectedIndex(fc.formatIndex(fc.format))
	fc.formatSelect.OnChanged = func(string) {
		if i := fc.formatSelect.SelectedIndex(); i >= 0 && i < len(choices) {
			fc.format = choices[i]
		}
	}

	if fc.status != model.WorkerStatusDownloading {
		fc.statusLabel.SetText(fc.statusText(fc.status))
	}
}

func (fc *FormController) formatText(choice model.FormatChoice) string {
	switch choice {
	case model.FormatAudioOnly:
		return fc.localization.GetText(KeyFormatAudio)
	case model.FormatVideoOnly:
		return fc.localization.GetText(KeyFormatVideo)
	default:
		return fc.localization.GetText(KeyFormatMuxed)
	}
}

func (fc *FormController) formatIndex(choice model.FormatChoice) int {
	for i, c := range model.AllFormatChoices() {
		if c == choice {
			return i
		}
	}
	return 0
}

func (fc *FormController) statusText(status model.WorkerStatus) string {
	switch status {
	case model.WorkerStatusStarting:
		return fc.localization.GetText(KeyStatusStarting)
	case model.WorkerStatusDownloading:
		return fc.localization.GetText(KeyStatusDownloading)
	case model.WorkerStatusCompleted:
		return fc.localization.GetText(KeyStatusCompleted)
	case model.WorkerStatusCancelled:
		return fc.localization.GetText(KeyStatusCancelled)
	case model.WorkerStatusError:
		return fc.localization.GetText(KeyStatusError)
	default:
		return fc.localization.GetText(KeyStatusIdle)
	}
}

// Content returns the root canvas object of the form
func (fc *FormController) Content() fyne.CanvasObject {
	return fc.content
}

// SetURL replaces the URL field text
func (fc *FormController) SetURL(text string) {
	fc.urlEntry.SetText(text)
}

// SetDestination sets the output directory and its displayed value
func (fc *FormController) SetDestination(path string) {
	fc.destination = path
	fc.destinationValue.SetText(path)
}

// SelectFormat sets the output format and the selector
func (fc *FormController) SelectFormat(choice model.FormatChoice) {
	if !choice.Valid() {
		return
	}
	fc.format = choice
	fc.formatSelect.SetSelectedIndex(fc.formatIndex(choice))
}

// ChooseDirectory opens the folder picker; a dismissed or failed picker
// leaves the destination unchanged.
func (fc *FormController) ChooseDirectory() {
	fc.picker.PickDirectory(fc.destination, func(path string, ok bool) {
		if !ok || path == "" {
			return
		}
		fc.SetDestination(path)
	})
}

// TriggerDownload validates the URL and starts the single worker
func (fc *FormController) TriggerDownload() {
	if fc.downloadBtn.Disabled() {
		return
	}

	req, err := model.NewDownloadRequest(fc.urlEntry.Text, fc.destination, fc.format)
	if errors.Is(err, model.ErrEmptyURL) {
		fc.notifier.ShowWarning(fc.localization.GetText(KeyWarningTitle), fc.localization.GetText(KeyPleaseEnterURL))
		return
	}
	if err != nil {
		fc.showFailure(err.Error())
		return
	}

	if !fc.gate.TryAcquire(1) {
		fc.logger.Warn("download already in progress")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	fc.cancel = cancel
	fc.cancelRequested = false
	fc.activeID = req.ID

	fc.downloadBtn.Disable()
	fc.cancelBtn.Enable()
	fc.progressBar.SetValue(ProgressMin)
	fc.setStatus(model.WorkerStatusStarting)

	fc.logger.Info("download requested",
		zap.String("request_id", req.ID),
		zap.String("url", req.URL),
		zap.String("format", req.Format.String()),
		zap.String("destination", req.Destination))

	messages := fc.starter.Start(ctx, req)
	go fc.relay(messages)
}

// relay drains worker messages and applies each one on the UI goroutine
func (fc *FormController) relay(messages <-chan download.Message) {
	for msg := range messages {
		fc.dispatch(func() {
			fc.apply(msg)
		})
	}
}

func (fc *FormController) apply(msg download.Message) {
	switch m := msg.(type) {
	case download.ProgressMessage:
		if m.RequestID == fc.activeID {
			fc.OnProgress(m.Progress)
		}
	case download.ResultMessage:
		if m.RequestID == fc.activeID {
			fc.OnFinished(m.Result)
		}
	}
}

// OnProgress moves the progress bar to the clamped percent and updates the status line
func (fc *FormController) OnProgress(p model.Progress) {
	percent := model.ClampPercent(p.Percent)
	fc.progressBar.SetValue(percent)

	if fc.status.IsActive() {
		fc.status = model.WorkerStatusDownloading
	}
	fc.statusLabel.SetText(fc.progressText(percent, p))
}

func (fc *FormController) progressText(percent float64, p model.Progress) string {
	parts := []string{
		fc.statusText(model.WorkerStatusDownloading),
		fmt.Sprintf(PercentFormat, percent),
	}
	if p.TotalBytes > 0 {
		parts = append(parts, humanize.Bytes(uint64(max(p.DownloadedBytes, 0)))+SizeSeparator+humanize.Bytes(uint64(p.TotalBytes)))
	} else if p.DownloadedBytes > 0 {
		parts = append(parts, humanize.Bytes(uint64(p.DownloadedBytes)))
	}
	if p.ETASec > 0 {
		parts = append(parts, ETAPrefix+p.GetETAString())
	}
	return strings.Join(parts, MiddleDotSeparator)
}

// OnFinished handles the terminal result: the trigger is re-enabled and the
// outcome is shown in a dialog.
func (fc *FormController) OnFinished(result model.Result) {
	if fc.cancel == nil {
		return
	}
	fc.cancel()
	fc.cancel = nil
	fc.activeID = ""
	fc.gate.Release(1)

	fc.downloadBtn.Enable()
	fc.cancelBtn.Disable()

	status := result.Status()
	if !result.Success && fc.cancelRequested {
		status = model.WorkerStatusCancelled
	}
	fc.setStatus(status)

	fc.logger.Info("download finished",
		zap.Bool("success", result.Success),
		zap.String("status", status.String()),
		zap.String("message", result.Message))

	if result.Success {
		fc.progressBar.SetValue(ProgressMin)
		fc.notifier.ShowInfo(fc.localization.GetText(KeyCompletedTitle), result.Message)
		return
	}
	fc.showFailure(result.Message)
}

// CancelDownload cancels the in-flight worker; its failure result still arrives through OnFinished
func (fc *FormController) CancelDownload() {
	if fc.cancel == nil {
		return
	}
	fc.cancelRequested = true
	fc.cancelBtn.Disable()
	fc.cancel()
}

func (fc *FormController) showFailure(description string) {
	fc.notifier.ShowError(
		fc.localization.GetText(KeyErrorTitle),
		fc.localization.GetText(KeyProblemOccurred)+": "+description,
	)
}

func (fc *FormController) setStatus(status model.WorkerStatus) {
	fc.status = status
	fc.statusLabel.SetText(fc.statusText(status))
}

// onOpenDestination opens the destination folder in the system file manager
func (fc *FormController) onOpenDestination() {
	if err := platform.OpenDirectory(fc.destination); err != nil {
		fc.logger.Warn("open destination failed", zap.String("destination", fc.destination), zap.Error(err))
		fc.notifier.ShowError(fc.localization.GetText(KeyErrorTitle), fc.localization.GetText(KeyErrorOpeningDir)+": "+err.Error())
	}
}

// Destination returns the current output directory
func (fc *FormController) Destination() string {
	return fc.destination
}

// Format returns the current format choice
func (fc *FormController) Format() model.FormatChoice {
	return fc.format
}

// Status returns the worker status as seen by the form
func (fc *FormController) Status() model.WorkerStatus {
	return fc.status
}

// ProgressValue returns the progress bar value
func (fc *FormController) ProgressValue() float64 {
	return fc.progressBar.Value
}

// DownloadEnabled reports whether the trigger accepts clicks
func (fc *FormController) DownloadEnabled() bool {
	return !fc.downloadBtn.Disabled()
}

// CancelEnabled reports whether the cancel button accepts clicks
func (fc *FormController) CancelEnabled() bool {
	return !fc.cancelBtn.Disabled()
}
