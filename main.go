package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/ytget/quickdl/internal/config"
	"github.com/ytget/quickdl/internal/download"
	"github.com/ytget/quickdl/internal/logging"
	"github.com/ytget/quickdl/internal/platform"
	"github.com/ytget/quickdl/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.quickdl"
	AppName = "QuickDL"
)

// preparer is implemented by engines that fetch their tooling before first use
type preparer interface {
	Prepare(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting",
		zap.String("app", AppName),
		zap.String("version", version),
		zap.String("engine", cfg.Engine),
		zap.String("config", cfg.Path()))

	if err := platform.CreateDirectoryIfNotExists(cfg.Destination); err != nil {
		logger.Warn("failed to ensure destination dir", zap.String("destination", cfg.Destination), zap.Error(err))
	}

	engine, err := download.NewEngine(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create download engine", zap.Error(err))
	}

	// Fetch yt-dlp in the background; a download started earlier waits for it
	if p, ok := engine.(preparer); ok {
		go func() {
			if err := p.Prepare(context.Background()); err != nil {
				logger.Warn("engine prepare failed", zap.String("engine", engine.Name()), zap.Error(err))
			}
		}()
	}

	worker := download.NewWorker(engine,
		download.WithTimeout(cfg.Timeout),
		download.WithLogger(logger))

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))
	if icon, err := ui.LoadLogoResource(); err == nil {
		myWindow.SetIcon(icon)
	}

	ui.NewFormController(myWindow, worker, ui.FormOptions{
		Destination: cfg.Destination,
		Format:      cfg.Format(),
		Language:    cfg.Language,
		Version:     version,
		Logger:      logger,
	})

	myWindow.ShowAndRun()
}
