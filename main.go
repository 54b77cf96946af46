package main

import (
	"embed"
	"log/slog"
	"os"

	"SchulteTable/audio"
	"SchulteTable/config"
	"SchulteTable/i18n"
	"SchulteTable/ui"

	"fyne.io/fyne/v2/app"
	"github.com/jonboulle/clockwork"
)

//go:embed assets/*
var content embed.FS

func main() {
	settings, err := config.Load(content, nil)
	if err != nil {
		slog.Error("invalid settings, falling back to defaults", "error", err)
		if settings, err = config.Defaults(content); err != nil {
			slog.Error("failed to load default settings", "error", err)
			os.Exit(1)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(settings.LogLevel),
	}))
	slog.SetDefault(logger)

	i18n.Init(settings.Language)

	player := audio.New(settings.Sound, logger)
	if err := player.Open(); err != nil {
		logger.Warn("audio disabled", "error", err)
	}

	fyneApp := app.NewWithID("io.github.schulte-table")
	fyneApp.Settings().SetTheme(ui.NewCustomTheme(settings.DarkMode))

	a := NewAppManager(fyneApp, settings, player, clockwork.NewRealClock(), logger)

	w := ui.CreateMainWindow(a, fyneApp, a.view)
	a.mainWindow = w
	w.SetOnClosed(func() {
		a.Shutdown()
		player.Close()
	})

	logger.Info("schulte table ready", "lang", i18n.GetLang(), "dark", settings.DarkMode)
	w.ShowAndRun()
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
