package main

import (
	"StudyLight/eventlog"
	"StudyLight/storage"
	"StudyLight/ui"
	"context"
	"embed"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

//go:embed assets/*
var content embed.FS

const appName = "StudyLight"

func main() {
	fyneApp := app.New()

	if iconBytes, err := content.ReadFile("assets/icon.png"); err == nil {
		fyneApp.SetIcon(fyne.NewStaticResource("icon.png", iconBytes))
	} else {
		log.Printf("Failed to load icon. %v", err)
	}

	var mediumFontRes, boldFontRes fyne.Resource
	if data, err := content.ReadFile("assets/Quicksand-Medium.ttf"); err == nil {
		mediumFontRes = fyne.NewStaticResource("Quicksand-Medium.ttf", data)
	}
	if data, err := content.ReadFile("assets/Quicksand-Bold.ttf"); err == nil {
		boldFontRes = fyne.NewStaticResource("Quicksand-Bold.ttf", data)
	}
	fyneApp.Settings().SetTheme(ui.NewCustomTheme(mediumFontRes, boldFontRes))

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("settings: %v (using defaults)", err)
	}
	// Write the effective settings back so the file exists for editing.
	if err := storage.SaveSettings(appName, settings); err != nil {
		log.Printf("settings: %v", err)
	}

	logPath := settings.BreakLogPath
	if logPath == "" {
		logPath, err = eventlog.DefaultPath(appName)
		if err != nil {
			log.Printf("break log: %v", err)
		}
	}

	a := NewAppManager(content, settings, eventlog.New(logPath))

	w, sw := ui.CreateMainWindow(a, fyneApp)
	a.mainWindow = w
	a.SetWidget(sw)

	ctx, cancel := context.WithCancel(context.Background())
	w.SetOnClosed(func() {
		cancel()
		a.Shutdown()
	})

	go a.tick(ctx)

	w.ShowAndRun()
}
