package main

import (
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"timeline-editor/internal/logger"
	"timeline-editor/internal/timeline"
	"timeline-editor/models"
	"timeline-editor/ui"
	appTheme "timeline-editor/ui/theme"
)

func main() {
	settingsPath := flag.String("settings", models.DefaultSettingsPath(), "path to settings.yaml")
	projectPath := flag.String("project", "", "project database to open (overrides settings)")
	flag.Parse()

	settings, err := models.LoadSettings(*settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "settings: %v\n", err)
		os.Exit(1)
	}
	if *projectPath != "" {
		settings.ProjectPath = *projectPath
	}

	log := logger.Default()
	log.SetLevel(logger.ParseLevel(settings.LogLevel))

	opts := settings.SessionOptions()
	opts.Logger = log
	session, err := timeline.NewSession(opts)
	if err != nil {
		log.Error("creating session: %v", err)
		os.Exit(1)
	}

	a := app.New()
	a.Settings().SetTheme(&appTheme.EditorTheme{})

	w := a.NewWindow("Timeline Editor")
	w.Resize(fyne.NewSize(1200, 640))

	editor := ui.NewEditorUI(w, settings, session, log)
	w.SetContent(editor.Build())

	if err := editor.Restore(); err != nil {
		log.Error("loading project %s: %v", settings.ProjectPath, err)
	}
	if flag.NArg() > 0 {
		editor.OpenSubtitles(flag.Args()...)
	}

	w.SetOnClosed(editor.Shutdown)
	w.ShowAndRun()
}
