package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"emovoice/internal/api"
	"emovoice/internal/config"
	"emovoice/internal/logging"
	"emovoice/internal/report"
	"emovoice/internal/store"
	"emovoice/internal/tui"
)

func main() {
	cfgPath, _ := config.DefaultConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogPath)
	defer log.Sync()

	s, err := store.New(cfg.DBPath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	// The user id stored in settings wins over the config file once set.
	userID := cfg.UserID
	if v, err := s.GetSetting("user_id"); err == nil && v != "" {
		userID = v
	}

	client := api.NewClient(cfg.APIBaseURL, log)
	gen := report.NewGenerator(s, client)
	capturesDir := filepath.Join(filepath.Dir(cfg.DBPath), "captures")

	app := tui.NewApp(s, client, gen, userID, capturesDir, log)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
