package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ahmedhamdy1234/OXTCHAT/internal/auth"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/chat"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/config"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/relay"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/speech"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/storage"
	"github.com/ahmedhamdy1234/OXTCHAT/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to a config.toml (default: <data dir>/config.toml)")
	flag.Parse()

	var cfg *config.ClientConfig
	var err error
	if *configPath != "" {
		cfg, err = config.LoadClientFromPath(*configPath)
	} else {
		cfg, err = config.LoadClient()
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open data directory: %v", err)
	}

	chatStore := chat.NewStore(store)
	session := auth.NewSession(store)
	client := relay.NewClient(cfg.ServerURL)
	speechCtl := speech.NewController(speech.UnsupportedRecognizer(), speech.UnsupportedSynthesizer())

	m := tui.New(chatStore, session, client, speechCtl, store)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("UI error: %v", err)
	}
}
