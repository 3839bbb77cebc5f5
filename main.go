package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"scribetui/api"
	"scribetui/config"
	"scribetui/ui"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	client, err := api.NewClient(cfg.ServerURL, cfg.RequestTimeout)
	if err != nil {
		fmt.Printf("Invalid server URL %q: %v\n", cfg.ServerURL, err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		ui.NewGate(cfg, client),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
