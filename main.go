package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gamecal/gamecal/app"
	"github.com/gamecal/gamecal/client"
	"github.com/gamecal/gamecal/config"
	"github.com/gamecal/gamecal/style"
)

var version = "dev"

func main() {
	serverFlag := flag.String("server", "", "Release calendar API base URL (overrides GAMECAL_URL)")
	themeFlag := flag.String("theme", "", "Color theme: dark, light, catppuccin, tokyo-night")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("gamecal %s\n", version)
		os.Exit(0)
	}

	if *noColor {
		// Caller can set NO_COLOR=1 in the shell to disable colors.
		os.Setenv("NO_COLOR", "1")
	}

	home, _ := os.UserHomeDir()
	app.ConfigDir = filepath.Join(home, ".config", "gamecal")
	cfg := config.Load(app.ConfigDir)

	baseURL := os.Getenv("GAMECAL_URL")
	if baseURL == "" {
		baseURL = cfg.ServerURL
	}
	if *serverFlag != "" {
		baseURL = *serverFlag
	}
	if baseURL == "" {
		baseURL = "http://localhost:8480"
	}

	// Auto-detect terminal background unless the user pinned a theme.
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}
	if cfg.Theme == "" {
		if lipgloss.HasDarkBackground(os.Stdin, os.Stdout) {
			cfg.Theme = "dark"
		} else {
			cfg.Theme = "light"
		}
	}
	if !style.SetTheme(cfg.Theme) {
		fmt.Fprintf(os.Stderr, "gamecal: unknown theme %q\n", cfg.Theme)
		os.Exit(1)
	}

	m := app.New(client.New(baseURL), cfg)

	// AltScreen and mouse mode are configured on the View struct, so the
	// program takes no options here.
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "gamecal: %v\n", err)
		os.Exit(1)
	}
}
