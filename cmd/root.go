package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"extui/api"
	"extui/config"
	"extui/model"
	"extui/storage"
	"extui/ui"
)

var hostFlag string

var rootCmd = &cobra.Command{
	Use:   "extui",
	Short: "Terminal control panel for managing host extensions",
	Long: `extui is a terminal control panel for a running host service.
It lists installed extensions, browses the extension market, and drives
install, update, enable/disable, uninstall, and per-extension
configuration through the host's admin API.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPanel()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "host service endpoint (overrides config and EXTUI_HOST)")
}

func runPanel() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// First run: materialize the defaults so users have a file to edit.
	// Written before the flag override so a one-off --host is not persisted.
	if !config.FileExists(config.GetSettingsFilePath()) {
		if err := config.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not write settings file: %v\n", err)
		}
	}

	if hostFlag != "" {
		cfg.ServerHost = hostFlag
	}

	config.InitDebugLog(cfg.DataDir())

	cache, err := storage.NewSnapshotCache(cfg.DataDir())
	if err != nil {
		return fmt.Errorf("failed to open snapshot cache: %w", err)
	}
	defer cache.Close()

	client := api.NewClient(cfg.ServerHost)
	app := model.NewApp(client, cache)

	p := tea.NewProgram(
		ui.NewPanelView(app, Version),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running extui: %w", err)
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
