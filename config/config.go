package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type ServerConfig struct {
	Host string `toml:"host"`
}

type UserConfig struct {
	DataDirectory string       `toml:"data_directory"`
	Server        ServerConfig `toml:"server"`
}

type Config struct {
	DataDirectory string
	ServerHost    string
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("EXTUI_HOST"); host != "" {
		c.ServerHost = host
	}
	if dataDir := os.Getenv("EXTUI_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
}

func CheckDebug() bool {
	debug := os.Getenv("EXTUI_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600 - the log may echo server responses
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (EXTUI_DEBUG=%s) ===", os.Getenv("EXTUI_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

// Load reads settings.toml if present, falls back to defaults otherwise,
// and applies environment overrides on top of either.
func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory: "~/.local/share/extui",
		ServerHost:    "http://localhost:6185",
	}

	settingsPath := GetSettingsFilePath()
	if FileExists(settingsPath) {
		var userCfg UserConfig
		if _, err := toml.DecodeFile(settingsPath, &userCfg); err != nil {
			return nil, fmt.Errorf("failed to parse settings: %w", err)
		}
		if userCfg.DataDirectory != "" {
			cfg.DataDirectory = userCfg.DataDirectory
		}
		if userCfg.Server.Host != "" {
			cfg.ServerHost = userCfg.Server.Host
		}
	}

	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// Save writes the current configuration back to settings.toml.
func Save(cfg *Config) error {
	configDir := GetConfigDir()
	if err := EnsureDir(configDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	userCfg := UserConfig{
		DataDirectory: cfg.DataDirectory,
		Server:        ServerConfig{Host: cfg.ServerHost},
	}

	// 0600 - contains the admin endpoint of the host service
	f, err := os.OpenFile(GetSettingsFilePath(), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(userCfg); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	return nil
}
