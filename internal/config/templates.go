package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Scenario Parser Configuration

[parser]
# Timeframe assigned to a level whose clause names none:
# "daily", "weekly", "monthly", or "" to drop such levels
default_timeframe = "daily"

[symbols.aliases]
# Extra instrument names, matched case-insensitively after width folding.
# Built-in aliases (GOLD, ゴールド, ドル円, 日経平均, ...) always apply.
# "金スポット" = "XAUUSD=X"

[logging]
# Log level: debug, info, warn, error, disabled
level = "info"
# Also write rotated logs to file_path
file = false
file_path = ""
# Rotation: megabytes per file, files kept, days kept
max_size = 50
max_backups = 5
max_age = 30

[ui]
# Enable colored output
color_enabled = true
# Layout for dates in the text summary
date_format = "2006-01-02 15:04"
`

// Template returns the commented default configuration file.
func Template() string {
	return configTemplate
}

// ConfigPath returns the path of config.toml inside configDir.
func ConfigPath(configDir string) string {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	return filepath.Join(configDir, ConfigFileName+".toml")
}

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := ConfigPath(configDir)
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
