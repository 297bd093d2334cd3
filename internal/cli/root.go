// Package cli provides the command-line interface for the scenario parser.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"scenario-parser/internal/analysis/scenario"
	"scenario-parser/internal/config"
	"scenario-parser/internal/logging"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-10-21"
)

// App holds the application dependencies. Config and Logger may be set
// before the root command runs; otherwise they are loaded from --config.
type App struct {
	Config    *config.Config
	ConfigDir string
	Logger    zerolog.Logger
	Parser    *scenario.Parser
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scenario",
		Short: "Extract structured trade scenarios from analyst commentary",
		Long: `scenario reads free-form Japanese market commentary and extracts the
instrument, analysis date, support and resistance levels with their
timeframes, price zones, trend lines and cautionary notes.

Use 'scenario parse <file>' or pipe text on stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/scenario-parser)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newParseCmd(app))
	rootCmd.AddCommand(newValidateCmd(app))
	rootCmd.AddCommand(newSymbolsCmd(app))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newExamplesCmd(app))

	return rootCmd
}

// setup loads configuration and builds the parser once per invocation.
func (app *App) setup(cmd *cobra.Command) error {
	if app.Config == nil {
		dir, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(dir)
		if err != nil {
			return err
		}
		app.Config = cfg
		app.ConfigDir = dir
		app.Logger = logging.NewLoggerWithConfig(cfg.LogConfig())
		if cfg.TemplateErr != nil {
			app.Logger.Debug().Err(cfg.TemplateErr).
				Str("path", config.ConfigPath(dir)).
				Msg("Config template not written, using defaults")
		}
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		app.Logger = app.Logger.Level(zerolog.DebugLevel)
	}

	app.Parser = scenario.NewParser(
		scenario.WithLogger(app.Logger),
		scenario.WithAliases(app.Config.Symbols.Aliases),
		scenario.WithDefaultTimeframe(app.Config.Timeframe()),
	)
	app.Logger.Debug().
		Str("default_timeframe", string(app.Config.Timeframe())).
		Int("extra_aliases", len(app.Config.Symbols.Aliases)).
		Msg("Parser initialized")
	return nil
}

func (app *App) output(cmd *cobra.Command) *Output {
	colorEnabled := app.Config != nil && app.Config.UI.ColorEnabled
	return NewOutput(cmd, colorEnabled)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, false)
			if output.IsJSON() {
				return output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			}
			output.Printf("scenario v%s\n", Version)
			output.Dim("Build date: %s", BuildDate)
			return nil
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and validate application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			path := config.ConfigPath(app.ConfigDir)
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": path})
			}
			output.Println(path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"valid": true})
			}
			output.Success("✓ Configuration is valid")
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	defaultTF := cfg.Parser.DefaultTimeframe
	if defaultTF == "" {
		defaultTF = "(drop levels without timeframe)"
	}

	output.Bold("Parser")
	output.Printf("  Default timeframe: %s\n", defaultTF)
	output.Printf("  Extra aliases:     %d\n", len(cfg.Symbols.Aliases))
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:             %s\n", cfg.Logging.Level)
	output.Printf("  File:              %v\n", cfg.Logging.File)
	if cfg.Logging.File {
		output.Printf("  Path:              %s\n", cfg.LogConfig().FilePath)
	}
	output.Println()

	output.Bold("UI")
	output.Printf("  Color:             %v\n", cfg.UI.ColorEnabled)
	output.Printf("  Date format:       %s\n", cfg.UI.DateFormat)
	if cfg.Path != "" {
		output.Println()
		output.Dim("Loaded from %s", cfg.Path)
	}
}
