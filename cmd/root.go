package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/avharna/stylet/internal/app"
	"github.com/avharna/stylet/internal/config"
	"github.com/avharna/stylet/internal/log"
	"github.com/avharna/stylet/internal/tracing"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "stylet",
	Short:   "A live playground for the stylet syntax styling engine",
	Long: `Stylet turns tokenizer output into color annotations for a viewport-aware
terminal editor. The playground loads a sample buffer and restyles it live as
you type, switch themes or swap languages.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/stylet/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false,
		"write debug logs to stylet.log")
	rootCmd.Flags().StringP("theme", "t", "",
		"chroma style preset to start with")
	rootCmd.Flags().String("theme-file", "",
		"YAML theme file to load and watch for changes")
	rootCmd.Flags().StringP("language", "l", "",
		"sample language to start with")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("theme.preset", rootCmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("theme.file", rootCmd.Flags().Lookup("theme-file"))
	_ = viper.BindPFlag("language", rootCmd.Flags().Lookup("language"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("language", defaults.Language)
	viper.SetDefault("theme.preset", defaults.Theme.Preset)
	viper.SetDefault("theme.mode", defaults.Theme.Mode)
	viper.SetDefault("ui.tab_width", defaults.UI.TabWidth)
	viper.SetDefault("ui.buffer_lines", defaults.UI.BufferLines)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .stylet/config.yaml (current directory)
		// 2. ~/.config/stylet/config.yaml (user config)
		if _, err := os.Stat(".stylet/config.yaml"); err == nil {
			viper.SetConfigFile(".stylet/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "stylet"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .stylet/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".stylet/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	applyColorMode(cfg.Theme.Mode)

	if debugEnabled(cfg.Debug) {
		cleanup, err := log.InitWithTeaLog("stylet.log", "stylet")
		if err != nil {
			return fmt.Errorf("initializing debug log: %w", err)
		}
		defer cleanup()
	}

	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = ".stylet/config.yaml"
	}
	log.Info(log.CatConfig, "configuration loaded",
		"file", configFilePath,
		"theme", cfg.Theme.Preset,
		"language", cfg.Language)

	tracer, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() { _ = tracer.Shutdown(cmd.Context()) }()

	model := app.New(cfg, configFilePath, tracer)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if fm, ok := final.(app.Model); ok {
		fm.Close()
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// applyColorMode forces light or dark rendering when configured,
// bypassing terminal background detection. NO_COLOR disables color
// output entirely.
// debugEnabled reports whether debug logging was requested, either
// through the --debug flag (or config key) or the STYLET_DEBUG
// environment variable.
func debugEnabled(flag bool) bool {
	return flag || os.Getenv("STYLET_DEBUG") != ""
}

func applyColorMode(mode string) {
	if os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	switch mode {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
