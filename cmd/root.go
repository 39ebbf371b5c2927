package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/letter/internal/app"
	"github.com/zjrosen/letter/internal/config"
	"github.com/zjrosen/letter/internal/flags"
	"github.com/zjrosen/letter/internal/log"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the note.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "letter [file]",
	Short: "A modal terminal note editor",
	Long: `A modal terminal note editor with vim-style motions and
configurable multi-key chords.

Normal mode composes chords from the keymap (see 'letter keys'), insert
mode edits the note, and ':' opens the command line.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/letter/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write a debug log (also enabled by "+log.EnvDebug+")")
	rootCmd.Flags().Bool("no-line-breaks", false,
		"keep the note at its current line count")
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .letter/config.yaml (current directory)
		// 2. ~/.config/letter/config.yaml (user config)
		if _, err := os.Stat(config.LocalConfigPath); err == nil {
			viper.SetConfigFile(config.LocalConfigPath)
		} else if userPath := config.UserConfigPath(); userPath != "" {
			viper.SetConfigFile(userPath)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the default user config
		if isNotFound(err) && cfgFile == "" {
			if defaultPath := config.UserConfigPath(); defaultPath != "" {
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// isNotFound reports whether err means the config file does not exist.
// viper returns ConfigFileNotFoundError for search paths and a plain
// fs error for an explicit SetConfigFile.
func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// configFilePath is where keymap changes are saved and watched.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return config.UserConfigPath()
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if log.Enabled(debug) {
		cleanup, err := log.Init(cfg.LogPath)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
		log.Info(log.CatConfig, "Starting letter", "version", version, "config", configFilePath())
	}

	// Handle --no-line-breaks flag (negated logic)
	if noBreaks, _ := cmd.Flags().GetBool("no-line-breaks"); noBreaks {
		cfg.Editor.LineBreaks = false
	}

	var filePath, text string
	if len(args) == 1 {
		filePath = args[0]
		var err error
		text, err = readNote(filePath)
		if err != nil {
			return err
		}
	}

	model, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: configFilePath(),
		FilePath:   filePath,
		Text:       text,
		Flags:      flags.New(cfg.Flags),
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(&model, tea.WithAltScreen())
	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// readNote returns the content of path. A missing file is a new, empty note.
func readNote(path string) (string, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("reading %s: %w", path, err)
	case info.IsDir():
		return "", fmt.Errorf("reading %s: is a directory", path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's file argument
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
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
