package cmd

import (
	"fmt"
	"maps"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/zjrosen/letter/internal/config"
	"github.com/zjrosen/letter/internal/keys"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List normal-mode chords",
	Long: `List every normal-mode binding with its chords, after config overrides.

Chords use vim-style notation: plain characters, <space>, <lt>, <enter>,
<esc>, <tab>, <bs>, <left>/<right>/<up>/<down>, <home>, <end>, <del>.

Examples:
  # Show the active keymap
  letter keys

  # Rebind delete_line and persist it to the config file
  letter keys set delete_line "<space>x"

  # Drop an override, restoring the default chord
  letter keys unset delete_line`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := config.KeyMap(cfg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), renderKeyTable(km, cfg.Keymap))
		return err
	},
}

var keysSetCmd = &cobra.Command{
	Use:   "set <binding> <chord>",
	Short: "Override the chord of a binding",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFilePath()
		if err := setBinding(path, &cfg, args[0], args[1]); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (saved to %s)\n", args[0], args[1], path)
		return err
	},
}

var keysUnsetCmd = &cobra.Command{
	Use:   "unset <binding>",
	Short: "Remove a binding override",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFilePath()
		if err := unsetBinding(path, &cfg, args[0]); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s restored to default (saved to %s)\n", args[0], path)
		return err
	},
}

func init() {
	keysCmd.AddCommand(keysSetCmd, keysUnsetCmd)
	rootCmd.AddCommand(keysCmd)
}

var overrideStyle = lipgloss.NewStyle().Bold(true)

// renderKeyTable renders one row per binding in display order. Overridden
// bindings are marked with "*".
func renderKeyTable(km keys.KeyMap, overrides map[string]string) string {
	bindings := km.Bindings()
	rows := make([][]string, 0, len(bindings))
	for _, name := range keys.Names() {
		b := bindings[name]
		label := name
		if _, ok := overrides[name]; ok {
			label = overrideStyle.Render(name + "*")
		}
		rows = append(rows, []string{label, strings.Join(b.Keys(), " "), b.Help().Desc})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Binding", "Chords", "Action").
		Rows(rows...)
	return t.String()
}

// setBinding validates name=chord against the rest of the keymap and
// persists the overrides to path.
func setBinding(path string, c *config.Config, name, chord string) error {
	overrides := maps.Clone(c.Keymap)
	if overrides == nil {
		overrides = make(map[string]string)
	}
	overrides[name] = chord
	return saveOverrides(path, c, overrides)
}

func unsetBinding(path string, c *config.Config, name string) error {
	if _, ok := c.Keymap[name]; !ok {
		return fmt.Errorf("binding %q has no override", name)
	}
	overrides := maps.Clone(c.Keymap)
	delete(overrides, name)
	return saveOverrides(path, c, overrides)
}

func saveOverrides(path string, c *config.Config, overrides map[string]string) error {
	candidate := *c
	candidate.Keymap = overrides
	if _, err := config.KeyMap(candidate); err != nil {
		return err
	}

	if err := config.SaveKeymap(path, overrides); err != nil {
		return fmt.Errorf("saving keymap: %w", err)
	}
	c.Keymap = overrides
	return nil
}
