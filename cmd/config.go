package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/wsmark/internal/config"
	"github.com/marcus/wsmark/internal/models"
	"github.com/marcus/wsmark/internal/output"
	"github.com/marcus/wsmark/internal/suggest"
)

// configView is the resolved config as shown by `config show --json`
type configView struct {
	States         []models.State `json:"states"`
	Foreground     string         `json:"foreground"`
	HighlightColor string         `json:"highlight_color"`
	ContextLines   int            `json:"context_lines"`
}

func resolvedConfig(cfg *models.Config) configView {
	return configView{
		States:         config.Palette(cfg),
		Foreground:     config.Foreground(cfg),
		HighlightColor: config.HighlightColor(cfg),
		ContextLines:   config.ContextLines(cfg),
	}
}

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage the state palette and display settings",
	GroupID: "system",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			output.Error("load config: %v", err)
			return err
		}
		view := resolvedConfig(cfg)

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(view)
		}

		fmt.Println("STATES:")
		for _, s := range view.States {
			fmt.Printf("  %s %s\n", output.FormatStateChip(s), s.Color)
		}
		fmt.Printf("\nforeground  %s\n", view.Foreground)
		fmt.Printf("highlight   %s\n", view.HighlightColor)
		fmt.Printf("context     %d\n", view.ContextLines)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a display setting",
	Long:  "Keys: " + strings.Join(config.SettableKeys, ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if !slices.Contains(config.SettableKeys, key) {
			err := fmt.Errorf("unknown config key: %s", key)
			output.Error("%v%s", err, suggest.Hint(suggest.Names(key, config.SettableKeys)))
			return err
		}
		if err := config.Set(getBaseDir(), key, val); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("Set %s = %s", key, val)
		return nil
	},
}

var configStateCmd = &cobra.Command{
	Use:   "state",
	Short: "Edit the state palette",
}

var configStateAddCmd = &cobra.Command{
	Use:   "add <name> <color>",
	Short: "Add a state or change its colour",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.ToUpper(strings.TrimSpace(args[0]))
		if err := config.SetState(getBaseDir(), name, args[1]); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("State %s = %s", name, args[1])
		return nil
	},
}

var configStateRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a state from the palette",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.ToUpper(strings.TrimSpace(args[0]))
		if err := config.RemoveState(getBaseDir(), name); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("Removed state %s", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd, configStateCmd)
	configStateCmd.AddCommand(configStateAddCmd, configStateRmCmd)

	configShowCmd.Flags().Bool("json", false, "Output as JSON")
}
