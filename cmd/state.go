package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/wsmark/internal/input"
	"github.com/marcus/wsmark/internal/models"
	"github.com/marcus/wsmark/internal/output"
	"github.com/marcus/wsmark/internal/prompt"
	"github.com/marcus/wsmark/internal/session"
	"github.com/marcus/wsmark/internal/status"
	"github.com/marcus/wsmark/internal/suggest"
)

var stateCmd = &cobra.Command{
	Use:   "state [name|next]",
	Short: "Select the current state",
	Long: `Sets the current state by name (case-insensitive), or cycles to the next
one with "next". Without arguments a picker is shown on a terminal; otherwise
the palette is listed.`,
	GroupID: "status",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		palette := sess.Status.Palette()
		current, err := sess.Status.Current()
		if err != nil {
			output.Warning("could not read current state: %v", err)
		}

		var name string
		switch {
		case len(args) == 1 && strings.EqualFold(args[0], "next"):
			st, err := session.Invoke[session.Empty, models.State](context.Background(), sess.Table, session.CmdNextState, session.Empty{})
			if err != nil {
				output.Error("%v", err)
				return err
			}
			fmt.Printf("STATE %s\n", output.FormatStateChip(st))
			return nil
		case len(args) == 1:
			name = matchState(palette, args[0])
		case prompt.IsInteractive():
			idx, ok, err := prompt.Select("State", stateNames(palette))
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if !ok {
				return nil
			}
			name = palette[idx].Name
		default:
			for _, s := range palette {
				marker := "  "
				if s.Name == current.Name {
					marker = "* "
				}
				fmt.Println(marker + output.FormatStateChip(s))
			}
			return nil
		}

		st, err := session.Invoke[session.SelectStateInput, models.State](context.Background(), sess.Table,
			session.CmdSelectState, session.SelectStateInput{Name: name})
		if errors.Is(err, status.ErrUnknownState) {
			output.Error("%v%s", err, suggest.Hint(suggest.Names(name, stateNames(palette))))
			return err
		}
		if err != nil {
			output.Error("%v", err)
			return err
		}
		fmt.Printf("STATE %s\n", output.FormatStateChip(st))
		return nil
	},
}

func stateNames(palette []models.State) []string {
	names := make([]string, len(palette))
	for i, s := range palette {
		names[i] = s.Name
	}
	return names
}

// matchState maps a case-insensitive name to its palette spelling
func matchState(palette []models.State, name string) string {
	for _, s := range palette {
		if strings.EqualFold(s.Name, name) {
			return s.Name
		}
	}
	return name
}

var flowCmd = &cobra.Command{
	Use:   "flow [text...]",
	Short: "Set the flow note shown next to the state",
	Long: `Sets a short note describing the current line of work. Without text a
prompt is shown on a terminal; otherwise the current flow is printed.`,
	GroupID: "status",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		text, err := input.Text(args, os.Stdin)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		clearFlow, _ := cmd.Flags().GetBool("clear")
		if clearFlow {
			text = ""
		}

		if !clearFlow && text == "" {
			current, err := sess.Status.Flow()
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if !prompt.IsInteractive() {
				if current == "" {
					fmt.Println("No flow set")
				} else {
					fmt.Println(current)
				}
				return nil
			}
			var ok bool
			text, ok, err = prompt.Input("Flow", current, nil)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if !ok {
				return nil
			}
		}

		if _, err := session.Invoke[session.SetFlowInput, session.Empty](context.Background(), sess.Table,
			session.CmdSetFlow, session.SetFlowInput{Text: text}); err != nil {
			output.Error("failed to save flow: %v", err)
			return err
		}
		if strings.TrimSpace(text) == "" {
			output.Success("Flow cleared")
		} else {
			output.Success("FLOW %s", strings.TrimSpace(text))
		}
		return nil
	},
}

var remindCmd = &cobra.Command{
	Use:   "remind [text...]",
	Short: "Leave a one-shot reminder for the next status",
	Long: `Stores a note that the next "wsmark status" shows once and then clears.
Without text a prompt is shown on a terminal; otherwise the pending reminder
is printed without clearing it.`,
	GroupID: "status",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		text, err := input.Text(args, os.Stdin)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if text == "" {
			if !prompt.IsInteractive() {
				pending, err := sess.Status.PeekReminder()
				if err != nil {
					output.Error("%v", err)
					return err
				}
				if pending == "" {
					fmt.Println("No reminder pending")
				} else {
					fmt.Println(pending)
				}
				return nil
			}
			var ok bool
			text, ok, err = prompt.Input("Reminder", "what should you not forget?", prompt.NotBlank("reminder"))
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if !ok {
				return nil
			}
		}

		if _, err := session.Invoke[session.SetReminderInput, session.Empty](context.Background(), sess.Table,
			session.CmdSetReminder, session.SetReminderInput{Text: text}); err != nil {
			output.Error("failed to save reminder: %v", err)
			return err
		}
		output.Success("Reminder set")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(flowCmd)
	rootCmd.AddCommand(remindCmd)

	flowCmd.Flags().Bool("clear", false, "Clear the flow note")
}
