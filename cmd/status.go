package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/wsmark/internal/models"
	"github.com/marcus/wsmark/internal/output"
	"github.com/marcus/wsmark/internal/session"
	"github.com/marcus/wsmark/internal/status"
)

// statusJSON is the --json shape of `wsmark status`
type statusJSON struct {
	State     models.State `json:"state"`
	Flow      string       `json:"flow,omitempty"`
	Reminder  string       `json:"reminder,omitempty"`
	Hotpoints int          `json:"hotpoints"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current state, flow and pending reminder",
	Long: `Prints the status line tinted with the current state's colour.

A pending reminder is shown once and then cleared.`,
	GroupID: "status",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		ctx := context.Background()
		snap, err := session.Invoke[session.Empty, status.Snapshot](ctx, sess.Table, session.CmdStatus, session.Empty{})
		if err != nil {
			output.Error("failed to read status: %v", err)
			return err
		}
		reminder, err := session.Invoke[session.Empty, string](ctx, sess.Table, session.CmdTakeReminder, session.Empty{})
		if err != nil {
			output.Warning("reminder not cleared: %v", err)
		}
		snap.Reminder = reminder

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(statusJSON{
				State:     snap.State,
				Flow:      snap.Flow,
				Reminder:  snap.Reminder,
				Hotpoints: sess.Hotpoints.Len(),
			})
		}

		if long, _ := cmd.Flags().GetBool("long"); long {
			rendered, err := output.RenderMarkdown(statusMarkdown(snap, sess.Hotpoints.List()), 0)
			if err != nil {
				output.Error("render: %v", err)
				return err
			}
			fmt.Println(rendered)
			return nil
		}

		fmt.Println(sess.Status.Render(snap, 0))
		if snap.Reminder != "" {
			output.Warning("reminder: %s", snap.Reminder)
		}
		return nil
	},
}

// statusMarkdown builds the --long summary
func statusMarkdown(snap status.Snapshot, points []models.Hotpoint) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", snap.State.Name)
	if snap.Flow != "" {
		fmt.Fprintf(&sb, "**Flow:** %s\n\n", snap.Flow)
	}
	if snap.Reminder != "" {
		fmt.Fprintf(&sb, "> **Reminder:** %s\n\n", snap.Reminder)
	}
	fmt.Fprintf(&sb, "## Hotpoints (%d)\n\n", len(points))
	for i, h := range points {
		fmt.Fprintf(&sb, "%d. **%s** `%s` %s\n", i+1, h.Label, h.FileID, h.Range)
	}
	return sb.String()
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolP("long", "l", false, "Render a longer markdown summary")
	statusCmd.Flags().Bool("json", false, "Output as JSON")
}
