package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/marcus/wsmark/internal/config"
	"github.com/marcus/wsmark/internal/highlight"
	"github.com/marcus/wsmark/internal/models"
	"github.com/marcus/wsmark/internal/output"
	"github.com/marcus/wsmark/internal/session"
)

var (
	gutterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	fileStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// markStyle is the highlight background from config
func markStyle(cfg *models.Config) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(config.HighlightColor(cfg)))
}

var viewCmd = &cobra.Command{
	Use:   "view <file>...",
	Short: "Print files with their hotpoints highlighted",
	Long: `Prints each file with line numbers. Ranges covered by hotpoints are
highlighted and their lines are marked in the gutter.`,
	GroupID: "hotpoint",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set := highlight.NewSet()
		sess, err := openSession(session.WithSurface(set))
		if err != nil {
			return err
		}
		defer sess.Close()

		ids := make([]string, 0, len(args))
		paths := make(map[string]string, len(args))
		for _, arg := range args {
			id, path, err := resolveFile(arg)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			ids = append(ids, id)
			paths[id] = path
		}

		if err := sess.SetVisible(context.Background(), ids); err != nil {
			output.Error("%v", err)
			return err
		}

		style := markStyle(sess.Config)
		for i, id := range sess.Visible() {
			lines, err := readLines(paths[id])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if i > 0 {
				fmt.Println()
			}
			ranges := set.Get(id)
			fmt.Println(fileStyle.Render(fmt.Sprintf("%s (%d hotpoints)", id, len(ranges))))
			rendered := highlight.Render(lines, ranges, style)
			for _, line := range highlight.Number(rendered, 0, ranges, gutterStyle) {
				fmt.Println(line)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
