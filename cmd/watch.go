package cmd

import (
	"fmt"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marcus/wsmark/internal/fileid"
	"github.com/marcus/wsmark/internal/highlight"
	"github.com/marcus/wsmark/internal/models"
	"github.com/marcus/wsmark/internal/output"
	"github.com/marcus/wsmark/internal/session"
	"github.com/marcus/wsmark/internal/tui/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file...]",
	Short: "Live view of files with their hotpoints",
	Long: `Launch a live-updating TUI showing one file at a time with its hotpoints
highlighted and the status bar on top. Files are re-read when they change on
disk. Without arguments, every file that has hotpoints is watched.

Key bindings:
  Tab/Shift+Tab  Switch file
  j/k            Scroll
  n              Next state
  l              Toggle hotpoint list
  r              Reload hotpoints and files
  ?              Toggle help
  q              Quit`,
	GroupID: "hotpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		set := highlight.NewSet()
		sess, err := openSession(session.WithSurface(set))
		if err != nil {
			return err
		}
		defer sess.Close()

		files, err := watchFiles(sess.BaseDir, args, sess.Hotpoints.List())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if len(files) == 0 {
			fmt.Println("No hotpoints yet; pass files to watch")
			return nil
		}

		interval, _ := cmd.Flags().GetDuration("interval")
		if interval < 200*time.Millisecond {
			interval = time.Second
		}

		model, err := watch.NewModel(sess, set, files, interval)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running watch: %w", err)
		}
		return nil
	},
}

// watchFiles resolves args, or every file with hotpoints in first-marked order
func watchFiles(baseDir string, args []string, points []models.Hotpoint) ([]watch.File, error) {
	var ids []string
	if len(args) == 0 {
		ids = fileIDs(points)
	}
	for _, arg := range args {
		id, err := fileid.For(baseDir, arg)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	files := make([]watch.File, len(ids))
	for i, id := range ids {
		files[i] = watch.File{ID: id, Path: fileid.Path(baseDir, id)}
	}
	return files, nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Duration("interval", time.Second, "How often to check files for changes")
}
