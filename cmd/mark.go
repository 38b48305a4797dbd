package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/marcus/wsmark/internal/config"
	"github.com/marcus/wsmark/internal/fileid"
	"github.com/marcus/wsmark/internal/git"
	"github.com/marcus/wsmark/internal/highlight"
	"github.com/marcus/wsmark/internal/hotpoint"
	"github.com/marcus/wsmark/internal/input"
	"github.com/marcus/wsmark/internal/models"
	"github.com/marcus/wsmark/internal/output"
	"github.com/marcus/wsmark/internal/prompt"
	"github.com/marcus/wsmark/internal/session"
	"github.com/marcus/wsmark/internal/suggest"
)

var markCmd = &cobra.Command{
	Use:     "mark",
	Aliases: []string{"hp"},
	Short:   "Add, list and remove hotpoints",
	GroupID: "hotpoint",
}

var markAddCmd = &cobra.Command{
	Use:   "add <file> <range> [label...]",
	Short: "Mark a range of a file",
	Long: `Adds a labelled hotpoint. Ranges are 1-based as editors show them:

  12:5-14:9   line 12 column 5 up to line 14 column 9
  12          all of line 12
  12-14       all of lines 12 through 14

Without a label a prompt is shown on a terminal.`,
	Example: `  wsmark mark add src/auth.go 40:2-52:3 token check
  wsmark mark add main.go 17 entry point`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, path, err := resolveFile(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		lines, err := readLines(path)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		rng, err := parseRange(args[1], lines)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		text, err := input.Text(args[2:], os.Stdin)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		label := input.FirstLine(text)
		if label == "" && prompt.IsInteractive() {
			var ok bool
			label, ok, err = prompt.Input("Label for "+id+" "+rng.String(), "what is here?", prompt.NotBlank("label"))
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if !ok {
				return nil
			}
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		h, err := session.Invoke[session.AddHotpointInput, models.Hotpoint](context.Background(), sess.Table,
			session.CmdAddHotpoint, session.AddHotpointInput{FileID: id, Range: rng, Label: label})
		if errors.Is(err, hotpoint.ErrPersistence) {
			output.Warning("hotpoint not saved: %v", err)
			return nil
		}
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(listEntry{Index: sess.Hotpoints.Len(), Hotpoint: h})
		}
		output.Success("MARKED %d %s", sess.Hotpoints.Len(), output.HotpointOneLiner(h))
		return nil
	},
}

// listEntry is a hotpoint with its 1-based list index
type listEntry struct {
	Index int `json:"index"`
	models.Hotpoint
	Modified bool `json:"modified,omitempty"`
}

var markListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List hotpoints in insertion order",
	Long: `Lists hotpoints with the index used by "mark rm" and "mark show". In a git
repository, hotpoints in files with uncommitted changes are flagged since
their ranges may have drifted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		list, err := session.Invoke[session.Empty, []models.Hotpoint](context.Background(), sess.Table,
			session.CmdListHotpoint, session.Empty{})
		if err != nil {
			output.Error("%v", err)
			return err
		}

		fileFilter, _ := cmd.Flags().GetString("file")
		if fileFilter != "" {
			if fileFilter, err = fileid.For(getBaseDir(), fileFilter); err != nil {
				output.Error("%v", err)
				return err
			}
		}

		modified := modifiedFileIDs(getBaseDir())
		entries := []listEntry{}
		for i, h := range list {
			if fileFilter != "" && h.FileID != fileFilter {
				continue
			}
			entries = append(entries, listEntry{Index: i + 1, Hotpoint: h, Modified: modified[h.FileID]})
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(entries)
		}
		if len(entries) == 0 && fileFilter != "" {
			fmt.Printf("No hotpoints in %s%s\n", fileFilter, suggest.Hint(suggest.Names(fileFilter, fileIDs(list))))
			return nil
		}
		if len(entries) == 0 {
			fmt.Println("No hotpoints")
			return nil
		}
		for _, e := range entries {
			line := output.FormatHotpoint(e.Index-1, e.Hotpoint)
			if e.Modified {
				line += "  (modified)"
			}
			fmt.Println(line)
		}
		return nil
	},
}

var markRmCmd = &cobra.Command{
	Use:     "rm [index]",
	Aliases: []string{"remove"},
	Short:   "Remove a hotpoint by index",
	Long: `Removes the hotpoint at the given 1-based index. Without an index a picker
is shown on a terminal. --expect-label guards against deleting the wrong entry
when the list changed since it was printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		in := session.RemoveHotpointInput{}
		list := sess.Hotpoints.List()

		if len(args) == 1 {
			if in.Index, err = parseIndex(args[0]); err != nil {
				output.Error("%v", err)
				return err
			}
			if expect, _ := cmd.Flags().GetString("expect-label"); expect != "" {
				if in.Index >= len(list) || list[in.Index].Label != expect {
					err := fmt.Errorf("hotpoint %d is not %q; run 'wsmark mark list' again", in.Index+1, expect)
					output.Error("%v", err)
					return err
				}
				in.Expect = &list[in.Index]
			}
		} else {
			idx, ok, err := pickHotpoint(list, "Remove which hotpoint?")
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if !ok {
				return nil
			}
			in.Index, in.Expect = idx, &list[idx]
			// the picker may have been open a while
			if err := sess.Hotpoints.Reload(); err != nil {
				output.Warning("could not re-read hotpoints: %v", err)
			}
		}

		removed, err := session.Invoke[session.RemoveHotpointInput, models.Hotpoint](context.Background(), sess.Table,
			session.CmdRemHotpoint, in)
		if errors.Is(err, hotpoint.ErrPersistence) {
			output.Warning("removal not saved: %v", err)
			return nil
		}
		if err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("REMOVED %s", output.HotpointOneLiner(removed))
		return nil
	},
}

var markPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose a hotpoint and show it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		list := sess.Hotpoints.List()
		idx, ok, err := pickHotpoint(list, "Go to hotpoint")
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if !ok {
			return nil
		}
		return showHotpoint(sess, idx, list[idx])
	},
}

var markShowCmd = &cobra.Command{
	Use:   "show <index>",
	Short: "Print a hotpoint with surrounding lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := parseIndex(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		list := sess.Hotpoints.List()
		if idx >= len(list) {
			err := &hotpoint.IndexError{Index: idx, Len: len(list)}
			output.Error("%v", err)
			return err
		}
		return showHotpoint(sess, idx, list[idx])
	},
}

// pickHotpoint shows a picker over list. It fails when not on a terminal.
func pickHotpoint(list []models.Hotpoint, title string) (int, bool, error) {
	if len(list) == 0 {
		return -1, false, errors.New("no hotpoints")
	}
	if !prompt.IsInteractive() {
		return -1, false, errors.New("an index is required when not on a terminal")
	}
	labels := make([]string, len(list))
	for i, h := range list {
		labels[i] = fmt.Sprintf("%d  %s", i+1, output.HotpointOneLiner(h))
	}
	return prompt.Select(title, labels)
}

// showHotpoint prints the hotpoint's lines with context, highlighted
func showHotpoint(sess *session.Session, idx int, h models.Hotpoint) error {
	lines, err := readLines(fileid.Path(sess.BaseDir, h.FileID))
	if err != nil {
		output.Error("%v", err)
		return err
	}

	fmt.Println(output.FormatHotpoint(idx, h))
	if h.Range.Start.Line >= len(lines) {
		output.Warning("range starts past the end of the file (%d lines)", len(lines))
		return nil
	}

	ranges := []models.Range{h.Range}
	style := markStyle(sess.Config)
	start, end := highlight.Window(len(lines), h.Range, config.ContextLines(sess.Config))
	rendered := highlight.Render(lines, ranges, style)[start:end]
	for _, line := range highlight.Number(rendered, start, ranges, gutterStyle) {
		fmt.Println(line)
	}
	return nil
}

// fileIDs lists the distinct file ids in list order
func fileIDs(list []models.Hotpoint) []string {
	var ids []string
	for _, h := range list {
		if !slices.Contains(ids, h.FileID) {
			ids = append(ids, h.FileID)
		}
	}
	return ids
}

func resolveFile(arg string) (id, path string, err error) {
	id, err = fileid.For(getBaseDir(), arg)
	if err != nil {
		return "", "", err
	}
	return id, fileid.Path(getBaseDir(), id), nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return highlight.SplitLines(string(data)), nil
}

// modifiedFileIDs returns the file ids with uncommitted git changes. Outside
// a repository it is empty.
func modifiedFileIDs(baseDir string) map[string]bool {
	out := map[string]bool{}
	if !git.IsRepo(baseDir) {
		return out
	}
	paths, err := git.ModifiedFiles(baseDir)
	if err != nil {
		return out
	}
	for _, p := range paths {
		if id, err := fileid.For(baseDir, p); err == nil {
			out[id] = true
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(markCmd)
	markCmd.AddCommand(markAddCmd, markListCmd, markRmCmd, markPickCmd, markShowCmd)

	markAddCmd.Flags().Bool("json", false, "Output as JSON")
	markListCmd.Flags().StringP("file", "f", "", "Only hotpoints in this file")
	markListCmd.Flags().Bool("json", false, "Output as JSON")
	markRmCmd.Flags().String("expect-label", "", "Refuse unless the hotpoint has this label")
}
