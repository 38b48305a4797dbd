package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/wsmark/internal/db"
	"github.com/marcus/wsmark/internal/git"
	"github.com/marcus/wsmark/internal/output"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Initialize a wsmark workspace",
	Long:    `Creates the local .wsmark directory and its SQLite state database.`,
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		if _, err := os.Stat(filepath.Join(baseDir, db.DirName)); err == nil {
			output.Warning("%s/ already exists in %s", db.DirName, baseDir)
			return nil
		}

		database, err := db.Initialize(baseDir)
		if err != nil {
			output.Error("failed to initialize database: %v", err)
			return err
		}
		defer database.Close()

		fmt.Printf("INITIALIZED %s/\n", db.DirName)

		if git.IsRepo(baseDir) {
			if addToGitignore(filepath.Join(baseDir, ".gitignore")) {
				fmt.Printf("Added %s/ to .gitignore\n", db.DirName)
			}
		}
		return nil
	},
}

// addToGitignore appends the data dir to a .gitignore, reporting whether
// the file changed
func addToGitignore(path string) bool {
	entry := db.DirName + "/"
	content, _ := os.ReadFile(path)
	existing := string(content)

	for _, line := range strings.Split(existing, "\n") {
		if strings.TrimSpace(line) == entry {
			return false
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false
	}
	defer f.Close()

	if len(existing) > 0 && !strings.HasSuffix(existing, "\n") {
		f.WriteString("\n")
	}
	_, err = f.WriteString(entry + "\n")
	return err == nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
