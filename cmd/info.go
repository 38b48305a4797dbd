package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/marcus/wsmark/internal/db"
	"github.com/marcus/wsmark/internal/output"
)

var infoCmd = &cobra.Command{
	Use:     "info",
	Short:   "Show workspace location and stored keys",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()
		database, err := db.Open(baseDir)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		keys, err := database.Keys()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		schema, err := database.GetSchemaVersion()
		if err != nil {
			output.Warning("schema version: %v", err)
		}

		fmt.Printf("Workspace: %s\n", baseDir)
		fmt.Printf("Data:      %s\n", filepath.Join(baseDir, db.DirName))
		fmt.Printf("Store:     %s\n", db.Path(baseDir))
		fmt.Printf("Schema:    v%d\n", schema)
		fmt.Print(output.SectionHeader("keys"))
		if len(keys) == 0 {
			fmt.Println("  (none)")
		}
		for _, k := range keys {
			fmt.Printf("  %-20s %6d bytes  %s\n", k.Key, k.Size, output.FormatTimeAgo(k.UpdatedAt))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
