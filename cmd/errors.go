package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/wsmark/internal/db"
	"github.com/marcus/wsmark/internal/output"
)

var errorsCmd = &cobra.Command{
	Use:     "errors",
	Short:   "View failed reads and writes of workspace state",
	Long:    `Shows the persistence-failure log kept in .wsmark/errors.jsonl, newest first.`,
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		if clearFlag, _ := cmd.Flags().GetBool("clear"); clearFlag {
			if err := db.ClearPersistErrors(baseDir); err != nil {
				output.Error("failed to clear errors: %v", err)
				return err
			}
			fmt.Println("Cleared error log")
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := db.ReadPersistErrors(baseDir, limit)
		if err != nil {
			output.Error("failed to read errors: %v", err)
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(entries)
		}
		if len(entries) == 0 {
			fmt.Println("No persistence errors logged")
			return nil
		}

		fmt.Printf("Persistence Errors (%d):\n\n", len(entries))
		for _, e := range entries {
			fmt.Printf("%s  %s %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Op, e.Key)
			fmt.Printf("  Error: %s\n", e.Error)
			if e.SessionID != "" {
				fmt.Printf("  Session: %s\n", e.SessionID)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(errorsCmd)

	errorsCmd.Flags().Bool("clear", false, "Clear the error log")
	errorsCmd.Flags().Int("limit", 20, "Max errors to show (0 for all)")
	errorsCmd.Flags().Bool("json", false, "Output as JSON")
}
