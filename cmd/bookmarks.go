package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List bookmarked questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		ids := env.Bookmarks.All()
		if len(ids) == 0 {
			fmt.Println("No bookmarks yet. Press B on a question to bookmark it.")
			return nil
		}
		for _, id := range ids {
			q := env.Bank.Question(id)
			if q == nil {
				continue
			}
			fmt.Printf("%-22s %s\n", id, q.Text)
		}
		return nil
	},
}
