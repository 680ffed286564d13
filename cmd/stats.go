package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpatel/biotutor/internal/bank"
	"github.com/mpatel/biotutor/internal/history"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-topic accuracy",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, cleanup, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		acc := env.Ledger.TopicAccuracy(env.Bank)
		answered := len(env.Ledger.All())
		toReview := len(env.Ledger.IncorrectQuestionIDs())

		fmt.Printf("Answers recorded: %d\n", answered)
		if toReview > 0 {
			fmt.Printf("Questions to review: %d\n", toReview)
		}
		fmt.Println()

		for _, mod := range bank.Modules {
			fmt.Printf("Module %d\n", mod.ID)
			for _, topic := range mod.Topics {
				a, ok := acc[history.TopicKey{Module: mod.ID, Topic: topic}]
				if !ok || a.Total == 0 {
					fmt.Printf("  %-32s not started\n", topic)
					continue
				}
				fmt.Printf("  %-32s %3d%%  (%d/%d)\n", topic, a.Percent(), a.Correct, a.Total)
			}
		}
		return nil
	},
}
