package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mpatel/biotutor/internal/app"
	"github.com/mpatel/biotutor/internal/screens/study"
	"github.com/mpatel/biotutor/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a study session directly",
	Long:  "Skip the home screen and launch straight into a session. Modes: guided, practice, exam, review.",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")
		moduleID, _ := cmd.Flags().GetInt("module")
		topic, _ := cmd.Flags().GetString("topic")
		count, _ := cmd.Flags().GetInt("count")

		req := session.Request{
			Mode:     session.Mode(mode),
			ModuleID: moduleID,
			Topic:    topic,
			Count:    count,
		}
		if err := req.Validate(); err != nil {
			return err
		}

		env, cleanup, err := buildEnv(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		return app.RunAt(env, study.New(env, req))
	},
}

func init() {
	playCmd.Flags().String("mode", "practice", "Session mode: guided, practice, exam, or review")
	playCmd.Flags().Int("module", 0, "Restrict questions to one module (1 or 2)")
	playCmd.Flags().String("topic", "", "Restrict questions to one topic (requires --module)")
	playCmd.Flags().Int("count", 0, "Number of questions (exam only; 0 uses the mode default)")
}
