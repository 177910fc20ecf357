package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/stratiz/internal/screens/history"
	"github.com/abhisek/stratiz/internal/store"
	"github.com/abhisek/stratiz/internal/ui/components"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past quiz sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		showAnswers, _ := cmd.Flags().GetBool("answers")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		sessions, err := s.EventRepo().QuerySessionSummaries(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No quiz attempts yet.")
			return nil
		}

		for _, sess := range sessions {
			fmt.Fprintln(out, history.FormatSession(sess))
			if !showAnswers {
				continue
			}
			answers, err := s.EventRepo().QueryAnswers(ctx, sess.SessionID)
			if err != nil {
				return fmt.Errorf("query answers for %s: %w", sess.SessionID, err)
			}
			for _, a := range answers {
				mark := "✗"
				if a.Correct {
					mark = "✓"
				}
				fmt.Fprintf(out, "    %s Q%d chose %s, correct %s\n", mark, a.QuestionIndex+1,
					components.OptionLabel(a.SelectedOption), components.OptionLabel(a.CorrectOption))
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	historyCmd.Flags().BoolP("answers", "a", false, "Show the answers of each session")
}
