package cmd

import (
	"fmt"
	"strings"

	"github.com/ratneshs230/prepdeck/internal/dashboard"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		appState, err := st.StateRepo().Load(ctx)
		if err != nil {
			return fmt.Errorf("load state: %w", err)
		}

		questions, attempts := appState.Questions, appState.Attempts
		overview := dashboard.ComputeOverview(questions, attempts)

		if overview.TotalAttempts == 0 {
			fmt.Println("No attempts recorded yet. Start a session with `prepdeck`.")
			return nil
		}

		fmt.Printf("Questions:  %d\n", overview.TotalQuestions)
		fmt.Printf("Attempts:   %d (%d correct, %d%% accuracy)\n",
			overview.TotalAttempts, overview.Correct, overview.AccuracyPct)
		fmt.Printf("Avg time:   %.1fs per question\n", overview.AvgTimeSecs)
		fmt.Printf("Streak:     %d correct in a row\n", dashboard.Streak(attempts))

		coverage := dashboard.ComputeCoverage(questions, attempts)
		fmt.Printf("Coverage:   %d mastered / %d need review / %d unseen\n",
			coverage.Mastered, coverage.NeedsReview, coverage.Unseen)

		scores := dashboard.SubjectProficiency(questions, attempts)
		if len(scores) > 0 {
			fmt.Println()
			fmt.Println("Subjects")
			fmt.Println(strings.Repeat("─", 44))
			for _, s := range scores {
				if s.Total == 0 {
					fmt.Printf("%-20s  not attempted yet\n", s.Subject)
					continue
				}
				fmt.Printf("%-20s  %3d%%  (%d/%d)\n", s.Subject, s.Score, s.Correct, s.Total)
			}
		}

		if weakest, ok := dashboard.WeakestSubject(questions, attempts); ok {
			fmt.Printf("\nFocus suggestion: %s\n", weakest)
		}
		return nil
	},
}
