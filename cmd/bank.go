package cmd

import (
	"fmt"
	"strings"

	"github.com/ratneshs230/prepdeck/internal/state"
	"github.com/spf13/cobra"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect the question bank",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions in the bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		appState, err := st.StateRepo().Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load state: %w", err)
		}

		if len(appState.Questions) == 0 {
			fmt.Println("Question bank is empty. Add material with `prepdeck ingest <file>`.")
			return nil
		}

		fmt.Printf("%-36s  %-18s  %-8s  %s\n", "ID", "Subject", "Level", "Question")
		fmt.Println(strings.Repeat("─", 100))
		for _, q := range appState.Questions {
			if subject != "" && !strings.EqualFold(string(q.Subject), subject) {
				continue
			}
			text := clipText(q.Text, 50)
			fmt.Printf("%-36s  %-18s  %-8s  %s\n", q.ID, q.Subject, q.Difficulty, text)
		}
		return nil
	},
}

var bankDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a question by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		stateRepo := st.StateRepo()
		appState, err := stateRepo.Load(ctx)
		if err != nil {
			return fmt.Errorf("load state: %w", err)
		}

		ctrl := state.New(appState)
		if err := ctrl.DeleteQuestion(args[0]); err != nil {
			return err
		}
		if err := stateRepo.Save(ctx, ctrl.Snapshot()); err != nil {
			return fmt.Errorf("save state: %w", err)
		}
		fmt.Println("Question deleted. Past attempts stay in history.")
		return nil
	},
}

// clipText shortens s to max runes for single-line table display.
func clipText(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}

func init() {
	bankListCmd.Flags().StringP("subject", "s", "", "Filter by subject")

	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankDeleteCmd)
}
