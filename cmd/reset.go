package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ratneshs230/prepdeck/internal/quiz"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all questions, attempts, and documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Print("This deletes the question bank and all history. Type 'yes' to continue: ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.TrimSpace(line) != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		if err := st.StateRepo().Save(ctx, quiz.AppState{}); err != nil {
			return fmt.Errorf("reset state: %w", err)
		}
		if err := st.SessionSnapshotRepo().Clear(ctx); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
		fmt.Println("All data cleared. The stored API key is kept; use `prepdeck key clear` to remove it.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")
}
