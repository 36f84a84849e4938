package cmd

import (
	"fmt"
	"os"

	"github.com/ratneshs230/prepdeck/internal/extract"
	"github.com/ratneshs230/prepdeck/internal/ingest"
	"github.com/ratneshs230/prepdeck/internal/llm"
	"github.com/ratneshs230/prepdeck/internal/state"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Extract questions from study material without opening the TUI",
	Long:  "Runs AI question extraction over the given .txt/.md files and adds the results to the question bank.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		storedKey, err := st.CredentialRepo().Get(ctx)
		if err != nil {
			return fmt.Errorf("read stored credential: %w", err)
		}
		cfg, ok := llm.Resolve(storedKey)
		if !ok {
			return fmt.Errorf("no LLM credential found; run `prepdeck key set <api-key>` first")
		}
		provider, err := llm.NewProvider(ctx, cfg, st.EventRepo())
		if err != nil {
			return fmt.Errorf("configure LLM provider: %w", err)
		}

		stateRepo := st.StateRepo()
		appState, err := stateRepo.Load(ctx)
		if err != nil {
			return fmt.Errorf("load state: %w", err)
		}
		ctrl := state.New(appState)

		pipeline := ingest.New(extract.New(provider, extract.DefaultConfig()))
		var added, failed int
		pipeline.Run(ctx, args, func(r ingest.FileResult) {
			ctrl.AddDocument(r.Document)
			if r.Err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, r.Err)
				return
			}
			n := ctrl.AddQuestions(r.Questions)
			added += n
			fmt.Printf("✓ %s: %d questions added\n", r.Path, n)
		})

		if err := stateRepo.Save(ctx, ctrl.Snapshot()); err != nil {
			return fmt.Errorf("save state: %w", err)
		}

		fmt.Printf("\nDone: %d questions added, %d file(s) failed.\n", added, failed)
		return nil
	},
}
