package cmd

import (
	"fmt"
	"os"

	"github.com/ratneshs230/prepdeck/internal/app"
	"github.com/ratneshs230/prepdeck/internal/extract"
	"github.com/ratneshs230/prepdeck/internal/ingest"
	"github.com/ratneshs230/prepdeck/internal/llm"
	"github.com/ratneshs230/prepdeck/internal/quiz"
	"github.com/ratneshs230/prepdeck/internal/screens/home"
	"github.com/ratneshs230/prepdeck/internal/session"
	"github.com/ratneshs230/prepdeck/internal/state"
	"github.com/ratneshs230/prepdeck/internal/tutor"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
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
	ctrl.OnChange = func(s quiz.AppState) {
		if err := stateRepo.Save(ctx, s); err != nil {
			fmt.Fprintln(os.Stderr, "save state:", err)
		}
	}

	deps := home.Deps{
		Controller: ctrl,
		Snapshots:  st.SessionSnapshotRepo(),
	}

	storedKey, err := st.CredentialRepo().Get(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read stored credential:", err)
	}

	cfg, ok := llm.Resolve(storedKey)
	if !ok {
		fmt.Fprintln(os.Stderr, "No LLM credential found; uploads and tutoring are unavailable.")
		fmt.Fprintln(os.Stderr, "Set one with: prepdeck key set <api-key>")
		deps.Builder = session.NewBuilder(nil)
		deps.Tutor = tutor.NewService(nil, tutor.DefaultConfig())
		return app.Run(deps)
	}

	provider, err := llm.NewProvider(ctx, cfg, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		deps.Builder = session.NewBuilder(nil)
		deps.Tutor = tutor.NewService(nil, tutor.DefaultConfig())
		return app.Run(deps)
	}

	deps.AIEnabled = true
	deps.Tutor = tutor.NewService(provider, tutor.DefaultConfig())
	deps.Builder = session.NewBuilder(tutor.NewCurator(provider, tutor.DefaultConfig()))
	deps.Pipeline = ingest.New(extract.New(provider, extract.DefaultConfig()))

	return app.Run(deps)
}
