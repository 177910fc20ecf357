package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/stratiz/internal/app"
	"github.com/abhisek/stratiz/internal/llm"
	"github.com/abhisek/stratiz/internal/page"
	"github.com/abhisek/stratiz/internal/tutor"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	pack, err := loadPack(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("page")
	start, err := page.Parse(name)
	if err != nil {
		return err
	}
	skip, _ := cmd.Flags().GetBool("no-splash")

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	opts := app.Options{
		Pack:         pack,
		EventRepo:    eventRepo,
		SnapshotRepo: st.SnapshotRepo(),
		StartPage:    start,
		SkipWelcome:  skip,
	}

	provider, err := llm.NewFromEnv(ctx, eventRepo)
	switch {
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The tutor will be unavailable.")
	case provider != nil:
		opts.Tutor = tutor.NewService(provider, pack, tutor.DefaultConfig())
	}

	return app.Run(opts)
}
