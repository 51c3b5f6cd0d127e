package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/evalund/glosor/internal/app"
	"github.com/evalund/glosor/internal/conceptgen"
	"github.com/evalund/glosor/internal/content"
	"github.com/evalund/glosor/internal/llm"
	"github.com/evalund/glosor/internal/screens/home"
	"github.com/evalund/glosor/internal/tuning"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the games",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	tuningFile, _ := cmd.Flags().GetString("tuning")
	tn, err := tuning.Load(tuningFile)
	if err != nil {
		return fmt.Errorf("load tuning: %w", err)
	}

	// Generation is optional. Without a provider the app still plays
	// from imported materials.
	var generator conceptgen.Generator
	provider, err := llm.NewProviderFromEnv(ctx, st.LLMRequests())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Word generation will be unavailable.")
	} else {
		generator = conceptgen.New(provider, conceptgen.DefaultConfig())
	}

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(os.Getpid())))
	preparer := content.NewPreparer(st.Materials(), st.Mistakes(), generator, rng)

	return app.Run(home.Deps{
		Materials: st.Materials(),
		Sessions:  st.Sessions(),
		Mistakes:  st.Mistakes(),
		Profile:   st.Profile(),
		Preparer:  preparer,
		Tuning:    tn,
	})
}
