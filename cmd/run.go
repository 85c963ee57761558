package cmd

import (
	"fmt"
	"os"

	"quickcard/internal/app"
	"quickcard/internal/catalog"
	"quickcard/internal/progress"
	"quickcard/internal/speech"
	"quickcard/internal/store"

	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	progress.MigrateLegacyKeys(st, cat)

	opts := app.Options{
		Catalog: cat,
		Tracker: progress.NewTracker(st),
	}

	// Audio is optional; the app runs silent without a TTS backend.
	speaker, err := speech.NewFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Audio not configured:", err)
		fmt.Fprintln(os.Stderr, "Pronunciation playback will be unavailable.")
	} else {
		defer speaker.Close()
		opts.Speaker = speaker
	}

	return app.Run(opts)
}
