package cmd

import (
	"fmt"

	"quickcard/internal/catalog"
	"quickcard/internal/progress"
	"quickcard/internal/quiz"
	"quickcard/internal/store"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-deck progress",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		tracker := progress.NewTracker(st)

		fmt.Printf("Best streak: %d    Total correct: %d\n\n", tracker.BestStreak(), tracker.TotalCorrect())
		fmt.Printf("%-16s %-28s %-9s %s\n", "DECK", "NAME", "BEST", "MASTERED")
		for _, deck := range cat.Decks() {
			if deck.IsMatch() {
				continue
			}
			best, ok := tracker.BestTime(deck.ID)
			mastered := ""
			if tracker.IsMastered(deck.ID) {
				mastered = "✓"
			}
			fmt.Printf("%-16s %-28s %-9s %s\n",
				deck.ID, deck.DeckName, quiz.FormatBest(best, ok), mastered)
		}
		return nil
	},
}
