package cmd

import (
	"fmt"
	"os"

	"quickcard/internal/catalog"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <cards.json> <decks.json>",
	Short: "Validate card and deck JSON files against the content schema",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cardsRaw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read cards: %w", err)
		}
		decksRaw, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read decks: %w", err)
		}

		if err := catalog.ValidateCardsJSON(cardsRaw); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if err := catalog.ValidateDecksJSON(decksRaw); err != nil {
			return fmt.Errorf("%s: %w", args[1], err)
		}

		// Cross-checks beyond the schema: answer keys, deck references.
		cat, err := catalog.Parse(cardsRaw, decksRaw)
		if err != nil {
			return err
		}

		fmt.Printf("OK: %d cards across %d decks\n", len(cat.Cards()), len(cat.Decks()))
		return nil
	},
}
