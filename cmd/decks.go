package cmd

import (
	"fmt"

	"quickcard/internal/catalog"

	"github.com/spf13/cobra"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List the built-in decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		chapter := 0
		for _, deck := range cat.Decks() {
			if deck.Chapter != chapter {
				chapter = deck.Chapter
				fmt.Printf("\nChapter %d\n", chapter)
			}
			kind := "quiz"
			if deck.IsMatch() {
				kind = "match"
			}
			fmt.Printf("  %-16s %-28s %2d cards  [%s]\n",
				deck.ID, deck.DeckName, cat.CardCount(deck.ID), kind)
		}
		fmt.Println()
		return nil
	},
}
