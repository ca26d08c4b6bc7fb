package cmd

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Snehil208001/QuoteVault/internal/config"
	"github.com/Snehil208001/QuoteVault/internal/favorites"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List saved favorites",
	RunE: func(cmd *cobra.Command, args []string) error {
		favs, err := favorites.Open(config.FavoritesDBPath())
		if err != nil {
			return fmt.Errorf("opening favorites: %w", err)
		}
		defer favs.Close()

		quotes, err := favs.All(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing favorites: %w", err)
		}
		if len(quotes) == 0 {
			fmt.Println("No favorites yet.")
			return nil
		}

		table := uitable.New()
		table.MaxColWidth = 70
		table.Wrap = true
		table.AddRow("#", "QUOTE", "AUTHOR")
		for i, q := range quotes {
			table.AddRow(
				color.HiBlackString(strconv.Itoa(i+1)),
				q.Text,
				color.CyanString(q.Author),
			)
		}
		fmt.Println(table)
		return nil
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <number>",
	Short: "Remove a favorite by its list number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid number %q", args[0])
		}

		favs, err := favorites.Open(config.FavoritesDBPath())
		if err != nil {
			return fmt.Errorf("opening favorites: %w", err)
		}
		defer favs.Close()

		quotes, err := favs.All(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing favorites: %w", err)
		}
		if n > len(quotes) {
			return fmt.Errorf("no favorite #%d (have %d)", n, len(quotes))
		}

		q := quotes[n-1]
		if err := favs.DeleteByText(cmd.Context(), q.Text); err != nil {
			return fmt.Errorf("removing favorite: %w", err)
		}
		fmt.Printf("Removed %q — %s\n", q.Text, q.Author)
		return nil
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesRemoveCmd)
}
