package main

import (
	"github.com/spf13/cobra"

	"github.com/debemdeboas/swipestate/internal/model"
)

func newLocalCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "local",
		Short: "Print the local favorites and history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := a.interactions.GetLocal()
			if asJSON {
				return writeJSON(cmd, data)
			}
			printFavorites(cmd.OutOrStdout(), data.Favorites)
			printHistory(cmd.OutOrStdout(), data.History)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

func newSyncCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Merge a server response into the local collections",
	}

	var favoritesFile string
	favorites := &cobra.Command{
		Use:   "favorites",
		Short: "Merge a fetched favorites list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var server []model.FavoriteEntry
			if err := readJSON(cmd, favoritesFile, &server); err != nil {
				return err
			}
			printFavorites(cmd.OutOrStdout(), a.interactions.SyncFavorites(server))
			return nil
		},
	}
	favorites.Flags().StringVar(&favoritesFile, "from", "-", "JSON array of favorite entries, - for stdin")

	var historyFile string
	history := &cobra.Command{
		Use:   "history",
		Short: "Merge a fetched history list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var server []model.HistoryEntry
			if err := readJSON(cmd, historyFile, &server); err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), a.interactions.SyncHistory(server))
			return nil
		},
	}
	history.Flags().StringVar(&historyFile, "from", "-", "JSON array of history entries, - for stdin")

	cmd.AddCommand(favorites, history)
	return cmd
}

func newFavoriteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorite",
		Short: "Record or drop a favorite locally",
	}

	var title string
	add := &cobra.Command{
		Use:   "add <card-id>",
		Short: "Record a local favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.interactions.AddToFavorites(model.FavoriteEntry{
				Card: model.Card{ID: model.CardID(args[0]), Title: title},
			})
			return nil
		},
	}
	add.Flags().StringVar(&title, "title", "", "card title")

	var byLikeID bool
	remove := &cobra.Command{
		Use:   "remove <card-id>",
		Short: "Drop a favorite locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := model.FavoriteEntry{Card: model.Card{ID: model.CardID(args[0])}}
			if byLikeID {
				selector = model.FavoriteEntry{LikeID: args[0]}
			}
			if !a.interactions.RemoveFromFavorites(selector) {
				cmd.PrintErrln(mutedStyle.Render("no favorite matched " + args[0]))
			}
			return nil
		},
	}

	remove.Flags().BoolVar(&byLikeID, "like", false, "treat the argument as a like id")

	cmd.AddCommand(add, remove)
	return cmd
}
