package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/debemdeboas/swipestate/internal/drafts"
	"github.com/debemdeboas/swipestate/internal/model"
)

func newDraftsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Manage saved project posting drafts",
	}

	var newestFirst, asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List drafts in storage order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := a.drafts.ListDrafts()
			if newestFirst {
				all = drafts.SortForDisplay(all)
			}
			if asJSON {
				return writeJSON(cmd, all)
			}
			printDrafts(cmd.OutOrStdout(), all)
			return nil
		},
	}
	list.Flags().BoolVar(&newestFirst, "newest-first", false, "sort by creation time, newest first")
	list.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")

	var saveFile string
	save := &cobra.Command{
		Use:   "save",
		Short: "Save a form snapshot as a new draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var form model.FormData
			if err := readJSON(cmd, saveFile, &form); err != nil {
				return err
			}
			d := a.drafts.SaveDraft(form)
			fmt.Fprintln(cmd.OutOrStdout(), d.ID)
			return nil
		},
	}
	save.Flags().StringVarP(&saveFile, "file", "f", "-", "JSON form snapshot, - for stdin")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one draft as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, ok := a.drafts.LoadDraft(model.DraftID(args[0]))
			if !ok {
				return fmt.Errorf("draft %s not found", args[0])
			}
			return writeJSON(cmd, d)
		},
	}

	var updateFile string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace the form of an existing draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var form model.FormData
			if err := readJSON(cmd, updateFile, &form); err != nil {
				return err
			}
			if _, ok := a.drafts.UpdateDraft(model.DraftID(args[0]), form); !ok {
				return fmt.Errorf("draft %s not found", args[0])
			}
			return nil
		},
	}
	update.Flags().StringVarP(&updateFile, "file", "f", "-", "JSON form snapshot, - for stdin")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a draft; unknown ids are ignored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.drafts.DeleteDraft(model.DraftID(args[0]))
			return nil
		},
	}

	migrate := &cobra.Command{
		Use:   "migrate-legacy",
		Short: "Move the legacy single draft into the draft list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, ok := a.drafts.MigrateLegacy()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("nothing to migrate"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.ID)
			return nil
		},
	}

	cmd.AddCommand(list, save, show, update, del, migrate)
	return cmd
}
