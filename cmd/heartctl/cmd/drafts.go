package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oksasatya/heart-api/internal/cli/output"
	"github.com/oksasatya/heart-api/internal/domain/entity"
)

func draftTitle(d entity.ArticleDraft) string {
	if d.Title == nil || *d.Title == "" {
		return "(untitled)"
	}
	return *d.Title
}

func (a *app) draftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "drafts",
		Aliases: []string{"draft"},
		Short:   "Manage article drafts",
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your drafts, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			drafts, err := a.api.ListDrafts(a.ctx(cmd))
			if err != nil {
				return err
			}
			a.drafts.Set(drafts)
			if len(drafts) == 0 {
				a.printer.Info("No drafts yet. `heartctl rewrite` saves one automatically.")
				return nil
			}
			a.printer.Header("Drafts")
			tbl := output.NewTable(a.printer.Out(), []string{"ID", "TITLE", "STATUS", "CITATIONS", "UPDATED"})
			for _, d := range a.drafts.List() {
				tbl.AddRow(d.ID, output.Truncate(draftTitle(d), 40), d.Status, fmt.Sprint(len(d.Citations)), d.UpdatedAt.Format("2006-01-02 15:04"))
			}
			tbl.Render()
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Print a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			d, err := a.api.GetDraft(a.ctx(cmd), args[0])
			if err != nil {
				return err
			}
			a.printer.Header(draftTitle(*d))
			a.printer.Print("%s  %s", a.printer.Dim("status"), d.Status)
			a.printer.Print("\n%s\n%s", a.printer.Bold("Original"), d.OriginalContent)
			if d.RewrittenContent != nil {
				a.printer.Print("\n%s\n%s", a.printer.Bold("Rewritten"), *d.RewrittenContent)
			}
			if len(d.Citations) > 0 {
				a.printer.Print("\n%s", a.printer.Bold("References"))
				for _, c := range d.Citations {
					a.printer.Print("%s", c.VancouverStyle)
				}
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a draft",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			if err := a.api.DeleteDraft(a.ctx(cmd), args[0]); err != nil {
				return err
			}
			a.drafts.Remove(args[0])
			a.printer.Success("Draft deleted")
			return nil
		},
	}

	var format string
	export := &cobra.Command{
		Use:   "export ID",
		Short: "Export a draft as txt or md",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			res, err := a.api.ExportDraft(a.ctx(cmd), args[0], format)
			if err != nil {
				return err
			}
			if res.URL != "" {
				a.printer.Success("Exported %s: %s", res.Filename, res.URL)
				return nil
			}
			fmt.Fprint(a.printer.Out(), res.Content)
			return nil
		},
	}
	export.Flags().StringVar(&format, "format", "txt", "txt or md")

	cmd.AddCommand(list, show, del, export)
	return cmd
}
