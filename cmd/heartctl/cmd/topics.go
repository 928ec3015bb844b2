package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oksasatya/heart-api/internal/cli/output"
	"github.com/oksasatya/heart-api/pkg/client"
)

func (a *app) topicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "topics",
		Aliases: []string{"topic"},
		Short:   "Manage research topics",
	}

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your topics",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			topics, err := a.api.ListTopics(a.ctx(cmd))
			if err != nil {
				return err
			}
			if len(topics) == 0 {
				a.printer.Info("No topics yet. Create one with `heartctl topics create NAME`.")
				return nil
			}
			a.printer.Header("Topics")
			tbl := output.NewTable(a.printer.Out(), []string{"ID", "NAME", "STATUS", "ENTRIES", "PROCESSED", "UPDATED"})
			for _, t := range topics {
				tbl.AddRow(t.ID, output.Truncate(t.Name, 40), t.Status,
					fmt.Sprint(t.TotalEntries), fmt.Sprint(t.ProcessedEntries), t.UpdatedAt.Format("2006-01-02 15:04"))
			}
			tbl.Render()
			return nil
		},
	}

	var description string
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			t, err := a.api.CreateTopic(a.ctx(cmd), client.TopicInput{Name: &args[0], Description: optional(description)})
			if err != nil {
				return err
			}
			a.printer.Success("Topic created: %s (%s)", a.printer.Bold(t.Name), t.ID)
			return nil
		},
	}
	create.Flags().StringVarP(&description, "description", "d", "", "topic description")

	del := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a topic and its entries",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			if err := a.api.DeleteTopic(a.ctx(cmd), args[0]); err != nil {
				return err
			}
			a.printer.Success("Topic deleted")
			return nil
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func (a *app) entriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entries",
		Aliases: []string{"entry"},
		Short:   "Manage research entries under a topic",
	}

	list := &cobra.Command{
		Use:     "list TOPIC_ID",
		Aliases: []string{"ls"},
		Short:   "List entries of a topic",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			entries, err := a.api.ListEntries(a.ctx(cmd), args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				a.printer.Info("No entries in this topic")
				return nil
			}
			a.printer.Header("Research entries")
			tbl := output.NewTable(a.printer.Out(), []string{"ID", "TEXT", "SOURCE", "PROCESSED", "CREATED"})
			for _, e := range entries {
				processed := "no"
				if e.IsProcessed {
					processed = "yes"
				}
				source := ""
				if e.Source != nil {
					source = output.Truncate(*e.Source, 24)
				}
				tbl.AddRow(e.ID, output.Truncate(e.OriginalText, 48), source, processed, e.CreatedAt.Format("2006-01-02 15:04"))
			}
			tbl.Render()
			return nil
		},
	}

	var source, notes, file string
	add := &cobra.Command{
		Use:   "add TOPIC_ID [TEXT...]",
		Short: "Add a research entry; text from args, --file or stdin (-)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			text, err := a.readText(args[1:], file)
			if err != nil {
				return err
			}
			e, err := a.api.AddEntry(a.ctx(cmd), args[0], client.EntryInput{
				OriginalText: &text,
				Source:       optional(source),
				Notes:        optional(notes),
			})
			if err != nil {
				return err
			}
			a.printer.Success("Research entry added (%s)", e.ID)
			return nil
		},
	}
	add.Flags().StringVarP(&source, "source", "s", "", "where the text came from")
	add.Flags().StringVarP(&notes, "notes", "n", "", "free-form notes")
	add.Flags().StringVarP(&file, "file", "f", "", "read text from file (- for stdin)")

	cmd.AddCommand(list, add)
	return cmd
}
