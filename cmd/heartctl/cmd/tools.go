package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oksasatya/heart-api/internal/application"
	"github.com/oksasatya/heart-api/internal/cli/output"
	"github.com/oksasatya/heart-api/pkg/citation"
	"github.com/oksasatya/heart-api/pkg/editor"
)

func (a *app) rewriteCmd() *cobra.Command {
	var file, title, draftID, style string
	var noSave bool
	cmd := &cobra.Command{
		Use:   "rewrite [TEXT...]",
		Short: "Rewrite text academically and save it as a draft",
		Long: `Rewrite text with the configured language model. The result is saved as a
new draft, or into an existing one with --draft. Use --no-save to only print it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			text, err := a.readText(args, file)
			if err != nil {
				return err
			}
			ctx := a.ctx(cmd)

			if noSave {
				res, err := a.api.Rewrite(ctx, text, style)
				if err != nil {
					return err
				}
				a.printer.Print("%s", res.RewrittenText)
				return nil
			}

			ed := editor.New(a.api, a.drafts)
			if draftID != "" {
				d, err := a.api.GetDraft(ctx, draftID)
				if err != nil {
					return err
				}
				ed.Open(d)
			}
			if title != "" {
				ed.SetTitle(title)
			}
			ed.SetLeft(text)

			res, err := ed.Rewrite(ctx)
			if res != nil {
				a.printer.Print("%s", res.RewrittenText)
			}
			if errors.Is(err, editor.ErrSaveDraft) {
				a.printer.Warning("%v", err)
				return nil
			}
			if err != nil {
				return err
			}
			if cur := a.drafts.Current(); cur != nil {
				a.printer.Success("Draft saved (%s)", cur.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read text from file (- for stdin)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "draft title")
	cmd.Flags().StringVar(&draftID, "draft", "", "update this draft instead of creating one")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "print the rewrite without saving a draft")
	cmd.Flags().StringVar(&style, "style", application.DefaultRewriteStyle, "rewrite style (with --no-save)")
	return cmd
}

func (a *app) grammarCmd() *cobra.Command {
	var file, language string
	cmd := &cobra.Command{
		Use:   "grammar [TEXT...]",
		Short: "Check grammar and style",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			text, err := a.readText(args, file)
			if err != nil {
				return err
			}
			res, err := a.api.CheckGrammar(a.ctx(cmd), text, language)
			if err != nil {
				return err
			}
			if res.TotalErrors == 0 {
				a.printer.Success("No grammar issues found")
				return nil
			}
			a.printer.Header(fmt.Sprintf("Found %d grammar issues", res.TotalErrors))
			tbl := output.NewTable(a.printer.Out(), []string{"AT", "ISSUE", "MESSAGE", "SUGGESTIONS"})
			for _, m := range res.Matches {
				var sugg []string
				for i, r := range m.Replacements {
					if i == 3 {
						break
					}
					sugg = append(sugg, r.Value)
				}
				tbl.AddRow(fmt.Sprintf("%d:%d", m.Offset, m.Length), m.Rule.IssueType, output.Truncate(m.Message, 60), strings.Join(sugg, ", "))
			}
			tbl.Render()
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read text from file (- for stdin)")
	cmd.Flags().StringVarP(&language, "language", "l", application.DefaultGrammarLanguage, "language code")
	return cmd
}

func (a *app) detectCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "detect [TEXT...]",
		Short: "Estimate whether text reads as AI-generated",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			text, err := a.readText(args, file)
			if err != nil {
				return err
			}
			res, err := a.api.DetectAI(a.ctx(cmd), text)
			if err != nil {
				return err
			}
			if res.Mock {
				a.printer.Warning("%s", res.Message)
			}
			a.printer.Print("%s  %s", a.printer.Score("Human", res.HumanScore, true), a.printer.Score("AI", res.AIScore, false))
			if res.HumanScore >= res.AIScore {
				a.printer.Success("Content appears human-written")
			} else {
				a.printer.Warning("Content may appear AI-generated")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read text from file (- for stdin)")
	return cmd
}

func (a *app) citeCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "cite -f REFERENCES.json",
		Short: "Format references in Vancouver style",
		Long: `Format a JSON array of references, each with any of text, authors, title,
journal, year, volume, issue and pages.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			var (
				raw []byte
				err error
			)
			if file == "-" {
				raw, err = io.ReadAll(a.in)
			} else {
				raw, err = os.ReadFile(file)
			}
			if err != nil {
				return err
			}
			var refs []citation.Reference
			if err := json.Unmarshal(raw, &refs); err != nil {
				return fmt.Errorf("parse references: %w", err)
			}
			cites, err := a.api.FormatCitations(a.ctx(cmd), refs)
			if err != nil {
				return err
			}
			for _, c := range cites {
				a.printer.Print("%s", c.VancouverStyle)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "references JSON file (- for stdin)")
	return cmd
}

func (a *app) researchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "research QUERY...",
		Short: "Suggest related literature",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			res, err := a.api.Research(a.ctx(cmd), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if res.Mock {
				a.printer.Warning("Suggestions from %s are sample data", res.Provider)
			}
			a.printer.Header("Suggestions for " + res.Query)
			for _, s := range res.Suggestions {
				a.printer.Print("%s (%d)", a.printer.Bold(s.Title), s.Year)
				a.printer.Print("  %s. %s", s.Authors, s.Source)
				if s.Abstract != "" {
					a.printer.Print("  %s", a.printer.Dim(s.Abstract))
				}
			}
			return nil
		},
	}
}

func (a *app) searchCmd() *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search your drafts and research entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			docs, err := a.api.Search(a.ctx(cmd), strings.Join(args, " "), size)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				a.printer.Info("No matches")
				return nil
			}
			tbl := output.NewTable(a.printer.Out(), []string{"KIND", "ID", "TITLE", "CONTENT"})
			for _, d := range docs {
				tbl.AddRow(d.Kind, d.ID, output.Truncate(d.Title, 30), output.Truncate(d.Content, 50))
			}
			tbl.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "maximum results")
	return cmd
}
